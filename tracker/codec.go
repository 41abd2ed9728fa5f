package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// CurrentVersion is the schema version written by Encode.
const CurrentVersion = 2

// Document is the normalized shape every schema version decodes into.
type Document struct {
	// Classes maps a class name to the UIDs it lists, in stored order.
	Classes map[string][]UID

	// Assignments maps each UID to its content.
	Assignments map[UID]Assignment

	// Completion maps each UID to whether it has been completed.
	Completion map[UID]bool
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		Classes:     make(map[string][]UID),
		Assignments: make(map[UID]Assignment),
		Completion:  make(map[UID]bool),
	}
}

// ClassNames returns the class names in lexicographic order.
func (d *Document) ClassNames() []string {
	names := make([]string, 0, len(d.Classes))
	for name := range d.Classes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (d *Document) addClass(class string) {
	if _, ok := d.Classes[class]; !ok {
		d.Classes[class] = []UID{}
	}
}

// add records an assignment under class. Records that collapse to one UID
// are listed once per class and count as completed if any copy was.
func (d *Document) add(class string, a Assignment, completed bool) UID {
	uid := DeriveUID(a)
	d.addClass(class)
	if !slices.Contains(d.Classes[class], uid) {
		d.Classes[class] = append(d.Classes[class], uid)
	}
	d.Assignments[uid] = a
	d.Completion[uid] = d.Completion[uid] || completed
	return uid
}

// schema pairs a version tag with a decoder that normalizes into a Document.
// Decoders are independent of each other; adding a version appends here.
type schema struct {
	version int
	decode  func(data []byte) (*Document, error)
}

var schemas = []schema{
	{version: 1, decode: decodeV1},
	{version: 2, decode: decodeV2},
}

// Decode parses data with each known schema version in order and returns the
// first successful result along with the version that matched.
func Decode(data []byte) (*Document, int, error) {
	failures := make([]error, 0, len(schemas))
	for _, s := range schemas {
		doc, err := s.decode(data)
		if err == nil {
			return doc, s.version, nil
		}
		failures = append(failures, fmt.Errorf("v%d: %w", s.version, err))
	}
	return nil, 0, &FormatError{Failures: failures}
}

// Encode serializes a document in the current schema version.
// The output always ends with exactly one newline.
func Encode(doc *Document) ([]byte, error) {
	data, err := encodeV2(doc)
	if err != nil {
		return nil, err
	}
	return withTrailingNewline(data), nil
}

func withTrailingNewline(data []byte) []byte {
	data = bytes.TrimRight(data, "\r\n")
	return append(data, '\n')
}

// decodeStrict decodes a single JSON value, rejecting unknown fields and
// trailing content.
func decodeStrict(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return errors.New("unexpected trailing content")
	}
	return nil
}
