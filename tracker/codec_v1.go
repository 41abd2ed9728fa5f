package tracker

import (
	"errors"
	"fmt"
	"time"
)

// recordV1 is an assignment with its completion flag embedded inline.
// Files in this shape map class names directly to lists of records.
type recordV1 struct {
	Due       *time.Time `json:"due_date"`
	Name      *string    `json:"name"`
	Completed *bool      `json:"completed"`
}

func decodeV1(data []byte) (*Document, error) {
	var raw map[string][]recordV1
	if err := decodeStrict(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("document is not an object")
	}

	doc := NewDocument()
	for _, class := range sortedKeys(raw) {
		doc.addClass(class)
		for i, record := range raw[class] {
			if record.Due == nil || record.Name == nil || record.Completed == nil {
				return nil, fmt.Errorf("class %q record %d: missing field", class, i)
			}
			doc.add(class, Assignment{Due: *record.Due, Name: *record.Name}, *record.Completed)
		}
	}
	return doc, nil
}
