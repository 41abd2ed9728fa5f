package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// documentV2 carries an explicit version tag and a class mapping whose
// entries are [assignment, completed] pairs.
type documentV2 struct {
	Version *int                 `json:"version"`
	Classes map[string][]entryV2 `json:"classes"`
}

type assignmentV2 struct {
	Due  *time.Time `json:"due_date"`
	Name *string    `json:"name"`
}

type entryV2 struct {
	Assignment assignmentV2
	Completed  bool
}

func (e entryV2) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Assignment, e.Completed})
}

func (e *entryV2) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("entry has %d elements, want 2", len(pair))
	}
	if err := decodeStrict(pair[0], &e.Assignment); err != nil {
		return fmt.Errorf("entry assignment: %w", err)
	}
	var completed *bool
	if err := json.Unmarshal(pair[1], &completed); err != nil {
		return fmt.Errorf("entry completion: %w", err)
	}
	if completed == nil {
		return errors.New("entry completion is null")
	}
	e.Completed = *completed
	return nil
}

func decodeV2(data []byte) (*Document, error) {
	var raw documentV2
	if err := decodeStrict(data, &raw); err != nil {
		return nil, err
	}
	if raw.Version == nil {
		return nil, errors.New("missing version")
	}
	if *raw.Version != 2 {
		return nil, fmt.Errorf("version %d is not 2", *raw.Version)
	}

	doc := NewDocument()
	for _, class := range sortedKeys(raw.Classes) {
		doc.addClass(class)
		for i, entry := range raw.Classes[class] {
			if entry.Assignment.Due == nil || entry.Assignment.Name == nil {
				return nil, fmt.Errorf("class %q entry %d: missing field", class, i)
			}
			doc.add(class, Assignment{Due: *entry.Assignment.Due, Name: *entry.Assignment.Name}, entry.Completed)
		}
	}
	return doc, nil
}

func encodeV2(doc *Document) ([]byte, error) {
	version := 2
	out := documentV2{
		Version: &version,
		Classes: make(map[string][]entryV2, len(doc.Classes)),
	}
	for class, uids := range doc.Classes {
		entries := make([]entryV2, 0, len(uids))
		for _, uid := range uids {
			a, ok := doc.Assignments[uid]
			if !ok {
				return nil, fmt.Errorf("class %q lists %s: %w", class, uid, ErrUnknownUID)
			}
			entries = append(entries, entryV2{
				Assignment: assignmentV2{Due: &a.Due, Name: &a.Name},
				Completed:  doc.Completion[uid],
			})
		}
		out.Classes[class] = entries
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal list: %w", err)
	}
	return data, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
