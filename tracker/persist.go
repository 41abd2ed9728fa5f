package tracker

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Save writes the persistent subset of the store to its file in the current
// schema version. Ghost assignments are left out unless completed.
func (s *Store) Save() error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	data, err := Encode(s.persistentDocument())
	if err != nil {
		return fmt.Errorf("encode list: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("save list: %w", err)
	}
	return nil
}

// Close saves the store and rejects further mutation. Calling Close again
// after a successful close does nothing.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	if err := s.Save(); err != nil {
		return err
	}
	s.closed = true
	return nil
}

// Snapshot returns a copy of the full in-memory state, ghosts included.
func (s *Store) Snapshot() *Document {
	doc := NewDocument()
	for class, uids := range s.classes {
		doc.Classes[class] = append([]UID{}, uids...)
	}
	for uid, a := range s.assignments {
		doc.Assignments[uid] = a
	}
	for uid, completed := range s.completion {
		doc.Completion[uid] = completed
	}
	return doc
}

func (s *Store) persistentDocument() *Document {
	doc := NewDocument()
	for class, uids := range s.classes {
		kept := make([]UID, 0, len(uids))
		for _, uid := range uids {
			if s.IsGhost(uid) && !s.completion[uid] {
				continue
			}
			kept = append(kept, uid)
			doc.Assignments[uid] = s.assignments[uid]
			doc.Completion[uid] = s.completion[uid]
		}
		doc.Classes[class] = kept
	}
	return doc
}

// writeFileAtomic replaces path with data via a temp file in the same
// directory, so readers see either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create list dir: %w", err)
	}

	mode := fs.FileMode(0o644)
	if existing, err := os.ReadFile(path); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode().Perm()
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read list file: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp list file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err == nil {
		err = tmpFile.Sync()
	}
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err == nil {
		err = os.Chmod(name, mode)
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp list file: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename list file: %w", err)
	}
	return nil
}
