package tracker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"
)

// Store owns the classes, assignments, completion flags and ghost set backed
// by a single list file. A Store is not safe for concurrent use; callers that
// share one across goroutines must serialize access.
//
// Concurrent modification of the backing file by another process is not
// detected and its effect is undefined.
type Store struct {
	path        string
	classes     map[string][]UID
	assignments map[UID]Assignment
	completion  map[UID]bool
	ghosts      map[UID]struct{}
	location    *time.Location
	logger      *log.Logger
	closed      bool
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// ScriptsDir is scanned for generator scripts. Empty disables scripts.
	ScriptsDir string

	// ScriptTimeout bounds each generator script. Defaults to DefaultScriptTimeout.
	ScriptTimeout time.Duration

	// Location interprets script dates and times. Defaults to time.Local.
	Location *time.Location

	// Logger receives diagnostics. If nil, diagnostics are discarded.
	Logger *log.Logger
}

// Open loads the list file at path and merges in ghost assignments from the
// configured scripts directory.
//
// A missing file is created holding an empty list. A file that matches no
// schema version fails with an error wrapping ErrUnrecognizedFormat and is
// left untouched.
func Open(ctx context.Context, path string, opts OpenOptions) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("list path is required")
	}
	location := opts.Location
	if location == nil {
		location = time.Local
	}
	logger := loggerOrDiscard(opts.Logger)

	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}

	store := &Store{
		path:        path,
		classes:     doc.Classes,
		assignments: doc.Assignments,
		completion:  doc.Completion,
		ghosts:      make(map[UID]struct{}),
		location:    location,
		logger:      logger,
	}

	entries := RunScripts(ctx, opts.ScriptsDir, ScriptOptions{
		Timeout:  opts.ScriptTimeout,
		Location: location,
		Logger:   logger,
	})
	store.mergeGhosts(entries)

	return store, nil
}

// With opens the store, runs fn, and closes the store on every exit path,
// including a panic in fn. The save error from Close is joined with fn's.
func With(ctx context.Context, path string, opts OpenOptions, fn func(*Store) error) (err error) {
	store, err := Open(ctx, path, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()
	return fn(store)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Location returns the zone used for dates entered without an offset.
func (s *Store) Location() *time.Location {
	return s.location
}

func loadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := NewDocument()
		encoded, err := Encode(doc)
		if err != nil {
			return nil, err
		}
		if err := writeFileAtomic(path, encoded); err != nil {
			return nil, fmt.Errorf("create list file: %w", err)
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read list file: %w", err)
	}

	// A blank file holds nothing that could be lost, so it loads as empty.
	if len(bytes.TrimSpace(data)) == 0 {
		return NewDocument(), nil
	}

	doc, _, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return doc, nil
}

// mergeGhosts inserts script entries whose UID is not yet known. The first
// writer wins, so a task already in the file or emitted by an earlier script
// is never duplicated.
func (s *Store) mergeGhosts(entries []ScriptEntry) {
	for _, entry := range entries {
		uid := DeriveUID(entry.Assignment)
		if _, exists := s.assignments[uid]; exists {
			continue
		}
		s.assignments[uid] = entry.Assignment
		s.completion[uid] = false
		s.ghosts[uid] = struct{}{}

		uids, ok := s.classes[entry.Class]
		if !ok {
			s.logger.Printf("ghost %s (%q) names unknown class %q; not listed", uid, entry.Assignment.Name, entry.Class)
			continue
		}
		s.classes[entry.Class] = append(uids, uid)
	}
}
