package tracker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func due(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

func openTestStore(t *testing.T, path string, opts OpenOptions) *Store {
	t.Helper()

	if opts.Location == nil {
		opts.Location = time.UTC
	}
	store, err := Open(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "todolist")
	return openTestStore(t, path, OpenOptions{}), path
}

func mustCreateClass(t *testing.T, store *Store, name string) {
	t.Helper()

	if err := store.CreateClass(name); err != nil {
		t.Fatalf("create class %q: %v", name, err)
	}
}

func mustCreateAssignment(t *testing.T, store *Store, class string, a Assignment) UID {
	t.Helper()

	uid, err := store.CreateAssignment(class, a)
	if err != nil {
		t.Fatalf("create assignment %q in %q: %v", a.Name, class, err)
	}
	return uid
}
