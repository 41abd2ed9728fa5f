package tracker

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseScriptLine(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		ok    bool
		class string
		task  string
	}{
		{name: "valid", line: "CS101,Quiz,2025-04-01,09:00", ok: true, class: "CS101", task: "Quiz"},
		{name: "crlf", line: "CS101,Quiz,2025-04-01,09:00\r", ok: true, class: "CS101", task: "Quiz"},
		{name: "three fields", line: "CS101,Quiz,2025-04-01"},
		{name: "five fields", line: "CS101,Quiz,extra,2025-04-01,09:00"},
		{name: "bad date", line: "CS101,Quiz,04/01/2025,09:00"},
		{name: "bad time", line: "CS101,Quiz,2025-04-01,9pm"},
		{name: "empty class", line: ",Quiz,2025-04-01,09:00"},
		{name: "empty name", line: "CS101, ,2025-04-01,09:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry, ok := ParseScriptLine(tc.line, time.UTC)
			if ok != tc.ok {
				t.Fatalf("ParseScriptLine(%q) ok = %v, want %v", tc.line, ok, tc.ok)
			}
			if !ok {
				return
			}
			if entry.Class != tc.class || entry.Assignment.Name != tc.task {
				t.Fatalf("unexpected entry %+v", entry)
			}
			want := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
			if !entry.Assignment.Due.Equal(want) {
				t.Fatalf("expected due %s, got %s", want, entry.Assignment.Due)
			}
		})
	}
}

func TestRunScripts_CollectsFromExecutables(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a-first", "echo 'CS101,Quiz,2025-04-01,09:00'\necho 'garbage line'\n")
	writeScript(t, dir, "b-second", "printf 'MATH200,Set 1,2025-04-02,13:15\\n'\n")
	if err := os.WriteFile(filepath.Join(dir, "not-executable"), []byte("#!/bin/sh\necho 'CS101,Hidden,2025-04-01,09:00'\n"), 0o644); err != nil {
		t.Fatalf("write non-executable: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	entries := RunScripts(context.Background(), dir, ScriptOptions{Location: time.UTC})

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Assignment.Name != "Quiz" || entries[1].Assignment.Name != "Set 1" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[0].Script != filepath.Join(dir, "a-first") {
		t.Fatalf("expected script path to be recorded, got %q", entries[0].Script)
	}
}

func TestRunScripts_FailingScriptsContributeNothing(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a-fails", "echo 'CS101,Quiz,2025-04-01,09:00'\necho oops >&2\nexit 3\n")
	writeScript(t, dir, "b-binary", "printf '\\377\\376CS101,Bad,2025-04-01,09:00\\n'\n")
	writeScript(t, dir, "c-works", "echo 'CS101,Lab,2025-04-03,10:00'\n")

	var logs bytes.Buffer
	entries := RunScripts(context.Background(), dir, ScriptOptions{
		Location: time.UTC,
		Logger:   log.New(&logs, "", 0),
	})

	if len(entries) != 1 || entries[0].Assignment.Name != "Lab" {
		t.Fatalf("expected only the working script's entry, got %+v", entries)
	}
	if !strings.Contains(logs.String(), "a-fails") || !strings.Contains(logs.String(), "oops") {
		t.Fatalf("expected failure to be logged with stderr, got %q", logs.String())
	}
	if !strings.Contains(logs.String(), "not UTF-8") {
		t.Fatalf("expected binary output to be logged, got %q", logs.String())
	}
}

func TestRunScripts_TimeoutContributesNothing(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a-hangs", "echo 'CS101,Quiz,2025-04-01,09:00'\nexec sleep 30\n")
	writeScript(t, dir, "b-works", "echo 'CS101,Lab,2025-04-03,10:00'\n")

	started := time.Now()
	entries := RunScripts(context.Background(), dir, ScriptOptions{
		Location: time.UTC,
		Timeout:  200 * time.Millisecond,
	})

	if elapsed := time.Since(started); elapsed > 10*time.Second {
		t.Fatalf("expected timeout to bound the scan, took %s", elapsed)
	}
	if len(entries) != 1 || entries[0].Assignment.Name != "Lab" {
		t.Fatalf("expected only the later script's entry, got %+v", entries)
	}
}

func TestRunScripts_MissingDir(t *testing.T) {
	if entries := RunScripts(context.Background(), filepath.Join(t.TempDir(), "missing"), ScriptOptions{}); entries != nil {
		t.Fatalf("expected nil entries, got %+v", entries)
	}
	if entries := RunScripts(context.Background(), "", ScriptOptions{}); entries != nil {
		t.Fatalf("expected nil entries for empty dir, got %+v", entries)
	}
}
