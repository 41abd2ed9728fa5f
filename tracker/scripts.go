package tracker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	internalstrings "github.com/amonks/classwork/internal/strings"
)

// DefaultScriptTimeout bounds how long a single generator script may run.
const DefaultScriptTimeout = 10 * time.Second

// ScriptEntry is one assignment emitted by a generator script.
type ScriptEntry struct {
	Class      string
	Assignment Assignment
	// Script is the path of the script that produced the entry.
	Script string
}

// ScriptOptions configures generator script execution.
type ScriptOptions struct {
	// Timeout bounds each script. Defaults to DefaultScriptTimeout.
	Timeout time.Duration

	// Location interprets emitted dates and times. Defaults to time.Local.
	Location *time.Location

	// Logger receives diagnostics about skipped scripts and lines.
	Logger *log.Logger
}

// RunScripts executes every executable regular file directly inside dir, in
// name order, and collects the entries parsed from their standard output.
//
// Ingestion is best-effort: a missing dir, a script that cannot start, exits
// nonzero, times out, or prints non-UTF-8 output contributes nothing, and
// malformed lines are skipped.
func RunScripts(ctx context.Context, dir string, opts ScriptOptions) []ScriptEntry {
	logger := loggerOrDiscard(opts.Logger)
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		logger.Printf("read scripts dir %s: %v", dir, err)
		return nil
	}

	var entries []ScriptEntry
	for _, dirEntry := range dirEntries {
		path := filepath.Join(dir, dirEntry.Name())
		if !isExecutableFile(path) {
			continue
		}
		output, err := runScript(ctx, path, opts.Timeout)
		if err != nil {
			logger.Printf("skip script %s: %v", path, err)
			continue
		}
		if !utf8.Valid(output) {
			logger.Printf("skip script %s: output is not UTF-8 text", path)
			continue
		}
		for lineNum, line := range strings.Split(string(output), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			entry, ok := ParseScriptLine(line, opts.Location)
			if !ok {
				logger.Printf("skip %s line %d: %q", path, lineNum+1, line)
				continue
			}
			entry.Script = path
			entries = append(entries, entry)
		}
	}
	return entries
}

// ParseScriptLine parses a "class,name,YYYY-MM-DD,HH:MM" line.
func ParseScriptLine(line string, loc *time.Location) (ScriptEntry, bool) {
	line = internalstrings.TrimTrailingCarriageReturn(line)
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return ScriptEntry{}, false
	}
	class, name := fields[0], fields[1]
	if strings.TrimSpace(class) == "" || strings.TrimSpace(name) == "" {
		return ScriptEntry{}, false
	}
	due, err := ParseDue(fields[2], fields[3], loc)
	if err != nil {
		return ScriptEntry{}, false
	}
	return ScriptEntry{
		Class:      class,
		Assignment: Assignment{Due: due, Name: name},
	}, true
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

func runScript(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = DefaultScriptTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path)
	cmd.Dir = filepath.Dir(path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("timed out after %s", timeout)
		}
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return nil, fmt.Errorf("%w: %s", err, internalstrings.NormalizeWhitespace(detail))
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

func loggerOrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return logger
}
