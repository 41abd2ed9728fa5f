package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/amonks/classwork/tracker"
)

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// assignmentJSON is the machine-readable form of one assignment.
type assignmentJSON struct {
	UID       string    `json:"uid"`
	Class     string    `json:"class"`
	Name      string    `json:"name"`
	Due       time.Time `json:"due_date"`
	Completed bool      `json:"completed"`
	Ghost     bool      `json:"ghost"`
}

func toAssignmentJSON(item tracker.AgendaItem) assignmentJSON {
	return assignmentJSON{
		UID:       item.UID.String(),
		Class:     item.Class,
		Name:      item.Assignment.Name,
		Due:       item.Assignment.Due,
		Completed: item.Completed,
		Ghost:     item.Ghost,
	}
}

func toAssignmentsJSON(items []tracker.AgendaItem) []assignmentJSON {
	out := make([]assignmentJSON, 0, len(items))
	for _, item := range items {
		out = append(out, toAssignmentJSON(item))
	}
	return out
}

// terminalWidth returns the stdout width, or 0 when stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
