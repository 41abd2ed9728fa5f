package editor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"

	internalstrings "github.com/amonks/classwork/internal/strings"
	"github.com/amonks/classwork/tracker"
)

// DefaultClock is the time of day new assignments default to.
const DefaultClock = "08:00"

// ErrDueFormat reports a date or time the user typed that could not be used.
var ErrDueFormat = errors.New("formatting error with date/time")

// AssignmentData is the form shown to the user when adding an assignment.
type AssignmentData struct {
	Class string
	Name  string
	Date  string
	Time  string
}

// DefaultAssignmentData prefills the form for class: due tomorrow at 08:00.
func DefaultAssignmentData(class string, now time.Time) AssignmentData {
	return AssignmentData{
		Class: class,
		Date:  now.AddDate(0, 0, 1).Format(tracker.DateLayout),
		Time:  DefaultClock,
	}
}

var assignmentTemplate = template.Must(template.New("assignment").Parse(`# Lines starting with '#' are ignored.
class = {{ printf "%q" .Class }}
name = {{ printf "%q" .Name }}
date = {{ printf "%q" .Date }} # YYYY-MM-DD
time = {{ printf "%q" .Time }} # HH:MM, 24-hour
`))

// RenderAssignmentTOML renders the form as TOML for editing.
func RenderAssignmentTOML(data AssignmentData) (string, error) {
	var buf bytes.Buffer
	if err := assignmentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedAssignment is a validated form.
type ParsedAssignment struct {
	Class      string
	Assignment tracker.Assignment
}

type assignmentForm struct {
	Class string `toml:"class"`
	Name  string `toml:"name"`
	Date  string `toml:"date"`
	Time  string `toml:"time"`
}

// ParseAssignmentTOML parses the edited form, interpreting the date and time
// in loc.
func ParseAssignmentTOML(content string, loc *time.Location) (*ParsedAssignment, error) {
	var form assignmentForm
	meta, err := toml.Decode(internalstrings.NormalizeNewlines(content), &form)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse TOML: unknown key %q", undecoded[0].String())
	}

	return ParseAssignmentData(AssignmentData(form), loc)
}

// ParseAssignmentData validates a filled-in form.
func ParseAssignmentData(data AssignmentData, loc *time.Location) (*ParsedAssignment, error) {
	class := strings.TrimSpace(data.Class)
	if class == "" {
		return nil, tracker.ErrEmptyClassName
	}
	name := internalstrings.NormalizeWhitespace(data.Name)
	if name == "" {
		return nil, tracker.ErrEmptyName
	}
	due, err := tracker.ParseDue(data.Date, data.Time, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDueFormat, err)
	}

	return &ParsedAssignment{
		Class:      class,
		Assignment: tracker.Assignment{Due: due, Name: name},
	}, nil
}

func createAssignmentTempFile() (*os.File, error) {
	return os.CreateTemp("", "classwork-assignment-*.toml")
}

// EditAssignment opens the editor with data prefilled and returns the
// parsed result.
func EditAssignment(data AssignmentData, loc *time.Location) (*ParsedAssignment, error) {
	content, err := RenderAssignmentTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createAssignmentTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseAssignmentTOML(string(edited), loc)
}
