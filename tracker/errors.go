package tracker

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClassNotFound is returned when a class name is not in the store.
	ErrClassNotFound = errors.New("class not found")

	// ErrClassExists is returned when creating a class whose name is taken.
	ErrClassExists = errors.New("class already exists")

	// ErrEmptyClassName is returned when a class name is blank.
	ErrEmptyClassName = errors.New("class name cannot be empty")

	// ErrDuplicateAssignment is returned when an assignment with the same UID exists.
	ErrDuplicateAssignment = errors.New("assignment already exists")

	// ErrEmptyName is returned when an assignment name is blank.
	ErrEmptyName = errors.New("assignment name cannot be empty")

	// ErrInvalidDue is returned when a due date or time is malformed or not a
	// single valid local time.
	ErrInvalidDue = errors.New("invalid due date or time")

	// ErrUnknownUID is returned when a UID has no entry in the store.
	ErrUnknownUID = errors.New("unknown assignment uid")

	// ErrInvalidUID is returned when a UID string cannot be parsed.
	ErrInvalidUID = errors.New("invalid assignment uid")

	// ErrAmbiguousUIDPrefix is returned when a UID prefix matches several assignments.
	ErrAmbiguousUIDPrefix = errors.New("ambiguous assignment uid prefix")

	// ErrUnrecognizedFormat is returned when the backing file matches no schema version.
	ErrUnrecognizedFormat = errors.New("corrupt or unrecognized list format")

	// ErrStoreClosed is returned when mutating a store after Close.
	ErrStoreClosed = errors.New("store is closed")
)

// FormatError describes why each schema version rejected a document.
type FormatError struct {
	Failures []error
}

func (e *FormatError) Error() string {
	if len(e.Failures) == 0 {
		return ErrUnrecognizedFormat.Error()
	}
	parts := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		parts = append(parts, failure.Error())
	}
	return fmt.Sprintf("%s (%s)", ErrUnrecognizedFormat, strings.Join(parts, "; "))
}

func (e *FormatError) Unwrap() error {
	return ErrUnrecognizedFormat
}
