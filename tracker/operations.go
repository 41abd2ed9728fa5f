package tracker

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/amonks/classwork/internal/ids"
)

// CreateClass adds an empty class.
func (s *Store) CreateClass(name string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return ErrEmptyClassName
	}
	if _, exists := s.classes[name]; exists {
		return fmt.Errorf("%w: %q", ErrClassExists, name)
	}
	s.classes[name] = []UID{}
	return nil
}

// DeleteClass removes a class. Assignments it lists are purged from the store
// only when no other class still lists them.
func (s *Store) DeleteClass(name string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	uids, exists := s.classes[name]
	if !exists {
		return fmt.Errorf("%w: %q", ErrClassNotFound, name)
	}
	delete(s.classes, name)

	for _, uid := range uids {
		if s.listedByAnyClass(uid) {
			continue
		}
		delete(s.assignments, uid)
		delete(s.completion, uid)
		delete(s.ghosts, uid)
	}
	return nil
}

// CreateAssignment adds an assignment to a class and returns its UID.
// The new assignment starts incomplete.
func (s *Store) CreateAssignment(class string, a Assignment) (UID, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	uids, exists := s.classes[class]
	if !exists {
		return 0, fmt.Errorf("%w: %q", ErrClassNotFound, class)
	}
	if strings.TrimSpace(a.Name) == "" {
		return 0, ErrEmptyName
	}
	if a.Due.IsZero() {
		return 0, fmt.Errorf("%w: due time is required", ErrInvalidDue)
	}

	uid := DeriveUID(a)
	if _, exists := s.assignments[uid]; exists {
		return 0, fmt.Errorf("%w: %q due %s", ErrDuplicateAssignment, a.Name, a.Due.Format(time.RFC3339))
	}

	s.assignments[uid] = a
	s.completion[uid] = false
	s.classes[class] = append(uids, uid)
	return uid, nil
}

// Classes returns all class names in lexicographic order.
func (s *Store) Classes() []string {
	return sortedKeys(s.classes)
}

// HasClass reports whether a class exists.
func (s *Store) HasClass(name string) bool {
	_, ok := s.classes[name]
	return ok
}

// ClassAssignments returns a class's assignments in stored order.
func (s *Store) ClassAssignments(class string) ([]Assignment, error) {
	uids, exists := s.classes[class]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrClassNotFound, class)
	}
	items := make([]Assignment, 0, len(uids))
	for _, uid := range uids {
		items = append(items, s.assignments[uid])
	}
	return items, nil
}

// ClassAssignmentUIDs returns the UIDs a class lists, in stored order.
func (s *Store) ClassAssignmentUIDs(class string) ([]UID, error) {
	uids, exists := s.classes[class]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrClassNotFound, class)
	}
	return slices.Clone(uids), nil
}

// AssignmentsInRange returns, for every class, the assignments whose due date
// falls within [start, end]. Only calendar dates are compared: the due date is
// read in its own zone and the bounds in theirs. Every class appears in the
// result, with an empty list when nothing matches.
func (s *Store) AssignmentsInRange(start, end time.Time) map[string][]Assignment {
	first, last := civilDate(start), civilDate(end)
	result := make(map[string][]Assignment, len(s.classes))
	for class, uids := range s.classes {
		matches := []Assignment{}
		for _, uid := range uids {
			a := s.assignments[uid]
			day := civilDate(a.Due)
			if !day.Before(first) && !day.After(last) {
				matches = append(matches, a)
			}
		}
		result[class] = matches
	}
	return result
}

// SetCompletion records whether an assignment is completed. Completing a ghost
// assignment makes it part of the saved list.
func (s *Store) SetCompletion(uid UID, completed bool) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if _, exists := s.completion[uid]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownUID, uid)
	}
	s.completion[uid] = completed
	return nil
}

// Completion reports whether an assignment is completed.
func (s *Store) Completion(uid UID) (bool, error) {
	completed, exists := s.completion[uid]
	if !exists {
		return false, fmt.Errorf("%w: %s", ErrUnknownUID, uid)
	}
	return completed, nil
}

// Assignment returns the content stored for a UID.
func (s *Store) Assignment(uid UID) (Assignment, error) {
	a, exists := s.assignments[uid]
	if !exists {
		return Assignment{}, fmt.Errorf("%w: %s", ErrUnknownUID, uid)
	}
	return a, nil
}

// IsGhost reports whether an assignment came from a generator script during
// this session.
func (s *Store) IsGhost(uid UID) bool {
	_, ghost := s.ghosts[uid]
	return ghost
}

// ClassOf returns the first class, in name order, that lists uid.
func (s *Store) ClassOf(uid UID) (string, bool) {
	for _, class := range s.Classes() {
		if slices.Contains(s.classes[class], uid) {
			return class, true
		}
	}
	return "", false
}

// UIDs returns every UID in the store in ascending order.
func (s *Store) UIDs() []UID {
	uids := make([]UID, 0, len(s.assignments))
	for uid := range s.assignments {
		uids = append(uids, uid)
	}
	slices.Sort(uids)
	return uids
}

// ResolveUID returns the UID whose hex form starts with prefix.
func (s *Store) ResolveUID(prefix string) (UID, error) {
	all := s.UIDs()
	hex := make([]string, 0, len(all))
	for _, uid := range all {
		hex = append(hex, uid.String())
	}

	match, found, ambiguous := ids.MatchPrefix(hex, prefix)
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUID, prefix)
	}
	if ambiguous {
		return 0, fmt.Errorf("%w: %s", ErrAmbiguousUIDPrefix, prefix)
	}
	return ParseUID(match)
}

// UIDPrefixLengths returns the shortest unique prefix length for each UID.
func (s *Store) UIDPrefixLengths() map[UID]int {
	all := s.UIDs()
	hex := make([]string, 0, len(all))
	for _, uid := range all {
		hex = append(hex, uid.String())
	}
	byHex := ids.UniquePrefixLengths(hex)
	lengths := make(map[UID]int, len(all))
	for _, uid := range all {
		lengths[uid] = byHex[uid.String()]
	}
	return lengths
}

func (s *Store) listedByAnyClass(uid UID) bool {
	for _, uids := range s.classes {
		if slices.Contains(uids, uid) {
			return true
		}
	}
	return false
}

func (s *Store) ensureOpen() error {
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// civilDate truncates t to midnight UTC of its calendar date in its own zone.
func civilDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
