// Package tracker implements the persistent assignment store behind classwork.
//
// Classes group assignments. Every assignment is identified by a UID derived
// from its content (due timestamp and name), and completion is tracked
// separately so toggling it never changes a UID. The store reads either
// on-disk schema version, merges in "ghost" assignments emitted by generator
// scripts, and writes back only the persistent subset in the current version.
//
// The public API mirrors the CLI commands:
//   - CreateClass, DeleteClass, CreateAssignment, SetCompletion for mutation
//   - Classes, ClassAssignments, AssignmentsInRange, Agenda for querying
//   - Open, Save, Close, With for the store lifecycle
package tracker

import (
	"cmp"
	"slices"
	"time"
)

// Assignment is the identity-bearing content of a task.
type Assignment struct {
	// Due is when the assignment is due, including its zone offset.
	Due time.Time `json:"due_date"`

	// Name is the display name of the assignment.
	Name string `json:"name"`
}

// Equal reports whether two assignments have the same due instant and name.
func (a Assignment) Equal(other Assignment) bool {
	return a.Due.Equal(other.Due) && a.Name == other.Name
}

// UID returns the content-derived identity of the assignment.
func (a Assignment) UID() UID {
	return DeriveUID(a)
}

// CompareAssignments orders assignments by due time, then by name.
func CompareAssignments(a, b Assignment) int {
	if c := a.Due.Compare(b.Due); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// SortAssignments sorts assignments in place by due time, then by name.
func SortAssignments(items []Assignment) {
	slices.SortStableFunc(items, CompareAssignments)
}
