/*
errors.go - Centralized error types for the roster package

PURPOSE:
  All sentinel errors of the entity model and store in one place.
  Callers match with errors.Is(); the API layer maps them to HTTP status.

NOTE:
  Import validation failures are NOT errors in this sense. They are
  returned as ordered message lists by the csvio validators, never raised
  across component boundaries.
*/
package roster

import "errors"

var (
	// ErrCollaboratorNotFound is returned when a referenced collaborator
	// does not exist in the collection.
	ErrCollaboratorNotFound = errors.New("collaborator not found")

	// ErrRecordNotFound is returned when a referenced record does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordTypeChanged is returned when an edit attempts to change a
	// record's type. Editing may reshape the payload within its type, never
	// re-tag it.
	ErrRecordTypeChanged = errors.New("record type cannot be changed")

	// ErrUnknownRecordType is returned for a type tag outside the four
	// defined event types.
	ErrUnknownRecordType = errors.New("unknown record type")
)
