package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checking via errors.Is().
var (
	// ErrInvalidIdentifier indicates a relation endpoint that does not match
	// the identifier grammar.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrDanglingReference indicates a well-formed relation endpoint with no
	// matching element.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrElementNotFound indicates an identifier that could not be resolved
	// while emitting a diagram.
	ErrElementNotFound = errors.New("element not found")

	// ErrDuplicateIdentifier indicates two siblings with the same identifier.
	ErrDuplicateIdentifier = errors.New("duplicate identifier")

	// ErrEmptyIdentifier indicates an element whose name sanitizes to nothing.
	ErrEmptyIdentifier = errors.New("empty identifier")
)

// InvalidIdentifierError names the relation field whose value is malformed.
type InvalidIdentifierError struct {
	Field      string // e.g. "links[2].from"
	Identifier string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%s: %s: %q is not a dot-separated alphanumeric identifier", ErrInvalidIdentifier, e.Field, e.Identifier)
}

func (e *InvalidIdentifierError) Unwrap() error { return ErrInvalidIdentifier }

// DanglingReferenceError names a relation endpoint that resolves to nothing.
type DanglingReferenceError struct {
	Field      string
	Identifier string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s: %s: no element %q", ErrDanglingReference, e.Field, e.Identifier)
}

func (e *DanglingReferenceError) Unwrap() error { return ErrDanglingReference }

// ElementNotFoundError names an identifier that has no element.
type ElementNotFoundError struct {
	Identifier string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrElementNotFound, e.Identifier)
}

func (e *ElementNotFoundError) Unwrap() error { return ErrElementNotFound }

// DuplicateIdentifierError names the identifier shared by two siblings.
type DuplicateIdentifierError struct {
	Identifier string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("%s: %q is used by more than one sibling", ErrDuplicateIdentifier, e.Identifier)
}

func (e *DuplicateIdentifierError) Unwrap() error { return ErrDuplicateIdentifier }

// EmptyIdentifierError names an element whose identifier segment is empty.
type EmptyIdentifierError struct {
	Name   string
	Parent string
}

func (e *EmptyIdentifierError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("%s: name %q has no identifier characters", ErrEmptyIdentifier, e.Name)
	}
	return fmt.Sprintf("%s: name %q under %q has no identifier characters", ErrEmptyIdentifier, e.Name, e.Parent)
}

func (e *EmptyIdentifierError) Unwrap() error { return ErrEmptyIdentifier }
