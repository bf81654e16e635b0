package errors

import (
	"fmt"
)

// CodeNotFoundError indicates that a code was looked up in the
// reference registry and no record exists for it.
type CodeNotFoundError struct {
	Err  error
	Code string
}

func (e *CodeNotFoundError) Error() string {
	return fmt.Sprintf("no reference record found for code %s", e.Code)
}

func (e *CodeNotFoundError) Unwrap() error {
	return e.Err
}

// NoMatchingCodesError indicates that a candidate set produced by a
// registry query (category or benefit filter) was empty.
type NoMatchingCodesError struct {
	Criteria string
}

func (e *NoMatchingCodesError) Error() string {
	return fmt.Sprintf("no codes match criteria %s", e.Criteria)
}

// ValidationError indicates a missing or malformed constructor
// argument.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// InvalidStateError indicates an operation was attempted against an
// entity whose lifecycle state does not permit it.
type InvalidStateError struct {
	Op    string
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s in state %s", e.Op, e.State)
}

// ReferenceDataError indicates reference data that could not be read
// or parsed during registry load.
type ReferenceDataError struct {
	Err  error
	Path string
}

func (e *ReferenceDataError) Error() string {
	return fmt.Sprintf("unable to load reference data from %s: %s", e.Path, e.Err)
}

func (e *ReferenceDataError) Unwrap() error {
	return e.Err
}
