// Package parsererror defines the error types raised by the transaction
// parsing engine. Each type carries enough context to render a
// human-readable message naming the offending input.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the input is blank after trimming.
// No parsing is attempted for blank input.
var ErrEmptyInput = errors.New("empty transaction input")

// ErrNoAmount is returned when no amount pattern matches the input text.
var ErrNoAmount = errors.New("could not extract valid amount from input")

// OracleError wraps a failure of the model-backed parsing path: the oracle
// was unavailable, returned empty text, or produced a malformed or
// incomplete structure. It is recovered by falling back to the
// deterministic parser and is never surfaced to the caller directly.
type OracleError struct {
	Stage string // "generate", "decode" or "fields"
	Err   error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle parsing failed at %s: %v", e.Stage, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a required field absent from the oracle's output.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// ParseError is the terminal failure raised when both the model-backed and
// the fallback parsing paths fail for an input. It keeps the original input
// for diagnostics and renders a message suggesting a simpler format.
type ParseError struct {
	Input       string
	OracleErr   error
	FallbackErr error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse transaction %q, please try a simpler format like 'bakso 15k cash'", e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.FallbackErr
}

// ValidationError reports a structurally successful parse whose result
// violates the output schema, typically a non-positive or non-numeric
// amount. It is a hard failure: a transaction without a valid positive
// amount has no meaning.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
