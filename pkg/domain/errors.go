package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedTransition is returned when a domain/range line pair cannot be parsed.
var ErrMalformedTransition = errors.New("malformed transition")

// ErrMissingRequiredField is returned when a required header key is absent.
var ErrMissingRequiredField = errors.New("missing required field")

// ErrInvalidAlphabet is returned when the tape library uses a reserved symbol.
var ErrInvalidAlphabet = errors.New("invalid alphabet")

// ErrInconsistentArity is returned when transitions disagree on the number of tapes.
var ErrInconsistentArity = errors.New("inconsistent arity")

// ErrDegenerateMachine is returned for machines with no transitions or zero tapes.
var ErrDegenerateMachine = errors.New("degenerate machine")

// ErrResourceLimit is returned when flattening would exceed a configured bound.
var ErrResourceLimit = errors.New("resource limit exceeded")

// ErrRecordNotFound is returned by result stores for unknown keys.
var ErrRecordNotFound = errors.New("record not found")

// Origin locates a transition in the description it was parsed from.
// Line numbers are 1-based; zero means unknown.
type Origin struct {
	DomainLine int `json:"domain_line,omitempty" yaml:"domain_line,omitempty"`
	RangeLine  int `json:"range_line,omitempty" yaml:"range_line,omitempty"`
}

func (o Origin) String() string {
	switch {
	case o.DomainLine == 0 && o.RangeLine == 0:
		return ""
	case o.RangeLine == 0:
		return fmt.Sprintf("line %d", o.DomainLine)
	default:
		return fmt.Sprintf("lines %d-%d", o.DomainLine, o.RangeLine)
	}
}

// TransitionError describes a rejected domain/range line pair.
type TransitionError struct {
	Origin
	Domain string
	Range  string
	Reason string
}

func (e *TransitionError) Error() string {
	if loc := e.Origin.String(); loc != "" {
		return fmt.Sprintf("%s: %s: %s", ErrMalformedTransition, loc, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedTransition, e.Reason)
}

func (e *TransitionError) Unwrap() error { return ErrMalformedTransition }

// FieldError names a required header key that is absent or unusable.
// Reason is empty when the key is missing altogether.
type FieldError struct {
	Key    string
	Line   int // 0 when unknown
	Reason string
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s %q", ErrMissingRequiredField, e.Key)
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *FieldError) Unwrap() error { return ErrMissingRequiredField }

// AlphabetError lists the reserved symbols found in a tape library.
type AlphabetError struct {
	Symbols []Symbol
}

func (e *AlphabetError) Error() string {
	quoted := make([]string, len(e.Symbols))
	for i, s := range e.Symbols {
		quoted[i] = fmt.Sprintf("%q", string(s))
	}
	return fmt.Sprintf("%s: tape library uses reserved symbol(s) %s", ErrInvalidAlphabet, strings.Join(quoted, ", "))
}

func (e *AlphabetError) Unwrap() error { return ErrInvalidAlphabet }

// ArityError reports a transition whose tuple length differs from the first transition.
type ArityError struct {
	Origin
	Index int // position in the transition set
	Want  int
	Got   int
}

func (e *ArityError) Error() string {
	msg := fmt.Sprintf("%s: transition %d reads %d tape(s), expected %d", ErrInconsistentArity, e.Index, e.Got, e.Want)
	if loc := e.Origin.String(); loc != "" {
		msg += " (" + loc + ")"
	}
	return msg
}

func (e *ArityError) Unwrap() error { return ErrInconsistentArity }

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// Join returns nil, the single error, or an AggregateError.
func Join(errs ...error) error {
	var kept []error
	for _, err := range errs {
		if err != nil {
			kept = append(kept, err)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return &AggregateError{Errors: kept}
	}
}

// Error kinds, stable identifiers used by metrics labels and API payloads.
const (
	KindMalformedTransition = "malformed_transition"
	KindMissingField        = "missing_required_field"
	KindInvalidAlphabet     = "invalid_alphabet"
	KindInconsistentArity   = "inconsistent_arity"
	KindDegenerateMachine   = "degenerate_machine"
	KindResourceLimit       = "resource_limit_exceeded"
	KindInternal            = "internal"
)

// Kind classifies err into one of the Kind constants.
// The first matching sentinel wins, so an aggregate reports its most specific cause.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingRequiredField):
		return KindMissingField
	case errors.Is(err, ErrDegenerateMachine):
		return KindDegenerateMachine
	case errors.Is(err, ErrInvalidAlphabet):
		return KindInvalidAlphabet
	case errors.Is(err, ErrInconsistentArity):
		return KindInconsistentArity
	case errors.Is(err, ErrResourceLimit):
		return KindResourceLimit
	case errors.Is(err, ErrMalformedTransition):
		return KindMalformedTransition
	default:
		return KindInternal
	}
}

// Warning is a non fatal problem found while assembling a machine.
type Warning struct {
	Origin
	Message string
	Err     error
}

func (w Warning) String() string {
	if loc := w.Origin.String(); loc != "" {
		return loc + ": " + w.Message
	}
	return w.Message
}
