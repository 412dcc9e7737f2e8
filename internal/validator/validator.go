package validator

import (
	"fmt"

	"github.com/aretw0/lineator/pkg/domain"
)

// Default resource bounds.
const (
	DefaultMaxTapes  = 16
	DefaultMaxStates = 1 << 16
)

// Limits bounds the work a flattening run may do.
// A zero field falls back to its default.
type Limits struct {
	MaxTapes  int `json:"max_tapes" yaml:"max_tapes" mapstructure:"max_tapes"`
	MaxStates int `json:"max_states" yaml:"max_states" mapstructure:"max_states"`
}

// DefaultLimits returns the default bounds.
func DefaultLimits() Limits {
	return Limits{MaxTapes: DefaultMaxTapes, MaxStates: DefaultMaxStates}
}

// Normalize replaces non-positive fields with defaults.
func (l Limits) Normalize() Limits {
	if l.MaxTapes <= 0 {
		l.MaxTapes = DefaultMaxTapes
	}
	if l.MaxStates <= 0 {
		l.MaxStates = DefaultMaxStates
	}
	return l
}

// ValidateMachine checks the preconditions of flattening and returns K.
//
// A machine without transitions, or with K = 0, is degenerate and reported on
// its own. Otherwise every header state, alphabet, arity and tape-count
// problem is collected into a single domain.AggregateError.
func ValidateMachine(m *domain.Machine, limits Limits) (int, error) {
	limits = limits.Normalize()

	if m == nil {
		return 0, fmt.Errorf("%w: no machine", domain.ErrDegenerateMachine)
	}
	if m.Len() == 0 {
		return 0, fmt.Errorf("%w: machine %q has no transition functions", domain.ErrDegenerateMachine, m.Name())
	}

	k := m.Tapes()
	if k == 0 {
		return 0, fmt.Errorf("%w: machine %q reads zero tapes", domain.ErrDegenerateMachine, m.Name())
	}

	var errs []error

	if err := domain.CheckHeaderState(domain.KeyStartState, 0, m.StartState()); err != nil {
		errs = append(errs, err)
	}
	for _, s := range m.AcceptStates() {
		if err := domain.CheckHeaderState(domain.KeyAcceptStates, 0, s); err != nil {
			errs = append(errs, err)
		}
	}

	if err := CheckAlphabet(m.TapeLibrary()); err != nil {
		errs = append(errs, err)
	}

	for i := 1; i < m.Len(); i++ {
		got := m.Transition(i).Arity()
		if got == k {
			continue
		}
		origin, _ := m.Origin(i)
		errs = append(errs, &domain.ArityError{Origin: origin, Index: i, Want: k, Got: got})
	}

	if k > limits.MaxTapes {
		errs = append(errs, fmt.Errorf("%w: %d tapes, limit is %d", domain.ErrResourceLimit, k, limits.MaxTapes))
	}

	if err := domain.Join(errs...); err != nil {
		return 0, err
	}
	return k, nil
}

// CheckAlphabet rejects a tape library that uses any reserved symbol.
func CheckAlphabet(library []domain.Symbol) error {
	var bad []domain.Symbol
	for _, s := range library {
		if domain.IsReserved(s) {
			bad = append(bad, s)
		}
	}
	if len(bad) > 0 {
		return &domain.AlphabetError{Symbols: bad}
	}
	return nil
}
