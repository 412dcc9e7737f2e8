package flatten

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/lineator/internal/validator"
	"github.com/aretw0/lineator/pkg/domain"
)

// Headers added to the flattened machine.
const (
	HeaderTapes      = "Tapes"
	HeaderDetermined = "DeterminedStates"
	// NameSuffix is appended to the source machine name.
	NameSuffix = "-flat"
)

// Frontier is the ordered set of composite states that have located the
// same number of virtual heads. It is not modified once built.
type Frontier struct {
	depth  int
	states []domain.CompositeState
}

// Depth returns how many virtual heads every state of the frontier has located.
func (f Frontier) Depth() int { return f.depth }

// Len returns the number of states.
func (f Frontier) Len() int { return len(f.states) }

// States returns a copy of the states, in generation order.
func (f Frontier) States() []domain.CompositeState {
	return append([]domain.CompositeState(nil), f.states...)
}

// Result holds the head-location phase of a flattened machine.
type Result struct {
	Source      *domain.Machine
	Tapes       int
	Frontiers   []Frontier
	Transitions []domain.Transition
}

// Determined returns the states of the last frontier.
func (r *Result) Determined() []domain.CompositeState {
	return r.Frontiers[len(r.Frontiers)-1].States()
}

// Undetermined returns the states of frontiers 0..K-1.
func (r *Result) Undetermined() []domain.CompositeState {
	var out []domain.CompositeState
	for _, f := range r.Frontiers[:len(r.Frontiers)-1] {
		out = append(out, f.states...)
	}
	return out
}

// StateCount returns the number of composite states over all frontiers.
func (r *Result) StateCount() int {
	n := 0
	for _, f := range r.Frontiers {
		n += f.Len()
	}
	return n
}

// Machine assembles the flattened single-tape machine.
//
// Only the head-location sweep is generated. The start state is the empty
// composite state, no accept state is declared, and the Tapes and
// DeterminedStates headers list the entry points left for later phases.
func (r *Result) Machine() *domain.Machine {
	determined := r.Determined()
	names := make([]string, len(determined))
	for i, s := range determined {
		names[i] = string(s.Name())
	}

	start := domain.NewCompositeState(r.Source.StartState())
	return domain.NewMachine(
		r.Source.Name()+NameSuffix,
		start.Name(),
		nil,
		r.Transitions,
		domain.WithHeaders(
			domain.Header{Key: HeaderTapes, Value: strconv.Itoa(r.Tapes)},
			domain.Header{Key: HeaderDetermined, Value: strings.Join(names, domain.FieldDelimiter)},
		),
	)
}

// Flattener runs the breadth-first composite state construction.
type Flattener struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	limits validator.Limits
}

// Option configures a Flattener.
type Option func(*Flattener)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flattener) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Flattener) {
		f.hooks = hooks
	}
}

// WithLimits bounds K and the number of generated composite states.
func WithLimits(limits validator.Limits) Option {
	return func(f *Flattener) {
		f.limits = limits.Normalize()
	}
}

// New creates a Flattener.
func New(opts ...Option) *Flattener {
	f := &Flattener{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		limits: validator.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Flatten validates m and builds frontier[0..K] plus the transitions that
// move the real head right from each composite state to its successors.
// No state is generated when validation fails.
func (f *Flattener) Flatten(ctx context.Context, m *domain.Machine) (*Result, error) {
	k, err := validator.ValidateMachine(m, f.limits)
	if err != nil {
		return nil, err
	}

	frontier := Frontier{states: []domain.CompositeState{domain.NewCompositeState(m.StartState())}}
	res := &Result{
		Source:    m,
		Tapes:     k,
		Frontiers: []Frontier{frontier},
	}
	f.emitFrontier(ctx, frontier)

	count := frontier.Len()
	for i := 0; i < k; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, transitions, err := f.step(ctx, m, frontier, k, &count)
		if err != nil {
			return nil, err
		}

		res.Frontiers = append(res.Frontiers, next)
		res.Transitions = append(res.Transitions, transitions...)
		f.emitFrontier(ctx, next)

		f.logger.DebugContext(ctx, "Frontier built",
			"depth", next.depth,
			"states", next.Len(),
			"transitions", len(transitions),
		)
		frontier = next
	}

	f.logger.DebugContext(ctx, "Head-location phase built",
		"machine", m.Name(),
		"tapes", k,
		"states", count,
		"determined", frontier.Len(),
		"transitions", len(res.Transitions),
	)

	return res, nil
}

// step derives frontier i+1 from frontier i. count tracks the running total of
// composite states so the MaxStates bound holds across all frontiers.
func (f *Flattener) step(ctx context.Context, m *domain.Machine, cur Frontier, k int, count *int) (Frontier, []domain.Transition, error) {
	depth := cur.depth
	next := Frontier{depth: depth + 1}
	seen := make(map[string]struct{})
	var transitions []domain.Transition

	for _, s := range cur.states {
		for _, c := range Candidates(m, s) {
			succ := s.Extend(c)
			if _, dup := seen[succ.Key()]; dup {
				continue
			}
			seen[succ.Key()] = struct{}{}

			*count++
			if *count > f.limits.MaxStates {
				return Frontier{}, nil, fmt.Errorf("%w: more than %d composite states at depth %d",
					domain.ErrResourceLimit, f.limits.MaxStates, depth+1)
			}

			t, err := domain.NewTransition(
				s.Name(), []domain.Symbol{c},
				succ.Name(), []domain.Symbol{c},
				[]domain.Action{domain.MoveRight},
			)
			if err != nil {
				return Frontier{}, nil, fmt.Errorf("building transition %s -> %s: %w", s, succ, err)
			}

			next.states = append(next.states, succ)
			transitions = append(transitions, t)

			if f.hooks.OnState != nil {
				f.hooks.OnState(ctx, &domain.StateEvent{State: succ, Determined: depth+1 == k})
			}
			if f.hooks.OnTransition != nil {
				f.hooks.OnTransition(ctx, &domain.TransitionEvent{Transition: t})
			}
		}
	}

	return next, transitions, nil
}

// Candidates returns the symbols the real head must handle when leaving s:
// the boundary marker first, then the symbol at tape s.Depth() of every
// transition that starts in s's base state and agrees with s on the tapes
// already located, in transition-set order and without duplicates.
func Candidates(m *domain.Machine, s domain.CompositeState) []domain.Symbol {
	i := s.Depth()
	symbols := []domain.Symbol{domain.Boundary}
	seen := map[domain.Symbol]bool{domain.Boundary: true}

	for j := 0; j < m.Len(); j++ {
		t := m.Transition(j)
		if i >= t.Arity() || !s.Matches(t) {
			continue
		}
		c := t.Read(i)
		if !seen[c] {
			seen[c] = true
			symbols = append(symbols, c)
		}
	}
	return symbols
}

func (f *Flattener) emitFrontier(ctx context.Context, fr Frontier) {
	if f.hooks.OnFrontier != nil {
		f.hooks.OnFrontier(ctx, &domain.FrontierEvent{Depth: fr.depth, States: fr.States()})
	}
}
