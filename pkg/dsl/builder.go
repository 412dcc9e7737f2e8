package dsl

import (
	"fmt"

	"github.com/aretw0/lineator/pkg/domain"
)

// Builder accumulates a machine description.
type Builder struct {
	name    string
	start   domain.State
	accept  []domain.State
	headers []domain.Header
	rules   []*RuleBuilder
}

// New creates a builder for a machine called name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Start sets the start state.
func (b *Builder) Start(s domain.State) *Builder {
	b.start = s
	return b
}

// Accept appends accept states.
func (b *Builder) Accept(states ...domain.State) *Builder {
	b.accept = append(b.accept, states...)
	return b
}

// Header adds an extra header line.
func (b *Builder) Header(key, value string) *Builder {
	b.headers = append(b.headers, domain.Header{Key: key, Value: value})
	return b
}

// On starts a transition out of from, reading one symbol per tape.
func (b *Builder) On(from domain.State, reads ...domain.Symbol) *RuleBuilder {
	rb := &RuleBuilder{builder: b, from: from, reads: reads}
	b.rules = append(b.rules, rb)
	return rb
}

// Build validates every rule and assembles the machine.
// All malformed rules are reported together.
func (b *Builder) Build() (*domain.Machine, error) {
	if b.name == "" {
		return nil, &domain.FieldError{Key: domain.KeyName}
	}
	if err := domain.CheckHeaderState(domain.KeyStartState, 0, b.start); err != nil {
		return nil, err
	}
	for _, s := range b.accept {
		if err := domain.CheckHeaderState(domain.KeyAcceptStates, 0, s); err != nil {
			return nil, err
		}
	}

	var (
		errs        []error
		transitions []domain.Transition
	)
	for i, rb := range b.rules {
		if rb.to == "" {
			errs = append(errs, fmt.Errorf("%w: rule %d from %s has no target state (call Go)", domain.ErrMalformedTransition, i, rb.from))
			continue
		}
		t, err := domain.NewTransition(rb.from, rb.reads, rb.to, rb.writes, rb.actions)
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i, err))
			continue
		}
		transitions = append(transitions, t)
	}
	if err := domain.Join(errs...); err != nil {
		return nil, err
	}

	return domain.NewMachine(b.name, b.start, b.accept, transitions, domain.WithHeaders(b.headers...)), nil
}

// RuleBuilder configures one transition function.
type RuleBuilder struct {
	builder *Builder
	from    domain.State
	reads   []domain.Symbol
	writes  []domain.Symbol
	actions []domain.Action
	to      domain.State
}

// Write sets the symbols written on each tape.
func (r *RuleBuilder) Write(symbols ...domain.Symbol) *RuleBuilder {
	r.writes = symbols
	return r
}

// Move sets the head action for each tape.
func (r *RuleBuilder) Move(actions ...domain.Action) *RuleBuilder {
	r.actions = actions
	return r
}

// Go sets the target state and returns to the machine builder.
func (r *RuleBuilder) Go(to domain.State) *Builder {
	r.to = to
	return r.builder
}
