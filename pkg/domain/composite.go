package domain

import (
	"strconv"
	"strings"
)

// CompositeSeparator joins the components of a rendered composite state name.
const CompositeSeparator = "-"

const nameEscape = `\`

// CompositeState is a state of the flattened machine: a base state of the
// original machine plus the virtual-head symbols observed so far while
// sweeping right.
//
// Identity is structural. Use Equal or Key to compare; Name is only a
// rendering for serialization.
type CompositeState struct {
	base     State
	observed []Symbol
}

// NewCompositeState builds a composite state.
func NewCompositeState(base State, observed ...Symbol) CompositeState {
	return CompositeState{base: base, observed: append([]Symbol(nil), observed...)}
}

// Base returns the original machine state.
func (c CompositeState) Base() State { return c.base }

// Observed returns a copy of the observed symbols.
func (c CompositeState) Observed() []Symbol { return append([]Symbol(nil), c.observed...) }

// Depth returns the number of virtual heads located so far.
func (c CompositeState) Depth() int { return len(c.observed) }

// Extend returns a new composite state with s appended. c is left untouched.
func (c CompositeState) Extend(s Symbol) CompositeState {
	observed := make([]Symbol, len(c.observed), len(c.observed)+1)
	copy(observed, c.observed)
	return CompositeState{base: c.base, observed: append(observed, s)}
}

// Equal reports structural equality.
func (c CompositeState) Equal(o CompositeState) bool {
	if c.base != o.base || len(c.observed) != len(o.observed) {
		return false
	}
	for i := range c.observed {
		if c.observed[i] != o.observed[i] {
			return false
		}
	}
	return true
}

// Key returns a collision-free map key. Every component is length-prefixed,
// so no choice of state or symbol text can make two different states share a key.
func (c CompositeState) Key() string {
	var sb strings.Builder
	writeKeyPart(&sb, string(c.base))
	for _, s := range c.observed {
		writeKeyPart(&sb, string(s))
	}
	return sb.String()
}

func writeKeyPart(sb *strings.Builder, part string) {
	sb.WriteString(strconv.Itoa(len(part)))
	sb.WriteByte(':')
	sb.WriteString(part)
}

// Matches reports whether t starts in c's base state and reads c's observed
// symbols on its first tapes.
func (c CompositeState) Matches(t Transition) bool {
	if t.from != c.base || len(c.observed) > len(t.reads) {
		return false
	}
	for i, s := range c.observed {
		if t.reads[i] != s {
			return false
		}
	}
	return true
}

// Name renders the state as base-s1-s2-..., escaping separators inside
// components so the rendering stays injective. An empty observed sequence
// renders as the (escaped) base state alone.
func (c CompositeState) Name() State {
	var sb strings.Builder
	sb.WriteString(escapeComponent(string(c.base)))
	for _, s := range c.observed {
		sb.WriteString(CompositeSeparator)
		sb.WriteString(escapeComponent(string(s)))
	}
	return State(sb.String())
}

// String implements fmt.Stringer.
func (c CompositeState) String() string { return string(c.Name()) }

func escapeComponent(s string) string {
	if !strings.Contains(s, nameEscape) && !strings.Contains(s, CompositeSeparator) {
		return s
	}
	s = strings.ReplaceAll(s, nameEscape, nameEscape+nameEscape)
	return strings.ReplaceAll(s, CompositeSeparator, nameEscape+CompositeSeparator)
}
