package domain

import (
	"bytes"
	"strings"
)

// HeaderDelimiter separates a header key from its value.
const HeaderDelimiter = ":"

// Required header keys.
const (
	KeyName         = "Name"
	KeyStartState   = "StartState"
	KeyAcceptStates = "AcceptStates"
)

// RequiredKeys lists the header keys every description must carry, in report order.
var RequiredKeys = []string{KeyName, KeyStartState, KeyAcceptStates}

// Line is one non-comment line of a machine description.
type Line struct {
	Number int // 1-based position in the source
	Text   string
}

// Header is an extra "Key: Value" pair preserved from the description.
type Header struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Machine is an assembled K-tape Turing machine.
// It is not modified after construction; accessors return copies.
type Machine struct {
	name        string
	start       State
	accept      []State
	transitions []Transition
	origins     []Origin
	library     []Symbol
	headers     []Header
}

// MachineOption configures optional Machine data.
type MachineOption func(*Machine)

// WithOrigins attaches the source position of each transition.
// origins[i] belongs to transitions[i]; extra or missing entries are ignored.
func WithOrigins(origins []Origin) MachineOption {
	return func(m *Machine) {
		m.origins = append([]Origin(nil), origins...)
	}
}

// WithHeaders attaches non-required header pairs, kept in the given order.
func WithHeaders(headers ...Header) MachineOption {
	return func(m *Machine) {
		m.headers = append(m.headers, headers...)
	}
}

// NewMachine builds a Machine and infers its tape library.
func NewMachine(name string, start State, accept []State, transitions []Transition, opts ...MachineOption) *Machine {
	m := &Machine{
		name:        name,
		start:       start,
		accept:      append([]State(nil), accept...),
		transitions: append([]Transition(nil), transitions...),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.library = inferTapeLibrary(m.transitions)
	return m
}

// inferTapeLibrary collects the distinct read symbols in first-seen order.
// Write symbols are not part of the library.
func inferTapeLibrary(transitions []Transition) []Symbol {
	seen := make(map[Symbol]bool)
	var library []Symbol
	for _, t := range transitions {
		for _, s := range t.reads {
			if !seen[s] {
				seen[s] = true
				library = append(library, s)
			}
		}
	}
	return library
}

// Name returns the machine name.
func (m *Machine) Name() string { return m.name }

// StartState returns the start state.
func (m *Machine) StartState() State { return m.start }

// AcceptStates returns a copy of the accept states.
func (m *Machine) AcceptStates() []State { return append([]State(nil), m.accept...) }

// IsAccepting reports whether s is an accept state.
func (m *Machine) IsAccepting(s State) bool {
	for _, a := range m.accept {
		if a == s {
			return true
		}
	}
	return false
}

// Len returns the number of transition functions.
func (m *Machine) Len() int { return len(m.transitions) }

// Transition returns the i-th transition function.
func (m *Machine) Transition(i int) Transition { return m.transitions[i] }

// Transitions returns a copy of the transition set.
func (m *Machine) Transitions() []Transition { return append([]Transition(nil), m.transitions...) }

// Origin returns where the i-th transition came from, if known.
func (m *Machine) Origin(i int) (Origin, bool) {
	if i < 0 || i >= len(m.origins) {
		return Origin{}, false
	}
	return m.origins[i], true
}

// TapeLibrary returns a copy of the inferred tape alphabet.
func (m *Machine) TapeLibrary() []Symbol { return append([]Symbol(nil), m.library...) }

// Headers returns a copy of the extra headers.
func (m *Machine) Headers() []Header { return append([]Header(nil), m.headers...) }

// Header returns the value of an extra header.
func (m *Machine) Header(key string) (string, bool) {
	for _, h := range m.headers {
		if h.Key == key {
			return h.Value, true
		}
	}
	return "", false
}

// Tapes returns K as declared by the first transition, or 0 for an empty machine.
// Uniformity across the set is checked by the validator, not here.
func (m *Machine) Tapes() int {
	if len(m.transitions) == 0 {
		return 0
	}
	return m.transitions[0].Arity()
}

// MarshalText renders the machine description: required headers, extra
// headers, then one domain/range line pair per transition.
func (m *Machine) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	writeHeader(&buf, KeyName, m.name)
	writeHeader(&buf, KeyStartState, string(m.start))
	accept := make([]string, len(m.accept))
	for i, s := range m.accept {
		accept[i] = string(s)
	}
	writeHeader(&buf, KeyAcceptStates, strings.Join(accept, FieldDelimiter))
	for _, h := range m.headers {
		writeHeader(&buf, h.Key, h.Value)
	}
	for _, t := range m.transitions {
		buf.WriteString(t.DomainLine())
		buf.WriteByte('\n')
		buf.WriteString(t.RangeLine())
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(HeaderDelimiter)
	if value != "" {
		buf.WriteByte(' ')
		buf.WriteString(value)
	}
	buf.WriteByte('\n')
}
