package domain

import (
	"fmt"
	"strings"
)

// FieldDelimiter separates the fields of a domain or range line.
const FieldDelimiter = ","

// Transition is one transition function of a K-tape machine:
// (From, Reads) -> (To, Writes, Actions).
//
// Values can only be obtained through NewTransition or ParseTransition, so a
// Transition always holds K reads, K writes and K actions with K >= 1.
type Transition struct {
	from    State
	reads   []Symbol
	to      State
	writes  []Symbol
	actions []Action
}

// NewTransition validates and builds a Transition.
func NewTransition(from State, reads []Symbol, to State, writes []Symbol, actions []Action) (Transition, error) {
	if err := checkToken("start state", string(from)); err != nil {
		return Transition{}, err
	}
	if err := checkToken("end state", string(to)); err != nil {
		return Transition{}, err
	}
	if len(reads) == 0 {
		return Transition{}, &TransitionError{Reason: "no read symbols"}
	}
	if len(writes) == 0 {
		return Transition{}, &TransitionError{Reason: "no write symbols"}
	}
	if len(actions) != len(writes) {
		return Transition{}, &TransitionError{Reason: fmt.Sprintf("%d write symbol(s) but %d action(s)", len(writes), len(actions))}
	}
	if len(writes) != len(reads) {
		return Transition{}, &TransitionError{Reason: fmt.Sprintf("%d read symbol(s) but %d write symbol(s)", len(reads), len(writes))}
	}
	for i, s := range reads {
		if err := checkSymbol(fmt.Sprintf("read symbol %d", i+1), s); err != nil {
			return Transition{}, err
		}
	}
	for i, s := range writes {
		if err := checkSymbol(fmt.Sprintf("write symbol %d", i+1), s); err != nil {
			return Transition{}, err
		}
	}
	for i, a := range actions {
		if _, ok := ParseAction(string(a)); !ok {
			return Transition{}, &TransitionError{Reason: fmt.Sprintf("action %d: %q is not one of < > -", i+1, string(a))}
		}
	}

	return Transition{
		from:    from,
		reads:   append([]Symbol(nil), reads...),
		to:      to,
		writes:  append([]Symbol(nil), writes...),
		actions: append([]Action(nil), actions...),
	}, nil
}

// ParseTransition parses a domain line (state,p1,...,pK) and a range line
// (state,o1,...,oK,a1,...,aK). Fields are trimmed.
//
// The write symbols end at the first field that is an action marker; every
// field from there on must be an action. A range line without any action
// marker is rejected.
func ParseTransition(domainLine, rangeLine string) (Transition, error) {
	dom := splitFields(domainLine)
	rng := splitFields(rangeLine)

	if len(dom) < 2 {
		return Transition{}, &TransitionError{Domain: domainLine, Range: rangeLine,
			Reason: fmt.Sprintf("domain line needs a state and at least one read symbol, got %d field(s)", len(dom))}
	}
	if len(rng) < 3 {
		return Transition{}, &TransitionError{Domain: domainLine, Range: rangeLine,
			Reason: fmt.Sprintf("range line needs a state, a write symbol and an action, got %d field(s)", len(rng))}
	}

	outputs := rng[1:]
	split, ok := firstActionIndex(outputs)
	if !ok {
		return Transition{}, &TransitionError{Domain: domainLine, Range: rangeLine,
			Reason: "range line has no action marker (< > -)"}
	}

	writes := make([]Symbol, 0, split)
	for _, f := range outputs[:split] {
		writes = append(writes, Symbol(f))
	}
	actions := make([]Action, 0, len(outputs)-split)
	for i, f := range outputs[split:] {
		a, ok := ParseAction(f)
		if !ok {
			return Transition{}, &TransitionError{Domain: domainLine, Range: rangeLine,
				Reason: fmt.Sprintf("field %d of range line: %q follows an action but is not one", split+i+2, f)}
		}
		actions = append(actions, a)
	}

	reads := make([]Symbol, 0, len(dom)-1)
	for _, f := range dom[1:] {
		reads = append(reads, Symbol(f))
	}

	t, err := NewTransition(State(dom[0]), reads, State(rng[0]), writes, actions)
	if err != nil {
		if te, ok := err.(*TransitionError); ok {
			te.Domain, te.Range = domainLine, rangeLine
		}
		return Transition{}, err
	}
	return t, nil
}

// firstActionIndex returns the index of the first action marker in fields.
func firstActionIndex(fields []string) (int, bool) {
	for i, f := range fields {
		if _, ok := ParseAction(f); ok {
			return i, true
		}
	}
	return 0, false
}

func splitFields(line string) []string {
	fields := strings.Split(line, FieldDelimiter)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// checkToken rejects tokens that could not be written back unambiguously.
func checkToken(what, tok string) error {
	if reason := tokenProblem(what, tok); reason != "" {
		return &TransitionError{Reason: reason}
	}
	return nil
}

func tokenProblem(what, tok string) string {
	switch {
	case tok == "":
		return what + " is empty"
	case strings.Contains(tok, FieldDelimiter):
		return fmt.Sprintf("%s %q contains %q", what, tok, FieldDelimiter)
	case strings.Contains(tok, HeaderDelimiter):
		return fmt.Sprintf("%s %q contains %q", what, tok, HeaderDelimiter)
	case strings.ContainsAny(tok, "\r\n"):
		return what + " contains a line break"
	}
	return ""
}

// CheckHeaderState rejects a state named by the header key that no
// transition could refer to. line is the header's source line, or 0.
func CheckHeaderState(key string, line int, s State) error {
	if reason := tokenProblem("state", string(s)); reason != "" {
		return &FieldError{Key: key, Line: line, Reason: reason}
	}
	return nil
}

// checkSymbol additionally rejects action markers, which would be read back as actions.
func checkSymbol(what string, s Symbol) error {
	if _, ok := ParseAction(string(s)); ok {
		return &TransitionError{Reason: fmt.Sprintf("%s %q is an action marker", what, string(s))}
	}
	return checkToken(what, string(s))
}

// From returns the start state.
func (t Transition) From() State { return t.from }

// To returns the end state.
func (t Transition) To() State { return t.to }

// Arity returns K, the number of tapes this transition reads.
func (t Transition) Arity() int { return len(t.reads) }

// Read returns the symbol read on tape i. It panics unless 0 <= i < Arity().
func (t Transition) Read(i int) Symbol { return t.reads[i] }

// Reads returns a copy of the read tuple.
func (t Transition) Reads() []Symbol { return append([]Symbol(nil), t.reads...) }

// Writes returns a copy of the write tuple.
func (t Transition) Writes() []Symbol { return append([]Symbol(nil), t.writes...) }

// Actions returns a copy of the action tuple.
func (t Transition) Actions() []Action { return append([]Action(nil), t.actions...) }

// DomainLine renders the canonical domain line.
func (t Transition) DomainLine() string {
	fields := make([]string, 0, 1+len(t.reads))
	fields = append(fields, string(t.from))
	for _, s := range t.reads {
		fields = append(fields, string(s))
	}
	return strings.Join(fields, FieldDelimiter)
}

// RangeLine renders the canonical range line.
func (t Transition) RangeLine() string {
	fields := make([]string, 0, 1+len(t.writes)+len(t.actions))
	fields = append(fields, string(t.to))
	for _, s := range t.writes {
		fields = append(fields, string(s))
	}
	for _, a := range t.actions {
		fields = append(fields, string(a))
	}
	return strings.Join(fields, FieldDelimiter)
}

// String renders the transition as "domain -> range".
func (t Transition) String() string {
	return t.DomainLine() + " -> " + t.RangeLine()
}
