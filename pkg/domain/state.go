package domain

// State is an opaque state identifier, unique within a machine.
type State string

// String implements fmt.Stringer.
func (s State) String() string { return string(s) }
