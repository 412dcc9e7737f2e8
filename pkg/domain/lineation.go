package domain

// Lineation is the outcome of flattening a K-tape machine.
type Lineation struct {
	// Source is the parsed K-tape machine.
	Source *Machine
	// Flat is the single-tape machine holding the head-location transitions.
	Flat *Machine
	// Tapes is K.
	Tapes int
	// Frontiers[i] holds the composite states that have located i virtual heads.
	// Frontiers[Tapes] are the determined states.
	Frontiers [][]CompositeState
	// Warnings collected while parsing Source.
	Warnings []Warning
}

// Determined returns the states that pin down one configuration of the source machine.
func (l *Lineation) Determined() []CompositeState {
	if len(l.Frontiers) == 0 {
		return nil
	}
	return append([]CompositeState(nil), l.Frontiers[len(l.Frontiers)-1]...)
}

// Undetermined returns every composite state of frontiers 0..K-1, in frontier order.
func (l *Lineation) Undetermined() []CompositeState {
	var states []CompositeState
	for i := 0; i < len(l.Frontiers)-1; i++ {
		states = append(states, l.Frontiers[i]...)
	}
	return states
}
