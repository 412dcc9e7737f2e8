/*
Package lineator flattens K-tape Turing machines into single-tape machines.

A K-tape machine is described in a small line-oriented text format:

	// comment lines start with // or \\
	Name: Inc
	StartState: q0
	AcceptStates: qf
	q0,1
	qf,0,>

Header lines ("Key: Value") name the machine, its start state and its
accept states. Every other line belongs to a transition pair: a domain line
(state and one read symbol per tape) followed by a range line (end state, one
write symbol per tape, one head action per tape, actions being <, > or -).

# Lineation

The flattened machine keeps all K tapes side by side on one tape, separated
by the boundary marker '#' and terminated by '$'. A single real head sweeps
right to locate every virtual head; each composite state it passes through
records the symbols seen so far. Once K virtual heads are located the state
is determined: it identifies one configuration of the original machine.

The symbols '#', 'R', '~' and '$' are reserved and may not be used by the
input machine.

# Usage

	l := lineator.New(lineator.WithLogger(logger))
	out, err := l.LineateFile(ctx, "inc.tm", "inc.flat.tm")
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range out.Determined() {
		fmt.Println(s.Name())
	}

Only the head-location phase of the flattened machine is generated. Its
determined states are listed in the DeterminedStates header of the output so
that later phases can be attached to them.
*/
package lineator
