/*
Package domain contains the core models of the lineator.

It defines the Turing machine vocabulary (states, symbols, head actions), the
transition functions parsed from a machine description, the assembled
Machine with its inferred tape library, and the composite states synthesized
while flattening a K-tape machine onto a single tape. This package is kept pure
and free of I/O, following the same Hexagonal layout as the rest of the module.

# Key Entities

  - Transition: one transition function (start state, K reads) -> (end state, K writes, K actions).
  - Machine: name, start state, accept states, transition set and derived tape library.
  - CompositeState: a flattened state, (base state, symbols observed so far).
  - Lineation: the outcome of flattening a machine (frontiers, flat machine, warnings).

# Reserved Symbols

The flattened tape uses four control symbols that may never appear in the
tape library of an input machine:

	#  tape boundary
	R  placeholder
	~  blank / null
	$  end of all tapes

A flattened tape for two tapes holding 0110 and 1000 reads #0110#1000#$.
*/
package domain
