package domain

// Symbol is a single token of a tape alphabet.
type Symbol string

// Control symbols used on the flattened tape.
const (
	// Boundary separates the K virtual tapes.
	Boundary Symbol = "#"
	// Placeholder is a scratch marker.
	Placeholder Symbol = "R"
	// Blank is the null symbol.
	Blank Symbol = "~"
	// EndOfTape marks the end of all tapes.
	EndOfTape Symbol = "$"
)

// ReservedSymbols lists the control symbols in a fixed order.
var ReservedSymbols = []Symbol{Boundary, Placeholder, Blank, EndOfTape}

// IsReserved reports whether s is one of the control symbols.
func IsReserved(s Symbol) bool {
	for _, r := range ReservedSymbols {
		if s == r {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (s Symbol) String() string { return string(s) }
