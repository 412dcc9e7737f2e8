package domain

// Action is a head movement.
type Action string

// Head movements as written in a range line.
const (
	MoveLeft  Action = "<"
	MoveRight Action = ">"
	Stay      Action = "-"
)

// Actions lists every valid action marker.
var Actions = []Action{MoveLeft, MoveRight, Stay}

// ParseAction converts a field into an Action.
// The boolean is false when the field is not an action marker.
func ParseAction(field string) (Action, bool) {
	switch a := Action(field); a {
	case MoveLeft, MoveRight, Stay:
		return a, true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (a Action) String() string { return string(a) }
