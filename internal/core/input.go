package core

// Action is the discrete decision a controller makes for one entity per tick.
// The numeric values are part of the external contract: controllers that
// produce integers (argmax over network outputs, scripted tables) map 0, 1, 2
// directly onto these constants.
type Action int

const (
	ActionNone   Action = iota // Keep running
	ActionJump                 // Launch a jump (ground only, not while crouching)
	ActionCrouch               // Crouch (not while airborne)
)

// NumActions is the number of recognized actions.
const NumActions = 3

// ParseAction converts a raw controller value into an Action.
// Anything outside the recognized set degrades to ActionNone.
func ParseAction(v int) Action {
	a := Action(v)
	if !a.Valid() {
		return ActionNone
	}
	return a
}

// Valid reports whether a is one of the recognized actions.
func (a Action) Valid() bool {
	return a >= ActionNone && a < NumActions
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionCrouch:
		return "Crouch"
	default:
		return "Unknown"
	}
}
