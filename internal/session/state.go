package session

// State is a step of the interactive loop.
type State int

const (
	StateAwaitingInput State = iota
	StateValidating
	StateInvoking
	StateReporting
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateValidating:
		return "validating"
	case StateInvoking:
		return "invoking"
	case StateReporting:
		return "reporting"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// allowed lists the legal transitions out of each state.
var allowed = map[State][]State{
	StateAwaitingInput: {StateValidating, StateTerminated},
	StateValidating:    {StateInvoking, StateReporting},
	StateInvoking:      {StateReporting},
	StateReporting:     {StateAwaitingInput, StateTerminated},
}

// CanTransition reports whether from -> to is a legal step.
func CanTransition(from, to State) bool {
	for _, next := range allowed[from] {
		if next == to {
			return true
		}
	}
	return false
}
