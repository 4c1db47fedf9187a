package trace

import "strconv"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindOpen marks the start of a wrapped parser.
	KindOpen Kind = iota + 1
	// KindOk closes a parser that succeeded.
	KindOk
	// KindError closes a parser that failed recoverably.
	KindError
	// KindFailure closes a parser that failed unrecoverably.
	KindFailure
	// KindIncomplete closes a parser that needs more input.
	KindIncomplete
)

// String returns the keyword used for the kind in rendered traces.
func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "Open"
	case KindOk:
		return "Ok"
	case KindError:
		return "Error"
	case KindFailure:
		return "Failure"
	case KindIncomplete:
		return "Incomplete"
	default:
		return "Unknown"
	}
}

// IsClose reports whether the kind terminates a parser invocation.
func (k Kind) IsClose() bool {
	return k >= KindOk && k <= KindIncomplete
}

// Needed is the amount of extra input an incomplete parser asked for.
// Zero means the amount is unknown.
type Needed int

// String returns "Unknown" or "Size(n)".
func (n Needed) String() string {
	if n <= 0 {
		return "Unknown"
	}
	return "Size(" + strconv.Itoa(int(n)) + ")"
}

// Event represents a single open or close occurrence.
type Event struct {
	Depth    int    // level before an open, after a close
	Location string // label of the wrapped parser
	Context  string // optional annotation, empty when absent
	Input    string // input snapshot seen by the parser
	Kind     Kind   // open or close outcome
	Detail   string // formatted outcome payload, empty for opens
}
