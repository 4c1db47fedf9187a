package trace

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxDepth is wrapped by aborts raised by the max-depth guard.
	ErrMaxDepth = errors.New("max depth reached")
	// ErrUnbalancedClose is wrapped by aborts raised when closing at depth zero.
	ErrUnbalancedClose = errors.New("unbalanced close")
)

// AbortKind identifies why a trace aborted.
type AbortKind uint8

const (
	AbortMaxDepth        AbortKind = iota + 1 // nesting guard tripped
	AbortUnbalancedClose                      // close without matching open
)

// String returns the string representation of AbortKind.
func (k AbortKind) String() string {
	switch k {
	case AbortMaxDepth:
		return "max-depth"
	case AbortUnbalancedClose:
		return "unbalanced-close"
	default:
		return "unknown"
	}
}

// AbortError is the panic value used when a trace cannot continue.
type AbortError struct {
	Kind     AbortKind
	Tag      string
	Location string
	Limit    int // configured max depth, for AbortMaxDepth
}

func (e *AbortError) Error() string {
	switch e.Kind {
	case AbortMaxDepth:
		return fmt.Sprintf("max depth reached: tag=%q limit=%d location=%q", e.Tag, e.Limit, e.Location)
	case AbortUnbalancedClose:
		return fmt.Sprintf("cannot close at depth 0: tag=%q location=%q", e.Tag, e.Location)
	default:
		return fmt.Sprintf("trace aborted: tag=%q location=%q", e.Tag, e.Location)
	}
}

// Unwrap returns the sentinel matching the abort kind.
func (e *AbortError) Unwrap() error {
	switch e.Kind {
	case AbortMaxDepth:
		return ErrMaxDepth
	case AbortUnbalancedClose:
		return ErrUnbalancedClose
	default:
		return nil
	}
}

// Isolate runs fn and converts a trace abort raised inside it into an error.
// Any other panic is propagated unchanged.
//
// Traces touched by fn are left as they were at the abort: opens without
// matching closes stay recorded and the level stays raised. Reset the tag
// before reusing it.
func Isolate(fn func()) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if abort, ok := rec.(*AbortError); ok {
			err = abort
			return
		}
		panic(rec)
	}()
	fn()
	return nil
}
