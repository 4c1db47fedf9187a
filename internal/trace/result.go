package trace

import (
	"fmt"
	"strconv"
)

// Result is the outcome of a parser: exactly one of Ok, Error, Failure or
// Incomplete, selected by Kind.
type Result[O any] struct {
	Kind   Kind
	Rest   string // remaining input, set for KindOk
	Value  O      // parsed value, set for KindOk
	Err    error  // set for KindError and KindFailure
	Needed Needed // set for KindIncomplete
}

// Parser is a computation over string input.
type Parser[O any] func(input string) Result[O]

// Ok returns a successful result.
func Ok[O any](rest string, value O) Result[O] {
	return Result[O]{Kind: KindOk, Rest: rest, Value: value}
}

// Fail returns a recoverable error result; alternatives may still be tried.
func Fail[O any](err error) Result[O] {
	return Result[O]{Kind: KindError, Err: err}
}

// Fatal returns an unrecoverable error result.
func Fatal[O any](err error) Result[O] {
	return Result[O]{Kind: KindFailure, Err: err}
}

// Incomplete returns a result asking for n more bytes of input (0 if unknown).
func Incomplete[O any](n Needed) Result[O] {
	return Result[O]{Kind: KindIncomplete, Needed: n}
}

// IsOk reports whether the parser succeeded.
func (r Result[O]) IsOk() bool { return r.Kind == KindOk }

// IsErr reports whether the result carries an error.
func (r Result[O]) IsErr() bool { return r.Kind == KindError || r.Kind == KindFailure }

// Describe formats the payload shown after the outcome keyword.
func (r Result[O]) Describe() string {
	switch r.Kind {
	case KindOk:
		return describeValue(r.Value)
	case KindError, KindFailure:
		if r.Err == nil {
			return "<nil>"
		}
		return r.Err.Error()
	case KindIncomplete:
		return r.Needed.String()
	default:
		return ""
	}
}

// Retag converts a non-Ok result to another value type.
// Combinators use it to forward errors without touching them.
func Retag[T, O any](r Result[O]) Result[T] {
	return Result[T]{Kind: r.Kind, Rest: r.Rest, Err: r.Err, Needed: r.Needed}
}

func describeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "()"
	case string:
		return strconv.Quote(x)
	case []string:
		out := "["
		for i, s := range x {
			if i > 0 {
				out += ", "
			}
			out += strconv.Quote(s)
		}
		return out + "]"
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%+v", x)
	}
}
