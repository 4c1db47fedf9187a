package trace

import (
	"errors"
	"strings"
	"testing"
)

var errNoMatch = errors.New("no match")

func literal(lit string) Parser[string] {
	return func(input string) Result[string] {
		if strings.HasPrefix(input, lit) {
			return Ok(input[len(lit):], lit)
		}
		if strings.HasPrefix(lit, input) {
			return Incomplete[string](Needed(len(lit) - len(input)))
		}
		return Fail[string](errNoMatch)
	}
}

func pair(a, b Parser[string]) Parser[[]string] {
	return func(input string) Result[[]string] {
		ra := a(input)
		if !ra.IsOk() {
			return Retag[[]string](ra)
		}
		rb := b(ra.Rest)
		if !rb.IsOk() {
			return Retag[[]string](rb)
		}
		return Ok(rb.Rest, []string{ra.Value, rb.Value})
	}
}

func newTestRegistry(opts ...Option) (*Registry, *strings.Builder) {
	var out strings.Builder
	opts = append([]Option{WithOutput(&out)}, opts...)
	return NewRegistry(opts...), &out
}

func mustAbort(t testing.TB, fn func()) *AbortError {
	t.Helper()
	err := Isolate(fn)
	if err == nil {
		t.Fatalf("expected abort, got none")
	}
	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("expected *AbortError, got %T", err)
	}
	return abort
}
