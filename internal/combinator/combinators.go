package combinator

import (
	"fmt"

	"parsetrace/internal/trace"
)

// Tuple2 holds the values of two sequential parsers.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

func (t Tuple2[A, B]) String() string {
	return fmt.Sprintf("(%s, %s)", show(t.First), show(t.Second))
}

// Tuple3 holds the values of three sequential parsers.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

func (t Tuple3[A, B, C]) String() string {
	return fmt.Sprintf("(%s, %s, %s)", show(t.First), show(t.Second), show(t.Third))
}

func show(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

// Map transforms the value of a successful parse.
func Map[A, B any](p trace.Parser[A], fn func(A) B) trace.Parser[B] {
	return func(input string) trace.Result[B] {
		res := p(input)
		if !res.IsOk() {
			return trace.Retag[B](res)
		}
		return trace.Ok(res.Rest, fn(res.Value))
	}
}

// Verify fails with ErrVerify when check rejects the parsed value.
func Verify[A any](p trace.Parser[A], check func(A) bool) trace.Parser[A] {
	return func(input string) trace.Result[A] {
		res := p(input)
		if res.IsOk() && !check(res.Value) {
			return trace.Fail[A](NewError(input, ErrVerify))
		}
		return res
	}
}

// Pair runs a then b.
func Pair[A, B any](a trace.Parser[A], b trace.Parser[B]) trace.Parser[Tuple2[A, B]] {
	return func(input string) trace.Result[Tuple2[A, B]] {
		ra := a(input)
		if !ra.IsOk() {
			return trace.Retag[Tuple2[A, B]](ra)
		}
		rb := b(ra.Rest)
		if !rb.IsOk() {
			return trace.Retag[Tuple2[A, B]](rb)
		}
		return trace.Ok(rb.Rest, Tuple2[A, B]{First: ra.Value, Second: rb.Value})
	}
}

// Tuple runs a, b and c in sequence.
func Tuple[A, B, C any](a trace.Parser[A], b trace.Parser[B], c trace.Parser[C]) trace.Parser[Tuple3[A, B, C]] {
	ab := Pair(a, b)
	return func(input string) trace.Result[Tuple3[A, B, C]] {
		rab := ab(input)
		if !rab.IsOk() {
			return trace.Retag[Tuple3[A, B, C]](rab)
		}
		rc := c(rab.Rest)
		if !rc.IsOk() {
			return trace.Retag[Tuple3[A, B, C]](rc)
		}
		return trace.Ok(rc.Rest, Tuple3[A, B, C]{First: rab.Value.First, Second: rab.Value.Second, Third: rc.Value})
	}
}

// Preceded runs prefix then p and keeps p's value.
func Preceded[P, A any](prefix trace.Parser[P], p trace.Parser[A]) trace.Parser[A] {
	return Map(Pair(prefix, p), func(t Tuple2[P, A]) A { return t.Second })
}

// Terminated runs p then suffix and keeps p's value.
func Terminated[A, S any](p trace.Parser[A], suffix trace.Parser[S]) trace.Parser[A] {
	return Map(Pair(p, suffix), func(t Tuple2[A, S]) A { return t.First })
}

// Delimited runs open, p, closing and keeps p's value.
func Delimited[O, A, C any](open trace.Parser[O], p trace.Parser[A], closing trace.Parser[C]) trace.Parser[A] {
	return Map(Tuple(open, p, closing), func(t Tuple3[O, A, C]) A { return t.Second })
}

// Alt tries each parser in order and returns the first that does not fail
// recoverably. Failure and Incomplete stop the search.
func Alt[A any](ps ...trace.Parser[A]) trace.Parser[A] {
	return func(input string) trace.Result[A] {
		for _, p := range ps {
			res := p(input)
			if res.Kind != trace.KindError {
				return res
			}
		}
		return trace.Fail[A](NewError(input, ErrAlt))
	}
}

// Opt turns a recoverable error into a zero-value success that consumes nothing.
func Opt[A any](p trace.Parser[A]) trace.Parser[A] {
	return func(input string) trace.Result[A] {
		res := p(input)
		if res.Kind == trace.KindError {
			var zero A
			return trace.Ok(input, zero)
		}
		return res
	}
}

// Cut upgrades recoverable errors to failures so alternatives are not tried.
func Cut[A any](p trace.Parser[A]) trace.Parser[A] {
	return func(input string) trace.Result[A] {
		res := p(input)
		if res.Kind == trace.KindError {
			res.Kind = trace.KindFailure
		}
		return res
	}
}

// Many0 applies p until it fails recoverably or stops consuming input.
func Many0[A any](p trace.Parser[A]) trace.Parser[[]A] {
	return func(input string) trace.Result[[]A] {
		var out []A
		for {
			res := p(input)
			switch res.Kind {
			case trace.KindOk:
				if len(res.Rest) == len(input) {
					return trace.Ok(input, out)
				}
				out = append(out, res.Value)
				input = res.Rest
			case trace.KindError:
				return trace.Ok(input, out)
			default:
				return trace.Retag[[]A](res)
			}
		}
	}
}

// Many1 is Many0 requiring at least one match.
func Many1[A any](p trace.Parser[A]) trace.Parser[[]A] {
	many := Many0(p)
	return func(input string) trace.Result[[]A] {
		res := many(input)
		if res.IsOk() && len(res.Value) == 0 {
			return trace.Fail[[]A](NewError(input, ErrMany))
		}
		return res
	}
}

// SeparatedList1 parses one or more p separated by sep.
func SeparatedList1[A, S any](sep trace.Parser[S], p trace.Parser[A]) trace.Parser[[]A] {
	rest := Many0(Preceded(sep, p))
	return func(input string) trace.Result[[]A] {
		first := p(input)
		if !first.IsOk() {
			if first.Kind == trace.KindError {
				return trace.Fail[[]A](NewError(input, ErrSeparatedList))
			}
			return trace.Retag[[]A](first)
		}
		more := rest(first.Rest)
		if !more.IsOk() {
			return more
		}
		return trace.Ok(more.Rest, append([]A{first.Value}, more.Value...))
	}
}

// Lazy defers construction of a parser, for recursive grammars.
func Lazy[A any](build func() trace.Parser[A]) trace.Parser[A] {
	return func(input string) trace.Result[A] {
		return build()(input)
	}
}
