package combinator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"parsetrace/internal/trace"
)

// Tag matches a literal prefix.
func Tag(lit string) trace.Parser[string] {
	return func(input string) trace.Result[string] {
		if strings.HasPrefix(input, lit) {
			return trace.Ok(input[len(lit):], lit)
		}
		return trace.Fail[string](NewError(input, ErrTag))
	}
}

// StreamingTag matches a literal prefix and reports Incomplete when the input
// ends inside the literal.
func StreamingTag(lit string) trace.Parser[string] {
	return func(input string) trace.Result[string] {
		if strings.HasPrefix(input, lit) {
			return trace.Ok(input[len(lit):], lit)
		}
		if len(input) < len(lit) && strings.HasPrefix(lit, input) {
			return trace.Incomplete[string](trace.Needed(len(lit) - len(input)))
		}
		return trace.Fail[string](NewError(input, ErrTag))
	}
}

// Char matches a single rune.
func Char(c rune) trace.Parser[rune] {
	return func(input string) trace.Result[rune] {
		r, size := utf8.DecodeRuneInString(input)
		if size > 0 && r == c {
			return trace.Ok(input[size:], r)
		}
		return trace.Fail[rune](NewError(input, ErrChar))
	}
}

// TakeWhile1 consumes at least one rune satisfying pred.
func TakeWhile1(pred func(rune) bool) trace.Parser[string] {
	return takeWhile1(pred, ErrTakeWhile)
}

// Alpha1 consumes one or more letters.
func Alpha1() trace.Parser[string] { return takeWhile1(unicode.IsLetter, ErrAlpha) }

// Digit1 consumes one or more ASCII digits.
func Digit1() trace.Parser[string] {
	return takeWhile1(func(r rune) bool { return r >= '0' && r <= '9' }, ErrDigit)
}

// Alphanumeric1 consumes one or more letters or digits.
func Alphanumeric1() trace.Parser[string] {
	return takeWhile1(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }, ErrAlphanumeric)
}

// Space0 consumes any amount of whitespace.
func Space0() trace.Parser[string] {
	return func(input string) trace.Result[string] {
		rest := strings.TrimLeftFunc(input, unicode.IsSpace)
		return trace.Ok(rest, input[:len(input)-len(rest)])
	}
}

// EOF succeeds only on empty input.
func EOF() trace.Parser[string] {
	return func(input string) trace.Result[string] {
		if input == "" {
			return trace.Ok("", "")
		}
		return trace.Fail[string](NewError(input, ErrEOF))
	}
}

func takeWhile1(pred func(rune) bool, kind ErrorKind) trace.Parser[string] {
	return func(input string) trace.Result[string] {
		end := strings.IndexFunc(input, func(r rune) bool { return !pred(r) })
		if end < 0 {
			end = len(input)
		}
		if end == 0 {
			return trace.Fail[string](NewError(input, kind))
		}
		return trace.Ok(input[end:], input[:end])
	}
}
