package combinator

import (
	"fmt"
	"strings"
)

// ErrorKind identifies which primitive rejected the input.
type ErrorKind uint8

const (
	ErrTag ErrorKind = iota + 1
	ErrChar
	ErrAlpha
	ErrDigit
	ErrAlphanumeric
	ErrTakeWhile
	ErrAlt
	ErrMany
	ErrSeparatedList
	ErrEOF
	ErrVerify
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ErrTag:
		return "Tag"
	case ErrChar:
		return "Char"
	case ErrAlpha:
		return "Alpha"
	case ErrDigit:
		return "Digit"
	case ErrAlphanumeric:
		return "AlphaNumeric"
	case ErrTakeWhile:
		return "TakeWhile1"
	case ErrAlt:
		return "Alt"
	case ErrMany:
		return "Many1"
	case ErrSeparatedList:
		return "SeparatedList"
	case ErrEOF:
		return "Eof"
	case ErrVerify:
		return "Verify"
	default:
		return "Unknown"
	}
}

// Frame is a breadcrumb added by a wrapped parser on the way out.
type Frame struct {
	Input    string
	Location string
	Context  string
}

// Error is the error produced by every parser in this package.
type Error struct {
	Input  string
	Kind   ErrorKind
	Frames []Frame // innermost first
}

// NewError returns an error for kind at input.
func NewError(input string, kind ErrorKind) *Error {
	return &Error{Input: input, Kind: kind}
}

func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %q", e.Kind, e.Input)
	for _, f := range e.Frames {
		sb.WriteString(" in ")
		sb.WriteString(f.Location)
		if f.Context != "" {
			sb.WriteString("[")
			sb.WriteString(f.Context)
			sb.WriteString("]")
		}
	}
	return sb.String()
}

// AddContext returns a copy of e with one more breadcrumb.
func (e *Error) AddContext(input, location, context string) error {
	frames := make([]Frame, len(e.Frames), len(e.Frames)+1)
	copy(frames, e.Frames)
	frames = append(frames, Frame{Input: input, Location: location, Context: context})
	return &Error{Input: e.Input, Kind: e.Kind, Frames: frames}
}
