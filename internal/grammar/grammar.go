// Package grammar holds small instrumented grammars used by the CLI and tests.
package grammar

import (
	"sort"

	"parsetrace/internal/trace"
)

// Grammar describes one runnable demo grammar.
type Grammar struct {
	Name        string
	Description string
	Tag         string // tag whose trace shows the whole parse
	Input       string // sample input
	Build       func(r *trace.Registry) trace.Parser[any]
}

var grammars = map[string]Grammar{}

func register(g Grammar) {
	grammars[g.Name] = g
}

// Lookup returns the grammar with the given name.
func Lookup(name string) (Grammar, bool) {
	g, ok := grammars[name]
	return g, ok
}

// Names returns all grammar names in sorted order.
func Names() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// erase adapts a typed parser to the common Grammar signature.
func erase[O any](p trace.Parser[O]) trace.Parser[any] {
	return func(input string) trace.Result[any] {
		res := p(input)
		out := trace.Retag[any](res)
		if res.IsOk() {
			out.Value = res.Value
		}
		return out
	}
}
