// Package parsetrace records hierarchical execution traces of
// combinator-style parsers.
//
// Quick start:
//
//	r := parsetrace.NewRegistry()
//	p := parsetrace.TrCtx(r, "Parsing greeting", "parse_greeting", greeting)
//	p("hello world")
//	r.Print(parsetrace.DefaultTag)
//
// Each wrapped parser records an open event before it runs and a close event
// with its outcome afterwards, indented by nesting depth. Traces are grouped
// by tag; a Registry holds every tag of one parse and must stay on a single
// goroutine. Use a Registry per goroutine and pass it explicitly or through
// WithRegistry. A nil *Registry disables tracing.
package parsetrace
