// Package trace records hierarchical execution traces of combinator parsers.
//
// A Registry maps tags to independent traces. Each trace is an ordered,
// depth-annotated log of open and close events produced by wrapped parsers.
// Rendering turns the flat log back into an indented tree.
//
// # Usage
//
//	r := trace.NewRegistry()
//	p := trace.Wrap(r, trace.DefaultTag, "", "digits", digits)
//	res := p("123abc")
//	fmt.Print(r.Render(trace.DefaultTag))
//
// # Depth
//
// An open event is recorded at the level before it increments; a close event
// at the level after it decrements. Matching pairs share a depth, so the log
// can be read as a tree without extra bookkeeping.
//
// # Silencing
//
// Silence wraps a parser so that it, and every wrapped parser it calls, records
// into a shared silent buffer instead of the nominal tag. The subtree still
// runs; it just disappears from the rendered trace of its tag.
//
// # Aborts
//
// Closing a trace at depth zero, or opening past a configured max depth,
// panics with an *AbortError. Use Isolate to turn such a panic back into an
// error at a boundary of your choice.
//
// # Ownership
//
// A Registry is not safe for concurrent use. Give each goroutine its own and
// pass it around explicitly or through a context:
//
//	ctx = trace.WithRegistry(ctx, r)
//	r := trace.FromContext(ctx)
package trace
