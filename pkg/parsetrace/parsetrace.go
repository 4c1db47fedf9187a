package parsetrace

import (
	"context"

	"parsetrace/internal/trace"
)

type (
	// Registry maps tags to traces. See trace.Registry.
	Registry = trace.Registry
	// Trace is the event log of one tag.
	Trace = trace.Trace
	// Event is one recorded open or close.
	Event = trace.Event
	// Kind is the kind of an event or parse outcome.
	Kind = trace.Kind
	// Needed is the amount of input an incomplete parse asks for.
	Needed = trace.Needed
	// Renderer turns events into text or NDJSON.
	Renderer = trace.Renderer
	// Format selects the rendering format.
	Format = trace.Format
	// Option configures a Registry.
	Option = trace.Option
	// Sink receives events of print-immediate traces.
	Sink = trace.Sink
	// Enricher attaches breadcrumbs to errors.
	Enricher = trace.Enricher
	// AbortError is the panic value raised when a trace cannot continue.
	AbortError = trace.AbortError
	// Crumb is one breadcrumb of an enriched error.
	Crumb = trace.Crumb
)

// Result is the outcome of a parser.
type Result[O any] = trace.Result[O]

// Parser is a computation over string input.
type Parser[O any] = trace.Parser[O]

// DefaultTag is the tag used by Tr and TrCtx.
const DefaultTag = trace.DefaultTag

const (
	KindOpen       = trace.KindOpen
	KindOk         = trace.KindOk
	KindError      = trace.KindError
	KindFailure    = trace.KindFailure
	KindIncomplete = trace.KindIncomplete

	FormatText   = trace.FormatText
	FormatNDJSON = trace.FormatNDJSON
)

var (
	ErrMaxDepth        = trace.ErrMaxDepth
	ErrUnbalancedClose = trace.ErrUnbalancedClose
)

// NewRegistry creates a Registry holding an empty trace for DefaultTag.
func NewRegistry(opts ...Option) *Registry { return trace.NewRegistry(opts...) }

var (
	WithOutput   = trace.WithOutput
	WithRenderer = trace.WithRenderer
	WithSink     = trace.WithSink
	WithLogger   = trace.WithLogger
	WithEnricher = trace.WithEnricher
)

// Breadcrumbs is the standard Enricher.
func Breadcrumbs(input, location, context string, err error) error {
	return trace.Breadcrumbs(input, location, context, err)
}

// Trail lists the breadcrumbs wrapped around err, outermost first.
func Trail(err error) []Crumb { return trace.Trail(err) }

// Isolate runs fn and returns a trace abort raised inside it as an error.
func Isolate(fn func()) error { return trace.Isolate(fn) }

// WithRegistry attaches r to ctx.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return trace.WithRegistry(ctx, r)
}

// FromContext returns the Registry attached to ctx, or nil.
func FromContext(ctx context.Context) *Registry { return trace.FromContext(ctx) }

// Ok returns a successful result.
func Ok[O any](rest string, value O) Result[O] { return trace.Ok(rest, value) }

// Fail returns a recoverable error result.
func Fail[O any](err error) Result[O] { return trace.Fail[O](err) }

// Fatal returns an unrecoverable error result.
func Fatal[O any](err error) Result[O] { return trace.Fatal[O](err) }

// Incomplete returns a result asking for n more bytes (0 if unknown).
func Incomplete[O any](n Needed) Result[O] { return trace.Incomplete[O](n) }

// Wrap traces p on tag with an optional context.
func Wrap[O any](r *Registry, tag, context, location string, p Parser[O]) Parser[O] {
	return trace.Wrap(r, tag, context, location, p)
}

// Silence runs p with its whole subtree hidden from tag's trace.
func Silence[O any](r *Registry, tag, context, location string, p Parser[O]) Parser[O] {
	return trace.Silence(r, tag, context, location, p)
}

// Tr traces p on DefaultTag without a context.
func Tr[O any](r *Registry, location string, p Parser[O]) Parser[O] {
	return trace.Wrap(r, DefaultTag, "", location, p)
}

// TrCtx traces p on DefaultTag with a context.
func TrCtx[O any](r *Registry, context, location string, p Parser[O]) Parser[O] {
	return trace.Wrap(r, DefaultTag, context, location, p)
}

// TrTag traces p on tag without a context.
func TrTag[O any](r *Registry, tag, location string, p Parser[O]) Parser[O] {
	return trace.Wrap(r, tag, "", location, p)
}

// TrTagCtx traces p on tag with a context.
func TrTagCtx[O any](r *Registry, tag, context, location string, p Parser[O]) Parser[O] {
	return trace.Wrap(r, tag, context, location, p)
}
