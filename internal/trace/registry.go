package trace

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
)

// DefaultTag is the tag used when the caller does not name one.
const DefaultTag = "default"

// silentTag names the shared buffer that silenced subtrees record into.
const silentTag = "<silenced>"

// Registry maps tags to traces and owns the silencing state.
// It is not safe for concurrent use.
type Registry struct {
	traces   map[string]*Trace
	silence  []int
	silent   *Trace
	renderer Renderer
	out      io.Writer
	sink     Sink
	logger   *slog.Logger
	enricher Enricher
}

type options struct {
	out      io.Writer
	renderer Renderer
	sink     Sink
	logger   *slog.Logger
	enricher Enricher
}

// Option configures a Registry.
type Option func(*options)

// WithOutput sets where Print and print-immediate output go. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithRenderer sets how traces are rendered.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithSink replaces the sink used by print-immediate traces.
// By default events are rendered to the output as they happen.
func WithSink(s Sink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithLogger sets the logger for administrative changes and aborts.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithEnricher enables error enrichment for wrapped parsers that carry a context.
func WithEnricher(e Enricher) Option {
	return func(o *options) {
		o.enricher = e
	}
}

// NewRegistry creates a Registry holding an empty trace for DefaultTag.
func NewRegistry(opts ...Option) *Registry {
	o := options{out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.sink == nil {
		o.sink = NewStreamSink(o.out, o.renderer)
	}

	r := &Registry{
		traces:   make(map[string]*Trace),
		renderer: o.renderer,
		out:      o.out,
		sink:     o.sink,
		logger:   o.logger,
		enricher: o.enricher,
		// the silent buffer never prints live
		silent: newTrace(silentTag, NopSink, o.logger),
	}
	r.GetOrCreate(DefaultTag)
	return r
}

// GetOrCreate returns the trace for tag, creating it if needed.
func (r *Registry) GetOrCreate(tag string) *Trace {
	if t, ok := r.traces[tag]; ok {
		return t
	}
	t := newTrace(tag, r.sink, r.logger)
	r.traces[tag] = t
	r.logger.Debug("trace created", "tag", tag)
	return t
}

// Lookup returns the trace for tag without creating it.
func (r *Registry) Lookup(tag string) (*Trace, bool) {
	t, ok := r.traces[tag]
	return t, ok
}

// Tags returns the known tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.traces))
	for tag := range r.traces {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Activate resumes recording for tag.
func (r *Registry) Activate(tag string) {
	r.GetOrCreate(tag).active = true
	r.logger.Debug("trace activated", "tag", tag)
}

// Deactivate stops recording for tag. Existing events are kept.
func (r *Registry) Deactivate(tag string) {
	r.GetOrCreate(tag).active = false
	r.logger.Debug("trace deactivated", "tag", tag)
}

// Reset drops the events of tag and zeroes its level.
func (r *Registry) Reset(tag string) {
	r.GetOrCreate(tag).Clear()
	r.logger.Debug("trace reset", "tag", tag)
}

// SetMaxDepth makes opens on tag abort once n parsers are nested.
func (r *Registry) SetMaxDepth(tag string, n int) {
	if n < 0 {
		n = 0
	}
	t := r.GetOrCreate(tag)
	t.maxDepth = n
	t.limited = true
	r.logger.Debug("trace max depth set", "tag", tag, "max_depth", n)
}

// ClearMaxDepth removes the nesting limit of tag.
func (r *Registry) ClearMaxDepth(tag string) {
	t := r.GetOrCreate(tag)
	t.maxDepth = 0
	t.limited = false
	r.logger.Debug("trace max depth cleared", "tag", tag)
}

// SetPrintImmediate toggles live output of events for tag.
func (r *Registry) SetPrintImmediate(tag string, on bool) {
	r.GetOrCreate(tag).printImmediate = on
	r.logger.Debug("trace print immediate", "tag", tag, "enabled", on)
}

// Open records an open event on tag.
func (r *Registry) Open(tag, context, input, location string) {
	r.GetOrCreate(tag).Open(context, input, location)
}

// Close records a close event on tag.
func (r *Registry) Close(tag, context, input, location string, kind Kind, detail string) {
	r.GetOrCreate(tag).Close(context, input, location, kind, detail)
}

// LevelOf returns the current level of tag, 0 when the tag is unknown.
func (r *Registry) LevelOf(tag string) int {
	if t, ok := r.traces[tag]; ok {
		return t.level
	}
	return 0
}

// Render returns the rendered trace of tag.
func (r *Registry) Render(tag string) string {
	t, ok := r.traces[tag]
	if !ok {
		return fmt.Sprintf("No trace found for tag '%s'", tag)
	}
	return r.renderer.Render(t.events)
}

// Print writes the rendered trace of tag to the registry output.
func (r *Registry) Print(tag string) error {
	out := r.Render(tag)
	if _, ok := r.traces[tag]; !ok {
		out += "\n"
	}
	if _, err := io.WriteString(r.out, out); err != nil {
		return fmt.Errorf("print trace %q: %w", tag, err)
	}
	return nil
}

// Flush flushes the sink that print-immediate traces write to.
func (r *Registry) Flush() error {
	if err := r.sink.Flush(); err != nil {
		return fmt.Errorf("flush trace sink: %w", err)
	}
	return nil
}

// Renderer returns the renderer used by Render.
func (r *Registry) Renderer() Renderer { return r.renderer }

// Silenced returns the shared buffer that silenced subtrees record into.
func (r *Registry) Silenced() *Trace { return r.silent }

// RenderSilenced renders the silent buffer.
func (r *Registry) RenderSilenced() string {
	return r.renderer.Render(r.silent.events)
}

// Silencing reports whether a silenced region is currently running.
func (r *Registry) Silencing() bool { return len(r.silence) > 0 }

// target returns the trace a wrapped parser on tag records into.
func (r *Registry) target(tag string) *Trace {
	if len(r.silence) > 0 {
		return r.silent
	}
	return r.GetOrCreate(tag)
}

// enterSilence pushes a silence boundary and aligns the silent buffer with
// the depth the region would have had on tag.
func (r *Registry) enterSilence(tag string) {
	baseline := r.LevelOf(tag)
	if len(r.silence) > 0 {
		baseline = r.silent.level
	}
	r.silence = append(r.silence, baseline)
	r.silent.SetLevel(baseline)
}

func (r *Registry) leaveSilence() {
	if n := len(r.silence); n > 0 {
		r.silence = r.silence[:n-1]
	}
}
