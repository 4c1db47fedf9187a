package trace

import "log/slog"

// Trace is the event log and configuration of one tag.
type Trace struct {
	tag            string
	events         []Event
	level          int
	active         bool
	printImmediate bool
	maxDepth       int
	limited        bool
	sink           Sink
	logger         *slog.Logger
}

func newTrace(tag string, sink Sink, logger *slog.Logger) *Trace {
	if sink == nil {
		sink = NopSink
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Trace{
		tag:    tag,
		active: true,
		sink:   sink,
		logger: logger,
	}
}

// Tag returns the tag the trace was created for.
func (t *Trace) Tag() string { return t.tag }

// Level returns the number of opens not yet closed.
func (t *Trace) Level() int { return t.level }

// Active reports whether opens and closes are recorded.
func (t *Trace) Active() bool { return t.active }

// PrintImmediate reports whether events are emitted to the sink as they are recorded.
func (t *Trace) PrintImmediate() bool { return t.printImmediate }

// MaxDepth returns the nesting limit and whether one is set.
func (t *Trace) MaxDepth() (int, bool) { return t.maxDepth, t.limited }

// Len returns the number of recorded events.
func (t *Trace) Len() int { return len(t.events) }

// Events returns a copy of the recorded events in order.
func (t *Trace) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Open records the start of a parser invocation.
// It panics with an *AbortError when the max depth would be exceeded.
func (t *Trace) Open(context, input, location string) {
	if !t.active {
		return
	}
	if t.limited && t.level >= t.maxDepth {
		abort := &AbortError{Kind: AbortMaxDepth, Tag: t.tag, Location: location, Limit: t.maxDepth}
		t.logger.Error("trace aborted", "tag", t.tag, "reason", abort.Kind.String(), "limit", t.maxDepth, "location", location)
		panic(abort)
	}

	ev := Event{
		Depth:    t.level,
		Location: location,
		Context:  context,
		Input:    input,
		Kind:     KindOpen,
	}
	t.events = append(t.events, ev)
	if t.printImmediate {
		t.sink.Emit(ev)
	}
	t.level++
}

// Close records the end of a parser invocation with its outcome.
// It panics with an *AbortError when nothing is open.
func (t *Trace) Close(context, input, location string, kind Kind, detail string) {
	if !t.active {
		return
	}
	if t.level == 0 {
		abort := &AbortError{Kind: AbortUnbalancedClose, Tag: t.tag, Location: location}
		t.logger.Error("trace aborted", "tag", t.tag, "reason", abort.Kind.String(), "location", location)
		panic(abort)
	}
	t.level--

	ev := Event{
		Depth:    t.level,
		Location: location,
		Context:  context,
		Input:    input,
		Kind:     kind,
		Detail:   detail,
	}
	t.events = append(t.events, ev)
	if t.printImmediate {
		t.sink.Emit(ev)
	}
}

// SetLevel forces the current level without recording an event.
func (t *Trace) SetLevel(n int) {
	if n < 0 {
		n = 0
	}
	t.level = n
}

// Clear drops all events and resets the level. Configuration is kept.
func (t *Trace) Clear() {
	t.events = t.events[:0]
	t.level = 0
}
