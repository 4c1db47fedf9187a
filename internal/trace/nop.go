package trace

// nopSink discards every event.
type nopSink struct{}

// Emit does nothing.
func (nopSink) Emit(Event) {}

// Flush does nothing.
func (nopSink) Flush() error { return nil }

// NopSink is the package-level singleton sink that drops events.
var NopSink Sink = nopSink{}
