package trace

import (
	"io"
	"sync"
)

// Sink receives events as they are recorded by traces with print-immediate on.
type Sink interface {
	// Emit handles one event. Write errors are not reported.
	Emit(ev Event)

	// Flush ensures all buffered output is written.
	Flush() error
}

// StreamSink writes rendered events immediately to an io.Writer.
type StreamSink struct {
	mu       sync.Mutex
	w        io.Writer
	renderer Renderer
}

// NewStreamSink creates a new StreamSink.
func NewStreamSink(w io.Writer, renderer Renderer) *StreamSink {
	return &StreamSink{w: w, renderer: renderer}
}

// Emit writes an event to the output.
func (s *StreamSink) Emit(ev Event) {
	data := s.renderer.RenderEvent(ev)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Best-effort write - a broken terminal must not fail the parse
	_, _ = io.WriteString(s.w, data)
}

// Flush calls the writer's Flush method when it has one.
func (s *StreamSink) Flush() error {
	if flusher, ok := s.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// SliceSink collects emitted events in memory.
type SliceSink struct {
	Events []Event
}

// Emit appends the event.
func (s *SliceSink) Emit(ev Event) { s.Events = append(s.Events, ev) }

// Flush does nothing.
func (s *SliceSink) Flush() error { return nil }
