// Package batch runs a grammar over many inputs concurrently, one trace
// registry per job.
package batch

import "time"

// Status captures the progress state of one input.
type Status string

const (
	// StatusQueued indicates the input is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the input is being parsed.
	StatusWorking Status = "working"
	// StatusDone indicates the parse finished (whatever its outcome).
	StatusDone Status = "done"
	// StatusError indicates the parse was aborted by the tracer.
	StatusError Status = "error"
)

// Event reports progress for the input at Index.
type Event struct {
	Index   int
	Input   string
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; events arrive from every worker goroutine.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(Event)

func (f ProgressFunc) OnEvent(evt Event) { f(evt) }
