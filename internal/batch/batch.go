package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"parsetrace/internal/grammar"
	"parsetrace/internal/trace"
)

// Options configures Run.
type Options struct {
	Grammar  grammar.Grammar
	Tag      string // tag to render; defaults to the grammar's tag
	Jobs     int    // worker limit; <= 0 means GOMAXPROCS
	Renderer trace.Renderer
	Enrich   bool
	// Configure is applied to every job's registry before parsing.
	Configure func(*trace.Registry) error
	Progress  ProgressSink
	Logger    *slog.Logger
}

// Result is the outcome of one input.
type Result struct {
	Index   int
	Input   string
	Kind    trace.Kind // zero when the run was aborted
	Rest    string
	Detail  string
	Err     error             // error carried by the parse result
	Abort   *trace.AbortError // tracer abort, if any
	Trace   string            // rendered trace of Tag
	Elapsed time.Duration
}

// Aborted reports whether the tracer stopped the run.
func (r Result) Aborted() bool { return r.Abort != nil }

// Run parses every input with opts.Grammar. Results are returned in input
// order regardless of completion order.
func Run(ctx context.Context, inputs []string, opts Options) ([]Result, error) {
	if opts.Grammar.Build == nil {
		return nil, errors.New("batch: no grammar")
	}
	if len(inputs) == 0 {
		return nil, nil
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tag := opts.Tag
	if tag == "" {
		tag = opts.Grammar.Tag
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for i, in := range inputs {
		report(opts.Progress, Event{Index: i, Input: in, Status: StatusQueued})
	}

	// indices are unique per goroutine, no mutex needed
	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(inputs)))

	for i, in := range inputs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			report(opts.Progress, Event{Index: i, Input: in, Status: StatusWorking})
			res, err := runOne(gctx, i, in, tag, opts, logger)
			if err != nil {
				return err
			}
			results[i] = res

			status := StatusDone
			var evErr error
			if res.Abort != nil {
				status = StatusError
				evErr = res.Abort
			}
			report(opts.Progress, Event{Index: i, Input: in, Status: status, Err: evErr, Elapsed: res.Elapsed})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runOne(ctx context.Context, index int, input, tag string, opts Options, logger *slog.Logger) (Result, error) {
	regOpts := []trace.Option{
		trace.WithOutput(io.Discard),
		trace.WithRenderer(opts.Renderer),
		trace.WithLogger(logger.With("job", index)),
	}
	if opts.Enrich {
		regOpts = append(regOpts, trace.WithEnricher(trace.Breadcrumbs))
	}
	r := trace.NewRegistry(regOpts...)
	if opts.Configure != nil {
		if err := opts.Configure(r); err != nil {
			return Result{}, fmt.Errorf("configure job %d: %w", index, err)
		}
	}
	ctx = trace.WithRegistry(ctx, r)

	res := Result{Index: index, Input: input}
	start := time.Now()
	abortErr := trace.Isolate(func() {
		p := opts.Grammar.Build(trace.FromContext(ctx))
		out := p(input)
		res.Kind = out.Kind
		res.Rest = out.Rest
		res.Detail = out.Describe()
		res.Err = out.Err
	})
	res.Elapsed = time.Since(start)

	if abortErr != nil {
		var abort *trace.AbortError
		if errors.As(abortErr, &abort) {
			res.Abort = abort
		}
	}
	res.Trace = r.Render(tag)
	return res, nil
}

func report(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

// ReadInputs reads one input per line from r, NFC-normalized.
// Blank lines are skipped.
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		inputs = append(inputs, norm.NFC.String(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}
	return inputs, nil
}
