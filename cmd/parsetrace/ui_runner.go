package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"parsetrace/internal/batch"
	"parsetrace/internal/ui"
)

type batchOutcome struct {
	results []batch.Result
	err     error
}

func runBatchWithUI(ctx context.Context, title string, inputs []string, out io.Writer, opts batch.Options) ([]batch.Result, error) {
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = batch.ChannelSink{Ch: events}
		res, err := batch.Run(ctx, inputs, optsCopy)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, inputs, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// keep the runner unblocked if the view quit early
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
