package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"parsetrace/internal/batch"
	"parsetrace/internal/grammar"
	"parsetrace/internal/trace"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <grammar> [input...]",
		Short: "Run a demo grammar over many inputs in parallel",
		Long: `Run a demo grammar over every input concurrently, each with its own trace
registry, and print the traces in input order. Inputs come from the arguments
and from --file (one per line).`,
		Args: cobra.MinimumNArgs(1),
		RunE: withProfiling(runBatch),
	}
	addTraceFlags(cmd)
	cmd.Flags().String("file", "", "read inputs from a file, one per line")
	cmd.Flags().Int("jobs", 0, "max parallel jobs (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	g, ok := grammar.Lookup(args[0])
	if !ok {
		return unknownGrammar(args[0])
	}

	inputs, err := batchInputs(cmd, args[1:])
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs (pass them as arguments or with --file)")
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	overrides, err := readTagOverrides(cmd, g.Tag)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	opts := batch.Options{
		Grammar:   g,
		Tag:       overrides.tag,
		Jobs:      jobs,
		Renderer:  sess.renderer,
		Enrich:    sess.enrich,
		Configure: func(r *trace.Registry) error { return sess.configure(r, overrides) },
		Logger:    sess.logger,
	}

	var results []batch.Result
	idx := sess.timer.Begin("run")
	if shouldUseTUI(mode) {
		results, err = runBatchWithUI(cmd.Context(), "parsing "+g.Name, inputs, cmd.ErrOrStderr(), opts)
	} else {
		results, err = batch.Run(cmd.Context(), inputs, opts)
	}
	sess.timer.End(idx, fmt.Sprintf("%d inputs, %d jobs", len(inputs), jobs))
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	idx = sess.timer.Begin("render")
	out := cmd.OutOrStdout()
	aborted := 0
	for i, res := range results {
		if sess.renderer.Format == trace.FormatText {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# [%d] %q\n", res.Index, res.Input)
		}
		fmt.Fprint(out, res.Trace)
		o := outcome{kind: res.Kind, detail: res.Detail, rest: res.Rest}
		if res.Abort != nil {
			o.abort = res.Abort
			aborted++
		}
		if err := writeOutcome(out, sess.renderer.Format, &res.Index, res.Input, o); err != nil {
			return err
		}
	}
	sess.timer.End(idx, "")

	if err := sess.reportTimings(cmd.ErrOrStderr()); err != nil {
		return err
	}
	if aborted > 0 {
		return fmt.Errorf("%d of %d inputs aborted", aborted, len(results))
	}
	return nil
}

func batchInputs(cmd *cobra.Command, args []string) ([]string, error) {
	inputs := append([]string(nil), args...)
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, fmt.Errorf("failed to get file flag: %w", err)
	}
	if path == "" {
		return inputs, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inputs: %w", err)
	}
	defer f.Close()
	lines, err := batch.ReadInputs(f)
	if err != nil {
		return nil, err
	}
	return append(inputs, lines...), nil
}
