package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"parsetrace/internal/grammar"
	"parsetrace/internal/trace"
)

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo <grammar> [input]",
		Short: "Run a demo grammar once and print its trace",
		Long: `Run a demo grammar over one input and print the trace of a tag.
Without an input the grammar's sample input is used. See 'parsetrace grammars'.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: withProfiling(runDemo),
	}
	addTraceFlags(cmd)
	cmd.Flags().Bool("print-immediate", false, "print events as they are recorded instead of after the run")
	cmd.Flags().Bool("silenced", false, "also print the buffer of silenced subtrees")
	cmd.Flags().String("file", "", "read the input from a file")
	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	g, ok := grammar.Lookup(args[0])
	if !ok {
		return unknownGrammar(args[0])
	}

	input, err := demoInput(cmd, g, args)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	overrides, err := readTagOverrides(cmd, g.Tag)
	if err != nil {
		return err
	}
	showSilenced, err := cmd.Flags().GetBool("silenced")
	if err != nil {
		return fmt.Errorf("failed to get silenced flag: %w", err)
	}

	out := cmd.OutOrStdout()
	timer := sess.timer

	idx := timer.Begin("configure")
	r := trace.NewRegistry(append(sess.registryOptions(), trace.WithOutput(out))...)
	if err := sess.configure(r, overrides); err != nil {
		return err
	}
	timer.End(idx, "")

	var res outcome
	idx = timer.Begin("parse")
	res.abort = trace.Isolate(func() {
		parsed := g.Build(r)(input)
		res.kind = parsed.Kind
		res.detail = parsed.Describe()
		res.rest = parsed.Rest
	})
	if res.abort != nil {
		timer.End(idx, "aborted")
		sess.logger.Warn("run aborted", "grammar", g.Name, "err", res.abort)
	} else {
		timer.End(idx, "")
	}

	idx = timer.Begin("render")
	if err := r.Flush(); err != nil {
		return err
	}
	t, _ := r.Lookup(overrides.tag)
	// print-immediate already streamed the events
	if t == nil || !t.PrintImmediate() {
		if err := r.Print(overrides.tag); err != nil {
			return err
		}
	}
	if showSilenced && r.Silenced().Len() > 0 {
		if sess.renderer.Format == trace.FormatText {
			fmt.Fprintln(out, "silenced:")
		}
		fmt.Fprint(out, r.RenderSilenced())
	}
	if err := writeOutcome(out, sess.renderer.Format, nil, input, res); err != nil {
		return err
	}
	timer.End(idx, "")

	if err := sess.reportTimings(cmd.ErrOrStderr()); err != nil {
		return err
	}
	if res.abort != nil {
		return res.abort
	}
	return nil
}

func demoInput(cmd *cobra.Command, g grammar.Grammar, args []string) (string, error) {
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return "", fmt.Errorf("failed to get file flag: %w", err)
	}
	switch {
	case path != "" && len(args) > 1:
		return "", fmt.Errorf("pass the input either as an argument or with --file, not both")
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return strings.TrimRight(norm.NFC.String(string(data)), "\r\n"), nil
	case len(args) > 1:
		return args[1], nil
	default:
		return g.Input, nil
	}
}

func unknownGrammar(name string) error {
	return fmt.Errorf("unknown grammar %q (available: %s)", name, strings.Join(grammar.Names(), ", "))
}
