package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsetrace/internal/prof"
)

// withProfiling runs fn with the profilers requested by the persistent
// profiling flags, stopping them even when fn fails.
func withProfiling(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		root := cmd.Root()
		var opts prof.Options
		if opts.CPU, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
			return fmt.Errorf("failed to get cpu-profile flag: %w", err)
		}
		if opts.Mem, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
			return fmt.Errorf("failed to get mem-profile flag: %w", err)
		}
		if opts.Trace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
			return fmt.Errorf("failed to get runtime-trace flag: %w", err)
		}

		stop, err := prof.Start(opts)
		if err != nil {
			return err
		}
		defer func() {
			if stopErr := stop(); stopErr != nil && err == nil {
				err = stopErr
			}
		}()
		return fn(cmd, args)
	}
}
