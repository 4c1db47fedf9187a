package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"parsetrace/internal/config"
	"parsetrace/internal/logging"
	"parsetrace/internal/observ"
	"parsetrace/internal/trace"
)

func configFileName() string { return config.FileName }

// session bundles what every trace-producing command derives from its
// flags and the config file. Flags win over config values.
type session struct {
	cfg      config.Config
	renderer trace.Renderer
	logger   *slog.Logger
	enrich   bool
	timer    *observ.Timer
	timings  bool
}

func newSession(cmd *cobra.Command) (*session, error) {
	root := cmd.Root()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	colorFlag, err := root.PersistentFlags().GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if colorFlag == "" {
		colorFlag = cfg.Render.Color
	}
	mode, err := readColorMode(colorFlag)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		cfg.Render.Format = f.Value.String()
	}
	if cmd.Flags().Changed("max-input") {
		n, err := cmd.Flags().GetInt("max-input")
		if err != nil {
			return nil, fmt.Errorf("failed to get max-input flag: %w", err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid --max-input %d", n)
		}
		cfg.Render.MaxInput = int64(n)
	}
	if cmd.Flags().Changed("enrich") {
		enrich, err := cmd.Flags().GetBool("enrich")
		if err != nil {
			return nil, fmt.Errorf("failed to get enrich flag: %w", err)
		}
		cfg.Render.Enrich = enrich
	}

	renderer, err := cfg.Renderer(mode.enabled(os.Stdout))
	if err != nil {
		return nil, err
	}

	levelStr, err := root.PersistentFlags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	logger := logging.Init(cmd.ErrOrStderr(), renderer.Format == trace.FormatNDJSON, logging.ParseLevel(levelStr))
	if cfg.Path != "" {
		logger.Debug("config loaded", "path", cfg.Path)
	}

	timings, err := root.PersistentFlags().GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	return &session{
		cfg:      cfg,
		renderer: renderer,
		logger:   logger,
		enrich:   cfg.Render.Enrich,
		timer:    observ.NewTimer(),
		timings:  timings,
	}, nil
}

func (s *session) reportTimings(w io.Writer) error {
	if !s.timings {
		return nil
	}
	_, err := s.timer.Report().WriteTo(w)
	return err
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := config.Find(".")
		if err != nil {
			return config.Config{}, err
		}
		if !ok {
			return config.Default(), nil
		}
		path = found
	}
	return config.Load(path)
}

// tagOverrides are the per-tag flags shared by demo and batch.
type tagOverrides struct {
	tag            string
	maxDepth       int // < 0 keeps the configured value
	printImmediate bool
}

func readTagOverrides(cmd *cobra.Command, defaultTag string) (tagOverrides, error) {
	tag, err := cmd.Flags().GetString("tag")
	if err != nil {
		return tagOverrides{}, fmt.Errorf("failed to get tag flag: %w", err)
	}
	if tag == "" {
		tag = defaultTag
	}
	maxDepth, err := cmd.Flags().GetInt("max-depth")
	if err != nil {
		return tagOverrides{}, fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	var printImmediate bool
	if cmd.Flags().Lookup("print-immediate") != nil {
		printImmediate, err = cmd.Flags().GetBool("print-immediate")
		if err != nil {
			return tagOverrides{}, fmt.Errorf("failed to get print-immediate flag: %w", err)
		}
	}
	return tagOverrides{tag: tag, maxDepth: maxDepth, printImmediate: printImmediate}, nil
}

// configure applies the config file and then the flag overrides to r.
func (s *session) configure(r *trace.Registry, o tagOverrides) error {
	if err := s.cfg.Apply(r); err != nil {
		return err
	}
	if o.maxDepth >= 0 {
		r.SetMaxDepth(o.tag, o.maxDepth)
	}
	if o.printImmediate {
		r.SetPrintImmediate(o.tag, true)
	}
	return nil
}

func (s *session) registryOptions() []trace.Option {
	opts := []trace.Option{
		trace.WithRenderer(s.renderer),
		trace.WithLogger(s.logger),
	}
	if s.enrich {
		opts = append(opts, trace.WithEnricher(trace.Breadcrumbs))
	}
	return opts
}

func addTraceFlags(cmd *cobra.Command) {
	cmd.Flags().String("tag", "", "tag whose trace is printed (default: the grammar's main tag)")
	cmd.Flags().Int("max-depth", -1, "abort once this many parsers are nested on the tag (-1: no limit)")
	cmd.Flags().String("format", "text", "trace format (text|ndjson)")
	cmd.Flags().Int("max-input", 0, "truncate input snapshots to this display width (0: no limit)")
	cmd.Flags().Bool("enrich", false, "attach location breadcrumbs to parse errors")
}
