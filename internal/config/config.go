// Package config loads parsetrace.toml and applies it to a trace registry.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"parsetrace/internal/trace"
)

// FileName is the configuration file looked up by the CLI.
const FileName = "parsetrace.toml"

// Config is the decoded configuration file.
type Config struct {
	Path   string               `toml:"-"`
	Render RenderConfig         `toml:"render"`
	Tags   map[string]TagConfig `toml:"tags"`
}

// RenderConfig controls how traces are rendered.
type RenderConfig struct {
	Color    string `toml:"color"`  // auto|on|off
	Format   string `toml:"format"` // text|ndjson
	MaxInput int64  `toml:"max_input"`
	Enrich   bool   `toml:"enrich"`
}

// TagConfig holds per-tag settings. Nil fields keep the registry default.
type TagConfig struct {
	Active         *bool  `toml:"active"`
	PrintImmediate *bool  `toml:"print_immediate"`
	MaxDepth       *int64 `toml:"max_depth"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Render: RenderConfig{Color: "auto", Format: "text"},
		Tags:   map[string]TagConfig{},
	}
}

// Load decodes the file at path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Tags == nil {
		cfg.Tags = map[string]TagConfig{}
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	switch strings.ToLower(c.Render.Color) {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("render.color: invalid value %q (expected auto|on|off)", c.Render.Color)
	}
	if _, err := trace.ParseFormat(c.Render.Format); err != nil {
		return fmt.Errorf("render.format: %w", err)
	}
	if _, err := safecast.Conv[int](c.Render.MaxInput); err != nil || c.Render.MaxInput < 0 {
		return fmt.Errorf("render.max_input: invalid value %d", c.Render.MaxInput)
	}
	for _, name := range c.TagNames() {
		tc := c.Tags[name]
		if tc.MaxDepth == nil {
			continue
		}
		if _, err := safecast.Conv[int](*tc.MaxDepth); err != nil || *tc.MaxDepth < 0 {
			return fmt.Errorf("tags.%s.max_depth: invalid value %d", name, *tc.MaxDepth)
		}
	}
	return nil
}

// TagNames returns the configured tags in sorted order.
func (c Config) TagNames() []string {
	names := make([]string, 0, len(c.Tags))
	for name := range c.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Renderer builds the renderer described by the config. color is the
// resolved color decision (auto already settled by the caller).
func (c Config) Renderer(color bool) (trace.Renderer, error) {
	format, err := trace.ParseFormat(c.Render.Format)
	if err != nil {
		return trace.Renderer{}, err
	}
	maxInput, err := safecast.Conv[int](c.Render.MaxInput)
	if err != nil {
		return trace.Renderer{}, fmt.Errorf("render.max_input: %w", err)
	}
	return trace.Renderer{Color: color, Format: format, MaxInput: maxInput}, nil
}

// Apply configures every listed tag on r.
func (c Config) Apply(r *trace.Registry) error {
	for _, name := range c.TagNames() {
		tc := c.Tags[name]
		if tc.Active != nil {
			if *tc.Active {
				r.Activate(name)
			} else {
				r.Deactivate(name)
			}
		}
		if tc.PrintImmediate != nil {
			r.SetPrintImmediate(name, *tc.PrintImmediate)
		}
		if tc.MaxDepth != nil {
			n, err := safecast.Conv[int](*tc.MaxDepth)
			if err != nil {
				return fmt.Errorf("tags.%s.max_depth: %w", name, err)
			}
			r.SetMaxDepth(name, n)
		}
	}
	return nil
}
