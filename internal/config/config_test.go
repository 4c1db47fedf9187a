package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"parsetrace/internal/trace"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndApply(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[render]
color = "off"
format = "ndjson"
max_input = 20
enrich = true

[tags.expr_parser]
max_depth = 6
print_immediate = true

[tags.name_parser]
active = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Path)
	require.True(t, cfg.Render.Enrich)
	require.Equal(t, []string{"expr_parser", "name_parser"}, cfg.TagNames())

	renderer, err := cfg.Renderer(false)
	require.NoError(t, err)
	require.Equal(t, trace.Renderer{Format: trace.FormatNDJSON, MaxInput: 20}, renderer)

	r := trace.NewRegistry(trace.WithOutput(io.Discard))
	require.NoError(t, cfg.Apply(r))

	expr := r.GetOrCreate("expr_parser")
	n, ok := expr.MaxDepth()
	require.True(t, ok)
	require.Equal(t, 6, n)
	require.True(t, expr.PrintImmediate())
	require.True(t, expr.Active())
	require.False(t, r.GetOrCreate("name_parser").Active())
	_, limited := r.GetOrCreate("name_parser").MaxDepth()
	require.False(t, limited)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "auto", cfg.Render.Color)
	require.Equal(t, "text", cfg.Render.Format)
	require.Empty(t, cfg.Tags)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"color":        "[render]\ncolor = \"sometimes\"\n",
		"format":       "[render]\nformat = \"xml\"\n",
		"max_input":    "[render]\nmax_input = -1\n",
		"max_depth":    "[tags.a]\nmax_depth = -3\n",
		"unknown key":  "[render]\ncolour = \"on\"\n",
		"syntax error": "[render\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), body))
			require.Error(t, err)
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)

	want, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFindMissing(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	require.NoError(t, err)
	if ok {
		// a parsetrace.toml above the temp dir is outside the test's control
		t.Skip("config found above temp dir")
	}
}
