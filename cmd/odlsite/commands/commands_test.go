package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*kong.Context, *CLI) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Bind(&Global{}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return ctx, &cli
}

func TestParse_Commands(t *testing.T) {
	ctx, cli := parse(t, "-c", "site.yaml", "samples", "list", "-q", "0001")
	assert.Equal(t, "samples list", ctx.Command())
	assert.Equal(t, "site.yaml", cli.Config)
	assert.Equal(t, "0001", cli.Samples.List.Query)

	ctx, cli = parse(t, "preview", "--docs-dir", "content", "--no-live-reload")
	assert.Equal(t, "preview", ctx.Command())
	assert.Equal(t, 3000, cli.Preview.Port)
	assert.True(t, cli.Preview.NoLiveReload)
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, RunInit(path, false))
	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Error(t, RunInit(path, false))
	assert.NoError(t, RunInit(path, true))
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	content := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(content, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(content, "quick-start.md"),
		[]byte("---\ntitle: Quick Start\ndescription: Install and run\n---\n\n## Install\n\npip install opendataloader-pdf\n"), 0o644))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("docs:\n  content_dir: "+content+"\n"), 0o644))

	out := filepath.Join(dir, "public")
	ctx, _ := parse(t, "-c", cfgPath, "export", "-o", out)
	require.NoError(t, ctx.Run())

	sitemap, err := os.ReadFile(filepath.Join(out, "sitemap.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "/docs/quick-start")

	full, err := os.ReadFile(filepath.Join(out, "llms-full.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(full), "Quick Start")

	var docs []map[string]any
	raw, err := os.ReadFile(filepath.Join(out, "samples.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &docs))
	assert.NotEmpty(t, docs)
	assert.Len(t, docs[0]["id"], 14)
}
