package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/opendataloader-project/odlsite/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve   ServeCmd   `cmd:"" help:"Serve the website, docs and APIs"`
	Preview PreviewCmd `cmd:"" help:"Serve with a docs watcher and live reload for local authoring"`
	Export  ExportCmd  `cmd:"" help:"Write sitemap.xml, llms.txt, llms-full.txt and samples.json to a directory"`
	Samples SamplesCmd `cmd:"" help:"Inspect the demo sample catalog"`
	Stats   StatsCmd   `cmd:"" help:"Fetch GitHub stars and PyPI downloads once"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; sets up a default logger until the
// configuration is loaded.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig reads the configuration file, falling back to defaults when the
// default path does not exist, and applies the configured logger.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if _, statErr := os.Stat(root.Config); errors.Is(statErr, fs.ErrNotExist) && root.Config == "config.yaml" {
		slog.Debug("No configuration file; using defaults", slog.String("path", root.Config))
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(root.Config)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	g.Logger = cfg.Logging.NewLogger(os.Stderr, root.Verbose)
	slog.SetDefault(g.Logger)
	return cfg, nil
}
