package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/preview"
	"github.com/opendataloader-project/odlsite/internal/server/httpserver"
)

// PreviewCmd serves the site while watching the docs directory.
type PreviewCmd struct {
	DocsDir      string `short:"d" name:"docs-dir" help:"Docs directory to watch (defaults to docs.content_dir)."`
	Port         int    `name:"port" default:"3000" help:"Site port."`
	NoLiveReload bool   `name:"no-live-reload" help:"Disable the live reload stream."`
}

func (p *PreviewCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if p.DocsDir != "" {
		cfg.Docs.ContentDir = p.DocsDir
	}
	cfg.Server.Port = p.Port
	cfg.Server.AdminPort = 0
	cfg.Site.BaseURL = fmt.Sprintf("http://localhost:%d", p.Port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.close() }()

	// A broken page should not stop authoring; the watcher retries on the next save.
	if err := a.docs.Reload(ctx); err != nil {
		slog.Error("initial docs load failed", logfields.Error(err))
	}
	if err := a.refresher.Start(ctx); err != nil {
		return err
	}

	var hub *preview.LiveReloadHub
	opts := httpserver.Options{}
	if !p.NoLiveReload {
		hub = preview.NewLiveReloadHub()
		opts.LiveReloadHub = hub
	}
	watcher, err := preview.NewWatcher(cfg.Docs.ContentDir, a.docs, hub)
	if err != nil {
		return err
	}
	opts.ReloadStatus = watcher

	srv := httpserver.New(cfg, a.deps, opts)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	slog.Info("Preview server listening", logfields.URL(cfg.Site.BaseURL+"/docs"))

	werr := watcher.Run(ctx)
	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()
	if err := srv.Stop(stopCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return werr
}
