package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/server/httpserver"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Port      int `help:"Override the site port"`
	AdminPort int `name:"admin-port" help:"Override the admin port (0 keeps the configured value)"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if s.Port > 0 {
		cfg.Server.Port = s.Port
	}
	if s.AdminPort > 0 {
		cfg.Server.AdminPort = s.AdminPort
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(); cerr != nil {
			slog.Warn("shutdown cleanup", logfields.Error(cerr))
		}
	}()

	if err := a.docs.Reload(ctx); err != nil {
		return fmt.Errorf("load docs from %s: %w", cfg.Docs.ContentDir, err)
	}
	if err := a.refresher.Start(ctx); err != nil {
		return err
	}

	srv := httpserver.New(cfg, a.deps, httpserver.Options{SecureCookies: strings.HasPrefix(cfg.Site.BaseURL, "https://")})
	if err := srv.Start(ctx); err != nil {
		return err
	}
	slog.Info("Serving", logfields.URL(cfg.Site.BaseURL), slog.Int("docs_pages", len(a.docs.Current().Pages())))

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping servers...")
	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()
	return srv.Stop(stopCtx)
}
