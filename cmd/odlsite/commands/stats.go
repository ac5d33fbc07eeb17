package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/opendataloader-project/odlsite/internal/logfields"
	"github.com/opendataloader-project/odlsite/internal/metrics"
	"github.com/opendataloader-project/odlsite/internal/stats"
)

// StatsCmd fetches the home page counters once.
type StatsCmd struct{}

func (StatsCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	client := stats.NewClient(cfg.Stats, &http.Client{Timeout: cfg.Server.ClientTimeout}, metrics.NoopRecorder{})
	s, err := client.Fetch(context.Background())
	if err != nil {
		slog.Warn("Using fallback figures for failed sources", logfields.Error(err))
	}
	f := s.Formatted()
	fmt.Printf("GitHub stars:    %d (%s)\n", s.GitHubStars, f.GitHubStars)
	fmt.Printf("PyPI downloads:  %d (%s)\n", s.PyPIDownloads, f.PyPIDownloads)
	return nil
}
