package config

import (
	"fmt"
	"time"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		&siteDefaults{},
		&serverDefaults{},
		&docsDefaults{},
		&samplesDefaults{},
		&contactDefaults{},
		&statsDefaults{},
		&analyticsDefaults{},
		&loggingDefaults{},
		&monitoringDefaults{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("apply %s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}

type siteDefaults struct{}

func (siteDefaults) Domain() string { return "site" }

func (siteDefaults) ApplyDefaults(cfg *Config) error {
	s := &cfg.Site
	if s.Name == "" {
		s.Name = "OpenDataLoader PDF"
	}
	if s.BaseURL == "" {
		s.BaseURL = "https://opendataloader.org"
	}
	if s.Title == "" {
		s.Title = "OpenDataLoader PDF"
	}
	if s.Description == "" {
		s.Description = "Fast, accurate PDF parsing for RAG and LLM pipelines. 100% local, no GPU required."
	}
	if s.GitHubURL == "" {
		s.GitHubURL = "https://github.com/opendataloader-project/opendataloader-pdf"
	}
	if s.PyPIURL == "" {
		s.PyPIURL = "https://pypi.org/project/opendataloader-pdf/"
	}
	if s.NPMURL == "" {
		s.NPMURL = "https://www.npmjs.com/package/@opendataloader/pdf"
	}
	return nil
}

type serverDefaults struct{}

func (serverDefaults) Domain() string { return "server" }

func (serverDefaults) ApplyDefaults(cfg *Config) error {
	s := &cfg.Server
	if s.Port == 0 {
		s.Port = 3000
	}
	if s.AdminPort == 0 {
		s.AdminPort = 9090
	}
	if s.ReadTimeout <= 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = 60 * time.Second
	}
	if s.IdleTimeout <= 0 {
		s.IdleTimeout = 120 * time.Second
	}
	if s.ClientTimeout <= 0 {
		s.ClientTimeout = 10 * time.Second
	}
	return nil
}

type docsDefaults struct{}

func (docsDefaults) Domain() string { return "docs" }

func (docsDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Docs.ContentDir == "" {
		cfg.Docs.ContentDir = "content/docs"
		cfg.Docs.GitLastModified = true
	}
	return nil
}

type samplesDefaults struct{}

func (samplesDefaults) Domain() string { return "samples" }

func (samplesDefaults) ApplyDefaults(cfg *Config) error {
	s := &cfg.Samples
	if s.Start == "" {
		s.Start = "01030000000000"
	}
	if s.Total == 0 {
		s.Total = 201
	}
	if s.BlobBaseURL == "" {
		s.BlobBaseURL = "https://ysmaetzypmnjyfbz.public.blob.vercel-storage.com"
	}
	if s.ThumbnailBaseURL == "" {
		s.ThumbnailBaseURL = "https://github.com/opendataloader-project/opendataloader-sample/raw/refs/heads/main/pdfs_thumbnail"
	}
	if s.Backend == "" {
		s.Backend = BlobBackendHTTP
	}
	if s.CacheEntries == 0 {
		s.CacheEntries = 256
	}
	return nil
}

type contactDefaults struct{}

func (contactDefaults) Domain() string { return "contact" }

func (contactDefaults) ApplyDefaults(cfg *Config) error {
	c := &cfg.Contact
	c.ResendAPIKey = envOr("RESEND_API_KEY", c.ResendAPIKey)
	if c.From == "" {
		c.From = "noreply@opendataloader.org"
	}
	if c.To == "" {
		c.To = "open.dataloader@hancom.com"
	}
	return nil
}

type statsDefaults struct{}

func (statsDefaults) Domain() string { return "stats" }

func (statsDefaults) ApplyDefaults(cfg *Config) error {
	s := &cfg.Stats
	if s.GitHubRepo == "" {
		s.GitHubRepo = "opendataloader-project/opendataloader-pdf"
	}
	if s.GitHubToken == "" {
		s.GitHubToken = envOr("GITHUB_TOKEN", "")
	}
	if s.GitHubAPIURL == "" {
		s.GitHubAPIURL = "https://api.github.com"
	}
	if s.PyPIPackage == "" {
		s.PyPIPackage = "opendataloader-pdf"
	}
	if s.PyPIStatsURL == "" {
		s.PyPIStatsURL = "https://pypistats.org"
	}
	if s.RefreshInterval <= 0 {
		s.RefreshInterval = time.Hour
	}
	if s.FallbackStars == 0 {
		s.FallbackStars = 700
	}
	if s.FallbackDownloads == 0 {
		s.FallbackDownloads = 10000
	}
	return nil
}

type analyticsDefaults struct{}

func (analyticsDefaults) Domain() string { return "analytics" }

func (analyticsDefaults) ApplyDefaults(cfg *Config) error {
	a := &cfg.Analytics
	if a.GoogleAnalyticsID == "" {
		a.GoogleAnalyticsID = envOr("GA_ID", "")
	}
	if a.NATSURL == "" {
		a.NATSURL = envOr("NATS_URL", "")
	}
	if a.NATSURL != "" && a.Subject == "" {
		a.Subject = "odlsite.analytics.events"
	}
	return nil
}

type loggingDefaults struct{}

func (loggingDefaults) Domain() string { return "logging" }

func (loggingDefaults) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}

type monitoringDefaults struct{}

func (monitoringDefaults) Domain() string { return "monitoring" }

func (monitoringDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Monitoring.MetricsPath == "" {
		cfg.Monitoring.MetricsPath = "/metrics"
		cfg.Monitoring.MetricsEnabled = true
	}
	return nil
}
