package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the odlsite configuration file.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Server     ServerConfig     `yaml:"server"`
	Docs       DocsConfig       `yaml:"docs"`
	Samples    SamplesConfig    `yaml:"samples"`
	Contact    ContactConfig    `yaml:"contact"`
	Stats      StatsConfig      `yaml:"stats"`
	Analytics  AnalyticsConfig  `yaml:"analytics"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// SiteConfig holds page metadata shared by every rendered page.
type SiteConfig struct {
	Name        string `yaml:"name" validate:"required"`
	BaseURL     string `yaml:"base_url" validate:"required,url"`
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description,omitempty"`
	GitHubURL   string `yaml:"github_url,omitempty" validate:"omitempty,url"`
	PyPIURL     string `yaml:"pypi_url,omitempty" validate:"omitempty,url"`
	NPMURL      string `yaml:"npm_url,omitempty" validate:"omitempty,url"`
}

// ServerConfig configures the public site listener and the admin listener.
type ServerConfig struct {
	Port          int           `yaml:"port" validate:"min=1,max=65535"`
	AdminPort     int           `yaml:"admin_port" validate:"min=0,max=65535,nefield=Port"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	ClientTimeout time.Duration `yaml:"client_timeout"` // outbound HTTP (blob, GitHub, PyPI)
}

// DocsConfig points at the documentation collection.
type DocsConfig struct {
	ContentDir string `yaml:"content_dir" validate:"required"`
	// GitLastModified resolves page last-modified times from git history when the
	// content directory lives inside a repository.
	GitLastModified bool `yaml:"git_last_modified"`
}

// SamplesConfig describes the demo sample range and where its assets live.
type SamplesConfig struct {
	Start            string      `yaml:"start" validate:"required,numeric,len=14"`
	Total            int         `yaml:"total" validate:"min=1"`
	BlobBaseURL      string      `yaml:"blob_base_url" validate:"required,url"`
	ThumbnailBaseURL string      `yaml:"thumbnail_base_url" validate:"required,url"`
	Backend          BlobBackend `yaml:"backend" validate:"oneof=http gcs"`
	GCSBucket        string      `yaml:"gcs_bucket,omitempty" validate:"required_if=Backend gcs"`
	CacheEntries     int         `yaml:"cache_entries" validate:"min=0"`
}

// BlobBackend selects how sample payloads are fetched.
type BlobBackend string

const (
	BlobBackendHTTP BlobBackend = "http"
	BlobBackendGCS  BlobBackend = "gcs"
)

// ContactConfig configures the contact relay.
// An empty API key is allowed: the relay then answers with a configuration error.
type ContactConfig struct {
	ResendAPIKey string `yaml:"resend_api_key,omitempty"`
	From         string `yaml:"from" validate:"omitempty,email"`
	To           string `yaml:"to" validate:"required,email"`
	ResendURL    string `yaml:"resend_url,omitempty" validate:"omitempty,url"`
}

// Configured reports whether the relay has everything it needs to send.
func (c ContactConfig) Configured() bool {
	return c.ResendAPIKey != "" && c.From != ""
}

// StatsConfig configures the GitHub/PyPI counters shown on the home page.
type StatsConfig struct {
	GitHubRepo        string        `yaml:"github_repo" validate:"required"`
	GitHubToken       string        `yaml:"github_token,omitempty"`
	GitHubAPIURL      string        `yaml:"github_api_url" validate:"required,url"`
	PyPIPackage       string        `yaml:"pypi_package" validate:"required"`
	PyPIStatsURL      string        `yaml:"pypi_stats_url" validate:"required,url"`
	RefreshInterval   time.Duration `yaml:"refresh_interval"`
	FallbackStars     int           `yaml:"fallback_stars" validate:"min=0"`
	FallbackDownloads int           `yaml:"fallback_downloads" validate:"min=0"`
}

// AnalyticsConfig lists the consent-gated scripts and the event sink.
type AnalyticsConfig struct {
	GoogleAnalyticsID string `yaml:"google_analytics_id,omitempty"`
	VercelAnalytics   bool   `yaml:"vercel_analytics"`
	SpeedInsights     bool   `yaml:"speed_insights"`
	NATSURL           string `yaml:"nats_url,omitempty"`
	Subject           string `yaml:"subject,omitempty" validate:"required_with=NATSURL"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MonitoringConfig toggles the admin metrics endpoint.
type MonitoringConfig struct {
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	MetricsPath    string `yaml:"metrics_path"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML (after ${VAR} expansion), applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a validated configuration built only from defaults and the
// environment. The serverless contact entry point uses it.
func Default() (*Config, error) {
	loadEnvFiles()
	cfg := &Config{}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := &Config{}
	if err := applyDefaults(example); err != nil {
		return err
	}
	// Secrets are referenced, never written.
	example.Contact.ResendAPIKey = "${RESEND_API_KEY}"
	example.Stats.GitHubToken = "${GITHUB_TOKEN}"
	example.Analytics.GoogleAnalyticsID = "${GA_ID}"

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
