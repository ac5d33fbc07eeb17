package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("NATS_URL", "")

	cfg, err := Parse([]byte("site:\n  name: Test\n"))
	require.NoError(t, err)

	assert.Equal(t, "Test", cfg.Site.Name)
	assert.Equal(t, "https://opendataloader.org", cfg.Site.BaseURL)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ClientTimeout)
	assert.Equal(t, "01030000000000", cfg.Samples.Start)
	assert.Equal(t, 201, cfg.Samples.Total)
	assert.Equal(t, BlobBackendHTTP, cfg.Samples.Backend)
	assert.Equal(t, "open.dataloader@hancom.com", cfg.Contact.To)
	assert.Equal(t, "noreply@opendataloader.org", cfg.Contact.From)
	assert.False(t, cfg.Contact.Configured())
	assert.Equal(t, time.Hour, cfg.Stats.RefreshInterval)
	assert.Equal(t, 700, cfg.Stats.FallbackStars)
	assert.Equal(t, 10000, cfg.Stats.FallbackDownloads)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, "/metrics", cfg.Monitoring.MetricsPath)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("ODL_TEST_KEY", "re_123")
	t.Setenv("RESEND_API_KEY", "")

	cfg, err := Parse([]byte("contact:\n  resend_api_key: ${ODL_TEST_KEY}\n"))
	require.NoError(t, err)
	assert.Equal(t, "re_123", cfg.Contact.ResendAPIKey)
	assert.True(t, cfg.Contact.Configured())
}

func TestParse_EnvironmentFallbacks(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_env")
	t.Setenv("GITHUB_TOKEN", "ghp_env")
	t.Setenv("GA_ID", "G-TEST")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, "re_env", cfg.Contact.ResendAPIKey)
	assert.Equal(t, "ghp_env", cfg.Stats.GitHubToken)
	assert.Equal(t, "G-TEST", cfg.Analytics.GoogleAnalyticsID)
	assert.Equal(t, "nats://localhost:4222", cfg.Analytics.NATSURL)
	assert.Equal(t, "odlsite.analytics.events", cfg.Analytics.Subject)
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad start", "samples:\n  start: \"12\"\n", "Samples.Start"},
		{"gcs without bucket", "samples:\n  backend: gcs\n", "Samples.GCSBucket"},
		{"unknown backend", "samples:\n  backend: s3\n", "Samples.Backend"},
		{"bad recipient", "contact:\n  to: nobody\n", "Contact.To"},
		{"same ports", "server:\n  port: 8080\n  admin_port: 8080\n", "Server.AdminPort"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false), "existing file must not be overwritten without force")
	require.NoError(t, Init(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "${RESEND_API_KEY}")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://opendataloader.org", cfg.Site.BaseURL)
}

func TestLogLevel_Normalization(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel("WARNING"))
	assert.Equal(t, LogLevelDebug, NormalizeLogLevel(" debug "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
}

func TestLoad_ExampleConfig(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GA_ID", "G-EXAMPLE")

	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "re_test", cfg.Contact.ResendAPIKey)
	assert.Equal(t, "G-EXAMPLE", cfg.Analytics.GoogleAnalyticsID)
	assert.Equal(t, BlobBackendHTTP, cfg.Samples.Backend)
	assert.Equal(t, time.Hour, cfg.Stats.RefreshInterval)
	assert.True(t, cfg.Contact.Configured())
}
