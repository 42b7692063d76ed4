package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("CSRF_SECRET", "csrf")
	t.Setenv("BACKEND_BASE_URL", "https://api.solarhub.test/api")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 10, cfg.ReferralPageSize)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CSRF_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			SessionSecret:      "s",
			CSRFSecret:         "c",
			BackendBaseURL:     "http://127.0.0.1:8000/api",
			ReferralPageSize:   10,
			RateLimitPerMinute: 60,
		}
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "relative backend url", mutate: func(c *Config) { c.BackendBaseURL = "/api" }, want: "backend base url"},
		{name: "ftp backend url", mutate: func(c *Config) { c.BackendBaseURL = "ftp://files.test" }, want: "backend base url"},
		{name: "zero page size", mutate: func(c *Config) { c.ReferralPageSize = 0 }, want: "page size"},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimitPerMinute = 0 }, want: "rate limit"},
		{name: "missing csrf secret", mutate: func(c *Config) { c.CSRFSecret = "" }, want: "csrf secret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())
}

func TestNewLoggerFormats(t *testing.T) {
	buf := new(bytes.Buffer)
	newLogger(&Config{LogFormat: "json", AppEnv: "production"}, buf).Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	logger := newLogger(&Config{AppEnv: "production"}, buf)
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&Config{}, buf).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}
