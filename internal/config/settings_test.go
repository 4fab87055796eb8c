package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, 10*time.Second, s.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, s.Server.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, s.API.CORSOrigins)
	assert.Equal(t, 20.0, s.API.RateLimit)
	assert.Equal(t, 40, s.API.RateBurst)
	assert.Equal(t, int64(2000), s.API.MaxSweepPoints)
	assert.Equal(t, "info", s.Logging.Level)
	assert.Empty(t, s.Policy.File)
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.NoError(t, s.Validate())
}

func TestLoadSettings_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctcplan.yaml")
	content := "server:\n" +
		"  addr: \"127.0.0.1:9090\"\n" +
		"  shutdown_timeout: 3s\n" +
		"api:\n" +
		"  cors_origins:\n" +
		"    - \"https://planner.example\"\n" +
		"  max_sweep_points: 50\n" +
		"logging:\n" +
		"  level: debug\n" +
		"policy:\n" +
		"  file: \"/etc/ctcplan/policy.yaml\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", s.Server.Addr)
	assert.Equal(t, 3*time.Second, s.Server.ShutdownTimeout)
	assert.Equal(t, []string{"https://planner.example"}, s.API.CORSOrigins)
	assert.Equal(t, int64(50), s.API.MaxSweepPoints)
	assert.Equal(t, 40, s.API.RateBurst, "unset keys keep their defaults")
	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, "/etc/ctcplan/policy.yaml", s.Policy.File)
}

func TestLoadSettings_EnvOverride(t *testing.T) {
	t.Setenv("CTCPLAN_API_RATE_LIMIT", "5")
	t.Setenv("CTCPLAN_LOGGING_LEVEL", "warn")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 5.0, s.API.RateLimit)
	assert.Equal(t, "warn", s.Logging.Level)
}

func TestLoadSettings_MissingExplicitFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *Settings)
		errorMsg string
	}{
		{"Empty addr", func(s *Settings) { s.Server.Addr = "" }, "server.addr is required"},
		{"Zero rate", func(s *Settings) { s.API.RateLimit = 0 }, "api.rate_limit must be positive"},
		{"Zero burst", func(s *Settings) { s.API.RateBurst = 0 }, "api.rate_burst must be positive"},
		{"Zero sweep cap", func(s *Settings) { s.API.MaxSweepPoints = 0 }, "api.max_sweep_points must be positive"},
		{"Unknown level", func(s *Settings) { s.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}
