package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix, e.g. CTCPLAN_SERVER_ADDR.
const EnvPrefix = "CTCPLAN"

// Settings represents the application settings for the CLI and HTTP server.
type Settings struct {
	Server  ServerSettings  `mapstructure:"server"  yaml:"server"`
	API     APISettings     `mapstructure:"api"     yaml:"api"`
	Logging LoggingSettings `mapstructure:"logging" yaml:"logging"`
	Policy  PolicySettings  `mapstructure:"policy"  yaml:"policy"`
}

// ServerSettings holds HTTP listener settings.
type ServerSettings struct {
	Addr            string        `mapstructure:"addr"             yaml:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// APISettings holds request handling limits.
type APISettings struct {
	CORSOrigins    []string `mapstructure:"cors_origins"     yaml:"cors_origins"`
	RateLimit      float64  `mapstructure:"rate_limit"       yaml:"rate_limit"` // requests per second per client
	RateBurst      int      `mapstructure:"rate_burst"       yaml:"rate_burst"`
	MaxSweepPoints int64    `mapstructure:"max_sweep_points" yaml:"max_sweep_points"`
}

// LoggingSettings holds logging settings.
type LoggingSettings struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// PolicySettings points at an optional tax policy file.
type PolicySettings struct {
	File string `mapstructure:"file" yaml:"file"`
}

// LoadSettings reads settings from a file and environment variables.
// With an empty path the file is optional and searched for as ctcplan.yaml in
// ./config, ~/.ctcplan and the working directory.
//
// Environment variables override file values.
// Format: CTCPLAN_<SECTION>_<KEY>, e.g. CTCPLAN_API_RATE_LIMIT
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ctcplan")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".ctcplan"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}

// DefaultSettings returns the settings used when no file or environment override is present.
func DefaultSettings() *Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	_ = v.Unmarshal(&s)
	return &s
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("api.cors_origins", []string{"http://localhost:5173"})
	v.SetDefault("api.rate_limit", 20.0)
	v.SetDefault("api.rate_burst", 40)
	v.SetDefault("api.max_sweep_points", 2000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("policy.file", "")
}

// Validate checks numeric limits
func (s *Settings) Validate() error {
	if s.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if s.API.RateLimit <= 0 {
		return fmt.Errorf("api.rate_limit must be positive")
	}
	if s.API.RateBurst <= 0 {
		return fmt.Errorf("api.rate_burst must be positive")
	}
	if s.API.MaxSweepPoints <= 0 {
		return fmt.Errorf("api.max_sweep_points must be positive")
	}
	switch strings.ToLower(s.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", s.Logging.Level)
	}
	return nil
}
