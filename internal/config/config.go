// Package config resolves crickstats settings from an optional YAML file,
// an optional .env file and CRICKSTATS_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Ranges accepted by the dashboard scope.
const (
	RangeAll = "all"
	Range5   = "5"
	Range10  = "10"
)

// Config holds the effective settings of one invocation.
type Config struct {
	DB       string   `yaml:"db"`
	LogLevel string   `yaml:"log_level"`
	Range    string   `yaml:"range"`
	TopN     int      `yaml:"top_n"`
	Features Features `yaml:"features"`
}

// Features are on/off switches surfaced by `crickstats config`. None of them
// changes how numbers are aggregated.
type Features struct {
	BehavioralTracking bool `yaml:"behavioral_tracking"`
	Chat               bool `yaml:"chat"`
	Personalization    bool `yaml:"personalization"`
	SearchFallback     bool `yaml:"search_fallback"`
	Insights           bool `yaml:"insights"`
}

// Load reads path (missing is fine), then fills defaults and applies env overrides.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	// Insights default on; the YAML file may switch them off.
	cfg := Config{Features: Features{Insights: true}}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config yaml: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg = applyDefaults(cfg)
	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultDBPath returns ~/.crickstats/crickstats.db, or a relative path when
// the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "crickstats.db"
	}
	return filepath.Join(home, ".crickstats", "crickstats.db")
}

func applyDefaults(cfg Config) Config {
	if cfg.DB == "" {
		cfg.DB = DefaultDBPath()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.Range == "" {
		cfg.Range = RangeAll
	}
	if cfg.TopN == 0 {
		cfg.TopN = 5
	}
	return cfg
}

func applyEnv(cfg Config) Config {
	if val := os.Getenv("CRICKSTATS_DB"); val != "" {
		cfg.DB = val
	}
	if val := os.Getenv("CRICKSTATS_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}
	if val := os.Getenv("CRICKSTATS_RANGE"); val != "" {
		cfg.Range = strings.ToLower(val)
	}
	if val := os.Getenv("CRICKSTATS_TOP_N"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.TopN = n
		}
	}
	cfg.Features.BehavioralTracking = boolEnvOrDefault("CRICKSTATS_FEATURE_BEHAVIORAL", cfg.Features.BehavioralTracking)
	cfg.Features.Chat = boolEnvOrDefault("CRICKSTATS_FEATURE_CHAT", cfg.Features.Chat)
	cfg.Features.Personalization = boolEnvOrDefault("CRICKSTATS_FEATURE_PERSONALIZATION", cfg.Features.Personalization)
	cfg.Features.SearchFallback = boolEnvOrDefault("CRICKSTATS_FEATURE_SEARCH_FALLBACK", cfg.Features.SearchFallback)
	cfg.Features.Insights = boolEnvOrDefault("CRICKSTATS_FEATURE_INSIGHTS", cfg.Features.Insights)
	return cfg
}

// Validate rejects settings no command can act on.
func (c Config) Validate() error {
	if _, err := ParseRange(c.Range); err != nil {
		return err
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be at least 1, got %d", c.TopN)
	}
	return nil
}

// ParseRange turns a dashboard range into a session limit. 0 means all sessions.
func ParseRange(r string) (int, error) {
	switch strings.ToLower(r) {
	case RangeAll, "":
		return 0, nil
	case Range5:
		return 5, nil
	case Range10:
		return 10, nil
	}
	return 0, fmt.Errorf("invalid range %q (want all, 5 or 10)", r)
}

func boolEnvOrDefault(key string, fallback bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
