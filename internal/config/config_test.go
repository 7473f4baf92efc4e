package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := applyDefaults(Config{})

	if cfg.DB == "" {
		t.Error("expected a default db path")
	}
	if cfg.Range != RangeAll {
		t.Errorf("expected range all, got %s", cfg.Range)
	}
	if cfg.TopN != 5 {
		t.Errorf("expected top_n 5, got %d", cfg.TopN)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected warn, got %s", cfg.LogLevel)
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("CRICKSTATS_DB", "/tmp/x.db")
	t.Setenv("CRICKSTATS_RANGE", "10")
	t.Setenv("CRICKSTATS_TOP_N", "3")
	t.Setenv("CRICKSTATS_FEATURE_CHAT", "yes")
	t.Setenv("CRICKSTATS_FEATURE_INSIGHTS", "0")

	cfg := applyEnv(Config{Features: Features{Insights: true}})

	if cfg.DB != "/tmp/x.db" || cfg.Range != "10" || cfg.TopN != 3 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if !cfg.Features.Chat || cfg.Features.Insights {
		t.Errorf("feature flags not applied: %+v", cfg.Features)
	}
}

func TestConfig_BadTopNEnvIgnored(t *testing.T) {
	t.Setenv("CRICKSTATS_TOP_N", "many")
	cfg := applyEnv(Config{TopN: 7})
	if cfg.TopN != 7 {
		t.Errorf("expected 7, got %d", cfg.TopN)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crickstats.yaml")
	data := []byte("db: " + filepath.Join(dir, "c.db") + "\nrange: \"5\"\ntop_n: 8\nfeatures:\n  insights: false\n  personalization: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Range != "5" || cfg.TopN != 8 {
		t.Errorf("yaml not applied: %+v", cfg)
	}
	if cfg.Features.Insights || !cfg.Features.Personalization {
		t.Errorf("features = %+v", cfg.Features)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Features.Insights {
		t.Error("insights should default on")
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("range: weekly\n"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("expected invalid range error")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("db: [unterminated\n"), 0o644)
	if _, err := Load(broken); err == nil {
		t.Error("expected yaml parse error")
	}
}

func TestParseRange(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"all", 0, true},
		{"", 0, true},
		{"5", 5, true},
		{"10", 10, true},
		{"ALL", 0, true},
		{"7", 0, false},
	}
	for _, c := range cases {
		got, err := ParseRange(c.in)
		if (err == nil) != c.ok || got != c.want {
			t.Errorf("ParseRange(%q) = %d, %v", c.in, got, err)
		}
	}
}
