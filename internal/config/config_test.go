package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

scraper:
  base_url: "https://dict.example.com/definition/english"
  max_pages: 3
  page_delay: "250ms"
  fetch_timeout: "20s"

cache:
  ttl: "5m"

rate_limit:
  enabled: true
  lookup_per_minute: 10
  search_per_minute: 60

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Scraper.MaxPages != 3 {
		t.Errorf("scraper.max_pages = %d, want 3", cfg.Scraper.MaxPages)
	}
	if cfg.Scraper.PageDelay != 250*time.Millisecond {
		t.Errorf("scraper.page_delay = %v, want 250ms", cfg.Scraper.PageDelay)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("cache.ttl = %v, want 5m", cfg.Cache.TTL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_EnvOnlyWithDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")

	// Run from a directory with no config.yaml.
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd) //nolint:errcheck

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Scraper.MaxPages != 5 {
		t.Errorf("scraper.max_pages default = %d, want 5", cfg.Scraper.MaxPages)
	}
	if cfg.Scraper.PageDelay != 400*time.Millisecond {
		t.Errorf("scraper.page_delay default = %v, want 400ms", cfg.Scraper.PageDelay)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port default = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoad_MissingDSN(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_DSN", "")

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd) //nolint:errcheck

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DATABASE_DSN")
	}
}

func TestValidate_ScraperRules(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{DSN: "postgres://u:p@localhost:5432/testdb"},
			Scraper: ScraperConfig{
				BaseURL:      "https://dict.example.com/definition/english",
				MaxPages:     5,
				PageDelay:    400 * time.Millisecond,
				FetchTimeout: 30 * time.Second,
			},
			Cache:     CacheConfig{TTL: time.Minute},
			RateLimit: RateLimitConfig{Enabled: false},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"relative base url", func(c *Config) { c.Scraper.BaseURL = "/definition" }, true},
		{"zero max pages", func(c *Config) { c.Scraper.MaxPages = 0 }, true},
		{"negative delay", func(c *Config) { c.Scraper.PageDelay = -time.Second }, true},
		{"zero fetch timeout", func(c *Config) { c.Scraper.FetchTimeout = 0 }, true},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"rate limit enabled without budget", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.LookupPerMinute = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
