package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn must be set")
	}

	if err := c.Scraper.validate(); err != nil {
		return fmt.Errorf("scraper: %w", err)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %v)", c.Cache.TTL)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.LookupPerMinute <= 0 {
			return fmt.Errorf("rate_limit.lookup_per_minute must be > 0 (got %d)", c.RateLimit.LookupPerMinute)
		}
		if c.RateLimit.SearchPerMinute <= 0 {
			return fmt.Errorf("rate_limit.search_per_minute must be > 0 (got %d)", c.RateLimit.SearchPerMinute)
		}
	}

	return nil
}

func (s *ScraperConfig) validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", s.BaseURL)
	}
	if s.MaxPages < 1 {
		return fmt.Errorf("max_pages must be >= 1 (got %d)", s.MaxPages)
	}
	if s.PageDelay < 0 {
		return fmt.Errorf("page_delay must be >= 0 (got %v)", s.PageDelay)
	}
	if s.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %v)", s.FetchTimeout)
	}
	return nil
}
