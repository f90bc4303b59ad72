package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be > 0 (got %d)", c.Server.MaxUploadBytes)
	}

	if c.Redis.Enabled() && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be > 0 (got %v)", c.Redis.TTL)
	}

	if err := c.Dates.validate(); err != nil {
		return fmt.Errorf("dates: %w", err)
	}

	if err := c.Import.validate(); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (d *DatesConfig) validate() error {
	if d.MinYear < 1 {
		return fmt.Errorf("min_year must be > 0 (got %d)", d.MinYear)
	}
	if d.FutureYears < 0 {
		return fmt.Errorf("future_years must be >= 0 (got %d)", d.FutureYears)
	}
	return nil
}

func (i *ImportConfig) validate() error {
	if i.Rows < 1 {
		return fmt.Errorf("rows must be > 0 (got %d)", i.Rows)
	}
	// name, 12 months, total
	if i.Columns < 13 {
		return fmt.Errorf("columns must be >= 13 (got %d)", i.Columns)
	}
	if strings.TrimSpace(i.Sentinel) == "" {
		return fmt.Errorf("sentinel must not be empty")
	}
	if i.RatePerMinute < 0 {
		return fmt.Errorf("rate_per_minute must be >= 0 (got %d)", i.RatePerMinute)
	}
	return nil
}
