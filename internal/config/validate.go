package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.API.validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Stream.validate(); err != nil {
		return fmt.Errorf("stream: %w", err)
	}
	if err := c.Reconcile.validate(); err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	if err := c.Hydration.validate(); err != nil {
		return fmt.Errorf("hydration: %w", err)
	}
	if strings.TrimSpace(c.Session.EventID) == "" {
		return fmt.Errorf("session: event_id is required")
	}
	return nil
}

func (a *APIConfig) validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https (got %q)", a.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url must include a host (got %q)", a.BaseURL)
	}
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	if a.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %v)", a.RequestTimeout)
	}
	if a.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be > 0 (got %v)", a.RateLimit)
	}
	if a.RateBurst <= 0 {
		return fmt.Errorf("rate_burst must be > 0 (got %d)", a.RateBurst)
	}
	return nil
}

func (s *StreamConfig) validate() error {
	if s.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be > 0 (got %v)", s.InitialBackoff)
	}
	if s.MaxBackoff < s.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff (got %v < %v)", s.MaxBackoff, s.InitialBackoff)
	}
	if s.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d)", s.MaxAttempts)
	}
	if s.FrameBuffer < 0 {
		return fmt.Errorf("frame_buffer must be >= 0 (got %d)", s.FrameBuffer)
	}
	if s.IdleTimeout < 0 {
		return fmt.Errorf("idle_timeout must be >= 0 (got %v)", s.IdleTimeout)
	}
	return nil
}

func (r *ReconcileConfig) validate() error {
	if r.Cooldown < 0 {
		return fmt.Errorf("cooldown must be >= 0 (got %v)", r.Cooldown)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("interval must be > 0 (got %v)", r.Interval)
	}
	if r.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %v)", r.FetchTimeout)
	}
	return nil
}

func (h *HydrationConfig) validate() error {
	if h.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", h.Concurrency)
	}
	if h.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %v)", h.FetchTimeout)
	}
	return nil
}
