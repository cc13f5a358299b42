// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

// Package config provides layered configuration loading for Heliodeck.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (NASA_API_KEY, HTTP_PORT, ...)
//   - Config file (config.yaml)
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration for the Heliodeck server.
type Config struct {
	NASA     NASAConfig     `koanf:"nasa"`
	Cache    CacheConfig    `koanf:"cache"`
	Proxy    ProxyConfig    `koanf:"proxy"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// NASAConfig holds settings for the upstream NASA Open API client.
type NASAConfig struct {
	// APIKey is appended to every upstream request as the api_key query
	// parameter. NASA's shared DEMO_KEY works for light development use
	// but is heavily rate limited.
	APIKey string `koanf:"api_key"`

	// BaseURL is the upstream API host. Overridable for testing.
	BaseURL string `koanf:"base_url"`

	// Timeout is the per-request upstream timeout.
	Timeout time.Duration `koanf:"timeout"`
}

// CacheConfig holds TTL settings for the in-memory response cache.
type CacheConfig struct {
	// DefaultTTL applies to time-varying feeds (APOD, NEO feed, Mars
	// photos, EPIC imagery).
	DefaultTTL time.Duration `koanf:"default_ttl"`

	// LongTTL applies to slow-changing data (rover manifests, per-object
	// NEO lookups, proxied images).
	LongTTL time.Duration `koanf:"long_ttl"`

	// SweepInterval controls the background sweep that removes expired
	// entries. Sweeping is memory hygiene only; expiry is always checked
	// on read.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// ProxyConfig holds settings for the binary image proxy.
type ProxyConfig struct {
	// AllowedDomains is the hostname allow-list for proxied fetches.
	// A hostname matches if it equals an entry or is a subdomain of one.
	AllowedDomains []string `koanf:"allowed_domains"`

	// CacheTTL is how long proxied image bytes are cached.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production". Development mode
	// enables the proxy cache-clear endpoint and includes underlying
	// error text in error details.
	Environment string `koanf:"environment"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if c.NASA.APIKey == "" {
		return fmt.Errorf("nasa.api_key is required (set NASA_API_KEY; DEMO_KEY works for development)")
	}
	if _, err := url.ParseRequestURI(c.NASA.BaseURL); err != nil {
		return fmt.Errorf("nasa.base_url is not a valid URL: %w", err)
	}
	if c.NASA.Timeout <= 0 {
		return fmt.Errorf("nasa.timeout must be positive, got %s", c.NASA.Timeout)
	}

	if c.Cache.DefaultTTL <= 0 || c.Cache.LongTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.Cache.SweepInterval <= 0 {
		return fmt.Errorf("cache.sweep_interval must be positive, got %s", c.Cache.SweepInterval)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	switch c.Server.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("server.environment must be development, production, or test, got %q", c.Server.Environment)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	if len(c.Proxy.AllowedDomains) == 0 {
		return fmt.Errorf("proxy.allowed_domains must not be empty")
	}

	return nil
}
