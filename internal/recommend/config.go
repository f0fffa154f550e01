// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "fmt"

// DefaultPlaceholderURL is used when a poster cannot be fetched.
const DefaultPlaceholderURL = "https://via.placeholder.com/150x220?text=No+Image"

// Config holds ranking and enrichment parameters.
type Config struct {
	// DefaultN is used when a request does not specify n.
	DefaultN int

	// MaxN caps n.
	MaxN int

	// UserWeight is added once per collaborative candidate.
	UserWeight float64

	// ContentWeight is added per content-similar occurrence.
	ContentWeight float64

	// PlaceholderURL replaces posters that could not be fetched.
	PlaceholderURL string

	// Concurrency bounds concurrent poster lookups per request.
	Concurrency int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		DefaultN:       10,
		MaxN:           50,
		UserWeight:     0.5,
		ContentWeight:  0.5,
		PlaceholderURL: DefaultPlaceholderURL,
		Concurrency:    4,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultN < 1 {
		return fmt.Errorf("default_n must be positive, got %d", c.DefaultN)
	}
	if c.MaxN < c.DefaultN {
		return fmt.Errorf("max_n must be >= default_n, got %d < %d", c.MaxN, c.DefaultN)
	}
	if c.UserWeight < 0 || c.ContentWeight < 0 {
		return fmt.Errorf("weights must be non-negative, got user=%f content=%f", c.UserWeight, c.ContentWeight)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.PlaceholderURL == "" {
		return fmt.Errorf("placeholder_url must not be empty")
	}
	return nil
}

// ClampN maps a requested n to [1, MaxN], using DefaultN for n <= 0.
func (c *Config) ClampN(n int) int {
	if n <= 0 {
		return c.DefaultN
	}
	return min(n, c.MaxN)
}
