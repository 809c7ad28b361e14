// Dealradar - Deals Discovery Analytics and Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dealradar

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Struct tag rules live on the
// Config field declarations in config.go.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for structural and cross-field
// consistency. It is called by Load after all layers are merged.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Cross-field rules the struct tags cannot express.
	if c.Fraud.VelocityHigh <= c.Fraud.VelocityMedium {
		return fmt.Errorf("fraud.velocity_high (%d) must exceed fraud.velocity_medium (%d)",
			c.Fraud.VelocityHigh, c.Fraud.VelocityMedium)
	}
	if c.Pricing.MaxDiscount <= c.Pricing.MinDiscount {
		return fmt.Errorf("pricing.max_discount (%.1f) must exceed pricing.min_discount (%.1f)",
			c.Pricing.MaxDiscount, c.Pricing.MinDiscount)
	}
	if c.Pricing.DefaultElasticity >= 0 {
		return fmt.Errorf("pricing.default_elasticity (%.2f) must be negative", c.Pricing.DefaultElasticity)
	}
	if c.Server.RateLimitReqs > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when rate limiting is enabled")
	}

	return nil
}
