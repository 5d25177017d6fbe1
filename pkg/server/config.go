/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rikstoto-innsikt/couponcheck/pkg/defaults"
)

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{
		Address:            "",
		Port:               8080,
		RateLimit:          100, // 100 req/s
		RateLimitBurst:     200, // burst of 200
		CORSAllowedOrigins: []string{"*"},
		CORSMaxAge:         300, // 5 minutes
		ReadTimeout:        defaults.ServerReadTimeout,
		WriteTimeout:       defaults.ServerWriteTimeout,
		IdleTimeout:        defaults.ServerIdleTimeout,
		ShutdownTimeout:    defaults.ServerShutdownTimeout,
		LogLevel:           slog.LevelInfo.String(),
	}

	// Override with environment variables if set
	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	if logLevelStr := os.Getenv("LOG_LEVEL"); logLevelStr != "" {
		cfg.LogLevel = logLevelStr
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	return cfg
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
