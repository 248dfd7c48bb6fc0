// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Fallbacks applied by validate when optional timing knobs are unset.
// Rotation gets a generous bound: it re-encrypts a whole corpus and must
// never be cut off by the ordinary request timeout.
const (
	defaultRequestTimeout   = 30 * time.Second
	defaultRotationTimeout  = 10 * time.Minute
	defaultKeyCheckInterval = 5 * time.Minute
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, and fills in
// defaults for optional timing fields.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Server.RotationTimeout == 0 {
		cfg.Server.RotationTimeout = defaultRotationTimeout
	}
	if cfg.Client.KeyCheckInterval == 0 {
		cfg.Client.KeyCheckInterval = defaultKeyCheckInterval
	}

	return nil
}

// validateForServer enforces the settings the server cannot run without.
func (cfg *StructuredConfig) ValidateForServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}

// ValidateForClient enforces the settings the terminal client cannot run
// without.
func (cfg *StructuredConfig) ValidateForClient() error {
	if cfg.Client.ServerAddress == "" {
		return ErrInvalidClientConfigs
	}

	return nil
}
