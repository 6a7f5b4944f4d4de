// Package config loads the estimator thresholds from an optional JSON
// file. Fields omitted from the file keep their defaults, so partial
// configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/collision.report/internal/collision"
)

// ServiceConfig is the on-disk configuration shape. Pointer fields
// distinguish "not set" from an explicit zero.
type ServiceConfig struct {
	// CriticalTTCSeconds is the TTC threshold below which a collision is
	// reported as imminent.
	CriticalTTCSeconds *float64 `json:"critical_ttc_seconds,omitempty"`

	// TriggerDistanceMeters is the nominal engagement range. It is
	// reported via /api/config but not read by any computation; the value
	// is kept because the upstream system defines it.
	TriggerDistanceMeters *float64 `json:"trigger_distance_meters,omitempty"`
}

// Default threshold values, matching the estimator defaults.
const (
	defaultCriticalTTC     = 10
	defaultTriggerDistance = 500
)

// Load reads a ServiceConfig from a JSON file. The path must have a .json
// extension and the file must be under 1MB.
func Load(path string) (*ServiceConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ServiceConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *ServiceConfig) Validate() error {
	if c.CriticalTTCSeconds != nil && *c.CriticalTTCSeconds <= 0 {
		return fmt.Errorf("critical_ttc_seconds must be positive, got %f", *c.CriticalTTCSeconds)
	}
	if c.TriggerDistanceMeters != nil && *c.TriggerDistanceMeters < 0 {
		return fmt.Errorf("trigger_distance_meters must be non-negative, got %f", *c.TriggerDistanceMeters)
	}
	return nil
}

// GetCriticalTTC returns the critical TTC threshold or its default.
func (c *ServiceConfig) GetCriticalTTC() float64 {
	if c == nil || c.CriticalTTCSeconds == nil {
		return defaultCriticalTTC
	}
	return *c.CriticalTTCSeconds
}

// GetTriggerDistance returns the trigger distance or its default.
func (c *ServiceConfig) GetTriggerDistance() float64 {
	if c == nil || c.TriggerDistanceMeters == nil {
		return defaultTriggerDistance
	}
	return *c.TriggerDistanceMeters
}

// Collision resolves the configuration into the immutable value the
// estimator operations take.
func (c *ServiceConfig) Collision() collision.Config {
	return collision.Config{
		CriticalTTC:     c.GetCriticalTTC(),
		TriggerDistance: c.GetTriggerDistance(),
	}
}
