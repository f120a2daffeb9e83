package engineconfig

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Config holds engine-wide tunables for a Forge EffectsManager. All values
// can be set via environment variables or fall back to secure defaults.
type Config struct {
	// ChannelCount is the number of modifier-aggregation channels every
	// Attribute exposes (spec §4.1). Channels are indexed [0..ChannelCount).
	ChannelCount int `json:"channel_count"`

	// MaxFixedPointPasses bounds the tag-propagation consistency pass
	// (spec §4.7) so a misconfigured set of tag requirements cannot spin
	// forever; the pass is guaranteed to reach a fixed point well before
	// this in practice.
	MaxFixedPointPasses int `json:"max_fixed_point_passes"`

	// StrictInvariants, when true, panics on an Apply/Unapply invariant
	// violation (spec §7: "a programmer error and should fail loudly in
	// debug builds"). When false, the violation is logged and absorbed.
	StrictInvariants bool `json:"strict_invariants"`

	// MetricsEnabled is a host-side switch for Prometheus metrics. The
	// EffectsManager does not read it: it records metrics whenever it was
	// given an effectmetrics.Recorder, so a host consults this flag when
	// deciding whether to attach one.
	MetricsEnabled bool `json:"metrics_enabled"`
}

// Load builds a Config from environment variables, applying secure
// defaults, and validates it before returning.
func Load() (*Config, error) {
	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"package":  "engineconfig",
	}).Debug("entering Load")

	cfg := &Config{
		ChannelCount:        getEnvAsInt("FORGE_CHANNEL_COUNT", 4),
		MaxFixedPointPasses: getEnvAsInt("FORGE_MAX_FIXED_POINT_PASSES", 64),
		StrictInvariants:    getEnvAsBool("FORGE_STRICT_INVARIANTS", false),
		MetricsEnabled:      getEnvAsBool("FORGE_METRICS_ENABLED", false),
	}

	if err := cfg.validate(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Load",
			"package":  "engineconfig",
			"error":    err,
		}).Error("configuration validation failed")
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":      "Load",
		"package":       "engineconfig",
		"channel_count": cfg.ChannelCount,
	}).Debug("exiting Load - configuration successfully loaded and validated")

	return cfg, nil
}

// Default returns the engine configuration Load would produce with no
// environment variables set. It never errors.
func Default() *Config {
	return &Config{
		ChannelCount:        4,
		MaxFixedPointPasses: 64,
		StrictInvariants:    false,
		MetricsEnabled:      false,
	}
}

func (c *Config) validate() error {
	if c.ChannelCount < 1 {
		return fmt.Errorf("channel count must be at least 1, got %d", c.ChannelCount)
	}
	if c.MaxFixedPointPasses < 1 {
		return fmt.Errorf("max fixed point passes must be at least 1, got %d", c.MaxFixedPointPasses)
	}
	return nil
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
