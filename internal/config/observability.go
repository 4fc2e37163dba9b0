package config

import (
	"errors"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// ObservabilityConfig controls the optional New Relic agent. ServiceName
// and Environment are filled in by LoadConfig, not read from env.
type ObservabilityConfig struct {
	Enabled     bool   `koanf:"enabled"`
	LicenseKey  string `koanf:"license_key"`
	ServiceName string `koanf:"-"`
	Environment string `koanf:"-"`
}

// DefaultObservabilityConfig returns the disabled default.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{}
}

// Validate checks that an enabled agent has a license key.
func (c *ObservabilityConfig) Validate() error {
	if c.Enabled && c.LicenseKey == "" {
		return errors.New("observability enabled but license_key is empty")
	}
	return nil
}

// NewApplication builds the New Relic application, or returns nil when the
// agent is disabled.
func (c *ObservabilityConfig) NewApplication() (*newrelic.Application, error) {
	if !c.Enabled {
		return nil, nil
	}
	return newrelic.NewApplication(
		newrelic.ConfigAppName(c.ServiceName),
		newrelic.ConfigLicense(c.LicenseKey),
		func(cfg *newrelic.Config) {
			cfg.Labels = map[string]string{"environment": c.Environment}
		},
	)
}
