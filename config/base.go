package config

import (
	"time"

	"github.com/kbukum/asynckit/observability"
	"github.com/kbukum/asynckit/validation"
)

// TelemetryConfig controls OTLP export of run metrics and spans.
type TelemetryConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults applies the local collector defaults.
func (c *TelemetryConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Validate requires an endpoint once export is enabled.
func (c *TelemetryConfig) Validate() error {
	return validation.New().
		Custom(!c.Enabled || c.Endpoint != "", "telemetry.endpoint", "is required when telemetry is enabled").
		Err()
}

// MeterConfig derives the meter provider settings for a service.
func (c *TelemetryConfig) MeterConfig(service, version, environment string) observability.MeterConfig {
	return observability.MeterConfig{
		ServiceName:    service,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       c.Interval,
	}
}

// TracerConfig derives the tracer provider settings for a service.
func (c *TelemetryConfig) TracerConfig(service, version, environment string) observability.TracerConfig {
	return observability.TracerConfig{
		ServiceName:    service,
		ServiceVersion: version,
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}

// WorkloadConfig shapes the simulated workload of the demo command.
type WorkloadConfig struct {
	Items     int           `yaml:"items" mapstructure:"items" validate:"gte=0"`
	MaxDelay  time.Duration `yaml:"max_delay" mapstructure:"max_delay" validate:"gte=0"`
	FailEvery int           `yaml:"fail_every" mapstructure:"fail_every" validate:"gte=0"`
}

// ApplyDefaults sizes an unset workload. FailEvery stays zero, meaning no
// element fails.
func (c *WorkloadConfig) ApplyDefaults() {
	if c.Items == 0 {
		c.Items = 10
	}
	if c.MaxDelay == 0 {
		c.MaxDelay = 20 * time.Millisecond
	}
}
