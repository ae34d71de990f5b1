package config

import (
	"github.com/kbukum/asynckit/async"
	"github.com/kbukum/asynckit/errors"
	"github.com/kbukum/asynckit/logger"
	"github.com/kbukum/asynckit/validation"
	"github.com/kbukum/asynckit/version"
)

// Environments accepted by Config.Environment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config is the configuration of an asynckit process.
//
// Example config.yml:
//
//	name: asyncdemo
//	environment: development
//	logging:
//	  level: debug
//	  format: console
//	strategy:
//	  mode: limit
//	  limit: 4
//	telemetry:
//	  enabled: true
//	  endpoint: localhost:4318
//	workload:
//	  items: 20
//	  max_delay: 50ms
//	  fail_every: 7
type Config struct {
	Name        string               `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string               `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string               `yaml:"version" mapstructure:"version"`
	Logging     logger.Config        `yaml:"logging" mapstructure:"logging"`
	Strategy    async.StrategyConfig `yaml:"strategy" mapstructure:"strategy"`
	Telemetry   TelemetryConfig      `yaml:"telemetry" mapstructure:"telemetry"`
	Workload    WorkloadConfig       `yaml:"workload" mapstructure:"workload"`
}

// ApplyDefaults fills every unset field, including nested sections.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	if c.Version == "" {
		c.Version = version.Short()
	}
	if c.Environment == EnvDevelopment && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	c.Strategy.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	c.Workload.ApplyDefaults()
}

// Validate checks the whole tree and reports the first failing section.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidConfig("logging", err.Error()).WithCause(err)
	}
	if err := c.Strategy.Validate(); err != nil {
		return err
	}
	return c.Telemetry.Validate()
}
