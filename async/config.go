package async

import (
	"github.com/kbukum/asynckit/errors"
	"github.com/kbukum/asynckit/validation"
)

// Strategy modes accepted by StrategyConfig.
const (
	ModeParallel = "parallel"
	ModeSeries   = "series"
	ModeLimit    = "limit"
)

// StrategyConfig selects a strategy from configuration.
//
//	strategy:
//	  mode: limit
//	  limit: 4
type StrategyConfig struct {
	Mode  string `yaml:"mode" mapstructure:"mode" validate:"required,oneof=parallel series limit"`
	Limit int    `yaml:"limit" mapstructure:"limit" validate:"gte=0"`
}

// ApplyDefaults selects parallel mode when none is configured.
func (c *StrategyConfig) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeParallel
	}
}

// Validate checks the tags and requires a positive limit in limit mode.
// Limit(0) is a valid strategy that runs nothing, but as configuration it is
// almost certainly a mistake.
func (c *StrategyConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return validation.New().
		Custom(c.Mode != ModeLimit || c.Limit > 0, "strategy.limit", "must be positive in limit mode").
		Err()
}

// FromConfig builds the strategy described by cfg.
func FromConfig(cfg StrategyConfig) (Strategy, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.InvalidConfig("strategy", "cannot build strategy").WithCause(err)
	}
	switch cfg.Mode {
	case ModeSeries:
		return Series(), nil
	case ModeLimit:
		return Limit(cfg.Limit), nil
	default:
		return Parallel(), nil
	}
}
