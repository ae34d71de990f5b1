// Package validation validates configuration blocks.
//
// Struct tag validation uses go-playground/validator; programmatic checks
// cover rules that span several fields. Both produce an *errors.AppError
// with code INVALID_INPUT and the offending fields in its details.
//
//	type StrategyConfig struct {
//	    Mode  string `validate:"required,oneof=parallel series limit"`
//	    Limit int    `validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
//	v := validation.New()
//	v.Custom(cfg.Mode != "limit" || cfg.Limit > 0, "limit", "must be positive in limit mode")
//	err := v.Err()
package validation
