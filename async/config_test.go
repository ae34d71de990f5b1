package async

import (
	"errors"
	"testing"

	apperrors "github.com/kbukum/asynckit/errors"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  StrategyConfig
		want string
	}{
		{"default mode", StrategyConfig{}, "parallel"},
		{"parallel", StrategyConfig{Mode: ModeParallel}, "parallel"},
		{"series ignores limit", StrategyConfig{Mode: ModeSeries, Limit: 9}, "series"},
		{"limit", StrategyConfig{Mode: ModeLimit, Limit: 4}, "limit(4)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromConfig(tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, s.String())
			}
		})
	}
}

func TestFromConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  StrategyConfig
	}{
		{"unknown mode", StrategyConfig{Mode: "random"}},
		{"limit without bound", StrategyConfig{Mode: ModeLimit}},
		{"negative limit", StrategyConfig{Mode: ModeLimit, Limit: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromConfig(tt.cfg)
			if err == nil {
				t.Fatalf("expected error, got strategy %s", s)
			}
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected *AppError, got %T", err)
			}
			if appErr.Code != apperrors.ErrCodeInvalidConfig {
				t.Errorf("expected %s, got %s", apperrors.ErrCodeInvalidConfig, appErr.Code)
			}
		})
	}
}
