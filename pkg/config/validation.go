package config

import (
	"fmt"
	"strings"
)

const (
	MinQueens       = 3
	MinTargetLength = 3
	MaxCrowd        = 1_000_000
)

// RunValidator implements validation for run configurations
type RunValidator struct{}

// NewRunValidator creates a new run validator
func NewRunValidator() *RunValidator {
	return &RunValidator{}
}

// Validate performs validation on run configuration parameters
func (v *RunValidator) Validate(cfg *RunConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := v.validateProblem(cfg); err != nil {
		return err
	}

	if cfg.Crowd <= 0 || cfg.Crowd%10 != 0 {
		return fmt.Errorf("crowd must be a positive multiple of 10, got: %d", cfg.Crowd)
	}

	if cfg.Crowd > MaxCrowd {
		return fmt.Errorf("crowd must not exceed %d, got: %d", MaxCrowd, cfg.Crowd)
	}

	if cfg.GenerationThreshold < 1 {
		return fmt.Errorf("generation threshold must be at least 1, got: %d", cfg.GenerationThreshold)
	}

	if cfg.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got: %d", cfg.Runs)
	}

	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got: %d", cfg.Workers)
	}

	if cfg.LogEvery < 0 {
		return fmt.Errorf("log every must not be negative, got: %d", cfg.LogEvery)
	}

	if cfg.Output.CSV || cfg.Output.JSON || cfg.Output.Excel {
		if strings.TrimSpace(cfg.Output.Dir) == "" {
			return fmt.Errorf("output directory is required when file output is enabled")
		}
	}

	return nil
}

func (v *RunValidator) validateProblem(cfg *RunConfig) error {
	switch strings.ToLower(cfg.Problem) {
	case ProblemNQueens:
		if cfg.Queens < MinQueens {
			return fmt.Errorf("queens must be at least %d, got: %d", MinQueens, cfg.Queens)
		}
	case ProblemPhrase:
		if len(cfg.Target) < MinTargetLength {
			return fmt.Errorf("target must have at least %d characters, got: %q", MinTargetLength, cfg.Target)
		}
	default:
		return fmt.Errorf("unknown problem %q (expected %s or %s)", cfg.Problem, ProblemNQueens, ProblemPhrase)
	}
	return nil
}
