package model

import (
	"log"
)

// Config controls the numerical tolerance of the solve and diagnostic output
type Config struct {
	// ConditionLimit is the largest accepted LU condition estimate of the
	// free-free stiffness block; above it the model is reported singular
	ConditionLimit float64

	// Logger receives assembly and solve diagnostics; nil is silent
	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{
		ConditionLimit: 1.e12,
	}
}

func (m *Model) logf(format string, args ...any) {
	if m.cfg.Logger == nil {
		return
	}
	m.cfg.Logger.Printf(format, args...)
}
