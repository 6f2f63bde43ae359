package app

import (
	"errors"
	"fmt"
)

// Executor names accepted by Config.Executor.
const (
	ExecutorProcess = "process"
	ExecutorRandom  = "random"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	JobsPath string // .hcl, .yaml or .yml file, or a directory of .hcl files

	LogFormat       string
	LogLevel        string
	Executor        string
	HealthcheckPort int

	// EventsURL enables the Socket.IO event publisher when set.
	EventsURL       string
	EventsNamespace string
	EventsName      string
}

// NewConfig validates cfg and fills in defaults for optional fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.JobsPath == "" {
		return nil, errors.New("JobsPath is a required configuration field and cannot be empty")
	}

	if cfg.Executor == "" {
		cfg.Executor = ExecutorProcess
	}
	switch cfg.Executor {
	case ExecutorProcess, ExecutorRandom:
	default:
		return nil, fmt.Errorf("unknown executor %q: must be %q or %q", cfg.Executor, ExecutorProcess, ExecutorRandom)
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port %d is out of range", cfg.HealthcheckPort)
	}

	if cfg.EventsNamespace == "" {
		cfg.EventsNamespace = "/"
	}
	if cfg.EventsName == "" {
		cfg.EventsName = "job"
	}

	return &cfg, nil
}
