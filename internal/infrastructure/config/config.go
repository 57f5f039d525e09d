// Package config loads simulator configuration from environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all simulator configuration.
type Config struct {
	Resources ResourceConfig
	Scheduler SchedulerConfig
	Buffer    BufferConfig
	Logging   LogConfig
	Runner    RunnerConfig
}

// ResourceConfig sizes the simulated resource pool.
type ResourceConfig struct {
	TotalMemoryMB int `envconfig:"SIM_MEMORY_MB" default:"1024"`
}

// SchedulerConfig selects the initial scheduling algorithm.
type SchedulerConfig struct {
	Algorithm string `envconfig:"SIM_ALGORITHM" default:"fcfs"`
	Quantum   int    `envconfig:"SIM_QUANTUM" default:"2"`
}

// BufferConfig sizes the producer-consumer buffer.
type BufferConfig struct {
	Capacity int `envconfig:"SIM_BUFFER_CAPACITY" default:"5"`
	LogTail  int `envconfig:"SIM_LOG_TAIL" default:"10"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"SIM_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"SIM_LOG_DEV" default:"false"`
}

// RunnerConfig paces the autoplay cycle loop.
type RunnerConfig struct {
	TicksPerSecond float64 `envconfig:"SIM_TICK_RATE" default:"2"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns the
// defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Resources: ResourceConfig{TotalMemoryMB: 1024},
		Scheduler: SchedulerConfig{Algorithm: "fcfs", Quantum: 2},
		Buffer:    BufferConfig{Capacity: 5, LogTail: 10},
		Logging:   LogConfig{Level: "info", Development: false},
		Runner:    RunnerConfig{TicksPerSecond: 2},
	}
}
