package config

import "time"

// ServerConfig holds the HTTP API server configuration
type ServerConfig struct {
	// Address to bind the HTTP server (host:port)
	Address string `mapstructure:"address" validate:"required"`

	// PID file location, for single-instance enforcement
	PIDFile string `mapstructure:"pid_file"`

	// Read/write timeouts for the HTTP server
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"required"`

	// SolverTimeout is loaded and validated but not passed to the
	// optimizer, which uses the optimize.SolverTimeout constant
	SolverTimeout time.Duration `mapstructure:"solver_timeout" validate:"required"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
