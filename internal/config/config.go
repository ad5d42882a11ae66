// Package config provides server configuration loaded from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const logPrefix = "config:LoadConfig"

// Config holds bear-bridge configuration.
type Config struct {
	// COMMS: connect to standalone NATS at COMMSURL.
	COMMSURL  string `envconfig:"COMMS_URL" default:"nats://127.0.0.1:4222"`
	COMMSName string `envconfig:"SERVICE_NAME" default:"bear-bridge"`

	// Action subject override (empty = bear.actions.v1)
	ActionSubject string `envconfig:"BRIDGE_SUBJECT"`

	// Bear
	BearToken string `envconfig:"BEAR_TOKEN"`
	// OpenCommand overrides the launcher, e.g. "open,-g" (empty = platform default).
	OpenCommand []string `envconfig:"BRIDGE_OPEN_COMMAND"`

	// Callback listener. SocketDir defaults to the OS temp dir at startup.
	SocketDir      string `envconfig:"BRIDGE_SOCKET_DIR"`
	CallbackScheme string `envconfig:"BRIDGE_CALLBACK_SCHEME" default:"xfwder"`

	// Timeouts. A zero RequestTimeout disables the server-side deadline.
	RequestTimeout time.Duration `envconfig:"BRIDGE_REQUEST_TIMEOUT" default:"25s"`

	// HTTP health endpoint (BRIDGE_HTTP_ADDR preferred, e.g. "0.0.0.0:8080")
	HTTPAddr           string        `envconfig:"BRIDGE_HTTP_ADDR"`
	HTTPPort           int           `envconfig:"HTTP_PORT" default:"8080"`
	HealthCheckTimeout time.Duration `envconfig:"HEALTH_CHECK_TIMEOUT" default:"5s"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ValidateForServe checks required config when running the bridge server.
func (c *Config) ValidateForServe() error {
	if c.COMMSURL == "" {
		return fmt.Errorf("%s - COMMS_URL is required for serve", logPrefix)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%s - BRIDGE_REQUEST_TIMEOUT must not be negative", logPrefix)
	}
	if c.HealthCheckTimeout <= 0 {
		return fmt.Errorf("%s - HEALTH_CHECK_TIMEOUT must be positive", logPrefix)
	}
	return nil
}
