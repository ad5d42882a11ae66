package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Clear all environment variables that might interfere
	envVars := []string{
		"COMMS_URL", "SERVICE_NAME", "BRIDGE_SUBJECT",
		"BEAR_TOKEN", "BRIDGE_OPEN_COMMAND",
		"BRIDGE_SOCKET_DIR", "BRIDGE_CALLBACK_SCHEME",
		"BRIDGE_REQUEST_TIMEOUT", "BRIDGE_HTTP_ADDR",
		"HTTP_PORT", "HEALTH_CHECK_TIMEOUT", "LOG_LEVEL",
	}
	for _, env := range envVars {
		os.Unsetenv(env)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("config:config_test - unexpected error: %v", err)
	}

	// Verify defaults
	if cfg.COMMSURL != "nats://127.0.0.1:4222" {
		t.Errorf("config:config_test - COMMSURL = %q, want %q", cfg.COMMSURL, "nats://127.0.0.1:4222")
	}
	if cfg.COMMSName != "bear-bridge" {
		t.Errorf("config:config_test - COMMSName = %q, want %q", cfg.COMMSName, "bear-bridge")
	}
	if cfg.ActionSubject != "" {
		t.Errorf("config:config_test - ActionSubject = %q, want empty", cfg.ActionSubject)
	}
	if cfg.BearToken != "" {
		t.Errorf("config:config_test - BearToken = %q, want empty", cfg.BearToken)
	}
	if len(cfg.OpenCommand) != 0 {
		t.Errorf("config:config_test - OpenCommand = %v, want empty", cfg.OpenCommand)
	}
	if cfg.SocketDir != "" {
		t.Errorf("config:config_test - SocketDir = %q, want empty", cfg.SocketDir)
	}
	if cfg.CallbackScheme != "xfwder" {
		t.Errorf("config:config_test - CallbackScheme = %q, want %q", cfg.CallbackScheme, "xfwder")
	}
	if cfg.RequestTimeout != 25*time.Second {
		t.Errorf("config:config_test - RequestTimeout = %v, want 25s", cfg.RequestTimeout)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("config:config_test - HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.HealthCheckTimeout != 5*time.Second {
		t.Errorf("config:config_test - HealthCheckTimeout = %v, want 5s", cfg.HealthCheckTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("config:config_test - LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	// Set environment variables
	overrides := map[string]string{
		"COMMS_URL":              "nats://custom:4222",
		"SERVICE_NAME":           "test-bridge",
		"BRIDGE_SUBJECT":         "custom.actions",
		"BEAR_TOKEN":             "ABC123",
		"BRIDGE_OPEN_COMMAND":    "open,-g",
		"BRIDGE_SOCKET_DIR":      "/tmp/bridge-sockets",
		"BRIDGE_CALLBACK_SCHEME": "bearcb",
		"BRIDGE_REQUEST_TIMEOUT": "10s",
		"HTTP_PORT":              "9090",
		"HEALTH_CHECK_TIMEOUT":   "10s",
		"LOG_LEVEL":              "debug",
	}

	for key, val := range overrides {
		os.Setenv(key, val)
	}
	defer func() {
		for key := range overrides {
			os.Unsetenv(key)
		}
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("config:config_test - unexpected error: %v", err)
	}

	if cfg.COMMSURL != "nats://custom:4222" {
		t.Errorf("config:config_test - COMMSURL = %q, want %q", cfg.COMMSURL, "nats://custom:4222")
	}
	if cfg.COMMSName != "test-bridge" {
		t.Errorf("config:config_test - COMMSName = %q, want %q", cfg.COMMSName, "test-bridge")
	}
	if cfg.ActionSubject != "custom.actions" {
		t.Errorf("config:config_test - ActionSubject = %q, want %q", cfg.ActionSubject, "custom.actions")
	}
	if cfg.BearToken != "ABC123" {
		t.Errorf("config:config_test - BearToken = %q, want %q", cfg.BearToken, "ABC123")
	}
	if len(cfg.OpenCommand) != 2 || cfg.OpenCommand[0] != "open" || cfg.OpenCommand[1] != "-g" {
		t.Errorf("config:config_test - OpenCommand = %v, want [open -g]", cfg.OpenCommand)
	}
	if cfg.SocketDir != "/tmp/bridge-sockets" {
		t.Errorf("config:config_test - SocketDir = %q, want %q", cfg.SocketDir, "/tmp/bridge-sockets")
	}
	if cfg.CallbackScheme != "bearcb" {
		t.Errorf("config:config_test - CallbackScheme = %q, want %q", cfg.CallbackScheme, "bearcb")
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("config:config_test - RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.HTTPPort != 9090 {
		t.Errorf("config:config_test - HTTPPort = %d, want 9090", cfg.HTTPPort)
	}
	if cfg.HealthCheckTimeout != 10*time.Second {
		t.Errorf("config:config_test - HealthCheckTimeout = %v, want 10s", cfg.HealthCheckTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("config:config_test - LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoadConfig_LogLevels(t *testing.T) {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, level := range validLevels {
		os.Setenv("LOG_LEVEL", level)
		cfg, err := LoadConfig()
		os.Unsetenv("LOG_LEVEL")

		if err != nil {
			t.Fatalf("config:config_test - unexpected error for level %q: %v", level, err)
		}
		if cfg.LogLevel != level {
			t.Errorf("config:config_test - LogLevel = %q, want %q", cfg.LogLevel, level)
		}
	}
}

func TestValidateForServe(t *testing.T) {
	cfg := &Config{
		COMMSURL:           "nats://127.0.0.1:4222",
		RequestTimeout:     25 * time.Second,
		HealthCheckTimeout: 5 * time.Second,
	}
	if err := cfg.ValidateForServe(); err != nil {
		t.Errorf("config:config_test - unexpected error: %v", err)
	}

	// Zero request timeout disables the deadline and is valid.
	cfg.RequestTimeout = 0
	if err := cfg.ValidateForServe(); err != nil {
		t.Errorf("config:config_test - unexpected error for zero timeout: %v", err)
	}

	cfg.RequestTimeout = -time.Second
	if err := cfg.ValidateForServe(); err == nil {
		t.Error("config:config_test - expected error for negative timeout")
	}

	cfg.RequestTimeout = 25 * time.Second
	cfg.COMMSURL = ""
	if err := cfg.ValidateForServe(); err == nil {
		t.Error("config:config_test - expected error for empty COMMS_URL")
	}

	cfg.COMMSURL = "nats://127.0.0.1:4222"
	cfg.HealthCheckTimeout = 0
	if err := cfg.ValidateForServe(); err == nil {
		t.Error("config:config_test - expected error for zero health check timeout")
	}
}
