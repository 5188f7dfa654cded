// Package config loads game configuration from defaults, an optional TOML
// file and environment variables, in that order of precedence.
package config

import "os"

// Environment variables read by Load and the commands.
const (
	EnvConfigPath = "BREAKOUT_CONFIG"
	EnvLogLevel   = "BREAKOUT_LOG_LEVEL"
	EnvRenderer   = "BREAKOUT_RENDERER"
	EnvPaddleRule = "BREAKOUT_PADDLE_RULE"
	EnvLogFile    = "BREAKOUT_LOG_FILE"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
