package rpc

import (
	"net"
	"os"
	"strconv"

	"go.uber.org/zap"
)

const defaultLoopbackAddr = "127.0.0.1:0"

// resolveBindAddr returns the loopback default unless cfg's bind
// environment variable names a resolvable address, per spec §6.
// Unresolvable values are rejected with a logged warning and fall
// back to loopback.
func resolveBindAddr(bindEnvVar string, logger *zap.Logger) string {
	if bindEnvVar == "" {
		return defaultLoopbackAddr
	}

	candidate := os.Getenv(bindEnvVar)
	if candidate == "" {
		return defaultLoopbackAddr
	}

	if _, _, err := net.SplitHostPort(candidate); err != nil {
		logger.Warn("bind address env var set to unresolvable value, falling back to loopback",
			zap.String("envVar", bindEnvVar), zap.String("value", candidate), zap.Error(err))

		return defaultLoopbackAddr
	}

	return candidate
}

// killSwitchDisabled reports whether cfg's kill-switch environment
// variable is set to a falsy value ("", "0", "false"), which disables
// the server entirely regardless of configuration.
func killSwitchDisabled(killSwitchEnvVar string) bool {
	if killSwitchEnvVar == "" {
		return false
	}

	value, isSet := os.LookupEnv(killSwitchEnvVar)
	if !isSet {
		return false
	}

	if value == "" {
		return true
	}

	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}

	return !enabled
}
