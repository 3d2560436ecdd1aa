package config

import "time"

// ServerConfig configures the RPC server (spec §4.F, §6).
type ServerConfig struct {
	// BindEnvVar names the environment variable that, when set to a
	// resolvable host or address, overrides the loopback-only default
	// bind address. Unresolvable values fall back to loopback with a
	// logged warning.
	BindEnvVar string `json:"bindEnvVar" toml:"bind_env_var"`

	// KillSwitchEnvVar names the environment variable that disables
	// the server entirely when set to a falsy value ("", "0", "false").
	KillSwitchEnvVar string `json:"killSwitchEnvVar" toml:"kill_switch_env_var"`

	// AuthToken is the optional shared bearer token. Empty disables
	// authentication.
	AuthToken string `json:"authToken" toml:"auth_token"`

	// CompressionThresholdBytes is the serialized-response size above
	// which the server gzips and base64-wraps the payload.
	CompressionThresholdBytes int `json:"compressionThresholdBytes" toml:"compression_threshold_bytes"`

	// HandshakeTimeout bounds how long the server waits for the
	// upgrade handshake (and bearer token check) to complete.
	HandshakeTimeout time.Duration `json:"handshakeTimeout" toml:"handshake_timeout"`

	// WriteTimeout bounds a single outbound frame write.
	WriteTimeout time.Duration `json:"writeTimeout" toml:"write_timeout"`
}

// TreeConfig configures the tree indexer (spec §3, §4.C).
type TreeConfig struct {
	// CacheTTL is the resilience cache's freshness window.
	CacheTTL time.Duration `json:"cacheTtl" toml:"cache_ttl"`

	// CacheSizeLimit is the maximum number of elements the resilience
	// cache retains.
	CacheSizeLimit int `json:"cacheSizeLimit" toml:"cache_size_limit"`
}

// ObservabilityConfig configures the ring buffers (spec §4.E).
type ObservabilityConfig struct {
	ErrorCap        int `json:"errorCap"        toml:"error_cap"`
	LogCap          int `json:"logCap"          toml:"log_cap"`
	FrameTimingCap  int `json:"frameTimingCap"  toml:"frame_timing_cap"`
}

// ActionConfig configures the action executor's gesture pacing (spec §4.D).
type ActionConfig struct {
	HoverSettleDelay     time.Duration `json:"hoverSettleDelay"     toml:"hover_settle_delay"`
	TapHoldDuration      time.Duration `json:"tapHoldDuration"      toml:"tap_hold_duration"`
	DoubleTapGap         time.Duration `json:"doubleTapGap"         toml:"double_tap_gap"`
	LongPressDuration    time.Duration `json:"longPressDuration"    toml:"long_press_duration"`
	DragDuration         time.Duration `json:"dragDuration"         toml:"drag_duration"`
	DragSteps            int           `json:"dragSteps"            toml:"drag_steps"`
}

// Config is FAP's complete agent configuration.
type Config struct {
	Server        ServerConfig        `json:"server"        toml:"server"`
	Tree          TreeConfig          `json:"tree"          toml:"tree"`
	Observability ObservabilityConfig `json:"observability" toml:"observability"`
	Action        ActionConfig        `json:"action"        toml:"action"`
}

// Validate checks the configuration for internally inconsistent values.
// It does not touch the filesystem or environment.
func (c *Config) Validate() error {
	return validate(c)
}
