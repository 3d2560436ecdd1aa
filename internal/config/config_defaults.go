package config

import "time"

// Defaults drawn directly from spec.md.
const (
	// DefaultCacheTTL is the resilience cache's freshness window (spec §3).
	DefaultCacheTTL = 5 * time.Second

	// DefaultCacheSizeLimit is the resilience cache's element cap (spec §3).
	DefaultCacheSizeLimit = 10_000

	// DefaultErrorCap, DefaultLogCap, and DefaultFrameTimingCap are the
	// observability ring buffer sizes (spec §4.E: "a few hundred
	// entries each").
	DefaultErrorCap       = 500
	DefaultLogCap         = 500
	DefaultFrameTimingCap = 300

	// DefaultCompressionThresholdBytes is the payload-size cutoff above
	// which responses are gzip-compressed (spec §4.F, §8).
	DefaultCompressionThresholdBytes = 1024

	// DefaultHandshakeTimeout bounds the RPC upgrade handshake.
	DefaultHandshakeTimeout = 5 * time.Second

	// DefaultWriteTimeout bounds a single outbound frame write.
	DefaultWriteTimeout = 5 * time.Second

	// DefaultBindEnvVar and DefaultKillSwitchEnvVar are the
	// environment variable names consulted at startup (spec §6).
	DefaultBindEnvVar       = "FAP_BIND_ADDR"
	DefaultKillSwitchEnvVar = "FAP_ENABLE"

	// Tap gesture pacing (spec §4.D).
	DefaultHoverSettleDelay = 50 * time.Millisecond
	DefaultTapHoldDuration  = 100 * time.Millisecond
	DefaultDoubleTapGap     = 100 * time.Millisecond
	DefaultLongPressDuration = 800 * time.Millisecond
	DefaultDragDuration     = 300 * time.Millisecond
	DefaultDragSteps        = 20
)

// DefaultConfig returns a Config populated with spec-mandated defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BindEnvVar:                DefaultBindEnvVar,
			KillSwitchEnvVar:          DefaultKillSwitchEnvVar,
			AuthToken:                 "",
			CompressionThresholdBytes: DefaultCompressionThresholdBytes,
			HandshakeTimeout:          DefaultHandshakeTimeout,
			WriteTimeout:              DefaultWriteTimeout,
		},
		Tree: TreeConfig{
			CacheTTL:       DefaultCacheTTL,
			CacheSizeLimit: DefaultCacheSizeLimit,
		},
		Observability: ObservabilityConfig{
			ErrorCap:       DefaultErrorCap,
			LogCap:         DefaultLogCap,
			FrameTimingCap: DefaultFrameTimingCap,
		},
		Action: ActionConfig{
			HoverSettleDelay:  DefaultHoverSettleDelay,
			TapHoldDuration:   DefaultTapHoldDuration,
			DoubleTapGap:      DefaultDoubleTapGap,
			LongPressDuration: DefaultLongPressDuration,
			DragDuration:      DefaultDragDuration,
			DragSteps:         DefaultDragSteps,
		},
	}
}
