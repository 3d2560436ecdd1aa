package config

import "fap/internal/ferrors"

// validate checks the configuration for internally inconsistent values,
// following the teacher's validators.go convention of one small check
// per field rather than a single monolithic reflection-based walk.
func validate(c *Config) error {
	if c == nil {
		return ferrors.New(ferrors.CodeInvalidConfig, "configuration cannot be nil")
	}

	if c.Tree.CacheSizeLimit <= 0 {
		return ferrors.Newf(ferrors.CodeInvalidConfig,
			"tree.cache_size_limit must be positive, got %d", c.Tree.CacheSizeLimit)
	}

	if c.Tree.CacheTTL <= 0 {
		return ferrors.New(ferrors.CodeInvalidConfig, "tree.cache_ttl must be positive")
	}

	if c.Observability.ErrorCap <= 0 || c.Observability.LogCap <= 0 || c.Observability.FrameTimingCap <= 0 {
		return ferrors.New(ferrors.CodeInvalidConfig, "observability buffer caps must be positive")
	}

	if c.Server.CompressionThresholdBytes < 0 {
		return ferrors.New(ferrors.CodeInvalidConfig, "server.compression_threshold_bytes cannot be negative")
	}

	if c.Action.DragSteps <= 0 {
		return ferrors.Newf(ferrors.CodeInvalidConfig,
			"action.drag_steps must be positive, got %d", c.Action.DragSteps)
	}

	if c.Action.TapHoldDuration <= 0 || c.Action.LongPressDuration <= 0 || c.Action.DragDuration <= 0 {
		return ferrors.New(ferrors.CodeInvalidConfig, "action gesture durations must be positive")
	}

	return nil
}
