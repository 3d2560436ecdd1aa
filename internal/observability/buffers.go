package observability

import (
	"sync"

	"fap/internal/config"
	"fap/internal/hostbridge"
)

// Buffers holds the process-lifetime observability state: the three
// ring buffers and the route observer's last-known route.
type Buffers struct {
	errors       *ring[hostbridge.HostError]
	logs         *ring[hostbridge.LogEntry]
	frameTimings *ring[hostbridge.FrameTiming]

	mu    sync.Mutex
	route *string
}

// New constructs Buffers sized per cfg.
func New(cfg config.ObservabilityConfig) *Buffers {
	return &Buffers{
		errors:       newRing[hostbridge.HostError](cfg.ErrorCap),
		logs:         newRing[hostbridge.LogEntry](cfg.LogCap),
		frameTimings: newRing[hostbridge.FrameTiming](cfg.FrameTimingCap),
	}
}

// Attach registers b's record methods as the host's subscription
// callbacks. Called once at agent startup (spec §4.A).
func (b *Buffers) Attach(host hostbridge.Subscriptions) {
	host.RegisterErrorHandler(b.RecordError)
	host.RegisterLogHandler(b.RecordLog)
	host.RegisterFrameTimings(b.RecordFrameTiming)
	host.RegisterRouteObserver(b.RecordRoute)
}

// RecordError appends an intercepted framework or unhandled-async error.
func (b *Buffers) RecordError(e hostbridge.HostError) {
	b.errors.add(e)
}

// RecordLog appends an intercepted host print line.
func (b *Buffers) RecordLog(l hostbridge.LogEntry) {
	b.logs.add(l)
}

// RecordFrameTiming appends a frame build/raster timing sample.
func (b *Buffers) RecordFrameTiming(f hostbridge.FrameTiming) {
	b.frameTimings.add(f)
}

// RecordRoute updates the route observer's last-known route. Per spec
// §4.E, some host navigation APIs bypass this callback entirely, so
// the stored route should be treated by callers as advisory, not
// authoritative.
func (b *Buffers) RecordRoute(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := route
	b.route = &r
}

// Errors returns a snapshot of recorded errors, optionally filtered to
// those with Timestamp >= since (since == 0 means unfiltered).
func (b *Buffers) Errors(since int64) []hostbridge.HostError {
	all := b.errors.snapshot()

	if since == 0 {
		return all
	}

	filtered := make([]hostbridge.HostError, 0, len(all))

	for _, e := range all {
		if e.Timestamp >= since {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// Logs returns a snapshot of recorded log lines.
func (b *Buffers) Logs() []hostbridge.LogEntry {
	return b.logs.snapshot()
}

// FrameTimings returns a snapshot of recorded frame timing samples.
func (b *Buffers) FrameTimings() []hostbridge.FrameTiming {
	return b.frameTimings.snapshot()
}

// Route returns the most recently observed route name, or nil if none
// has been reported yet.
func (b *Buffers) Route() *string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.route == nil {
		return nil
	}

	r := *b.route

	return &r
}
