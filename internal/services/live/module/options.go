package module

import (
	"time"

	"mouthwash/internal/core/lexicon"
	"mouthwash/internal/core/window"
	"mouthwash/internal/platform/config"
)

// Options for the live module
type Options struct {
	WindowSize int
	IdleTTL    time.Duration
	SweepEvery time.Duration
	DetVer     int

	// Matcher is wiring-only and never read from config
	Matcher *lexicon.Matcher
}

// FromConfig fills options from environment
// CORE_LIVE_WINDOW_SIZE (default 8) is the per-session token window capacity
// CORE_LIVE_IDLE_TTL (default 30m) evicts sessions idle for this long
// CORE_LIVE_SWEEP_EVERY (default 1m) is the janitor period
// CORE_LIVE_DETVER (default 1) is stamped on persisted flags
func FromConfig(cfg config.Conf) Options {
	n := cfg.Prefix("CORE_LIVE_")
	return Options{
		WindowSize: n.MayInt("WINDOW_SIZE", window.DefaultSize),
		IdleTTL:    n.MayDuration("IDLE_TTL", 30*time.Minute),
		SweepEvery: n.MayDuration("SWEEP_EVERY", time.Minute),
		DetVer:     n.MayInt("DETVER", 1),
	}
}
