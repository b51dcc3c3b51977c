package module

import (
	"mouthwash/internal/platform/config"
)

// Options for the rollup module
type Options struct {
	DetVer    int
	Retention string
	Workers   int
	UseLease  bool
}

// FromConfig fills options from environment
// CORE_ROLLUP_DETVER (default 1) is the detector version stamped on rollup slices
// CORE_ROLLUP_RETENTION (default "full") is "full" or "timebox:Nd"
// CORE_ROLLUP_WORKERS (default 2) is the number of concurrent day workers
// CORE_ROLLUP_USE_LEASE (default true) takes a per-day advisory lock
func FromConfig(cfg config.Conf) Options {
	n := cfg.Prefix("CORE_ROLLUP_")
	return Options{
		DetVer:    n.MayInt("DETVER", 1),
		Retention: n.MayString("RETENTION", "full"),
		Workers:   n.MayInt("WORKERS", 2),
		UseLease:  n.MayBool("USE_LEASE", true),
	}
}
