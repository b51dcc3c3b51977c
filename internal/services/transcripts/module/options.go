package module

import (
	"mouthwash/internal/platform/config"
)

// Options configures the transcripts module
type Options struct {
	DefaultLimit int
	HardLimit    int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	tf := cfg.Prefix("CORE_TRANSCRIPTS_")
	return Options{
		DefaultLimit: tf.MayInt("DEFAULT_LIMIT", 100),
		HardLimit:    tf.MayInt("HARD_LIMIT", 500),
	}
}
