package module

import "mouthwash/internal/platform/config"

// Options holds configuration settings for the flags module
type Options struct {
	DefaultLimit int
	HardLimit    int
	TopLimit     int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	ff := cfg.Prefix("CORE_FLAGS_")
	return Options{
		DefaultLimit: ff.MayInt("DEFAULT_LIMIT", 100),
		HardLimit:    ff.MayInt("HARD_LIMIT", 500),
		TopLimit:     ff.MayInt("TOP_LIMIT", 50),
	}
}
