package module

import (
	"mouthwash/internal/core/lexicon"
	"mouthwash/internal/core/window"
	"mouthwash/internal/platform/config"
)

// Options holds configuration settings for the moderation module
type Options struct {
	WindowSize         int
	AllowedLanguage    string
	TopicKeywords      []string
	TopicPrompt        string
	OffTopicIndicators []string
	DetVer             int
	Workers            int
	PageSize           int
	MaxRangeHours      int
	DryRun             bool

	// Matcher is wiring-only and never read from config
	Matcher *lexicon.Matcher
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	mf := cfg.Prefix("CORE_MOD_")
	return Options{
		WindowSize:         mf.MayInt("WINDOW_SIZE", window.DefaultSize),
		AllowedLanguage:    mf.MayString("ALLOWED_LANGUAGE", ""),
		TopicKeywords:      mf.MayCSV("TOPIC_KEYWORDS", nil),
		TopicPrompt:        mf.MayString("TOPIC_PROMPT", ""),
		OffTopicIndicators: mf.MayCSV("OFFTOPIC_INDICATORS", nil),
		DetVer:             mf.MayInt("DETVER", 1),
		Workers:            mf.MayInt("WORKERS", 4),
		PageSize:           mf.MayInt("PAGE_SIZE", 500),
		MaxRangeHours:      mf.MayInt("MAX_RANGE_HOURS", 0),
		DryRun:             mf.MayBool("DRY_RUN", false),
	}
}
