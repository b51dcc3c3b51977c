// Package module implements the moderation module
package module

import (
	"net/http"

	"mouthwash/internal/core/lexicon"
	"mouthwash/internal/core/topic"
	"mouthwash/internal/modkit"
	"mouthwash/internal/modkit/httpkit"
	"mouthwash/internal/services/moderation/domain"
	"mouthwash/internal/services/moderation/service"
)

// Ports exposed by the moderation module
type Ports struct {
	Service domain.ServicePort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new moderation module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("moderation"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("moderation module: expected WithPorts(moderation/domain.Ports)")
	}
	if ports.Transcripts == nil || ports.Flags == nil {
		panic("moderation module: Ports missing Transcripts or Flags")
	}

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.WindowSize != 0 {
		cfg.WindowSize = overrides.WindowSize
	}
	if overrides.AllowedLanguage != "" {
		cfg.AllowedLanguage = overrides.AllowedLanguage
	}
	if len(overrides.TopicKeywords) != 0 {
		cfg.TopicKeywords = overrides.TopicKeywords
	}
	if overrides.TopicPrompt != "" {
		cfg.TopicPrompt = overrides.TopicPrompt
	}
	if len(overrides.OffTopicIndicators) != 0 {
		cfg.OffTopicIndicators = overrides.OffTopicIndicators
	}
	if overrides.DetVer != 0 {
		cfg.DetVer = overrides.DetVer
	}
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}
	if overrides.PageSize != 0 {
		cfg.PageSize = overrides.PageSize
	}
	if overrides.MaxRangeHours != 0 {
		cfg.MaxRangeHours = overrides.MaxRangeHours
	}
	// bool override wins (defaults false if caller didn't set)
	cfg.DryRun = overrides.DryRun

	// Shared matcher; callers that already hold one pass it through overrides
	m := overrides.Matcher
	if m == nil {
		pack, err := lexicon.Load()
		if err != nil {
			panic(err)
		}
		m = lexicon.NewMatcher(pack)
	}

	svc := service.New(
		ports,
		m,
		service.Config{
			Policy: domain.Policy{
				AllowedLanguage: cfg.AllowedLanguage,
				Topic: topic.Config{
					Keywords:   cfg.TopicKeywords,
					Indicators: cfg.OffTopicIndicators,
					Prompt:     cfg.TopicPrompt,
				},
				WindowSize: cfg.WindowSize,
				DetVer:     cfg.DetVer,
			},
			Workers:       cfg.Workers,
			PageSize:      cfg.PageSize,
			MaxRangeHours: cfg.MaxRangeHours,
			DryRun:        cfg.DryRun,
		},
	)

	mod := &Module{deps: deps}
	mod.ports = Ports{Service: svc}
	return mod
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "moderation" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module; the HTTP surface lives in services/api
func (m *Module) MountRoutes(_ httpkit.Router) {}
