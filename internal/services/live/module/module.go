// Package module implements the live module
package module

import (
	"net/http"

	"mouthwash/internal/core/lexicon"
	"mouthwash/internal/modkit"
	"mouthwash/internal/modkit/httpkit"
	"mouthwash/internal/services/live/domain"
	"mouthwash/internal/services/live/service"
)

// Ports exposed by the live module
type Ports struct {
	Service domain.ServicePort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new live module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("live"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("live module: expected WithPorts(live/domain.Ports)")
	}
	if ports.Flags == nil {
		panic("live module: Ports missing Flags")
	}

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.WindowSize != 0 {
		cfg.WindowSize = overrides.WindowSize
	}
	if overrides.IdleTTL != 0 {
		cfg.IdleTTL = overrides.IdleTTL
	}
	if overrides.SweepEvery != 0 {
		cfg.SweepEvery = overrides.SweepEvery
	}
	if overrides.DetVer != 0 {
		cfg.DetVer = overrides.DetVer
	}

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
		ports.Flags,
		m,
		service.Config{
			WindowSize: cfg.WindowSize,
			IdleTTL:    cfg.IdleTTL,
			SweepEvery: cfg.SweepEvery,
			DetVer:     cfg.DetVer,
		},
	)

	mod := &Module{deps: deps}
	mod.ports = Ports{Service: svc}
	return mod
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "live" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module; the HTTP surface lives in services/api
func (m *Module) MountRoutes(_ httpkit.Router) {}
