// Package module wires up the rollup service as a modkit.Module
package module

import (
	"mouthwash/internal/modkit"
	"mouthwash/internal/modkit/httpkit"
	modreg "mouthwash/internal/modkit/module"
	"mouthwash/internal/modkit/repokit"

	rodom "mouthwash/internal/services/rollup/domain"
	rorepo "mouthwash/internal/services/rollup/repo"
	roservice "mouthwash/internal/services/rollup/service"
)

// Ports exported by the rollup module
type Ports struct {
	Runner rodom.RunnerPort
}

// Module implements modkit.Module for rollup
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs and wires the rollup module using deps.Cfg
func New(deps modkit.Deps) *Module {
	if deps.PG == nil {
		panic("rollup module: deps.PG is required")
	}
	if deps.CH == nil {
		panic("rollup module: deps.CH is required")
	}
	opts := FromConfig(deps.Cfg)

	binder := rorepo.NewHybrid(deps.CH)

	svc := roservice.New(
		repokit.TxRunner(deps.PG),
		binder,
		roservice.Config{
			DetVer:    opts.DetVer,
			Retention: opts.Retention,
			Workers:   opts.Workers,
			UseLease:  opts.UseLease,
		},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "rollup" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module config prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op: rollup has no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Register convenience: allow others to resolve our ports via registry
func Register(deps modkit.Deps) {
	m := New(deps)
	modreg.Register(m.Name(), m.Ports())
}
