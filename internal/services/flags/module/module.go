// Package module implements the flags service module
package module

import (
	"mouthwash/internal/modkit"
	"mouthwash/internal/modkit/httpkit"
	"mouthwash/internal/modkit/repokit"
	"mouthwash/internal/services/flags/domain"
	"mouthwash/internal/services/flags/repo"
	"mouthwash/internal/services/flags/service"
)

// Ports exposed by the flags module
type Ports struct {
	Writer domain.WriterPort
	Reader domain.ReaderPort
}

// Module implements the flags service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new flags module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder, service.Config{
		DefaultLimit: opts.DefaultLimit,
		HardLimit:    opts.HardLimit,
		TopLimit:     opts.TopLimit,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Writer: svc, Reader: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "flags" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; the HTTP surface lives in services/api
func (m *Module) MountRoutes(r httpkit.Router) {}
