// Package module provides the transcripts module
package module

import (
	"mouthwash/internal/modkit"
	"mouthwash/internal/modkit/httpkit"
	"mouthwash/internal/modkit/repokit"
	"mouthwash/internal/services/transcripts/domain"
	"mouthwash/internal/services/transcripts/repo"
	"mouthwash/internal/services/transcripts/service"
)

// Ports exposed by the transcripts module
type Ports struct {
	Writer domain.WriterPort
	Reader domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new transcripts module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder, service.Config{
		DefaultLimit: opts.DefaultLimit,
		HardLimit:    opts.HardLimit,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Writer: svc, Reader: svc}
	return m
}

// Name implements modkit.Module
func (m *Module) Name() string { return "transcripts" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes implements modkit.Module; the HTTP surface lives in services/api
func (m *Module) MountRoutes(r httpkit.Router) {}
