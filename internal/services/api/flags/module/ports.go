package module

import (
	"context"

	"mouthwash/internal/services/api/flags/domain"
	flagssvc "mouthwash/internal/services/api/flags/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptFlagsPort struct{ svc flagssvc.Service }

var _ domain.ServicePort = adaptFlagsPort{}

// List returns one keyset page of stored flags
func (a adaptFlagsPort) List(ctx context.Context, in domain.ListInput) (domain.ListResponse, error) {
	return a.svc.List(ctx, in)
}

// Summary aggregates counts by kind and the top entries in the window
func (a adaptFlagsPort) Summary(ctx context.Context, in domain.SummaryInput) (domain.SummaryResponse, error) {
	return a.svc.Summary(ctx, in)
}
