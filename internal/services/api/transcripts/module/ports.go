package module

import (
	"context"

	"mouthwash/internal/services/api/transcripts/domain"
	trsvc "mouthwash/internal/services/api/transcripts/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptTranscriptsPort struct{ svc trsvc.Service }

var _ domain.ServicePort = adaptTranscriptsPort{}

// Import stores a batch of segments, skipping duplicates
func (a adaptTranscriptsPort) Import(ctx context.Context, in domain.ImportInput) (domain.ImportResponse, error) {
	return a.svc.Import(ctx, in)
}

// List returns one keyset page of stored segments
func (a adaptTranscriptsPort) List(ctx context.Context, in domain.ListInput) (domain.ListResponse, error) {
	return a.svc.List(ctx, in)
}
