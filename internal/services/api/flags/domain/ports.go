package domain

import "context"

// ServicePort is the flags query surface exposed over http and to other modules
type ServicePort interface {
	// List returns one keyset page of stored flags
	List(ctx context.Context, in ListInput) (ListResponse, error)

	// Summary aggregates counts by kind and the top entries in the window
	Summary(ctx context.Context, in SummaryInput) (SummaryResponse, error)
}
