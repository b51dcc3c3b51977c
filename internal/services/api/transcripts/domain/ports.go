package domain

import "context"

// ServicePort is the transcripts surface exposed over http and to other modules
type ServicePort interface {
	// Import stores a batch of segments, skipping duplicates
	Import(ctx context.Context, in ImportInput) (ImportResponse, error)

	// List returns one keyset page of stored segments
	List(ctx context.Context, in ListInput) (ListResponse, error)
}
