package ingest

import (
	"context"

	"vagalink/ingest-service/internal/model"
)

// Store is the persistence capability the pipeline runs against. It is
// injected into Service so the pipeline can be exercised with an in-memory
// double.
//
// FindByExternalID and FindByFingerprint return (nil, nil) when no record
// matches; an error means the lookup itself failed and must abort the item —
// it is never treated as "not found".
type Store interface {
	FindByExternalID(ctx context.Context, externalID string) (*model.JobPosting, error)
	// FindByFingerprint is part of the capability but is not consulted by the
	// batch path before insert: batch fingerprints are write-only, left for
	// downstream dedup consumers.
	FindByFingerprint(ctx context.Context, hash string) (*model.JobPosting, error)
	Insert(ctx context.Context, p model.JobPosting) (string, error)
	Update(ctx context.Context, id string, p model.JobPosting) error
	// LookupRegionByName resolves a free-text locality/province to a canonical
	// region id by exact name match. A miss returns (nil, nil).
	LookupRegionByName(ctx context.Context, name string) (*string, error)
}

// EventPublisher pushes ingestion events to downstream consumers (SSE
// gateway, dedup jobs). Publish failures are non-fatal to the pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}
