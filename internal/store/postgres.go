// Package store implements the ingest.Store capability on PostgreSQL.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vagalink/ingest-service/internal/model"
)

// Postgres persists job postings and resolves regions via pgxpool.
//
// job_postings carries no uniqueness constraint on external_id or dedup_hash:
// the pipeline's lookup-then-write is the only dedup enforcement, so two
// concurrent submissions of the same key can both insert.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Postgres store backed by pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const postingColumns = `id, title, company, locality, description, region_id,
	contract_type, requirements, source_url, source_name, external_id,
	dedup_hash, published_at, expires_at, active, created_at, updated_at`

// FindByExternalID returns the posting with the given external_id, active or
// not, or (nil, nil) when none exists.
func (s *Postgres) FindByExternalID(ctx context.Context, externalID string) (*model.JobPosting, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+postingColumns+`
		 FROM job_postings
		 WHERE external_id = $1
		 LIMIT 1`,
		externalID,
	)
	p, err := scanPosting(row)
	if err != nil {
		return nil, fmt.Errorf("find posting by external_id: %w", err)
	}
	return p, nil
}

// FindByFingerprint returns the posting with the given dedup_hash, or
// (nil, nil) when none exists.
func (s *Postgres) FindByFingerprint(ctx context.Context, hash string) (*model.JobPosting, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+postingColumns+`
		 FROM job_postings
		 WHERE dedup_hash = $1
		 LIMIT 1`,
		hash,
	)
	p, err := scanPosting(row)
	if err != nil {
		return nil, fmt.Errorf("find posting by dedup_hash: %w", err)
	}
	return p, nil
}

// scanPosting reads one job_postings row, mapping pgx.ErrNoRows to (nil, nil).
func scanPosting(row pgx.Row) (*model.JobPosting, error) {
	var p model.JobPosting
	err := row.Scan(
		&p.ID, &p.Title, &p.Company, &p.Locality, &p.Description, &p.RegionID,
		&p.ContractType, &p.Requirements, &p.SourceURL, &p.SourceName,
		&p.ExternalID, &p.DedupHash, &p.PublishedAt, &p.ExpiresAt, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert stores p as a new row and returns the store-assigned id.
func (s *Postgres) Insert(ctx context.Context, p model.JobPosting) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO job_postings
		   (title, company, locality, description, region_id, contract_type,
		    requirements, source_url, source_name, external_id, dedup_hash,
		    published_at, expires_at, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id`,
		p.Title, p.Company, p.Locality, p.Description, p.RegionID, p.ContractType,
		p.Requirements, p.SourceURL, p.SourceName, p.ExternalID, p.DedupHash,
		p.PublishedAt, p.ExpiresAt, p.Active,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert posting: %w", err)
	}
	return id, nil
}

// Update overwrites the mutable fields of the posting with the given id and
// bumps updated_at.
func (s *Postgres) Update(ctx context.Context, id string, p model.JobPosting) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_postings
		 SET title         = $1,
		     company       = $2,
		     locality      = $3,
		     description   = $4,
		     contract_type = $5,
		     source_url    = $6,
		     source_name   = $7,
		     external_id   = $8,
		     published_at  = $9,
		     updated_at    = NOW()
		 WHERE id = $10`,
		p.Title, p.Company, p.Locality, p.Description, p.ContractType,
		p.SourceURL, p.SourceName, p.ExternalID, p.PublishedAt, id,
	)
	if err != nil {
		return fmt.Errorf("update posting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update posting: id %s not found", id)
	}
	return nil
}

// LookupRegionByName resolves a free-text locality/province to a region id by
// exact name match. A miss is (nil, nil), never an error.
func (s *Postgres) LookupRegionByName(ctx context.Context, name string) (*string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM regions WHERE name = $1`,
		name,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup region %q: %w", name, err)
	}
	return &id, nil
}

// DeactivateExpired flips active to false on every posting whose expiry date
// has passed, returning how many rows changed. Used by the scheduler sweep.
func (s *Postgres) DeactivateExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_postings
		 SET active     = false,
		     updated_at = NOW()
		 WHERE active
		   AND expires_at IS NOT NULL
		   AND expires_at < CURRENT_DATE`,
	)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired postings: %w", err)
	}
	return tag.RowsAffected(), nil
}
