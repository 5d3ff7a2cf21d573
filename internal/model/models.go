// Package model defines shared data structures for the ingest service.
package model

import "time"

// JobPosting is the canonical posting record stored in job_postings.
// ID is assigned by the store on insert and never changes afterwards.
type JobPosting struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Locality     string     `json:"locality"`
	Description  string     `json:"description"`
	RegionID     *string    `json:"regionId"`     // nil when the locality matches no known region
	ContractType string     `json:"contractType"` // free text, or ContractTypeUnspecified
	Requirements []string   `json:"requirements"`
	SourceURL    *string    `json:"sourceUrl"`
	SourceName   *string    `json:"sourceName"`
	ExternalID   *string    `json:"externalId"`  // single-posting producers only; also their dedup key
	DedupHash    *string    `json:"dedupHash"`   // batch path only; digest over title|company|locality
	PublishedAt  *string    `json:"publishedAt"` // origin-supplied, passed through unmodified
	ExpiresAt    *time.Time `json:"expiresAt"`   // batch path only, date-only
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"` // set on every update, nil until then
}

// ContractTypeUnspecified is the sentinel stored when a producer supplies no
// contract type.
const ContractTypeUnspecified = "Not specified"
