package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"vagalink/ingest-service/internal/metrics"
	"vagalink/ingest-service/internal/model"
)

// ─── Service ─────────────────────────────────────────────────────────────────

// Service orchestrates both ingestion paths. It is transport-agnostic: the
// HTTP handler decodes wire payloads into SingleRequest/BatchItem and maps
// the returned errors to status codes.
type Service struct {
	store  Store
	events EventPublisher
}

// NewService returns a configured Service.
func NewService(store Store, events EventPublisher) *Service {
	return &Service{store: store, events: events}
}

// Redis channel for downstream consumers (SSE gateway, dedup jobs).
const eventPostingIngested = "EVENT_POSTING_INGESTED"

// Provenance stamped on batch-imported rows, which carry none of their own.
const batchSourceName = "bulk-import"

// ─── Single-posting path ─────────────────────────────────────────────────────

// SingleRequest is a validated-shape /ingest-single payload. Field names keep
// the wire vocabulary so validation errors can name the offending field.
type SingleRequest struct {
	Titulo     string
	Empresa    string
	Local      string
	Data       string
	Descricao  string
	Link       string
	Origem     string
	ExternalID string
}

// firstMissingField returns the wire name of the first required field that is
// empty after trimming, or "" when all are present. Checks stop at the first
// miss — errors are not aggregated.
func (r SingleRequest) firstMissingField() string {
	checks := []struct{ name, value string }{
		{"titulo", r.Titulo},
		{"empresa", r.Empresa},
		{"local", r.Local},
		{"data", r.Data},
		{"descricao", r.Descricao},
		{"link", r.Link},
		{"origem", r.Origem},
		{"external_id", r.ExternalID},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return c.name
		}
	}
	return ""
}

// SingleResult reports the outcome of a single-posting ingestion.
type SingleResult struct {
	Action string // "created" or "updated"
	ID     string
}

// IngestSingle validates req, resolves it against the store by external_id,
// and inserts or updates accordingly.
//
// The dedup key for this path is the producer-supplied external_id; no
// content fingerprint is computed. Note that lookup-then-write is two store
// calls, so two concurrent submissions of the same external_id can race and
// both insert — no DB uniqueness constraint is relied on.
func (s *Service) IngestSingle(ctx context.Context, req SingleRequest) (*SingleResult, error) {
	if field := req.firstMissingField(); field != "" {
		return nil, &ValidationError{Field: field}
	}

	existing, err := s.store.FindByExternalID(ctx, req.ExternalID)
	if err != nil {
		metrics.IngestErrorsTotal.WithLabelValues("single").Inc()
		return nil, fmt.Errorf("lookup by external_id: %w", err)
	}

	p := model.JobPosting{
		Title:        req.Titulo,
		Company:      req.Empresa,
		Locality:     req.Local,
		Description:  req.Descricao,
		ContractType: model.ContractTypeUnspecified,
		Requirements: []string{},
		SourceURL:    &req.Link,
		SourceName:   &req.Origem,
		ExternalID:   &req.ExternalID,
		PublishedAt:  &req.Data,
	}

	if existing != nil {
		if err := s.store.Update(ctx, existing.ID, p); err != nil {
			metrics.IngestErrorsTotal.WithLabelValues("single").Inc()
			return nil, fmt.Errorf("update posting: %w", err)
		}
		metrics.PostingsIngestedTotal.WithLabelValues("single", "updated").Inc()
		s.publishIngested(ctx, existing.ID, "updated", nil)
		return &SingleResult{Action: "updated", ID: existing.ID}, nil
	}

	p.Active = true
	id, err := s.store.Insert(ctx, p)
	if err != nil {
		metrics.IngestErrorsTotal.WithLabelValues("single").Inc()
		return nil, fmt.Errorf("insert posting: %w", err)
	}
	metrics.PostingsIngestedTotal.WithLabelValues("single", "created").Inc()
	s.publishIngested(ctx, id, "created", nil)
	return &SingleResult{Action: "created", ID: id}, nil
}

// ─── Batch path ──────────────────────────────────────────────────────────────

// BatchItem is one validated-shape entry of a /ingest-batch payload.
type BatchItem struct {
	Titulo        string
	Empresa       string
	Localidade    string
	Provincia     string
	TipoContrato  string
	Descricao     string
	Requisitos    []string
	DiasRestantes int
}

// ItemError records one failed batch item, keyed by its title.
type ItemError struct {
	Vaga string `json:"vaga"`
	Erro string `json:"erro"`
}

// BatchReport is the aggregate outcome of a batch ingestion.
type BatchReport struct {
	Inserted int
	Errors   []ItemError
}

// IngestBatch processes items sequentially, in input order. Each item is
// independent: a resolver or store failure is recorded under the item's title
// and processing continues — one bad item never aborts the batch.
func (s *Service) IngestBatch(ctx context.Context, items []BatchItem) BatchReport {
	var report BatchReport

	for _, item := range items {
		if _, err := s.insertBatchItem(ctx, item); err != nil {
			log.Printf("[ingest] batch item %q failed: %v — continuing", item.Titulo, err)
			metrics.IngestErrorsTotal.WithLabelValues("batch").Inc()
			report.Errors = append(report.Errors, ItemError{Vaga: item.Titulo, Erro: err.Error()})
			continue
		}
		report.Inserted++
		metrics.PostingsIngestedTotal.WithLabelValues("batch", "inserted").Inc()
	}

	return report
}

// insertBatchItem resolves the region, computes expiry and fingerprint, and
// inserts the item as a new row. The fingerprint is stored but deliberately
// not looked up first: batch rows are always inserted as new, and the hash is
// left for downstream dedup consumers.
func (s *Service) insertBatchItem(ctx context.Context, item BatchItem) (string, error) {
	regionID, err := s.store.LookupRegionByName(ctx, item.Provincia)
	if err != nil {
		return "", fmt.Errorf("region lookup: %w", err)
	}

	expiresAt := ComputeExpiry(time.Now(), item.DiasRestantes)
	hash := Fingerprint(item.Titulo, item.Empresa, item.Localidade)

	contract := strings.TrimSpace(item.TipoContrato)
	if contract == "" {
		contract = model.ContractTypeUnspecified
	}

	requirements := item.Requisitos
	if requirements == nil {
		requirements = []string{}
	}

	sourceName := batchSourceName
	p := model.JobPosting{
		Title:        item.Titulo,
		Company:      item.Empresa,
		Locality:     item.Localidade,
		Description:  item.Descricao,
		RegionID:     regionID,
		ContractType: contract,
		Requirements: requirements,
		SourceName:   &sourceName,
		DedupHash:    &hash,
		ExpiresAt:    &expiresAt,
		Active:       true,
	}

	id, err := s.store.Insert(ctx, p)
	if err != nil {
		return "", fmt.Errorf("insert posting: %w", err)
	}
	s.publishIngested(ctx, id, "inserted", &hash)
	return id, nil
}

// ─── Events ──────────────────────────────────────────────────────────────────

// publishIngested emits EVENT_POSTING_INGESTED for downstream consumers.
// Non-fatal: a publish failure is logged and the ingestion result stands.
func (s *Service) publishIngested(ctx context.Context, id, action string, dedupHash *string) {
	if s.events == nil {
		return
	}
	payload := map[string]string{
		"type":   eventPostingIngested,
		"vagaId": id,
		"action": action,
	}
	if dedupHash != nil {
		payload["dedupHash"] = *dedupHash
	}
	event, _ := json.Marshal(payload)
	if err := s.events.Publish(ctx, eventPostingIngested, event); err != nil {
		slog.Warn("publish EVENT_POSTING_INGESTED failed", "vagaId", id, "err", err)
	}
}
