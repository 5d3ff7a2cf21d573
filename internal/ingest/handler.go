package ingest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// ─── Wire types ──────────────────────────────────────────────────────────────

// singleRequest mirrors the POST /ingest-single body.
type singleRequest struct {
	Titulo     string `json:"titulo"`
	Empresa    string `json:"empresa"`
	Local      string `json:"local"`
	Data       string `json:"data"`
	Descricao  string `json:"descricao"`
	Link       string `json:"link"`
	Origem     string `json:"origem"`
	ExternalID string `json:"external_id"`
}

// batchRequest mirrors the POST /ingest-batch body.
type batchRequest struct {
	Postings []batchItemPayload `json:"postings"`
}

type batchItemPayload struct {
	Titulo        string   `json:"titulo"`
	Empresa       string   `json:"empresa"`
	Localidade    string   `json:"localidade"`
	Provincia     string   `json:"provincia"`
	TipoContrato  string   `json:"tipo_contrato"`
	Descricao     string   `json:"descricao"`
	Requisitos    []string `json:"requisitos"`
	DiasRestantes int      `json:"dias_restantes"`
}

type singleResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	VagaID  string `json:"vaga_id"`
	Action  string `json:"action"`
}

type batchResponse struct {
	Success        bool        `json:"success"`
	VagasInseridas int         `json:"vagas_inseridas"`
	Erros          []ItemError `json:"erros,omitempty"`
}

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler exposes the ingestion pipeline over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the ingestion routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ingest-single", h.handleSingle)
	mux.HandleFunc("/ingest-batch", h.handleBatch)
}

// ─── Individual handlers ─────────────────────────────────────────────────────

// handleSingle handles POST /ingest-single: one posting per call, deduped by
// the producer-supplied external_id. 201 on create, 200 on update.
func (h *Handler) handleSingle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		failJSON(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body singleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		failJSON(w, "corpo da requisição inválido", http.StatusBadRequest)
		return
	}

	res, err := h.svc.IngestSingle(r.Context(), SingleRequest{
		Titulo:     body.Titulo,
		Empresa:    body.Empresa,
		Local:      body.Local,
		Data:       body.Data,
		Descricao:  body.Descricao,
		Link:       body.Link,
		Origem:     body.Origem,
		ExternalID: body.ExternalID,
	})
	if err != nil {
		if IsValidation(err) {
			failJSON(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("[ingest] single ingestion error: %v", err)
		failJSON(w, err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	message := "Vaga atualizada com sucesso"
	if res.Action == "created" {
		status = http.StatusCreated
		message = "Vaga criada com sucesso"
	}
	writeJSON(w, status, singleResponse{
		Success: true,
		Message: message,
		VagaID:  res.ID,
		Action:  res.Action,
	})
}

// handleBatch handles POST /ingest-batch. The request is rejected before any
// item is processed when the postings field is missing or not an array; after
// that, per-item failures land in the erros list and the call returns 200.
func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		failJSON(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "postings" {
			jsonError(w, "Array de vagas é obrigatório", http.StatusBadRequest)
			return
		}
		jsonError(w, "corpo da requisição inválido", http.StatusBadRequest)
		return
	}
	if body.Postings == nil {
		jsonError(w, "Array de vagas é obrigatório", http.StatusBadRequest)
		return
	}

	items := make([]BatchItem, 0, len(body.Postings))
	for _, p := range body.Postings {
		items = append(items, BatchItem{
			Titulo:        p.Titulo,
			Empresa:       p.Empresa,
			Localidade:    p.Localidade,
			Provincia:     p.Provincia,
			TipoContrato:  p.TipoContrato,
			Descricao:     p.Descricao,
			Requisitos:    p.Requisitos,
			DiasRestantes: p.DiasRestantes,
		})
	}

	report := h.svc.IngestBatch(r.Context(), items)
	writeJSON(w, http.StatusOK, batchResponse{
		Success:        true,
		VagasInseridas: report.Inserted,
		Erros:          report.Errors,
	})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// failJSON writes the single-path error shape: {"success": false, "error": msg}.
func failJSON(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}

// jsonError writes the bare error shape used by the batch path: {"error": msg}.
func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
