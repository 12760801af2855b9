package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/femiolade/student-report-gateway/internal/idempotency"
	"github.com/femiolade/student-report-gateway/internal/interfaces/rest"
	"github.com/femiolade/student-report-gateway/internal/query"
	"github.com/femiolade/student-report-gateway/internal/validation"
)

// ReportHandler orchestrates one report submission: parse, validate, gate,
// query, respond. Every failure mode maps to one of the fixed response
// shapes; nothing propagates past the handler.
type ReportHandler struct {
	store  idempotency.Store
	logger *slog.Logger
}

func NewReportHandler(store idempotency.Store, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		store:  store,
		logger: logger,
	}
}

func (h *ReportHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /report", h.HandleReport)
}

// HandleReport processes a student report submission and returns the
// aggregated query results.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		rest.WriteInternalError(w, err)
		return
	}

	// An absent body is treated as an empty document.
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	report, violations, err := validation.ValidateReport(body)
	if err != nil {
		if errors.Is(err, validation.ErrInvalidJSON) {
			rest.WriteInvalidJSON(w)
			return
		}
		h.logger.Error("report validation failed unexpectedly", "error", err)
		rest.WriteInternalError(w, err)
		return
	}
	if len(violations) > 0 {
		rest.WriteValidationError(w, violations)
		return
	}

	key := idempotencyKey(r)

	admitted, err := h.store.Admit(r.Context(), key)
	if err != nil {
		h.logger.Error("idempotency gate failed", "idempotency_key", key, "error", err)
		rest.WriteInternalError(w, err)
		return
	}
	if !admitted {
		h.logger.Info("duplicate request suppressed", "idempotency_key", key)
		rest.WriteDuplicate(w)
		return
	}

	results := query.Evaluate(report)

	rest.WriteJSON(w, http.StatusOK, results)
}

// idempotencyKey resolves the key for the gate: the caller-supplied
// Idempotency-Key header, then the transport request id, then a generated
// identifier. The generated fallback is unique per request so keyless
// requests never collide with each other.
func idempotencyKey(r *http.Request) string {
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		return key
	}
	if key := r.Header.Get("X-Request-Id"); key != "" {
		return key
	}
	return uuid.NewString()
}
