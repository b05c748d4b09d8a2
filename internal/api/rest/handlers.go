package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domainerrors "github.com/juggajay/risksure-backend/internal/domain/errors"
	"github.com/juggajay/risksure-backend/internal/domain/verification"
	"github.com/juggajay/risksure-backend/internal/service/verdict"
)

// Verifier runs the verification pipeline for one submission.
type Verifier interface {
	Evaluate(ctx context.Context, req verdict.Request) (*verification.FinalVerdict, error)
}

// VerdictReader serves the read side of the API.
type VerdictReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*verification.FinalVerdict, error)
}

// Handler holds the HTTP handlers for the verification API.
type Handler struct {
	verifier Verifier
	verdicts VerdictReader
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates the API handler set.
func NewHandler(verifier Verifier, verdicts VerdictReader, logger *slog.Logger) *Handler {
	return &Handler{
		verifier: verifier,
		verdicts: verdicts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// SubmitVerification handles POST /api/v1/verifications.
func (h *Handler) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	var payload SubmitVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		return
	}

	if err := h.validate.Struct(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", validationMessage(err))
		return
	}

	req, err := payload.toRequest()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	final, err := h.verifier.Evaluate(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, final)
}

// GetVerification handles GET /api/v1/verifications/{id}.
func (h *Handler) GetVerification(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "verification id must be a UUID")
		return
	}

	final, err := h.verdicts.GetByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, final)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := domainerrors.GetStatusCode(err)
	if status >= 500 {
		h.logger.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	}

	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		writeError(w, status, appErr.Code, appErr.Message)
		return
	}
	writeError(w, status, "INTERNAL_ERROR", "An internal error occurred")
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return "invalid field " + first.Namespace() + " (" + first.Tag() + ")"
	}
	return "request failed validation"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}
