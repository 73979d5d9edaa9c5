package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"domainbot/internal/contextutil"
	"domainbot/internal/service"
)

// GenericErrorMessage is shown to clients for any server-side failure.
const GenericErrorMessage = "متأسفانه خطایی رخ داد. لطفا دوباره تلاش کنید."

// maxRequestBytes caps JSON request bodies.
const maxRequestBytes = 1 << 20

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// WriteError writes an error response tagged with the request id.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	writeJSON(w, r, statusCode, ErrorResponse{
		Error:     message,
		RequestID: contextutil.RequestIDFromContext(r.Context()),
	})
}

// decodeJSON reads a JSON body into v and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(v); err != nil {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		WriteError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// idParam parses the {id} URL parameter and answers 400 when it is not a
// positive integer.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "validation failed", "error", err)
		WriteError(w, r, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrInvalidInput):
		logger.WarnContext(ctx, "invalid input", "error", err)
		WriteError(w, r, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrConflict):
		logger.WarnContext(ctx, "conflicting request", "error", err)
		WriteError(w, r, http.StatusConflict, "A crawl of this source is in progress")
	case errors.Is(err, service.ErrStorage):
		logger.ErrorContext(ctx, "storage unavailable", "error", err)
		WriteError(w, r, http.StatusServiceUnavailable, GenericErrorMessage)
	case errors.Is(err, service.ErrExternalService):
		logger.ErrorContext(ctx, "external service error", "error", err)
		WriteError(w, r, http.StatusBadGateway, GenericErrorMessage)
	default:
		logger.ErrorContext(ctx, "service error", "error", err)
		WriteError(w, r, http.StatusInternalServerError, GenericErrorMessage)
	}
}
