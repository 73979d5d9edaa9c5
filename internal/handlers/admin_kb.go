package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"domainbot/internal/service"
	"domainbot/internal/storage"
)

// KBHandler manages knowledge-base entries.
type KBHandler struct {
	admin service.AdminService
}

// NewKBHandler creates a new KBHandler.
func NewKBHandler(admin service.AdminService) *KBHandler {
	return &KBHandler{admin: admin}
}

// QAResponse is one knowledge-base entry.
type QAResponse struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type QACreateRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QAUpdateRequest updates only the fields that are present.
type QAUpdateRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// ClearKBResponse reports how many entries were removed.
type ClearKBResponse struct {
	Deleted int64 `json:"deleted"`
}

// Routes mounts the handler under /admin/kb.
func (h *KBHandler) Routes(r chi.Router) {
	r.Delete("/", h.clear)
	r.Get("/qa", h.list)
	r.Post("/qa", h.create)
	r.Put("/qa/{id}", h.update)
	r.Delete("/qa/{id}", h.delete)
}

func toQAResponse(e storage.QAEntry) QAResponse {
	return QAResponse{
		ID:        e.ID,
		Question:  e.Question,
		Answer:    e.Answer,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (h *KBHandler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.admin.ListQA(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	out := make([]QAResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toQAResponse(e))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *KBHandler) create(w http.ResponseWriter, r *http.Request) {
	var req QACreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	entry, err := h.admin.CreateQA(r.Context(), req.Question, req.Answer)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toQAResponse(*entry))
}

func (h *KBHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req QAUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	entry, err := h.admin.UpdateQA(r.Context(), id, service.QAUpdate{
		Question: req.Question,
		Answer:   req.Answer,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toQAResponse(*entry))
}

func (h *KBHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.admin.DeleteQA(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *KBHandler) clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.admin.ClearKB(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ClearKBResponse{Deleted: n})
}
