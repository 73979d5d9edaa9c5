package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"domainbot/internal/service"
	"domainbot/internal/storage"
)

// IntentHandler manages canned intent replies.
type IntentHandler struct {
	admin service.AdminService
}

// NewIntentHandler creates a new IntentHandler.
func NewIntentHandler(admin service.AdminService) *IntentHandler {
	return &IntentHandler{admin: admin}
}

// IntentResponse is one intent. Keywords are comma-separated.
type IntentResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Keywords  string    `json:"keywords"`
	Response  string    `json:"response"`
	Enabled   bool      `json:"enabled"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IntentCreateRequest creates an intent. Enabled defaults to true.
type IntentCreateRequest struct {
	Name     string `json:"name"`
	Keywords string `json:"keywords"`
	Response string `json:"response"`
	Enabled  *bool  `json:"enabled"`
	Priority int    `json:"priority"`
}

type IntentUpdateRequest struct {
	Name     *string `json:"name"`
	Keywords *string `json:"keywords"`
	Response *string `json:"response"`
	Enabled  *bool   `json:"enabled"`
	Priority *int    `json:"priority"`
}

// Routes mounts the handler under /admin/intent.
func (h *IntentHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func toIntentResponse(i storage.Intent) IntentResponse {
	return IntentResponse{
		ID:        i.ID,
		Name:      i.Name,
		Keywords:  i.Keywords,
		Response:  i.Response,
		Enabled:   i.Enabled,
		Priority:  i.Priority,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func (h *IntentHandler) list(w http.ResponseWriter, r *http.Request) {
	intents, err := h.admin.ListIntents(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	out := make([]IntentResponse, 0, len(intents))
	for _, i := range intents {
		out = append(out, toIntentResponse(i))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *IntentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req IntentCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.admin.CreateIntent(r.Context(), service.IntentInput{
		Name:     req.Name,
		Keywords: req.Keywords,
		Response: req.Response,
		Enabled:  enabledOrDefault(req.Enabled),
		Priority: req.Priority,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toIntentResponse(*created))
}

func (h *IntentHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req IntentUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	updated, err := h.admin.UpdateIntent(r.Context(), id, service.IntentUpdate{
		Name:     req.Name,
		Keywords: req.Keywords,
		Response: req.Response,
		Enabled:  req.Enabled,
		Priority: req.Priority,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toIntentResponse(*updated))
}

func (h *IntentHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.admin.DeleteIntent(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GreetingAdminHandler manages stored greetings.
type GreetingAdminHandler struct {
	admin service.AdminService
}

// NewGreetingAdminHandler creates a new GreetingAdminHandler.
func NewGreetingAdminHandler(admin service.AdminService) *GreetingAdminHandler {
	return &GreetingAdminHandler{admin: admin}
}

type GreetingItem struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Enabled   bool      `json:"enabled"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GreetingCreateRequest creates a greeting. Enabled defaults to true.
type GreetingCreateRequest struct {
	Message  string `json:"message"`
	Enabled  *bool  `json:"enabled"`
	Priority int    `json:"priority"`
}

type GreetingUpdateRequest struct {
	Message  *string `json:"message"`
	Enabled  *bool   `json:"enabled"`
	Priority *int    `json:"priority"`
}

// Routes mounts the handler under /admin/greeting.
func (h *GreetingAdminHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func toGreetingItem(g storage.Greeting) GreetingItem {
	return GreetingItem{
		ID:        g.ID,
		Message:   g.Message,
		Enabled:   g.Enabled,
		Priority:  g.Priority,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (h *GreetingAdminHandler) list(w http.ResponseWriter, r *http.Request) {
	greetings, err := h.admin.ListGreetings(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	out := make([]GreetingItem, 0, len(greetings))
	for _, g := range greetings {
		out = append(out, toGreetingItem(g))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *GreetingAdminHandler) create(w http.ResponseWriter, r *http.Request) {
	var req GreetingCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.admin.CreateGreeting(r.Context(), service.GreetingInput{
		Message:  req.Message,
		Enabled:  enabledOrDefault(req.Enabled),
		Priority: req.Priority,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toGreetingItem(*created))
}

func (h *GreetingAdminHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req GreetingUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	updated, err := h.admin.UpdateGreeting(r.Context(), id, service.GreetingUpdate{
		Message:  req.Message,
		Enabled:  req.Enabled,
		Priority: req.Priority,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toGreetingItem(*updated))
}

func (h *GreetingAdminHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.admin.DeleteGreeting(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func enabledOrDefault(enabled *bool) bool {
	if enabled == nil {
		return true
	}
	return *enabled
}
