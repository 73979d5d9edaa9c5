package handlers

import (
	"net/http"

	"domainbot/internal/contextutil"
	"domainbot/internal/rag"
	"domainbot/internal/service"
)

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents the HTTP request payload for chat. An empty
// session id starts a new session.
//
// swagger:model ChatRequest
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// SourceInfo is one citation in a chat response.
type SourceInfo struct {
	Type  string  `json:"type"`
	ID    int64   `json:"id"`
	Title string  `json:"title,omitempty"`
	URL   string  `json:"url,omitempty"`
	Score float64 `json:"score"`
}

// ChatResponse represents the HTTP response payload for chat.
//
// swagger:model ChatResponse
type ChatResponse struct {
	SessionID string       `json:"session_id"`
	Answer    string       `json:"answer"`
	Sources   []SourceInfo `json:"sources"`
	Refused   bool         `json:"refused"`
	// OpenAICalled reports whether the answer generator was invoked.
	OpenAICalled bool                 `json:"openai_called"`
	Outcome      string               `json:"outcome"`
	MissingInfo  *service.MissingInfo `json:"missing_info,omitempty"`
	// Debug is only populated in development.
	Debug *service.DebugInfo `json:"debug,omitempty"`
}

// ServeHTTP handles HTTP requests for chat.
//
// swagger:route POST /chat chat
//
// Answers one user message from the knowledge base and crawled pages, or
// refuses when no source supports an answer.
//
// responses:
//
//	200: ChatResponse
//	400: ErrorResponse
//	429: ErrorResponse
//	503: ErrorResponse
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svcResp, err := h.chatService.ProcessChat(ctx, service.ChatRequest{
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, ChatResponse{
		SessionID:    svcResp.SessionID,
		Answer:       svcResp.Answer,
		Sources:      toSourceInfos(svcResp.Sources),
		Refused:      svcResp.Refused,
		OpenAICalled: svcResp.GeneratorCalled,
		Outcome:      svcResp.Outcome,
		MissingInfo:  svcResp.MissingInfo,
		Debug:        svcResp.Debug,
	})
}

func toSourceInfos(refs []rag.SourceRef) []SourceInfo {
	out := make([]SourceInfo, 0, len(refs))
	for _, ref := range refs {
		out = append(out, SourceInfo{
			Type:  ref.Type,
			ID:    ref.ID,
			Title: ref.Title,
			URL:   ref.URL,
			Score: ref.Score,
		})
	}
	return out
}

// GreetingHandler serves the greeting shown when a chat opens.
type GreetingHandler struct {
	chatService service.ChatService
}

// NewGreetingHandler creates a new GreetingHandler.
func NewGreetingHandler(chatService service.ChatService) *GreetingHandler {
	return &GreetingHandler{chatService: chatService}
}

// GreetingResponse carries the greeting text.
type GreetingResponse struct {
	Message string `json:"message"`
}

func (h *GreetingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	greeting, err := h.chatService.Greeting(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, GreetingResponse{Message: greeting})
}
