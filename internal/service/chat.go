package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks domainbot/internal/service Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks domainbot/internal/service Retriever
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_intent_matcher.go -package=mocks domainbot/internal/service IntentMatcher
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService domainbot/internal/service ChatService

import (
	"context"
	"errors"
	"strings"

	"domainbot/internal/contextutil"
	"domainbot/internal/intent"
	"domainbot/internal/llm"
	"domainbot/internal/rag"
	"domainbot/internal/storage"

	"github.com/google/uuid"
)

// User-facing messages for generation failures.
const (
	TimeoutMessage         = "زمان اتصال به پایان رسید. لطفا دوباره تلاش کنید."
	GenerationErrorMessage = "خطایی رخ داده است. لطفا دوباره تلاش کنید."
)

// Outcomes reported with every chat response.
const (
	OutcomeIntent           = "intent"
	OutcomeGreeting         = "greeting"
	OutcomeRefused          = "refused"
	OutcomeAnswered         = "answered"
	OutcomeNotGrounded      = "not_grounded"
	OutcomeGenerationFailed = "generation_failed"
)

// Generator produces an answer from grounding context.
// This interface is defined from the service layer's perspective (consumer-first).
type Generator interface {
	GenerateAnswer(ctx context.Context, userMessage, contextText string, sources []rag.SourceRef) (string, error)
}

// Retriever scores the corpus against a query.
type Retriever interface {
	RetrieveAll(ctx context.Context, query string) (rag.Result, error)
}

// IntentMatcher resolves canned replies and the greeting text.
type IntentMatcher interface {
	Match(ctx context.Context, message string) (*storage.Intent, error)
	Greeting(ctx context.Context) (string, error)
}

// ChatRequest represents a chat request in the domain layer.
type ChatRequest struct {
	SessionID string
	Message   string
}

// MissingInfo explains a refusal to operators and the frontend.
type MissingInfo struct {
	Query               string  `json:"query"`
	KBResultsCount      int     `json:"kb_results_count"`
	WebsiteResultsCount int     `json:"website_results_count"`
	MaxConfidence       float64 `json:"max_confidence"`
	Reason              string  `json:"reason"`
	Threshold           float64 `json:"threshold"`
}

// RetrievalHits counts hits per corpus.
type RetrievalHits struct {
	KB      int `json:"kb"`
	Website int `json:"website"`
}

// DebugInfo is attached to responses in development only.
type DebugInfo struct {
	IntentMatched string         `json:"intent_matched,omitempty"`
	LLMCalled     bool           `json:"llm_called"`
	RetrievalHits *RetrievalHits `json:"retrieval_hits,omitempty"`
	MaxConfidence float64        `json:"max_confidence"`
}

// ChatResponse represents a chat response in the domain layer.
type ChatResponse struct {
	SessionID       string          `json:"session_id"`
	Answer          string          `json:"answer"`
	Sources         []rag.SourceRef `json:"sources"`
	Refused         bool            `json:"refused"`
	GeneratorCalled bool            `json:"openai_called"`
	Outcome         string          `json:"outcome"`
	MissingInfo     *MissingInfo    `json:"missing_info,omitempty"`
	Debug           *DebugInfo      `json:"debug,omitempty"`
}

// ChatService provides chat functionality.
type ChatService interface {
	// ProcessChat answers one message. Store failures are returned as
	// ErrStorage; generation failures are answered with an apology.
	ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	// Greeting returns the greeting shown when a session opens.
	Greeting(ctx context.Context) (string, error)
}

// chatService implements ChatService.
type chatService struct {
	retriever Retriever
	guard     *rag.Guard
	matcher   IntentMatcher
	generator Generator
	logs      storage.ChatLogStore
	debug     bool
}

// NewChatService creates a new ChatService. debug attaches DebugInfo to responses.
func NewChatService(retriever Retriever, guard *rag.Guard, matcher IntentMatcher, generator Generator, logs storage.ChatLogStore, debug bool) ChatService {
	return &chatService{
		retriever: retriever,
		guard:     guard,
		matcher:   matcher,
		generator: generator,
		logs:      logs,
		debug:     debug,
	}
}

// turn carries the per-request facts every branch needs.
type turn struct {
	sessionID  string
	message    string
	newSession bool
	intent     string
}

// ProcessChat processes a chat request.
func (s *chatService) ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Message) == "" {
		logger.WarnContext(ctx, "empty message in chat request")
		return ChatResponse{}, &ValidationError{
			Field:   "message",
			Message: "cannot be empty",
		}
	}

	t := turn{
		sessionID:  strings.TrimSpace(req.SessionID),
		message:    req.Message,
		newSession: true,
	}
	if t.sessionID == "" {
		t.sessionID = uuid.NewString()
	} else {
		n, err := s.logs.CountBySession(ctx, t.sessionID)
		if err != nil {
			return ChatResponse{}, storageError(err, "failed to look up session")
		}
		t.newSession = n == 0
	}

	logger = logger.With("session_id", t.sessionID)
	ctx = contextutil.WithLogger(ctx, logger)

	matched, err := s.matcher.Match(ctx, t.message)
	if err != nil {
		return ChatResponse{}, storageError(err, "failed to match intents")
	}
	if matched != nil {
		t.intent = matched.Name
		return s.replyIntent(ctx, t, matched)
	}

	if intent.IsGreeting(t.message) {
		return s.replyGreeting(ctx, t)
	}

	res, err := s.retriever.RetrieveAll(ctx, t.message)
	if err != nil {
		return ChatResponse{}, storageError(err, "failed to retrieve sources")
	}

	decision := s.guard.Decide(res)
	if decision.State == rag.StateRefuse {
		return s.replyRefusal(ctx, t, res, decision), nil
	}
	return s.replyAnswer(ctx, t, res)
}

// Greeting returns the configured greeting.
func (s *chatService) Greeting(ctx context.Context) (string, error) {
	g, err := s.matcher.Greeting(ctx)
	if err != nil {
		return "", storageError(err, "failed to load greeting")
	}
	return g, nil
}

func (s *chatService) replyIntent(ctx context.Context, t turn, matched *storage.Intent) (ChatResponse, error) {
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "intent matched",
		"intent", matched.Name,
		"query_preview", preview(t.message),
	)

	answer, err := s.withGreeting(ctx, t, matched.Response)
	if err != nil {
		return ChatResponse{}, err
	}

	resp := ChatResponse{
		SessionID: t.sessionID,
		Answer:    answer,
		Sources:   []rag.SourceRef{},
		Outcome:   OutcomeIntent,
	}
	if s.debug {
		resp.Debug = &DebugInfo{IntentMatched: matched.Name}
	}
	s.record(ctx, t, answer, storage.SourceIDs{}, false)
	return resp, nil
}

func (s *chatService) replyGreeting(ctx context.Context, t turn) (ChatResponse, error) {
	greeting, err := s.Greeting(ctx)
	if err != nil {
		return ChatResponse{}, err
	}

	resp := ChatResponse{
		SessionID: t.sessionID,
		Answer:    greeting,
		Sources:   []rag.SourceRef{},
		Outcome:   OutcomeGreeting,
	}
	if s.debug {
		resp.Debug = &DebugInfo{}
	}
	s.record(ctx, t, greeting, storage.SourceIDs{}, false)
	return resp, nil
}

func (s *chatService) replyRefusal(ctx context.Context, t turn, res rag.Result, decision rag.Decision) ChatResponse {
	hits := RetrievalHits{KB: len(res.KB), Website: len(res.Website)}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "chat refused",
		"query_preview", preview(t.message),
		"kb_results", hits.KB,
		"website_results", hits.Website,
		"max_confidence", res.MaxConfidence,
		"refusal_reason", decision.Reason,
		"threshold", s.guard.Threshold(),
	)

	resp := ChatResponse{
		SessionID: t.sessionID,
		Answer:    rag.RefusalMessage,
		Sources:   []rag.SourceRef{},
		Refused:   true,
		Outcome:   OutcomeRefused,
		MissingInfo: &MissingInfo{
			Query:               t.message,
			KBResultsCount:      hits.KB,
			WebsiteResultsCount: hits.Website,
			MaxConfidence:       res.MaxConfidence,
			Reason:              decision.Reason,
			Threshold:           s.guard.Threshold(),
		},
	}
	if s.debug {
		resp.Debug = &DebugInfo{RetrievalHits: &hits, MaxConfidence: res.MaxConfidence}
	}
	s.record(ctx, t, resp.Answer, storage.SourceIDs{}, true)
	return resp
}

func (s *chatService) replyAnswer(ctx context.Context, t turn, res rag.Result) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)
	hits := RetrievalHits{KB: len(res.KB), Website: len(res.Website)}

	contextText := s.guard.BuildContext(res)
	sources := rag.Sources(res)

	logger.InfoContext(ctx, "calling generator",
		"query_preview", preview(t.message),
		"kb_results", hits.KB,
		"website_results", hits.Website,
		"max_confidence", res.MaxConfidence,
	)

	resp := ChatResponse{
		SessionID:       t.sessionID,
		Sources:         []rag.SourceRef{},
		GeneratorCalled: true,
	}
	if s.debug {
		resp.Debug = &DebugInfo{LLMCalled: true, RetrievalHits: &hits, MaxConfidence: res.MaxConfidence}
	}

	answer, err := s.generator.GenerateAnswer(ctx, t.message, contextText, sources)
	switch {
	case err != nil:
		logger.ErrorContext(ctx, "answer generation failed", "error", err)
		resp.Answer = GenerationErrorMessage
		if errors.Is(err, llm.ErrTimeout) {
			resp.Answer = TimeoutMessage
		}
		resp.Outcome = OutcomeGenerationFailed
		s.record(ctx, t, resp.Answer, storage.SourceIDs{}, false)
		return resp, nil

	case strings.Contains(answer, rag.NotFoundMessage) || !rag.IsGroundedAnswer(answer, contextText):
		logger.InfoContext(ctx, "generated answer not grounded in sources", "answer_length", len(answer))
		resp.Answer = rag.NotFoundMessage
		resp.Refused = true
		resp.Outcome = OutcomeNotGrounded
		s.record(ctx, t, resp.Answer, storage.SourceIDs{}, true)
		return resp, nil
	}

	answer, err = s.withGreeting(ctx, t, answer)
	if err != nil {
		return ChatResponse{}, err
	}
	resp.Answer = answer
	resp.Sources = sources
	resp.Outcome = OutcomeAnswered

	logger.InfoContext(ctx, "chat answered",
		"answer_length", len(answer),
		"sources_count", len(sources),
	)
	s.record(ctx, t, answer, rag.ExtractSourceIDs(res), false)
	return resp, nil
}

// withGreeting prefixes text with the greeting on a session's first turn.
func (s *chatService) withGreeting(ctx context.Context, t turn, text string) (string, error) {
	if !t.newSession {
		return text, nil
	}
	greeting, err := s.Greeting(ctx)
	if err != nil {
		return "", err
	}
	return greeting + "\n\n" + text, nil
}

// record writes the audit row. A failed write is logged and the reply is
// still returned.
func (s *chatService) record(ctx context.Context, t turn, botMessage string, ids storage.SourceIDs, refused bool) {
	entry := &storage.ChatLog{
		SessionID:   t.sessionID,
		UserMessage: t.message,
		BotMessage:  botMessage,
		Sources:     ids,
		Refused:     refused,
		Intent:      t.intent,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to write chat log", "error", err)
	}
}

func preview(s string) string {
	const n = 100
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
