package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"domainbot/internal/config"
	"domainbot/internal/intent"
	"domainbot/internal/llm"
	"domainbot/internal/rag"
	"domainbot/internal/service"
	"domainbot/internal/service/mocks"
	"domainbot/internal/storage"
	storagemocks "domainbot/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const (
	hoursQuestion = "ساعات کاری شما چیست؟"
	hoursAnswer   = "ساعات کاری ما از شنبه تا پنجشنبه از ساعت 9 صبح تا 6 عصر است."
)

// chatEnv wires the chat service to real SQLite stores and a mocked generator.
type chatEnv struct {
	svc       service.ChatService
	generator *mocks.MockGenerator
	qa        *storage.QARepo
	intents   *storage.IntentRepo
	greetings *storage.GreetingRepo
	logs      *storage.ChatLogRepo
}

func newChatEnv(t *testing.T, threshold float64, debug bool) chatEnv {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "chat.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	cfg := config.DefaultRetrieval()
	cfg.MinConfidence = threshold

	env := chatEnv{
		generator: mocks.NewMockGenerator(gomock.NewController(t)),
		qa:        storage.NewQARepo(db),
		intents:   storage.NewIntentRepo(db),
		greetings: storage.NewGreetingRepo(db),
		logs:      storage.NewChatLogRepo(db),
	}
	retriever := rag.NewRetriever(env.qa, storage.NewSourceRepo(db), storage.NewPageRepo(db), cfg)
	matcher := intent.NewMatcher(env.intents, env.greetings, config.DefaultGreeting)
	env.svc = service.NewChatService(retriever, rag.NewGuard(cfg), matcher, env.generator, env.logs, debug)
	return env
}

func (e chatEnv) addQA(t *testing.T, question, answer string) int64 {
	t.Helper()
	entry := &storage.QAEntry{Question: question, Answer: answer}
	if err := e.qa.Create(context.Background(), entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return entry.ID
}

func (e chatEnv) lastLog(t *testing.T) storage.ChatLog {
	t.Helper()
	logs, _, err := e.logs.List(context.Background(), storage.LogFilter{Limit: 1})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected a chat log row, got %d", len(logs))
	}
	return logs[0]
}

func TestChatService_ProcessChat_EmptyCorpusRefuses(t *testing.T) {
	env := newChatEnv(t, 0.70, false)

	resp, err := env.svc.ProcessChat(context.Background(), service.ChatRequest{Message: "سوال تستی"})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}

	if !resp.Refused || resp.GeneratorCalled || len(resp.Sources) != 0 {
		t.Errorf("ProcessChat() = %+v, want refused without generator or sources", resp)
	}
	if resp.Answer != rag.RefusalMessage {
		t.Errorf("Answer = %q, want refusal message", resp.Answer)
	}
	if resp.Outcome != service.OutcomeRefused {
		t.Errorf("Outcome = %q", resp.Outcome)
	}
	if resp.MissingInfo == nil || resp.MissingInfo.Reason != rag.ReasonNoMatchingSource || resp.MissingInfo.Threshold != 0.70 {
		t.Errorf("MissingInfo = %+v", resp.MissingInfo)
	}
	if resp.SessionID == "" {
		t.Error("SessionID should be generated")
	}
	if resp.Debug != nil {
		t.Error("Debug should be nil outside development")
	}

	row := env.lastLog(t)
	if !row.Refused || !row.Sources.Empty() || row.SessionID != resp.SessionID || row.UserMessage != "سوال تستی" {
		t.Errorf("chat log = %+v", row)
	}
}

func TestChatService_ProcessChat_AnswersFromKB(t *testing.T) {
	env := newChatEnv(t, 0.65, false)
	kbID := env.addQA(t, hoursQuestion, hoursAnswer)
	query := "ساعات کاری شما چیه؟"

	env.generator.EXPECT().
		GenerateAnswer(gomock.Any(), query, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, contextText string, sources []rag.SourceRef) (string, error) {
			if !strings.Contains(contextText, "Q: "+hoursQuestion) || !strings.Contains(contextText, "A: "+hoursAnswer) {
				t.Errorf("context missing the kb pair:\n%s", contextText)
			}
			if len(sources) != 1 || sources[0].ID != kbID {
				t.Errorf("sources = %+v", sources)
			}
			return hoursAnswer, nil
		})

	resp, err := env.svc.ProcessChat(context.Background(), service.ChatRequest{Message: query})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}

	if resp.Refused || !resp.GeneratorCalled || resp.Outcome != service.OutcomeAnswered {
		t.Fatalf("ProcessChat() = %+v, want answered", resp)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].Type != rag.SourceTypeKB || resp.Sources[0].Score < 0.65 {
		t.Errorf("Sources = %+v, want one kb source above threshold", resp.Sources)
	}
	if want := config.DefaultGreeting + "\n\n" + hoursAnswer; resp.Answer != want {
		t.Errorf("Answer = %q, want greeting-prefixed answer", resp.Answer)
	}
	if resp.MissingInfo != nil {
		t.Error("MissingInfo should be nil when answered")
	}

	row := env.lastLog(t)
	if row.Refused || len(row.Sources.KBIDs) != 1 || row.Sources.KBIDs[0] != kbID {
		t.Errorf("chat log = %+v", row)
	}
}

func TestChatService_ProcessChat_ArabicVariantsAtDefaultThreshold(t *testing.T) {
	env := newChatEnv(t, 0.70, false)
	env.addQA(t, hoursQuestion, hoursAnswer)

	env.generator.EXPECT().
		GenerateAnswer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(hoursAnswer, nil)

	resp, err := env.svc.ProcessChat(context.Background(), service.ChatRequest{Message: "ساعات كاري شما چيست؟"})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if resp.Refused || len(resp.Sources) != 1 || resp.Sources[0].Score != 1.0 {
		t.Errorf("ProcessChat() = %+v, want an exact kb hit", resp)
	}
}

func TestChatService_ProcessChat_BelowThresholdRefuses(t *testing.T) {
	env := newChatEnv(t, 0.70, true)
	env.addQA(t, hoursQuestion, hoursAnswer)

	resp, err := env.svc.ProcessChat(context.Background(), service.ChatRequest{Message: "ساعات کاری شما چیه؟"})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if !resp.Refused || resp.GeneratorCalled {
		t.Fatalf("ProcessChat() = %+v, want refusal", resp)
	}
	// hits below the floor are dropped by retrieval, so nothing is left to weigh
	if got := resp.MissingInfo.Reason; got != rag.ReasonNoMatchingSource {
		t.Errorf("Reason = %q", got)
	}
	if resp.MissingInfo.KBResultsCount != 0 {
		t.Errorf("KBResultsCount = %d, hits below the floor are not returned", resp.MissingInfo.KBResultsCount)
	}
	if resp.Debug == nil || resp.Debug.LLMCalled || resp.Debug.RetrievalHits == nil {
		t.Errorf("Debug = %+v", resp.Debug)
	}
}

func TestChatService_ProcessChat_Greeting(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, env chatEnv)
		wantText string
	}{
		{
			name:     "default greeting",
			setup:    func(*testing.T, chatEnv) {},
			wantText: config.DefaultGreeting,
		},
		{
			name: "stored greeting",
			setup: func(t *testing.T, env chatEnv) {
				g := &storage.Greeting{Message: "به پشتیبانی خوش آمدید", Enabled: true}
				if err := env.greetings.Create(context.Background(), g); err != nil {
					t.Fatalf("Create() error = %v", err)
				}
			},
			wantText: "به پشتیبانی خوش آمدید",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newChatEnv(t, 0.70, false)
			tt.setup(t, env)

			resp, err := env.svc.ProcessChat(context.Background(), service.ChatRequest{Message: "سلام"})
			if err != nil {
				t.Fatalf("ProcessChat() error = %v", err)
			}
			if resp.Refused || resp.GeneratorCalled || len(resp.Sources) != 0 {
				t.Errorf("ProcessChat() = %+v, want plain greeting", resp)
			}
			if resp.Answer != tt.wantText || resp.Outcome != service.OutcomeGreeting {
				t.Errorf("Answer = %q outcome %q, want %q", resp.Answer, resp.Outcome, tt.wantText)
			}
		})
	}
}

func TestChatService_ProcessChat_GreetingWithQuestionRefuses(t *testing.T) {
	env := newChatEnv(t, 0.70, false)

	resp, err := env.svc.ProcessChat(context.Background(), service.ChatRequest{Message: "سلام، زیمر چه خدماتی دارد؟"})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if !resp.Refused || resp.GeneratorCalled || resp.Outcome != service.OutcomeRefused {
		t.Errorf("ProcessChat() = %+v, want refusal", resp)
	}
}

func TestChatService_ProcessChat_Intent(t *testing.T) {
	env := newChatEnv(t, 0.70, true)
	ctx := context.Background()
	in := &storage.Intent{Name: "test", Keywords: "سوال تستی", Response: "پاسخ آماده", Enabled: true}
	if err := env.intents.Create(ctx, in); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp, err := env.svc.ProcessChat(ctx, service.ChatRequest{Message: "این یک سوال تستی است"})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if resp.Refused || resp.GeneratorCalled || len(resp.Sources) != 0 || resp.Outcome != service.OutcomeIntent {
		t.Errorf("ProcessChat() = %+v, want intent reply", resp)
	}
	if want := config.DefaultGreeting + "\n\nپاسخ آماده"; resp.Answer != want {
		t.Errorf("Answer = %q, want %q", resp.Answer, want)
	}
	if resp.Debug == nil || resp.Debug.IntentMatched != "test" {
		t.Errorf("Debug = %+v", resp.Debug)
	}
	if row := env.lastLog(t); row.Intent != "test" || row.Refused {
		t.Errorf("chat log = %+v", row)
	}

	// Later turns of the same session get the reply alone.
	resp2, err := env.svc.ProcessChat(ctx, service.ChatRequest{SessionID: resp.SessionID, Message: "سوال تستی"})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if resp2.Answer != "پاسخ آماده" || resp2.SessionID != resp.SessionID {
		t.Errorf("second turn = %+v", resp2)
	}

	// A query matching no intent still has to pass the guard.
	resp3, err := env.svc.ProcessChat(ctx, service.ChatRequest{SessionID: resp.SessionID, Message: "قیمت محصولات"})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if !resp3.Refused || resp3.GeneratorCalled {
		t.Errorf("non-matching turn = %+v, want refusal", resp3)
	}
}

func TestChatService_ProcessChat_ExistingSessionSkipsGreeting(t *testing.T) {
	env := newChatEnv(t, 0.70, false)
	env.addQA(t, hoursQuestion, hoursAnswer)
	ctx := context.Background()

	if err := env.logs.Create(ctx, &storage.ChatLog{SessionID: "s-1", UserMessage: "x", BotMessage: "y"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	env.generator.EXPECT().
		GenerateAnswer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(hoursAnswer, nil)

	resp, err := env.svc.ProcessChat(ctx, service.ChatRequest{SessionID: "s-1", Message: hoursQuestion})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if resp.Answer != hoursAnswer || resp.SessionID != "s-1" {
		t.Errorf("ProcessChat() = %+v, want bare answer", resp)
	}
}

func TestChatService_ProcessChat_UnknownSessionIsNew(t *testing.T) {
	env := newChatEnv(t, 0.70, false)

	resp, err := env.svc.ProcessChat(context.Background(), service.ChatRequest{SessionID: "fresh", Message: "پیام"})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if resp.SessionID != "fresh" {
		t.Errorf("SessionID = %q, want the provided id", resp.SessionID)
	}
}

func TestChatService_ProcessChat_GenerationOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		genErr      error
		wantAnswer  string
		wantRefused bool
		wantOutcome string
		wantSources int
	}{
		{
			name:        "timeout",
			genErr:      fmt.Errorf("%w: deadline", llm.ErrTimeout),
			wantAnswer:  service.TimeoutMessage,
			wantOutcome: service.OutcomeGenerationFailed,
		},
		{
			name:        "provider error",
			genErr:      fmt.Errorf("%w: 500", llm.ErrProvider),
			wantAnswer:  service.GenerationErrorMessage,
			wantOutcome: service.OutcomeGenerationFailed,
		},
		{
			name:        "ungrounded answer",
			answer:      "قیمت محصول ده دلار است و ارسال رایگان",
			wantAnswer:  rag.NotFoundMessage,
			wantRefused: true,
			wantOutcome: service.OutcomeNotGrounded,
		},
		{
			name:        "model declines",
			answer:      "در منابع موجود نیست",
			wantAnswer:  rag.NotFoundMessage,
			wantRefused: true,
			wantOutcome: service.OutcomeNotGrounded,
		},
		{
			name:        "grounded",
			answer:      hoursAnswer,
			wantAnswer:  hoursAnswer,
			wantOutcome: service.OutcomeAnswered,
			wantSources: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newChatEnv(t, 0.70, false)
			env.addQA(t, hoursQuestion, hoursAnswer)
			ctx := context.Background()
			if err := env.logs.Create(ctx, &storage.ChatLog{SessionID: "s", UserMessage: "x", BotMessage: "y"}); err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			env.generator.EXPECT().
				GenerateAnswer(gomock.Any(), hoursQuestion, gomock.Any(), gomock.Any()).
				Return(tt.answer, tt.genErr)

			resp, err := env.svc.ProcessChat(ctx, service.ChatRequest{SessionID: "s", Message: hoursQuestion})
			if err != nil {
				t.Fatalf("ProcessChat() error = %v", err)
			}
			if !resp.GeneratorCalled {
				t.Error("GeneratorCalled = false, the call was attempted")
			}
			if resp.Answer != tt.wantAnswer || resp.Refused != tt.wantRefused || resp.Outcome != tt.wantOutcome {
				t.Errorf("ProcessChat() = %+v", resp)
			}
			if len(resp.Sources) != tt.wantSources {
				t.Errorf("Sources = %+v, want %d", resp.Sources, tt.wantSources)
			}
			if resp.Refused && len(resp.Sources) > 0 {
				t.Error("a refused response must not carry sources")
			}

			row := env.lastLog(t)
			if row.BotMessage != tt.wantAnswer || row.Refused != tt.wantRefused || len(row.Sources.KBIDs) != tt.wantSources {
				t.Errorf("chat log = %+v", row)
			}
		})
	}
}

func TestChatService_ProcessChat_Validation(t *testing.T) {
	env := newChatEnv(t, 0.70, false)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := env.svc.ProcessChat(context.Background(), service.ChatRequest{Message: msg})
		var validationErr *service.ValidationError
		if !errors.As(err, &validationErr) || validationErr.Field != "message" {
			t.Errorf("ProcessChat(%q) error = %v, want message validation error", msg, err)
		}
	}
}

func TestChatService_ProcessChat_StoreFailures(t *testing.T) {
	storeErr := errors.New("database is locked")
	cfg := config.DefaultRetrieval()

	tests := []struct {
		name  string
		req   service.ChatRequest
		setup func(r *mocks.MockRetriever, m *mocks.MockIntentMatcher, logs *storagemocks.MockChatLogStore)
	}{
		{
			name: "session lookup fails",
			req:  service.ChatRequest{SessionID: "s", Message: "hello there friend"},
			setup: func(_ *mocks.MockRetriever, _ *mocks.MockIntentMatcher, logs *storagemocks.MockChatLogStore) {
				logs.EXPECT().CountBySession(gomock.Any(), "s").Return(0, storeErr)
			},
		},
		{
			name: "intent lookup fails",
			req:  service.ChatRequest{Message: "question"},
			setup: func(_ *mocks.MockRetriever, m *mocks.MockIntentMatcher, _ *storagemocks.MockChatLogStore) {
				m.EXPECT().Match(gomock.Any(), "question").Return(nil, storeErr)
			},
		},
		{
			name: "retrieval fails",
			req:  service.ChatRequest{Message: "question"},
			setup: func(r *mocks.MockRetriever, m *mocks.MockIntentMatcher, _ *storagemocks.MockChatLogStore) {
				m.EXPECT().Match(gomock.Any(), "question").Return(nil, nil)
				r.EXPECT().RetrieveAll(gomock.Any(), "question").Return(rag.Result{}, storeErr)
			},
		},
		{
			name: "greeting lookup fails",
			req:  service.ChatRequest{Message: "سلام"},
			setup: func(_ *mocks.MockRetriever, m *mocks.MockIntentMatcher, _ *storagemocks.MockChatLogStore) {
				m.EXPECT().Match(gomock.Any(), "سلام").Return(nil, nil)
				m.EXPECT().Greeting(gomock.Any()).Return("", storeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			retriever := mocks.NewMockRetriever(ctrl)
			matcher := mocks.NewMockIntentMatcher(ctrl)
			logs := storagemocks.NewMockChatLogStore(ctrl)
			tt.setup(retriever, matcher, logs)

			svc := service.NewChatService(retriever, rag.NewGuard(cfg), matcher, mocks.NewMockGenerator(ctrl), logs, false)
			_, err := svc.ProcessChat(context.Background(), tt.req)
			if !errors.Is(err, service.ErrStorage) || !errors.Is(err, storeErr) {
				t.Errorf("ProcessChat() error = %v, want ErrStorage wrapping the store error", err)
			}
		})
	}
}

func TestChatService_ProcessChat_AuditFailureIsNotSurfaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	retriever := mocks.NewMockRetriever(ctrl)
	matcher := mocks.NewMockIntentMatcher(ctrl)
	logs := storagemocks.NewMockChatLogStore(ctrl)

	matcher.EXPECT().Match(gomock.Any(), "question").Return(nil, nil)
	retriever.EXPECT().RetrieveAll(gomock.Any(), "question").Return(rag.Result{}, nil)
	logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := service.NewChatService(retriever, rag.NewGuard(config.DefaultRetrieval()), matcher, mocks.NewMockGenerator(ctrl), logs, false)
	resp, err := svc.ProcessChat(context.Background(), service.ChatRequest{Message: "question"})
	if err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
	if !resp.Refused {
		t.Errorf("ProcessChat() = %+v, want refusal", resp)
	}
}

func TestChatService_Greeting(t *testing.T) {
	ctrl := gomock.NewController(t)
	matcher := mocks.NewMockIntentMatcher(ctrl)
	svc := service.NewChatService(mocks.NewMockRetriever(ctrl), rag.NewGuard(config.DefaultRetrieval()), matcher,
		mocks.NewMockGenerator(ctrl), storagemocks.NewMockChatLogStore(ctrl), false)

	matcher.EXPECT().Greeting(gomock.Any()).Return("درود", nil)
	got, err := svc.Greeting(context.Background())
	if err != nil || got != "درود" {
		t.Errorf("Greeting() = %q, %v", got, err)
	}
}
