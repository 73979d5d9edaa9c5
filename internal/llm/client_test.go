package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"domainbot/internal/config"
	"domainbot/internal/rag"

	"github.com/sashabaranov/go-openai"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.OpenAI{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Timeout: timeout,
	})
}

func writeCompletion(w http.ResponseWriter, content string) {
	resp := openai.ChatCompletionResponse{
		ID:     "chatcmpl-1",
		Object: "chat.completion",
		Model:  "test-model",
		Choices: []openai.ChatCompletionChoice{
			{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
				FinishReason: openai.FinishReasonStop,
			},
		},
		Usage: openai.Usage{TotalTokens: 42},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func TestClient_GenerateAnswer(t *testing.T) {
	sources := []rag.SourceRef{
		{Type: rag.SourceTypeKB, ID: 7, Title: "ساعات کاری شما چیست؟"},
		{Type: rag.SourceTypeWebsite, ID: 3, Title: "درباره ما", URL: "https://example.com/about"},
	}
	contextText := "=== Knowledge Base ===\nQ: ساعات کاری شما چیست؟\nA: شنبه تا پنجشنبه\n"

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
			return
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q, want test-model", req.Model)
		}
		if req.Temperature != 0.3 {
			t.Errorf("temperature = %v, want 0.3", req.Temperature)
		}
		if req.MaxTokens != 500 {
			t.Errorf("max_tokens = %d, want 500", req.MaxTokens)
		}
		if len(req.Messages) != 2 {
			t.Errorf("got %d messages, want 2", len(req.Messages))
			return
		}
		system := req.Messages[0]
		if system.Role != openai.ChatMessageRoleSystem {
			t.Errorf("first message role = %q", system.Role)
		}
		for _, want := range []string{
			contextText,
			"1. پایگاه دانش: ساعات کاری شما چیست؟ (ID: 7)",
			"2. وب‌سایت: درباره ما (URL: https://example.com/about)",
		} {
			if !strings.Contains(system.Content, want) {
				t.Errorf("system prompt missing %q", want)
			}
		}
		if req.Messages[1].Role != openai.ChatMessageRoleUser || req.Messages[1].Content != "ساعات کاری؟" {
			t.Errorf("user message = %+v", req.Messages[1])
		}

		writeCompletion(w, "  طبق پایگاه دانش،   شنبه تا پنجشنبه.\n\nاز مدیر بخواهید. ")
	}, 5*time.Second)

	got, err := client.GenerateAnswer(context.Background(), "ساعات کاری؟", contextText, sources)
	if err != nil {
		t.Fatalf("GenerateAnswer() error = %v", err)
	}
	if want := "طبق پایگاه دانش، شنبه تا پنجشنبه."; got != want {
		t.Errorf("GenerateAnswer() = %q, want %q", got, want)
	}
}

func TestClient_GenerateAnswer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			},
			timeout: 5 * time.Second,
			wantErr: ErrProvider,
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
			},
			timeout: 5 * time.Second,
			wantErr: ErrProvider,
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
			},
			timeout: 5 * time.Second,
			wantErr: ErrProvider,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout: 50 * time.Millisecond,
			wantErr: ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler, tt.timeout)
			got, err := client.GenerateAnswer(context.Background(), "q", "ctx", nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GenerateAnswer() error = %v, want %v", err, tt.wantErr)
			}
			if got != "" {
				t.Errorf("GenerateAnswer() = %q, want empty", got)
			}
		})
	}
}

func TestClient_GenerateAnswer_CallerDeadline(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.GenerateAnswer(ctx, "q", "ctx", nil); !errors.Is(err, ErrTimeout) {
		t.Errorf("GenerateAnswer() error = %v, want ErrTimeout", err)
	}
}

func TestClient_Ping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "ok", status: http.StatusOK, body: `{"object":"list","data":[{"id":"test-model","object":"model"}]}`},
		{name: "rejected key", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`, wantErr: ErrProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/models" {
					t.Errorf("expected /models, got %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, time.Second)

			err := client.Ping(context.Background())
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Ping() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Ping() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	c := NewClient(config.OpenAI{Model: "m"})
	if c.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", c.timeout)
	}
	if c.params != DefaultParams("m") {
		t.Errorf("params = %+v", c.params)
	}
}
