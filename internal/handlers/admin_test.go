package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"domainbot/internal/service"
	"domainbot/internal/service/mocks"
	"domainbot/internal/storage"

	"go.uber.org/mock/gomock"
)

// newAdminRouter mounts every admin handler the way the server does.
func newAdminRouter(admin service.AdminService) http.Handler {
	r := chi.NewRouter()
	r.Route("/admin/kb", NewKBHandler(admin).Routes)
	r.Route("/admin/intent", NewIntentHandler(admin).Routes)
	r.Route("/admin/greeting", NewGreetingAdminHandler(admin).Routes)
	r.Route("/admin/website", NewSourceHandler(admin).Routes)
	r.Method(http.MethodGet, "/admin/logs", NewLogHandler(admin))
	return r
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestAdminHandlers(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		method     string
		target     string
		body       any
		mockSetup  func(*mocks.MockAdminService)
		wantStatus int
		check      func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:   "list qa",
			method: http.MethodGet,
			target: "/admin/kb/qa",
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().ListQA(gomock.Any()).Return([]storage.QAEntry{
					{ID: 1, Question: "ساعات کاری؟", Answer: "۹ تا ۱۷", CreatedAt: created, UpdatedAt: created},
				}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var got []QAResponse
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if len(got) != 1 || got[0].Question != "ساعات کاری؟" || !got[0].CreatedAt.Equal(created) {
					t.Errorf("list = %+v", got)
				}
			},
		},
		{
			name:   "empty list is an array",
			method: http.MethodGet,
			target: "/admin/intent",
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().ListIntents(gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if got := w.Body.String(); got != "[]\n" {
					t.Errorf("body = %q, want []", got)
				}
			},
		},
		{
			name:   "create qa",
			method: http.MethodPost,
			target: "/admin/kb/qa",
			body:   QACreateRequest{Question: "آدرس؟", Answer: "تهران"},
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().CreateQA(gomock.Any(), "آدرس؟", "تهران").
					Return(&storage.QAEntry{ID: 4, Question: "آدرس؟", Answer: "تهران"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "update qa passes only present fields",
			method: http.MethodPut,
			target: "/admin/kb/qa/4",
			body:   map[string]string{"answer": "اصفهان"},
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().UpdateQA(gomock.Any(), int64(4), service.QAUpdate{Answer: strPtr("اصفهان")}).
					Return(&storage.QAEntry{ID: 4, Question: "آدرس؟", Answer: "اصفهان"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "update missing qa",
			method: http.MethodPut,
			target: "/admin/kb/qa/99",
			body:   map[string]string{"answer": "x"},
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().UpdateQA(gomock.Any(), int64(99), gomock.Any()).
					Return(nil, service.WrapError(service.ErrNotFound, "failed to update qa"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid id",
			method:     http.MethodDelete,
			target:     "/admin/kb/qa/abc",
			mockSetup:  func(m *mocks.MockAdminService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "delete qa",
			method: http.MethodDelete,
			target: "/admin/kb/qa/4",
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().DeleteQA(gomock.Any(), int64(4)).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "clear kb",
			method: http.MethodDelete,
			target: "/admin/kb",
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().ClearKB(gomock.Any()).Return(int64(7), nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var got ClearKBResponse
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil || got.Deleted != 7 {
					t.Errorf("clear = %+v, %v", got, err)
				}
			},
		},
		{
			name:   "create intent defaults to enabled",
			method: http.MethodPost,
			target: "/admin/intent",
			body:   map[string]any{"name": "hours", "keywords": "ساعت,زمان", "response": "۹ تا ۱۷", "priority": 2},
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().CreateIntent(gomock.Any(), service.IntentInput{
					Name: "hours", Keywords: "ساعت,زمان", Response: "۹ تا ۱۷", Enabled: true, Priority: 2,
				}).Return(&storage.Intent{ID: 1, Name: "hours", Enabled: true, Priority: 2}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "duplicate intent name",
			method: http.MethodPost,
			target: "/admin/intent",
			body:   map[string]any{"name": "hours", "keywords": "ساعت", "response": "x"},
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().CreateIntent(gomock.Any(), gomock.Any()).
					Return(nil, &service.ValidationError{Field: "name", Message: "already exists"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "disable greeting",
			method: http.MethodPut,
			target: "/admin/greeting/3",
			body:   map[string]bool{"enabled": false},
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().UpdateGreeting(gomock.Any(), int64(3), service.GreetingUpdate{Enabled: boolPtr(false)}).
					Return(&storage.Greeting{ID: 3, Message: "سلام", Enabled: false}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var got GreetingItem
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil || got.Enabled {
					t.Errorf("greeting = %+v, %v", got, err)
				}
			},
		},
		{
			name:   "create disabled source",
			method: http.MethodPost,
			target: "/admin/website",
			body:   map[string]any{"base_url": "https://example.com/", "enabled": false},
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().CreateSource(gomock.Any(), "https://example.com/", false).
					Return(&storage.Source{ID: 2, BaseURL: "https://example.com", CrawlStatus: storage.CrawlIdle}, nil)
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var got map[string]any
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if got["base_url"] != "https://example.com" || got["crawl_status"] != "idle" || got["last_crawled_at"] != nil {
					t.Errorf("source = %v", got)
				}
			},
		},
		{
			name:   "recrawl accepted",
			method: http.MethodPost,
			target: "/admin/website/2/recrawl",
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().Recrawl(gomock.Any(), int64(2)).Return(service.CrawlStatus{
					Status: storage.CrawlRunning, PagesCount: 5, Message: "Crawl started in background",
				}, nil)
			},
			wantStatus: http.StatusAccepted,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var got CrawlStatusResponse
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil || got.Status != storage.CrawlRunning || got.PagesCount != 5 {
					t.Errorf("status = %+v, %v", got, err)
				}
			},
		},
		{
			name:   "recrawl while running",
			method: http.MethodPost,
			target: "/admin/website/2/recrawl",
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().Recrawl(gomock.Any(), int64(2)).Return(service.CrawlStatus{}, service.ErrConflict)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "status of missing source",
			method: http.MethodGet,
			target: "/admin/website/9/status",
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().CrawlStatus(gomock.Any(), int64(9)).Return(service.CrawlStatus{}, service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "logs use default paging",
			method: http.MethodGet,
			target: "/admin/logs",
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().ListLogs(gomock.Any(), storage.LogFilter{Limit: service.DefaultLogLimit}).
					Return(service.LogPage{
						Logs:  []storage.ChatLog{{ID: 1, SessionID: "s", UserMessage: "سلام", BotMessage: "درود", CreatedAt: created}},
						Total: 1,
						Limit: service.DefaultLogLimit,
					}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var got map[string]any
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
					t.Fatalf("decode: %v", err)
				}
				logs, _ := got["logs"].([]any)
				if len(logs) != 1 || got["total"] != float64(1) || got["limit"] != float64(100) {
					t.Fatalf("page = %v", got)
				}
				first, _ := logs[0].(map[string]any)
				sources, _ := first["sources_json"].(map[string]any)
				if kb, ok := sources["kb_ids"].([]any); !ok || len(kb) != 0 {
					t.Errorf("sources_json = %v, want empty id lists", first["sources_json"])
				}
			},
		},
		{
			name:   "logs with query",
			method: http.MethodGet,
			target: "/admin/logs?limit=20&offset=40&search=%D8%B3%D9%84%D8%A7%D9%85",
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().ListLogs(gomock.Any(), storage.LogFilter{Limit: 20, Offset: 40, Search: "سلام"}).
					Return(service.LogPage{Limit: 20, Offset: 40}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "logs with bad limit",
			method:     http.MethodGet,
			target:     "/admin/logs?limit=many",
			mockSetup:  func(m *mocks.MockAdminService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "storage failure",
			method: http.MethodGet,
			target: "/admin/website",
			mockSetup: func(m *mocks.MockAdminService) {
				m.EXPECT().ListSources(gomock.Any()).Return(nil, errors.Join(service.ErrStorage, errors.New("database is locked")))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			admin := mocks.NewMockAdminService(ctrl)
			tt.mockSetup(admin)

			w := httptest.NewRecorder()
			newAdminRouter(admin).ServeHTTP(w, newJSONRequest(t, tt.method, tt.target, tt.body))

			if w.Code != tt.wantStatus {
				t.Fatalf("%s %s status = %v, want %v (body %s)", tt.method, tt.target, w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}
