package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"domainbot/internal/config"
	"domainbot/internal/crawler"
	"domainbot/internal/handlers"
	"domainbot/internal/http"
	"domainbot/internal/intent"
	"domainbot/internal/llm"
	"domainbot/internal/rag"
	"domainbot/internal/seed"
	"domainbot/internal/service"
	"domainbot/internal/storage"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers Persian questions about one organization, using only its
// curated knowledge base and crawled website.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Domain Chatbot API
//   description: |
//     Domain-restricted chatbot. Answers come from the curated knowledge base
//     and crawled website pages; anything else is politely refused.
//     Admin endpoints require the X-API-Key header.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	qaRepo := storage.NewQARepo(db)
	sourceRepo := storage.NewSourceRepo(db)
	pageRepo := storage.NewPageRepo(db)
	intentRepo := storage.NewIntentRepo(db)
	greetingRepo := storage.NewGreetingRepo(db)
	chatLogRepo := storage.NewChatLogRepo(db)

	seedStores := seed.Stores{
		QA:        qaRepo,
		Intents:   intentRepo,
		Greetings: greetingRepo,
		Sources:   sourceRepo,
	}
	if cfg.SeedFile != "" {
		sum, err := seed.ApplyFile(ctx, cfg.SeedFile, seedStores)
		if err != nil {
			log.Fatalf("Failed to apply seed file: %v", err)
		}
		slog.Info("Seed file applied",
			"path", cfg.SeedFile,
			"kb_created", sum.KB.Created,
			"intents_created", sum.Intents.Created,
			"greetings_created", sum.Greetings.Created,
			"sources_created", sum.Sources.Created,
		)
		if cfg.SeedWatch {
			go func() {
				err := seed.Watch(ctx, cfg.SeedFile, func(ctx context.Context) error {
					_, err := seed.ApplyFile(ctx, cfg.SeedFile, seedStores)
					return err
				})
				if err != nil {
					slog.Error("Seed watcher stopped", "error", err)
				}
			}()
		}
	}

	// Retrieval and refusal core
	retriever := rag.NewRetriever(qaRepo, sourceRepo, pageRepo, cfg.Retrieval)
	guard := rag.NewGuard(cfg.Retrieval)
	matcher := intent.NewMatcher(intentRepo, greetingRepo, cfg.GreetingMessage)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.OpenAI)
	var llmPinger handlers.LLMPinger
	if cfg.OpenAI.APIKey != "" {
		llmPinger = llmClient
	}

	// Website crawling runs in the background; jobs stop on shutdown.
	ingester := crawler.NewIngester(sourceRepo, pageRepo, crawler.NewFetcher(cfg.Crawl), cfg.Crawl.MaxPages)
	jobs := crawler.NewJobs(ctx, ingester, logger)

	chatService := service.NewChatService(retriever, guard, matcher, llmClient, chatLogRepo, cfg.IsDevelopment())
	adminService := service.NewAdminService(service.AdminStores{
		QA:        qaRepo,
		Sources:   sourceRepo,
		Pages:     pageRepo,
		Intents:   intentRepo,
		Greetings: greetingRepo,
		Logs:      chatLogRepo,
	}, jobs)

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		ChatService:    chatService,
		AdminService:   adminService,
		DB:             db,
		LLM:            llmPinger,
		Sources:        sourceRepo,
		FrontendOrigin: cfg.FrontendOrigin,
		AdminAPIKey:    cfg.AdminAPIKey,
		RateLimit:      cfg.RateLimit,
	})

	// Start API server
	addr := ":" + cfg.APIPort
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("Starting API server", "addr", addr, "env", cfg.Env)
		slog.Debug("OpenAI configuration", "base_url", cfg.OpenAI.BaseURL, "model", cfg.OpenAI.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	jobs.Wait()
	slog.Info("Server stopped")
}
