package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"minibrain/internal/auth"
	"minibrain/internal/config"
	"minibrain/internal/handlers"
	"minibrain/internal/http"
	"minibrain/internal/indexer"
	"minibrain/internal/llm"
	"minibrain/internal/rag"
	"minibrain/internal/service"
	"minibrain/internal/storage"
	"minibrain/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API stores personal notes and answers questions about them from the caller's most relevant notes.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: minibrain API
//   description: |
//     Personal notes with semantic question answering. Every endpoint except the health
//     check requires a bearer token whose subject is the owner id.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json
// securityDefinitions:
//   bearer:
//     type: apiKey
//     name: Authorization
//     in: header

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
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	if err := run(cfg); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	noteRepo := storage.NewNoteRepo(db)
	qaRepo := storage.NewQARepo(db)

	embedder, generator, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeProvider()
	}()

	// Validate embedding vector size (fail-fast)
	probe, err := embedder.Embed(ctx, "test")
	if err != nil {
		return fmt.Errorf("failed to validate embedding client: %w", err)
	}
	if len(probe) != cfg.EmbeddingVectorSize {
		return fmt.Errorf("embedding vector size mismatch: expected %d, got %d", cfg.EmbeddingVectorSize, len(probe))
	}
	slog.Info("Embedding client validated", "provider", cfg.LLMProvider, "vector_size", cfg.EmbeddingVectorSize)

	// The vector mirror is optional. Interfaces stay untyped nil when it is off.
	var (
		mirror    vectorstore.VectorStore
		inspector handlers.CollectionInspector
	)
	if cfg.QdrantURL != "" {
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			return fmt.Errorf("failed to create Qdrant client: %w", err)
		}
		defer func() {
			_ = qdrantStore.Close()
		}()

		// Ensure collection exists with correct vector size
		if err := qdrantStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingVectorSize); err != nil {
			return fmt.Errorf("failed to ensure Qdrant collection: %w", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingVectorSize)
		mirror, inspector = qdrantStore, qdrantStore

		// Backfill notes the mirror missed while it was unreachable or disabled
		pipeline := indexer.NewPipeline(noteRepo, qdrantStore, cfg.QdrantCollection, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
		// Runs before the store and database are closed.
		defer startMirrorSync(ctx, pipeline)()
	} else {
		slog.Info("Qdrant disabled, related notes are ranked in-process")
	}

	policy := rag.Policy{
		Threshold:     cfg.SimilarityThreshold,
		TopK:          cfg.TopK,
		MaxCandidates: cfg.MaxCandidateNotes,
		MaxTokens:     cfg.AnswerMaxTokens,
		Temperature:   cfg.AnswerTemperature,
	}

	ragEngine := rag.NewEngine(embedder, generator, noteRepo, qaRepo, policy)
	noteService := service.NewNoteService(noteRepo, embedder, mirror, cfg.QdrantCollection, policy)
	slog.Info("RAG engine initialized", "threshold", policy.Threshold, "top_k", policy.TopK)

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		RAGEngine:      ragEngine,
		NoteService:    noteService,
		Questions:      qaRepo,
		DB:             db,
		VectorStore:    inspector,
		CollectionName: cfg.QdrantCollection,
		Validator:      auth.NewTokenValidator(cfg.JWTSecret),
	})

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", server.Addr)
		slog.Debug("LLM configuration", "provider", cfg.LLMProvider, "model", cfg.LLMModelName)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server failed: %w", err)
	case <-ctx.Done():
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// newProvider builds the embedder and generator for the configured provider.
// The returned close function releases provider resources.
func newProvider(ctx context.Context, cfg *config.Config) (rag.Embedder, rag.Generator, func() error, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.LLMModelName, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, client, client.Close, nil
	default:
		embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
		generator := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
		return embedder, generator, func() error { return nil }, nil
	}
}

type mirrorSyncer interface {
	SyncAll(ctx context.Context) (*indexer.SyncStats, error)
}

// startMirrorSync runs the backfill in the background. The returned stop
// function cancels it and blocks until it has returned.
func startMirrorSync(ctx context.Context, syncer mirrorSyncer) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("Starting vector mirror sync")
		if _, err := syncer.SyncAll(ctx); err != nil {
			slog.Error("Vector mirror sync completed with errors", "error", err)
		}
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}
