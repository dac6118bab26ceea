package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"minibrain/internal/apperr"
	"minibrain/internal/contextutil"
	"minibrain/internal/storage"
	"minibrain/internal/vector"
)

// Engine provides RAG (Retrieval-Augmented Generation) functionality.
type Engine interface {
	// Ask answers a question from the owner's notes and records the exchange.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	embedder  Embedder
	generator Generator
	notes     NoteSource
	recorder  QARecorder
	policy    Policy
}

// NewEngine creates a new RAG engine.
func NewEngine(
	embedder Embedder,
	generator Generator,
	notes NoteSource,
	recorder QARecorder,
	policy Policy,
) Engine {
	return &ragEngine{
		embedder:  embedder,
		generator: generator,
		notes:     notes,
		recorder:  recorder,
		policy:    policy,
	}
}

// Ask answers a question using RAG.
// Every answer, including the fixed ones, is persisted before it is returned.
func (e *ragEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.OwnerID == "" {
		return AskResponse{}, apperr.ErrUnauthenticated
	}
	if n := utf8.RuneCountInString(req.Question); n == 0 || n > MaxQuestionLength {
		return AskResponse{}, &apperr.ValidationError{
			Field:   "question",
			Message: fmt.Sprintf("must be between 1 and %d characters", MaxQuestionLength),
		}
	}

	logger.InfoContext(ctx, "RAG query started", "question_length", len(req.Question))
	logger.DebugContext(ctx, "RAG question", "question", req.Question)

	embedding, err := e.embedder.Embed(ctx, req.Question)
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed question", "error", err)
		return AskResponse{}, &apperr.ProviderError{Op: "embed question", Err: err}
	}
	query := vector.Normalize(embedding)

	candidates, err := e.notes.ListForSimilarity(ctx, req.OwnerID, e.policy.MaxCandidates)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list notes", "error", err)
		return AskResponse{}, fmt.Errorf("failed to list notes: %w", err)
	}
	if len(candidates) == 0 {
		logger.InfoContext(ctx, "owner has no notes")
		return e.finish(ctx, req, NoNotesAnswer, nil)
	}

	ranked, err := Rank(query, candidates, e.policy)
	if err != nil {
		if errors.Is(err, apperr.ErrDimensionMismatch) {
			logger.ErrorContext(ctx, "stored embeddings do not match the question embedding",
				"query_dimension", len(query),
				"error", err,
			)
		}
		return AskResponse{}, err
	}

	logger.InfoContext(ctx, "notes ranked", "candidates", len(candidates), "selected", len(ranked))
	if len(ranked) == 0 {
		return e.finish(ctx, req, NoMatchAnswer, nil)
	}

	ids := make([]string, len(ranked))
	for i, note := range ranked {
		ids[i] = note.ID
		logger.DebugContext(ctx, "selected note", "rank", i+1, "note_id", note.ID, "score", note.Score)
	}

	contents, err := e.notes.GetContents(ctx, req.OwnerID, ids)
	if err != nil {
		logger.ErrorContext(ctx, "failed to fetch note contents", "error", err)
		return AskResponse{}, fmt.Errorf("failed to fetch note contents: %w", err)
	}

	used := usedReferences(ranked, contents)
	if len(used) == 0 {
		// Every selected note vanished between ranking and fetching.
		logger.WarnContext(ctx, "selected notes could not be resolved", "selected", len(ranked))
		return e.finish(ctx, req, NoMatchAnswer, nil)
	}

	contextText := AssembleContext(ranked, contents)
	userPrompt := buildUserPrompt(contextText, req.Question)
	logger.InfoContext(ctx, "sending request to LLM",
		"notes_used", len(used),
		"context_length", len(contextText),
	)

	answer, err := e.generator.Generate(ctx, systemPrompt, userPrompt, e.policy.MaxTokens, e.policy.Temperature)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		return AskResponse{}, &apperr.ProviderError{Op: "generate answer", Err: err}
	}
	if strings.TrimSpace(answer) == "" {
		logger.WarnContext(ctx, "LLM returned an empty answer")
		answer = EmptyAnswerFallback
	}

	return e.finish(ctx, req, answer, used)
}

// finish records the exchange and builds the response.
func (e *ragEngine) finish(ctx context.Context, req AskRequest, answer string, refs []Reference) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	questionID, err := e.recorder.PersistQA(ctx, req.OwnerID, req.Question, answer)
	if err != nil {
		logger.ErrorContext(ctx, "failed to persist question and answer", "error", err)
		return AskResponse{}, fmt.Errorf("failed to persist question and answer: %w", err)
	}

	if refs == nil {
		refs = []Reference{}
	}

	logger.InfoContext(ctx, "RAG query completed",
		"question_id", questionID,
		"references", len(refs),
		"answer_length", len(answer),
	)

	return AskResponse{Answer: answer, References: refs}, nil
}

// usedReferences keeps the ranked notes whose content was resolved, in ranked order.
func usedReferences(ranked []ScoredNote, contents []storage.NoteContent) []Reference {
	resolved := make(map[string]struct{}, len(contents))
	for _, c := range contents {
		resolved[c.ID] = struct{}{}
	}

	refs := make([]Reference, 0, len(ranked))
	for _, note := range ranked {
		if _, ok := resolved[note.ID]; ok {
			refs = append(refs, Reference{ID: note.ID, Title: note.Title})
		}
	}
	return refs
}
