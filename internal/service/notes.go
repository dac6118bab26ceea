package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_service.go -package=mocks minibrain/internal/service NoteService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"minibrain/internal/apperr"
	"minibrain/internal/contextutil"
	"minibrain/internal/rag"
	"minibrain/internal/storage"
	"minibrain/internal/vector"
	"minibrain/internal/vectorstore"
)

const (
	// MaxNoteContentLength is the longest accepted note content, in runes, after trimming.
	MaxNoteContentLength = 8000
	// ListLimit caps how many notes ListNotes returns.
	ListLimit = 100
)

// NoteSummary identifies a freshly created note.
type NoteSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NoteService manages the lifecycle of an owner's notes.
// Every operation is scoped to ownerID; notes of other owners behave as absent.
type NoteService interface {
	// AddNote embeds and stores a new note.
	AddNote(ctx context.Context, ownerID, content string) (NoteSummary, error)
	// UpdateNote replaces title and content. The note is re-embedded only when its content changed.
	UpdateNote(ctx context.Context, ownerID, id, title, content string) (*storage.NoteRecord, error)
	// DeleteNote removes a note.
	DeleteNote(ctx context.Context, ownerID, id string) error
	// GetNote returns a single note.
	GetNote(ctx context.Context, ownerID, id string) (*storage.NoteRecord, error)
	// ListNotes returns the most recent notes, newest first.
	ListNotes(ctx context.Context, ownerID string) ([]storage.NoteRecord, error)
	// RelatedNotes returns the notes most similar to the given note, excluding itself.
	RelatedNotes(ctx context.Context, ownerID, id string) ([]rag.ScoredNote, error)
}

// noteService implements NoteService.
type noteService struct {
	store       storage.NoteStore
	embedder    rag.Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	policy      rag.Policy
	now         func() time.Time
}

// NewNoteService creates a new NoteService.
// vectorStore may be nil, in which case notes are not mirrored and
// related notes are ranked in-process.
func NewNoteService(
	store storage.NoteStore,
	embedder rag.Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	policy rag.Policy,
) NoteService {
	return &noteService{
		store:       store,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		policy:      policy,
		now:         time.Now,
	}
}

// AddNote embeds and stores a new note.
func (s *noteService) AddNote(ctx context.Context, ownerID, content string) (NoteSummary, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if ownerID == "" {
		return NoteSummary{}, apperr.ErrUnauthenticated
	}
	content, err := validateContent(content)
	if err != nil {
		logger.WarnContext(ctx, "invalid note content", "error", err)
		return NoteSummary{}, err
	}

	embedding, err := s.embed(ctx, content)
	if err != nil {
		return NoteSummary{}, err
	}

	note := &storage.NoteRecord{
		OwnerID:   ownerID,
		Title:     DeriveTitle(content),
		Content:   content,
		Embedding: embedding,
		CreatedAt: s.now(),
	}
	if err := s.store.Insert(ctx, note); err != nil {
		logger.ErrorContext(ctx, "failed to insert note", "error", err)
		return NoteSummary{}, apperr.WrapError(err, "failed to add note")
	}

	s.mirror(ctx, note)

	logger.InfoContext(ctx, "note added", "note_id", note.ID, "content_length", len(content))
	return NoteSummary{ID: note.ID, Title: note.Title}, nil
}

// UpdateNote replaces title and content of an existing note.
func (s *noteService) UpdateNote(ctx context.Context, ownerID, id, title, content string) (*storage.NoteRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if ownerID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	content, err := validateContent(content)
	if err != nil {
		logger.WarnContext(ctx, "invalid note content", "error", err)
		return nil, err
	}

	note, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load note")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = DeriveTitle(content)
	}

	reembedded := false
	if content != note.Content {
		embedding, err := s.embed(ctx, content)
		if err != nil {
			return nil, err
		}
		note.Embedding = embedding
		reembedded = true
	}

	updatedAt := s.now()
	note.Title = title
	note.Content = content
	note.UpdatedAt = &updatedAt

	if err := s.store.Update(ctx, note); err != nil {
		return nil, mapStoreError(err, "failed to update note")
	}

	// The payload carries the title, so the mirror is refreshed even without re-embedding.
	s.mirror(ctx, note)

	logger.InfoContext(ctx, "note updated", "note_id", note.ID, "reembedded", reembedded)
	return note, nil
}

// DeleteNote removes a note.
func (s *noteService) DeleteNote(ctx context.Context, ownerID, id string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if ownerID == "" {
		return apperr.ErrUnauthenticated
	}
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return mapStoreError(err, "failed to delete note")
	}

	if s.vectorStore != nil {
		if err := s.vectorStore.Delete(ctx, s.collection, []string{id}); err != nil {
			logger.WarnContext(ctx, "failed to remove note from vector store", "note_id", id, "error", err)
		}
	}

	logger.InfoContext(ctx, "note deleted", "note_id", id)
	return nil
}

// GetNote returns a single note.
func (s *noteService) GetNote(ctx context.Context, ownerID, id string) (*storage.NoteRecord, error) {
	if ownerID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	note, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to get note")
	}
	return note, nil
}

// ListNotes returns up to ListLimit notes, newest first.
func (s *noteService) ListNotes(ctx context.Context, ownerID string) ([]storage.NoteRecord, error) {
	if ownerID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	notes, err := s.store.ListByOwner(ctx, ownerID, ListLimit)
	if err != nil {
		return nil, apperr.WrapError(err, "failed to list notes")
	}
	return notes, nil
}

// RelatedNotes ranks the owner's other notes against the given note.
// The vector store is queried when configured; on failure, or without one,
// the stored candidates are ranked in-process.
func (s *noteService) RelatedNotes(ctx context.Context, ownerID, id string) ([]rag.ScoredNote, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if ownerID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	note, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load note")
	}

	if s.vectorStore != nil {
		related, err := s.searchRelated(ctx, note)
		if err == nil {
			return related, nil
		}
		logger.WarnContext(ctx, "vector store search failed, ranking in-process", "note_id", id, "error", err)
	}

	candidates, err := s.store.ListForSimilarity(ctx, ownerID, s.policy.MaxCandidates)
	if err != nil {
		return nil, apperr.WrapError(err, "failed to list notes")
	}

	others := make([]storage.NoteVector, 0, len(candidates))
	for _, c := range candidates {
		if c.ID != note.ID {
			others = append(others, c)
		}
	}

	related, err := rag.Rank(note.Embedding, others, s.policy)
	if err != nil {
		if errors.Is(err, apperr.ErrDimensionMismatch) {
			logger.ErrorContext(ctx, "stored embeddings disagree in dimension", "note_id", id, "error", err)
		}
		return nil, err
	}
	return related, nil
}

// searchRelated queries the vector store, filtered by owner. Hits are
// confirmed against SQLite; points of notes that no longer exist are
// dropped from the result and removed from the mirror.
func (s *noteService) searchRelated(ctx context.Context, note *storage.NoteRecord) ([]rag.ScoredNote, error) {
	// One extra result since the note itself is usually the best match.
	results, err := s.vectorStore.Search(ctx, s.collection, note.Embedding, s.policy.TopK+1,
		map[string]any{"owner_id": note.OwnerID})
	if err != nil {
		return nil, err
	}

	hits := make([]rag.ScoredNote, 0, len(results))
	ids := make([]string, 0, len(results))
	for _, r := range results {
		if r.PointID == note.ID || r.Score < s.policy.Threshold {
			continue
		}
		title, _ := r.Meta["title"].(string)
		hits = append(hits, rag.ScoredNote{ID: r.PointID, Title: title, Score: r.Score})
		ids = append(ids, r.PointID)
	}
	if len(hits) == 0 {
		return hits, nil
	}

	existing, err := s.store.GetContents(ctx, note.OwnerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve related notes: %w", err)
	}
	found := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		found[c.ID] = struct{}{}
	}

	related := make([]rag.ScoredNote, 0, s.policy.TopK)
	var orphans []string
	for _, hit := range hits {
		if _, ok := found[hit.ID]; !ok {
			orphans = append(orphans, hit.ID)
			continue
		}
		if len(related) < s.policy.TopK {
			related = append(related, hit)
		}
	}
	s.pruneMirror(ctx, orphans)

	return related, nil
}

// pruneMirror removes points whose notes are gone from SQLite.
func (s *noteService) pruneMirror(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	logger := contextutil.LoggerFromContext(ctx)
	if err := s.vectorStore.Delete(ctx, s.collection, ids); err != nil {
		logger.WarnContext(ctx, "failed to prune stale vector store points", "count", len(ids), "error", err)
		return
	}
	logger.InfoContext(ctx, "pruned stale vector store points", "count", len(ids))
}

// embed calls the provider and normalises the result.
func (s *noteService) embed(ctx context.Context, content string) ([]float32, error) {
	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to embed note", "error", err)
		return nil, &apperr.ProviderError{Op: "embed note", Err: err}
	}
	return vector.Normalize(embedding), nil
}

// mirror upserts the note into the vector store. Failures are logged only;
// SQLite stays the source of truth.
func (s *noteService) mirror(ctx context.Context, note *storage.NoteRecord) {
	if s.vectorStore == nil {
		return
	}

	err := s.vectorStore.Upsert(ctx, s.collection, []vectorstore.Point{{
		ID:  note.ID,
		Vec: note.Embedding,
		Meta: map[string]any{
			"owner_id": note.OwnerID,
			"title":    note.Title,
		},
	}})
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to mirror note to vector store",
			"note_id", note.ID,
			"error", err,
		)
	}
}

// validateContent trims content and checks its length.
func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	n := utf8.RuneCountInString(content)
	if n == 0 {
		return "", &apperr.ValidationError{Field: "content", Message: "cannot be empty"}
	}
	if n > MaxNoteContentLength {
		return "", &apperr.ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("must be at most %d characters", MaxNoteContentLength),
		}
	}
	return content, nil
}

// mapStoreError translates storage.ErrNotFound into apperr.ErrNotFound.
func mapStoreError(err error, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.ErrNotFound
	}
	return apperr.WrapError(err, msg)
}
