package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks minibrain/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// NoteStore defines the interface for note storage operations.
// Every method is scoped to an owner; notes of other owners behave as absent.
type NoteStore interface {
	// Insert stores a new note. A UUID is generated when note.ID is empty.
	Insert(ctx context.Context, note *NoteRecord) error
	// GetByID gets a note by ID. Returns ErrNotFound if absent or owned by someone else.
	GetByID(ctx context.Context, ownerID, id string) (*NoteRecord, error)
	// Update replaces title, content, embedding and updated_at in a single statement.
	Update(ctx context.Context, note *NoteRecord) error
	// Delete removes a note. Returns ErrNotFound if absent or owned by someone else.
	Delete(ctx context.Context, ownerID, id string) error
	// ListByOwner returns up to limit notes, most recent first.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]NoteRecord, error)
	// ListForSimilarity returns up to limit note vectors, most recent first.
	ListForSimilarity(ctx context.Context, ownerID string, limit int) ([]NoteVector, error)
	// GetContents returns the content of the given notes in request order,
	// silently omitting IDs that do not resolve for the owner.
	GetContents(ctx context.Context, ownerID string, ids []string) ([]NoteContent, error)
}

// NoteRepo provides methods for note operations.
// It implements the NoteStore interface.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

// Insert stores a new note.
func (r *NoteRepo) Insert(ctx context.Context, note *NoteRecord) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}

	embedding, err := encodeEmbedding(note.Embedding)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notes (id, owner_id, title, content, embedding, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL)`,
		note.ID, note.OwnerID, note.Title, note.Content, embedding, toMillis(note.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}

	return nil
}

// GetByID gets a note by ID. Returns ErrNotFound if not found.
func (r *NoteRepo) GetByID(ctx context.Context, ownerID, id string) (*NoteRecord, error) {
	var (
		note      NoteRecord
		embedding string
		createdAt int64
		updatedAt sql.NullInt64
	)

	err := r.db.QueryRowContext(ctx,
		"SELECT id, owner_id, title, content, embedding, created_at, updated_at FROM notes WHERE id = ? AND owner_id = ?",
		id, ownerID,
	).Scan(&note.ID, &note.OwnerID, &note.Title, &note.Content, &embedding, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}

	note.Embedding, err = decodeEmbedding(embedding)
	if err != nil {
		return nil, err
	}
	note.CreatedAt = fromMillis(createdAt)
	if updatedAt.Valid {
		t := fromMillis(updatedAt.Int64)
		note.UpdatedAt = &t
	}

	return &note, nil
}

// Update replaces the mutable fields of a note.
// Content and embedding are written by one statement so they never diverge.
func (r *NoteRepo) Update(ctx context.Context, note *NoteRecord) error {
	embedding, err := encodeEmbedding(note.Embedding)
	if err != nil {
		return err
	}

	var updatedAt any
	if note.UpdatedAt != nil {
		updatedAt = toMillis(*note.UpdatedAt)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, embedding = ?, updated_at = ?
		 WHERE id = ? AND owner_id = ?`,
		note.Title, note.Content, embedding, updatedAt, note.ID, note.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a note.
func (r *NoteRepo) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListByOwner returns up to limit notes for display, most recent first.
// Returns an empty slice if the owner has no notes (not an error).
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, title, content, embedding, created_at, updated_at FROM notes
		 WHERE owner_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	notes := make([]NoteRecord, 0)
	for rows.Next() {
		var (
			note      NoteRecord
			embedding string
			createdAt int64
			updatedAt sql.NullInt64
		)
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Title, &note.Content, &embedding, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		if note.Embedding, err = decodeEmbedding(embedding); err != nil {
			return nil, err
		}
		note.CreatedAt = fromMillis(createdAt)
		if updatedAt.Valid {
			t := fromMillis(updatedAt.Int64)
			note.UpdatedAt = &t
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return notes, nil
}

// ListForSimilarity returns up to limit note vectors for ranking, most recent first.
// Older notes beyond the limit are not returned.
func (r *NoteRepo) ListForSimilarity(ctx context.Context, ownerID string, limit int) ([]NoteVector, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, embedding FROM notes
		 WHERE owner_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query note vectors: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	vectors := make([]NoteVector, 0)
	for rows.Next() {
		var (
			nv        NoteVector
			embedding string
		)
		if err := rows.Scan(&nv.ID, &nv.Title, &embedding); err != nil {
			return nil, fmt.Errorf("failed to scan note vector: %w", err)
		}
		if nv.Embedding, err = decodeEmbedding(embedding); err != nil {
			return nil, err
		}
		vectors = append(vectors, nv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return vectors, nil
}

// GetContents returns note contents in the order of ids, omitting unresolvable IDs.
func (r *NoteRepo) GetContents(ctx context.Context, ownerID string, ids []string) ([]NoteContent, error) {
	if len(ids) == 0 {
		return []NoteContent{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, ownerID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, content FROM notes WHERE owner_id = ? AND id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query note contents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	byID := make(map[string]string, len(ids))
	for rows.Next() {
		var id, content string
		if err := rows.Scan(&id, &content); err != nil {
			return nil, fmt.Errorf("failed to scan note content: %w", err)
		}
		byID[id] = content
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	contents := make([]NoteContent, 0, len(byID))
	for _, id := range ids {
		if content, ok := byID[id]; ok {
			contents = append(contents, NoteContent{ID: id, Content: content})
		}
	}

	return contents, nil
}

// ScanAfter returns up to limit notes of every owner with a rowid greater than
// afterRowID, in rowid order. Pass the last RowID back in to continue the scan.
func (r *NoteRepo) ScanAfter(ctx context.Context, afterRowID int64, limit int) ([]NoteScanRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT rowid, id, owner_id, title, length(content), embedding FROM notes
		 WHERE rowid > ? ORDER BY rowid LIMIT ?`,
		afterRowID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	batch := make([]NoteScanRow, 0, limit)
	for rows.Next() {
		var (
			row       NoteScanRow
			embedding string
		)
		if err := rows.Scan(&row.RowID, &row.ID, &row.OwnerID, &row.Title, &row.ContentLength, &embedding); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		if row.Embedding, err = decodeEmbedding(embedding); err != nil {
			return nil, err
		}
		batch = append(batch, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return batch, nil
}
