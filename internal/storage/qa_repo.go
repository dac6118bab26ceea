package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QAStore defines the interface for question/answer history operations.
type QAStore interface {
	// PersistQA stores a question and its answer as a linked pair and returns the question ID.
	PersistQA(ctx context.Context, ownerID, question, answer string) (string, error)
	// ListByOwner returns up to limit questions with their answers, most recent first.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]QARecord, error)
}

// QARepo provides methods for question and answer operations.
// It implements the QAStore interface.
type QARepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewQARepo creates a new QARepo.
func NewQARepo(db *sql.DB) *QARepo {
	return &QARepo{db: db, now: time.Now}
}

// PersistQA inserts the question and then the answer referencing it, in one transaction.
func (r *QARepo) PersistQA(ctx context.Context, ownerID, question, answer string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	questionID := uuid.New().String()
	createdAt := toMillis(r.now())

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO questions (id, owner_id, question, created_at) VALUES (?, ?, ?, ?)",
		questionID, ownerID, question, createdAt,
	); err != nil {
		return "", fmt.Errorf("failed to insert question: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO answers (id, owner_id, question_id, answer, created_at) VALUES (?, ?, ?, ?, ?)",
		uuid.New().String(), ownerID, questionID, answer, createdAt,
	); err != nil {
		return "", fmt.Errorf("failed to insert answer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit question and answer: %w", err)
	}

	return questionID, nil
}

// ListByOwner returns the owner's questions joined with their answers, most recent first.
// A question without an answer row is returned with an empty Answer.
func (r *QARepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]QARecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT q.id, q.owner_id, q.question, COALESCE(a.answer, ''), q.created_at
		 FROM questions q
		 LEFT JOIN answers a ON a.question_id = q.id
		 WHERE q.owner_id = ?
		 ORDER BY q.created_at DESC, q.rowid DESC
		 LIMIT ?`,
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]QARecord, 0)
	for rows.Next() {
		var (
			rec       QARecord
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.Question, &rec.Answer, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		rec.CreatedAt = fromMillis(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
