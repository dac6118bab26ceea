package storage

import "time"

// NoteRecord represents a user note in the database.
type NoteRecord struct {
	ID        string    // UUID
	OwnerID   string    // Owning user identifier
	Title     string    // Derived from content, at most 23 characters
	Content   string    // Free text, markdown allowed
	Embedding []float32 // Unit-length embedding of Content
	CreatedAt time.Time
	UpdatedAt *time.Time // nil until the first edit
}

// NoteVector is the projection of a note used for similarity ranking.
type NoteVector struct {
	ID        string
	Title     string
	Embedding []float32
}

// NoteContent is the projection of a note used for context assembly.
type NoteContent struct {
	ID      string
	Content string
}

// QARecord is a question joined with its answer.
type QARecord struct {
	ID        string // Question ID
	OwnerID   string
	Question  string
	Answer    string // Empty when no answer row exists
	CreatedAt time.Time
}

// NoteScanRow is the projection of a note used to rebuild the vector mirror.
type NoteScanRow struct {
	RowID         int64 // SQLite rowid, the scan cursor
	ID            string
	OwnerID       string
	Title         string
	ContentLength int // in characters
	Embedding     []float32
}
