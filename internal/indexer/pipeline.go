package indexer

import (
	"context"
	"fmt"

	"minibrain/internal/contextutil"
	"minibrain/internal/storage"
	"minibrain/internal/vectorstore"
)

// DefaultBatchSize is the number of notes read and upserted per round trip.
const DefaultBatchSize = 128

// NoteScanner pages through the notes of every owner.
type NoteScanner interface {
	ScanAfter(ctx context.Context, afterRowID int64, limit int) ([]storage.NoteScanRow, error)
}

// Pipeline rebuilds the vector store mirror from the notes in SQLite.
// Notes written while the vector store was unreachable or disabled are
// picked up on the next run.
type Pipeline struct {
	notes          NoteScanner
	vectorStore    vectorstore.VectorStore
	collection     string
	embeddingModel string
	vectorSize     int
	batchSize      int
}

// NewPipeline creates a new mirror sync pipeline.
func NewPipeline(
	notes NoteScanner,
	vectorStore vectorstore.VectorStore,
	collection string,
	embeddingModel string,
	vectorSize int,
) *Pipeline {
	return &Pipeline{
		notes:          notes,
		vectorStore:    vectorStore,
		collection:     collection,
		embeddingModel: embeddingModel,
		vectorSize:     vectorSize,
		batchSize:      DefaultBatchSize,
	}
}

// SyncAll upserts every stored note into the vector store.
// A failed batch is logged and counted but doesn't stop the sync.
func (p *Pipeline) SyncAll(ctx context.Context) (*SyncStats, error) {
	logger := contextutil.LoggerFromContext(ctx)
	stats := newSyncStats(p.embeddingModel, p.vectorSize)

	var (
		cursor        int64
		tokenCounts   []int
		failedBatches int
	)
	for {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		batch, err := p.notes.ScanAfter(ctx, cursor, p.batchSize)
		if err != nil {
			return stats, fmt.Errorf("failed to read notes after rowid %d: %w", cursor, err)
		}
		if len(batch) == 0 {
			break
		}
		cursor = batch[len(batch)-1].RowID

		points := make([]vectorstore.Point, 0, len(batch))
		for _, row := range batch {
			stats.NotesScanned++
			tokenCounts = append(tokenCounts, estimateTokens(row.ContentLength))

			if reason := p.skipReason(row); reason != "" {
				stats.NotesSkipped++
				stats.SkippedReasons[reason]++
				logger.DebugContext(ctx, "skipping note", "note_id", row.ID, "reason", reason)
				continue
			}

			points = append(points, vectorstore.Point{
				ID:  row.ID,
				Vec: row.Embedding,
				Meta: map[string]any{
					"owner_id": row.OwnerID,
					"title":    row.Title,
				},
			})
		}

		if len(points) == 0 {
			continue
		}
		if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
			failedBatches++
			logger.ErrorContext(ctx, "failed to mirror batch", "cursor", cursor, "notes", len(points), "error", err)
			continue
		}
		stats.NotesMirrored += len(points)
	}

	stats.BatchesFailed = failedBatches
	stats.ContentTokenStats = computeTokenStats(tokenCounts)

	logger.InfoContext(ctx, "vector mirror sync completed",
		"collection", p.collection,
		"scanned", stats.NotesScanned,
		"mirrored", stats.NotesMirrored,
		"skipped", stats.NotesSkipped,
		"failed_batches", failedBatches,
		"index_version", stats.IndexVersion,
	)

	if failedBatches > 0 {
		return stats, fmt.Errorf("mirror sync completed with %d failed batches", failedBatches)
	}
	return stats, nil
}

// skipReason reports why a note can't be mirrored, or "" if it can.
func (p *Pipeline) skipReason(row storage.NoteScanRow) string {
	switch {
	case len(row.Embedding) == 0:
		return "missing_embedding"
	case len(row.Embedding) != p.vectorSize:
		return "dimension_mismatch"
	default:
		return ""
	}
}
