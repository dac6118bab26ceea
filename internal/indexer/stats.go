package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
)

const (
	// MirrorVersion identifies the payload layout written to the vector store.
	// Bump it when the point metadata changes.
	MirrorVersion = "v1"
	// TokensPerRune is an approximation for token counting (4 chars per token).
	TokensPerRune = 4.0
)

// SyncStats summarizes a mirror sync run.
type SyncStats struct {
	// NotesScanned is the number of notes read from SQLite.
	NotesScanned int `json:"notes_scanned"`
	// NotesMirrored is the number of notes upserted into the vector store.
	NotesMirrored int `json:"notes_mirrored"`
	// NotesSkipped is the number of notes whose embedding can't be mirrored.
	NotesSkipped int `json:"notes_skipped"`
	// SkippedReasons is a breakdown of why notes were skipped.
	SkippedReasons map[string]int `json:"skipped_reasons,omitempty"`
	// BatchesFailed is the number of upserts the vector store rejected.
	BatchesFailed int `json:"batches_failed"`
	// ContentTokenStats estimates how large notes are once placed in a prompt.
	ContentTokenStats TokenStats `json:"content_token_stats"`
	// IndexVersion is a hash of the mirror layout, embedding model and vector size.
	// A collection built under a different version should be recreated.
	IndexVersion string `json:"index_version"`
}

// TokenStats contains statistics about estimated token counts.
type TokenStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

func newSyncStats(embeddingModel string, vectorSize int) *SyncStats {
	return &SyncStats{
		SkippedReasons: make(map[string]int),
		IndexVersion:   indexVersion(embeddingModel, vectorSize),
	}
}

// indexVersion hashes everything that makes mirrored vectors comparable.
func indexVersion(embeddingModel string, vectorSize int) string {
	input := fmt.Sprintf("%s|%s|vectorSize=%d", MirrorVersion, embeddingModel, vectorSize)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16] // 16 hex chars = 64 bits
}

// estimateTokens approximates the token count of a text of n characters.
func estimateTokens(n int) int {
	tokens := int(math.Round(float64(n) / TokensPerRune))
	if tokens < 1 {
		return 1 // Minimum 1 token
	}
	return tokens
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) TokenStats {
	if len(tokenCounts) == 0 {
		return TokenStats{}
	}

	// Sort for percentile calculation
	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	sum := 0
	for _, count := range sorted {
		sum += count
	}
	mean := float64(sum) / float64(len(sorted))

	p95Index := int(math.Ceil(float64(len(sorted))*0.95)) - 1
	if p95Index < 0 {
		p95Index = 0
	}

	return TokenStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100, // Round to 2 decimal places
		P95:  sorted[p95Index],
	}
}
