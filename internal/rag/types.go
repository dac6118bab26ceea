package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rag.go -package=mocks minibrain/internal/rag Embedder,Generator,NoteSource,QARecorder

import (
	"context"

	"minibrain/internal/storage"
)

const (
	// MaxQuestionLength is the longest accepted question, in runes.
	MaxQuestionLength = 2000

	// NoNotesAnswer is returned when the owner has no notes at all.
	NoNotesAnswer = "You don't have any notes yet. Add some notes first to ask questions about them."
	// NoMatchAnswer is returned when no note clears the similarity threshold.
	NoMatchAnswer = "I couldn't find any relevant notes to answer your question. Try adding more notes or rephrasing your question."
	// EmptyAnswerFallback replaces a blank model output.
	EmptyAnswerFallback = "I couldn't generate an answer. Please try again."

	systemPrompt = "You are a helpful assistant answering questions based on the user's notes. " +
		"Answer the question using only information from the provided notes. " +
		"If the question cannot be answered from the notes, say so clearly. " +
		"Keep your answer concise and include specific references to the notes when relevant."
)

// Policy holds the retrieval and generation knobs.
type Policy struct {
	// Threshold is the minimum similarity a note needs to be considered relevant.
	Threshold float32
	// TopK caps the number of notes handed to the generator.
	TopK int
	// MaxCandidates caps how many of the most recent notes are scored.
	MaxCandidates int
	// MaxTokens bounds the generated answer.
	MaxTokens int
	// Temperature is passed to the generator as-is.
	Temperature float32
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		Threshold:     0.15,
		TopK:          3,
		MaxCandidates: 2000,
		MaxTokens:     512,
		Temperature:   0.3,
	}
}

// AskRequest represents a question from an authenticated owner.
type AskRequest struct {
	// OwnerID identifies whose notes are searched. Required.
	OwnerID string
	// Question is the user's question to answer.
	Question string
}

// Reference identifies a note that was used in the answer.
type Reference struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// AskResponse represents the response from a RAG query.
type AskResponse struct {
	// Answer is the generated (or fixed) answer.
	Answer string `json:"answer"`
	// References are the notes used to generate the answer, most relevant first.
	// Empty, never nil, when the answer is a fixed message.
	References []Reference `json:"references"`
}

// ScoredNote is a candidate note with its similarity to the question.
type ScoredNote struct {
	ID    string
	Title string
	Score float32
}

// Embedder turns text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a completion from a system instruction and a user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error)
}

// NoteSource provides the owner's notes for retrieval.
type NoteSource interface {
	// ListForSimilarity returns up to limit note vectors, most recent first.
	ListForSimilarity(ctx context.Context, ownerID string, limit int) ([]storage.NoteVector, error)
	// GetContents returns contents for ids in order, omitting those that do not resolve.
	GetContents(ctx context.Context, ownerID string, ids []string) ([]storage.NoteContent, error)
}

// QARecorder persists a question together with its answer.
type QARecorder interface {
	PersistQA(ctx context.Context, ownerID, question, answer string) (string, error)
}
