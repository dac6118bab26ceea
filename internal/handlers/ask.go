package handlers

import (
	"encoding/json"
	"net/http"

	"minibrain/internal/contextutil"
	"minibrain/internal/rag"
)

// askProviderMessage is shown when embedding or generation failed.
const askProviderMessage = "Failed to process your question. Please try again."

// AskHandler handles HTTP requests for questions about the caller's notes.
type AskHandler struct {
	ragEngine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(ragEngine rag.Engine) *AskHandler {
	return &AskHandler{
		ragEngine: ragEngine,
	}
}

// AskRequest represents the HTTP request payload for questions.
//
// swagger:model AskRequest
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse represents the HTTP response payload for questions.
//
// swagger:model AskResponse
type AskResponse struct {
	// The generated answer, or a fixed message when no notes could be used
	Answer string `json:"answer"`

	// Notes used to produce the answer, most relevant first
	References []ReferenceResponse `json:"references"`
}

// ReferenceResponse represents a reference in the HTTP response.
//
// swagger:model ReferenceResponse
type ReferenceResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ServeHTTP handles HTTP requests for questions.
//
// swagger:route POST /api/v1/ask askQuestion
//
// # Ask a question about your notes
//
// Answers from the caller's most relevant notes and records the exchange.
//
// responses:
//
//	'200':
//	  description: Answer with references
//	'400':
//	  description: Question empty or too long
//	'401':
//	  description: Missing or invalid bearer token
//	'502':
//	  description: Embedding or generation provider failed
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ragResp, err := h.ragEngine.Ask(ctx, rag.AskRequest{
		OwnerID:  contextutil.OwnerIDFromContext(ctx),
		Question: req.Question,
	})
	if err != nil {
		writeServiceError(ctx, w, err, askProviderMessage)
		return
	}

	references := make([]ReferenceResponse, len(ragResp.References))
	for i, ref := range ragResp.References {
		references[i] = ReferenceResponse{ID: ref.ID, Title: ref.Title}
	}

	writeJSON(ctx, w, http.StatusOK, AskResponse{
		Answer:     ragResp.Answer,
		References: references,
	})
}
