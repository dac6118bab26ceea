package handlers

import (
	"context"
	"net/http"
	"time"

	"minibrain/internal/apperr"
	"minibrain/internal/contextutil"
	"minibrain/internal/storage"
)

const historyLimit = 50

// QuestionLister lists an owner's past questions with their answers.
type QuestionLister interface {
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]storage.QARecord, error)
}

// QuestionsHandler serves the question history.
type QuestionsHandler struct {
	questions QuestionLister
}

// NewQuestionsHandler creates a new QuestionsHandler.
func NewQuestionsHandler(questions QuestionLister) *QuestionsHandler {
	return &QuestionsHandler{questions: questions}
}

// QuestionResponse is one entry of the question history.
//
// swagger:model QuestionResponse
type QuestionResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// ServeHTTP handles GET /api/v1/questions.
func (h *QuestionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ownerID := contextutil.OwnerIDFromContext(ctx)
	if ownerID == "" {
		writeServiceError(ctx, w, apperr.ErrUnauthenticated, "")
		return
	}

	records, err := h.questions.ListByOwner(ctx, ownerID, historyLimit)
	if err != nil {
		writeServiceError(ctx, w, err, "")
		return
	}

	resp := make([]QuestionResponse, len(records))
	for i, rec := range records {
		resp[i] = QuestionResponse{
			ID:        rec.ID,
			Question:  rec.Question,
			Answer:    rec.Answer,
			CreatedAt: rec.CreatedAt,
		}
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
