package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minibrain/internal/contextutil"
	"minibrain/internal/service"
	"minibrain/internal/storage"
)

const noteProviderMessage = "Failed to process your note. Please try again."

// NotesHandler serves the note CRUD endpoints.
type NotesHandler struct {
	notes service.NoteService
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(notes service.NoteService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// CreateNoteRequest is the payload of POST /api/v1/notes.
//
// swagger:model CreateNoteRequest
type CreateNoteRequest struct {
	Content string `json:"content"`
}

// UpdateNoteRequest is the payload of PUT /api/v1/notes/{id}.
// An empty title is derived from the content.
//
// swagger:model UpdateNoteRequest
type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse is a note as returned by the API. The embedding is never exposed.
//
// swagger:model NoteResponse
type NoteResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// RelatedNoteResponse is a note similar to the requested one.
//
// swagger:model RelatedNoteResponse
type RelatedNoteResponse struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Score float32 `json:"score"`
}

func toNoteResponse(note *storage.NoteRecord) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// Create handles POST /api/v1/notes.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.notes.AddNote(ctx, contextutil.OwnerIDFromContext(ctx), req.Content)
	if err != nil {
		writeServiceError(ctx, w, err, noteProviderMessage)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, summary)
}

// List handles GET /api/v1/notes.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	notes, err := h.notes.ListNotes(ctx, contextutil.OwnerIDFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err, noteProviderMessage)
		return
	}

	resp := make([]NoteResponse, len(notes))
	for i := range notes {
		resp[i] = toNoteResponse(&notes[i])
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /api/v1/notes/{id}.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	note, err := h.notes.GetNote(ctx, contextutil.OwnerIDFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(ctx, w, err, noteProviderMessage)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toNoteResponse(note))
}

// Update handles PUT /api/v1/notes/{id}.
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.notes.UpdateNote(ctx, contextutil.OwnerIDFromContext(ctx), chi.URLParam(r, "id"), req.Title, req.Content)
	if err != nil {
		writeServiceError(ctx, w, err, noteProviderMessage)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toNoteResponse(note))
}

// Delete handles DELETE /api/v1/notes/{id}.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.notes.DeleteNote(ctx, contextutil.OwnerIDFromContext(ctx), chi.URLParam(r, "id")); err != nil {
		writeServiceError(ctx, w, err, noteProviderMessage)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Related handles GET /api/v1/notes/{id}/related.
func (h *NotesHandler) Related(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	related, err := h.notes.RelatedNotes(ctx, contextutil.OwnerIDFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(ctx, w, err, noteProviderMessage)
		return
	}

	resp := make([]RelatedNoteResponse, len(related))
	for i, n := range related {
		resp[i] = RelatedNoteResponse{ID: n.ID, Title: n.Title, Score: n.Score}
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
