package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"minibrain/internal/apperr"
	"minibrain/internal/rag"
	"minibrain/internal/service"
	"minibrain/internal/service/mocks"
	"minibrain/internal/storage"
)

func TestNotesHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *mocks.MockNoteService)
		wantStatus int
	}{
		{
			name: "created",
			body: `{"content":"buy milk"}`,
			setup: func(m *mocks.MockNoteService) {
				m.EXPECT().AddNote(gomock.Any(), "user-1", "buy milk").
					Return(service.NoteSummary{ID: "n1", Title: "buy milk"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid body",
			body:       `nope`,
			setup:      func(m *mocks.MockNoteService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "content too long",
			body: `{"content":"x"}`,
			setup: func(m *mocks.MockNoteService) {
				m.EXPECT().AddNote(gomock.Any(), "user-1", "x").
					Return(service.NoteSummary{}, &apperr.ValidationError{Field: "content", Message: "must be at most 8000 characters"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "embedding provider down",
			body: `{"content":"x"}`,
			setup: func(m *mocks.MockNoteService) {
				m.EXPECT().AddNote(gomock.Any(), "user-1", "x").
					Return(service.NoteSummary{}, &apperr.ProviderError{Op: "embed note", Err: errors.New("timeout")})
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockNoteService(ctrl)
			tt.setup(m)
			handler := NewNotesHandler(m)

			req := withOwner(httptest.NewRequest(http.MethodPost, "/api/v1/notes", bytes.NewBufferString(tt.body)), "user-1")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Create() status = %v, want %v (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusCreated {
				var summary service.NoteSummary
				if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if summary.ID != "n1" || summary.Title != "buy milk" {
					t.Errorf("Create() body = %+v", summary)
				}
			}
		})
	}
}

func TestNotesHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockNoteService(ctrl)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m.EXPECT().ListNotes(gomock.Any(), "user-1").Return([]storage.NoteRecord{
		{ID: "n2", Title: "second", Content: "second", CreatedAt: created, Embedding: []float32{1, 0}},
		{ID: "n1", Title: "first", Content: "first", CreatedAt: created},
	}, nil)

	req := withOwner(httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil), "user-1")
	w := httptest.NewRecorder()

	NewNotesHandler(m).List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("List() status = %v, want 200", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("embedding")) {
		t.Error("List() must not expose embeddings")
	}

	var notes []NoteResponse
	if err := json.NewDecoder(w.Body).Decode(&notes); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "n2" {
		t.Errorf("List() = %+v", notes)
	}
}

func TestNotesHandler_Get(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "not found", err: apperr.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", err: errors.New("disk"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockNoteService(ctrl)
			var note *storage.NoteRecord
			if tt.err == nil {
				note = &storage.NoteRecord{ID: "n1", Title: "t", Content: "c"}
			}
			m.EXPECT().GetNote(gomock.Any(), "user-1", "n1").Return(note, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/n1", nil)
			req = withURLParam(withOwner(req, "user-1"), "id", "n1")
			w := httptest.NewRecorder()

			NewNotesHandler(m).Get(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Get() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestNotesHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockNoteService(ctrl)
	updated := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	m.EXPECT().UpdateNote(gomock.Any(), "user-1", "n1", "Title", "new body").
		Return(&storage.NoteRecord{ID: "n1", Title: "Title", Content: "new body", UpdatedAt: &updated}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/notes/n1", bytes.NewBufferString(`{"title":"Title","content":"new body"}`))
	req = withURLParam(withOwner(req, "user-1"), "id", "n1")
	w := httptest.NewRecorder()

	NewNotesHandler(m).Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Update() status = %v, want 200", w.Code)
	}
	var note NoteResponse
	if err := json.NewDecoder(w.Body).Decode(&note); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if note.UpdatedAt == nil || !note.UpdatedAt.Equal(updated) {
		t.Errorf("Update() updated_at = %v, want %v", note.UpdatedAt, updated)
	}
}

func TestNotesHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "foreign note", err: apperr.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockNoteService(ctrl)
			m.EXPECT().DeleteNote(gomock.Any(), "user-1", "n1").Return(tt.err)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/notes/n1", nil)
			req = withURLParam(withOwner(req, "user-1"), "id", "n1")
			w := httptest.NewRecorder()

			NewNotesHandler(m).Delete(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Delete() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestNotesHandler_Related(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockNoteService(ctrl)
	m.EXPECT().RelatedNotes(gomock.Any(), "user-1", "n1").Return([]rag.ScoredNote{
		{ID: "n2", Title: "close", Score: 0.8},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes/n1/related", nil)
	req = withURLParam(withOwner(req, "user-1"), "id", "n1")
	w := httptest.NewRecorder()

	NewNotesHandler(m).Related(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Related() status = %v, want 200", w.Code)
	}
	var related []RelatedNoteResponse
	if err := json.NewDecoder(w.Body).Decode(&related); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(related) != 1 || related[0].ID != "n2" || related[0].Score != 0.8 {
		t.Errorf("Related() = %+v", related)
	}
}
