package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"minibrain/internal/apperr"
	"minibrain/internal/service/mocks"
	"minibrain/internal/storage"
)

func TestNoteHandler_ServeHTTP(t *testing.T) {
	created := time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	tests := []struct {
		name         string
		note         *storage.NoteRecord
		err          error
		wantStatus   int
		wantContains []string
		wantAbsent   []string
	}{
		{
			name: "renders markdown",
			note: &storage.NoteRecord{
				ID:        "n1",
				Title:     "Shopping",
				Content:   "# Groceries\n\n- milk\n- **eggs**",
				CreatedAt: created,
			},
			wantStatus: http.StatusOK,
			wantContains: []string{
				"<title>Shopping - minibrain</title>",
				`<h1 id="groceries">Groceries</h1>`,
				"<strong>eggs</strong>",
				"Created 6 May 2024 07:08",
			},
			wantAbsent: []string{"Updated"},
		},
		{
			name: "shows update time",
			note: &storage.NoteRecord{
				ID:        "n1",
				Title:     "Edited",
				Content:   "body",
				CreatedAt: created,
				UpdatedAt: &updated,
			},
			wantStatus:   http.StatusOK,
			wantContains: []string{"Updated 6 May 2024 08:08"},
		},
		{
			name: "escapes raw html",
			note: &storage.NoteRecord{
				ID:        "n1",
				Title:     "<b>x</b>",
				Content:   "<script>alert(1)</script>",
				CreatedAt: created,
			},
			wantStatus:   http.StatusOK,
			wantContains: []string{"&lt;b&gt;x&lt;/b&gt;"},
			wantAbsent:   []string{"<script>"},
		},
		{
			name:       "not found",
			err:        apperr.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "storage failure",
			err:        errors.New("disk"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockNoteService(ctrl)
			m.EXPECT().GetNote(gomock.Any(), "user-1", "n1").Return(tt.note, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/notes/n1", nil)
			req = withURLParam(withOwner(req, "user-1"), "id", "n1")
			w := httptest.NewRecorder()

			NewNoteHandler(m).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("ServeHTTP() status = %v, want %v", w.Code, tt.wantStatus)
			}

			body := w.Body.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(body, absent) {
					t.Errorf("body unexpectedly contains %q", absent)
				}
			}
		})
	}
}
