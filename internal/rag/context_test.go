package rag

import (
	"testing"

	"minibrain/internal/storage"
)

func TestAssembleContext(t *testing.T) {
	ranked := []ScoredNote{{ID: "b"}, {ID: "a"}, {ID: "c"}}

	tests := []struct {
		name     string
		ranked   []ScoredNote
		contents []storage.NoteContent
		want     string
	}{
		{
			name:   "ranked order wins over content order",
			ranked: ranked,
			contents: []storage.NoteContent{
				{ID: "a", Content: "alpha"},
				{ID: "b", Content: "beta"},
				{ID: "c", Content: "gamma"},
			},
			want: "Note: beta\n\nNote: alpha\n\nNote: gamma",
		},
		{
			name:   "unresolved notes are omitted",
			ranked: ranked,
			contents: []storage.NoteContent{
				{ID: "c", Content: "gamma"},
				{ID: "b", Content: "beta"},
			},
			want: "Note: beta\n\nNote: gamma",
		},
		{
			name:     "single note",
			ranked:   []ScoredNote{{ID: "a"}},
			contents: []storage.NoteContent{{ID: "a", Content: "line one\nline two"}},
			want:     "Note: line one\nline two",
		},
		{
			name:     "nothing resolved",
			ranked:   ranked,
			contents: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssembleContext(tt.ranked, tt.contents); got != tt.want {
				t.Errorf("AssembleContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := buildUserPrompt("Note: x", "what is x?")
	want := "Context from your notes:\nNote: x\n\nQuestion: what is x?"
	if got != want {
		t.Errorf("buildUserPrompt() = %q, want %q", got, want)
	}
}
