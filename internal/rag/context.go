package rag

import (
	"strings"

	"minibrain/internal/storage"
)

const notePrefix = "Note: "

// AssembleContext renders the content of the ranked notes in ranked order,
// one "Note: <content>" block per note separated by a blank line.
// Ranked notes without resolved content are skipped.
func AssembleContext(ranked []ScoredNote, contents []storage.NoteContent) string {
	byID := make(map[string]string, len(contents))
	for _, c := range contents {
		byID[c.ID] = c.Content
	}

	blocks := make([]string, 0, len(ranked))
	for _, note := range ranked {
		content, ok := byID[note.ID]
		if !ok {
			continue
		}
		blocks = append(blocks, notePrefix+content)
	}

	return strings.Join(blocks, "\n\n")
}

func buildUserPrompt(contextText, question string) string {
	return "Context from your notes:\n" + contextText + "\n\nQuestion: " + question
}
