package llm

// Message is one turn of a chat completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams bounds a chat completion. The model is always the client's own.
type ChatParams struct {
	// MaxTokens caps the completion length; 0 leaves it to the server.
	MaxTokens   int
	Temperature float32
}
