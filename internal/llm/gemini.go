package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient embeds and generates text with the Gemini API.
type GeminiClient struct {
	client         *genai.Client
	chatModel      string
	embeddingModel string
	expectedSize   int
}

// NewGeminiClient creates a Gemini client. expectedSize is validated against every embedding.
func NewGeminiClient(ctx context.Context, apiKey, chatModel, embeddingModel string, expectedSize int) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:         client,
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		expectedSize:   expectedSize,
	}, nil
}

// Close releases the underlying connection.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Embed generates the embedding of a single text.
func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	em := g.client.EmbeddingModel(g.embeddingModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding request failed: %w", err)
	}

	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding data received from gemini")
	}
	if len(res.Embedding.Values) != g.expectedSize {
		return nil, fmt.Errorf("embedding has size %d, expected %d", len(res.Embedding.Values), g.expectedSize)
	}

	return res.Embedding.Values, nil
}

// Generate answers userPrompt under systemPrompt with the configured chat model.
func (g *GeminiClient) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error) {
	model := g.client.GenerativeModel(g.chatModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	tokens := int32(maxTokens)
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: &tokens,
		Temperature:     &temperature,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation request failed: %w", err)
	}

	return responseText(resp), nil
}

// responseText concatenates the text parts of the first candidate.
// A response without text yields "".
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}
