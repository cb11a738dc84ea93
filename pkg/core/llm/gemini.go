package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash-exp"

// GeminiProvider implements Provider against Google's Gemini API.
type GeminiProvider struct {
	Model string
}

var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider returns a provider, or an error if GEMINI_API_KEY is
// not set. The key is read per request so rotation does not require a
// restart.
func NewGeminiProvider(model string) (*GeminiProvider, error) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return nil, fmt.Errorf("llm: GEMINI_API_KEY environment variable not set")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{Model: model}, nil
}

// GenerateJSON sends a generateContent request in JSON mode and returns the
// response text.
func (p *GeminiProvider) GenerateJSON(ctx context.Context, systemPrompt, prompt string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("llm: GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("llm: create client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		ResponseMIMEType: "application/json",
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, p.Model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("llm: gemini generation failed: %w", err)
	}
	return result.Text(), nil
}
