package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider on the Gemini API.
//
// When Model is empty the provider lists the account's models once and
// picks the first flash variant that supports generateContent, so a seller
// never has to know which model names their key can use.
type GeminiProvider struct {
	Model string // e.g. "gemini-2.0-flash"

	mu       sync.Mutex
	resolved string
}

var _ Provider = (*GeminiProvider)(nil)

func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if val, ok := options["api_key"].(string); ok && val != "" {
		apiKey = val
	}
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := p.Model
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}
	if model == "" {
		model, err = p.resolveModel(ctx, client)
		if err != nil {
			return "", err
		}
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}
	if val, ok := options["response_format"].(string); ok && val == "json" {
		config.ResponseMIMEType = "application/json"
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}

// resolveModel picks a usable model from the account's model list,
// preferring flash variants. The choice is cached for the provider's
// lifetime.
func (p *GeminiProvider) resolveModel(ctx context.Context, client *genai.Client) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resolved != "" {
		return p.resolved, nil
	}

	var fallback string
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return "", fmt.Errorf("list models: %w", err)
		}
		if !supportsGenerate(model) {
			continue
		}
		if fallback == "" {
			fallback = model.Name
		}
		if strings.Contains(model.Name, "flash") {
			p.resolved = model.Name
			fmt.Printf("[LLM] auto-selected Gemini model %s\n", p.resolved)
			return p.resolved, nil
		}
	}
	if fallback == "" {
		return "", fmt.Errorf("no Gemini model supporting generateContent available to this key")
	}
	p.resolved = fallback
	fmt.Printf("[LLM] auto-selected Gemini model %s\n", p.resolved)
	return p.resolved, nil
}

func supportsGenerate(m *genai.Model) bool {
	for _, action := range m.SupportedActions {
		if action == "generateContent" {
			return true
		}
	}
	return false
}
