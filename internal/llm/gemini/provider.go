package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/smarttravel/api/internal/config"
	"github.com/smarttravel/api/internal/llm"
	"google.golang.org/api/option"
)

// Provider implements llm.Provider using the Gemini SDK
type Provider struct {
	apiKey string
	model  string
}

// NewProvider creates a new Gemini provider
func NewProvider(cfg config.GeminiConfig) *Provider {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Provider{
		apiKey: cfg.APIKey,
		model:  model,
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "gemini"
}

// IsConfigured checks if the provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// Complete replays the conversation through a Gemini chat session and
// returns the reply to the final user message.
func (p *Provider) Complete(ctx context.Context, history []llm.Message) (*llm.Message, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("empty message history")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.model)
	session := model.StartChat()

	// Gemini calls the assistant side "model". Everything before the last
	// message is prior context.
	for _, m := range history[:len(history)-1] {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(history[len(history)-1].Content))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}

	return &llm.Message{Role: "assistant", Content: output}, nil
}
