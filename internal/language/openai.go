package language

import (
	"context"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL         = "https://api.groq.com/openai/v1"
	DefaultPrimaryModel    = "llama-3.1-8b-instant"
	DefaultCorrectiveModel = "llama-3.3-70b-versatile"
)

const detectPrompt = "Identify the language of the user's text. " +
	"Reply with only the language name in English, for example: English, Hindi, Gujarati, French, Spanish."

// OpenAIOptions configures an OpenAIBackend.
type OpenAIOptions struct {
	APIKey          string
	BaseURL         string
	PrimaryModel    string
	CorrectiveModel string
}

// OpenAIBackend talks to any OpenAI-compatible chat completions endpoint.
type OpenAIBackend struct {
	client          *openai.Client
	primaryModel    string
	correctiveModel string
}

// NewOpenAIBackend creates a backend. An empty API key yields a backend whose
// calls fail with ErrUnavailable.
func NewOpenAIBackend(opts OpenAIOptions) *OpenAIBackend {
	b := &OpenAIBackend{
		primaryModel:    opts.PrimaryModel,
		correctiveModel: opts.CorrectiveModel,
	}
	if b.primaryModel == "" {
		b.primaryModel = DefaultPrimaryModel
	}
	if b.correctiveModel == "" {
		b.correctiveModel = DefaultCorrectiveModel
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return b
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = opts.BaseURL
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	b.client = openai.NewClientWithConfig(cfg)
	return b
}

// Detect asks the corrective model to name the language of text.
func (b *OpenAIBackend) Detect(ctx context.Context, text string) (string, error) {
	return b.complete(ctx, b.correctiveModel, detectPrompt, text)
}

// Translate applies the instruction to the text. Corrective requests use the
// corrective model.
func (b *OpenAIBackend) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	model := b.primaryModel
	if req.Corrective {
		model = b.correctiveModel
	}
	return b.complete(ctx, model, req.Instruction, req.Text)
}

func (b *OpenAIBackend) complete(ctx context.Context, model, system, user string) (string, error) {
	if b.client == nil {
		return "", ErrUnavailable
	}
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		// A literal 0 is dropped by omitempty and the server default applies.
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion (%s): %w", model, err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
