package groq

import (
	"context"
	"fmt"

	"tria-ai-be/pkg/llm"

	"github.com/sashabaranov/go-openai"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider talks to Groq's OpenAI-compatible chat-completion endpoint.
type GroqProvider struct {
	client    *openai.Client
	modelName string
}

var _ llm.LLMProvider = &GroqProvider{}

func NewGroqProvider(apiKey, baseURL, modelName string) *GroqProvider {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	clientConfig.BaseURL = baseURL

	return &GroqProvider{
		client:    openai.NewClientWithConfig(clientConfig),
		modelName: modelName,
	}
}

func (p *GroqProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = openai.ChatMessageRoleAssistant
		}
		messages[i] = openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := p.modelName
	if options.Model != "" {
		model = options.Model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("groq returned an empty completion")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *GroqProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: openai.ChatMessageRoleUser, Content: prompt}}, opts...)
}
