package factory

import (
	"fmt"

	"tria-ai-be/pkg/llm"
	"tria-ai-be/pkg/llm/groq"
	"tria-ai-be/pkg/llm/ollama"
)

type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOllama ProviderType = "ollama"
)

type Config struct {
	Type      ProviderType
	APIKey    string
	BaseURL   string
	ModelName string
}

// NewProvider builds the configured LLM backend. Groq is the production
// default, ollama exists for offline development.
func NewProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Type {
	case ProviderGroq, "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("groq provider requires an api key")
		}
		return groq.NewGroqProvider(cfg.APIKey, cfg.BaseURL, cfg.ModelName), nil
	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.ModelName), nil
	default:
		return nil, fmt.Errorf("unknown llm provider type: %s", cfg.Type)
	}
}
