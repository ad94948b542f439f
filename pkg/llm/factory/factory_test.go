package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProviderGroq(t *testing.T) {
	p, err := NewProvider(Config{Type: ProviderGroq, APIKey: "test-key", ModelName: "deepseek-r1-distill-llama-70b"})
	assert.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewProviderDefaultsToGroq(t *testing.T) {
	p, err := NewProvider(Config{APIKey: "test-key"})
	assert.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewProviderGroqRequiresAPIKey(t *testing.T) {
	p, err := NewProvider(Config{Type: ProviderGroq})
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestNewProviderOllamaNeedsNoKey(t *testing.T) {
	p, err := NewProvider(Config{Type: ProviderOllama, ModelName: "llama3"})
	assert.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNewProviderUnknownType(t *testing.T) {
	p, err := NewProvider(Config{Type: "anthropic"})
	assert.Error(t, err)
	assert.Nil(t, p)
}
