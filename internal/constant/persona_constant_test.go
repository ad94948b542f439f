package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonaFor(t *testing.T) {
	ram := PersonaFor(PersonaRam)
	assert.Equal(t, PersonaRam, ram.Key)
	assert.Equal(t, "Ram", ram.Label)
	assert.Equal(t, "Dedicated & Fun", ram.Tagline)
	assert.NotEmpty(t, ram.SystemPrompt)

	laxman := PersonaFor(PersonaLaxman)
	assert.Equal(t, PersonaLaxman, laxman.Key)
	assert.Equal(t, "Laxman", laxman.Label)
	assert.Equal(t, "Funny & Perfect", laxman.Tagline)
}

func TestPersonaForUnknownKeyFallsBackToRam(t *testing.T) {
	p := PersonaFor(PersonaKey("shiva"))
	assert.Equal(t, PersonaRam, p.Key)
}

func TestSenderLabel(t *testing.T) {
	tests := []struct {
		sender string
		want   string
	}{
		{SenderUser, "User"},
		{SenderRam, "Ram"},
		{SenderLaxman, "Laxman"},
		{"something-else", "User"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SenderLabel(tt.sender), "sender %q", tt.sender)
	}
}
