package service

import "testing"

func TestCountWords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{
			name:    "empty string",
			content: "",
			want:    0,
		},
		{
			name:    "whitespace only",
			content: "   \t\n  ",
			want:    0,
		},
		{
			name:    "single word",
			content: "hello",
			want:    1,
		},
		{
			name:    "simple sentence",
			content: "how are you today",
			want:    4,
		},
		{
			name:    "collapses repeated whitespace",
			content: "one   two\t\tthree\nfour",
			want:    4,
		},
		{
			name:    "punctuation sticks to words",
			content: "Well, that's great!",
			want:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countWords(tt.content); got != tt.want {
				t.Errorf("countWords(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}
