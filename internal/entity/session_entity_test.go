package entity

import (
	"testing"
	"time"
)

func TestSessionIsValid(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"well before expiry", now.Add(29 * 24 * time.Hour), true},
		{"one second before expiry", now.Add(time.Second), true},
		{"exactly at expiry", now, false},
		{"after expiry", now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &UserSession{ExpiresAt: tt.expiresAt}
			if got := s.IsValid(now); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
