package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"conflict matches", NewConflict("user", "email taken"), IsConflict, true},
		{"conflict does not match not-found", NewConflict("user", "email taken"), IsNotFound, false},
		{"not found matches", NewNotFound("conversation", "abc"), IsNotFound, true},
		{"storage matches", NewStorage("create message", errors.New("connection reset")), IsStorage, true},
		{"authentication matches", NewAuthentication("invalid credentials"), IsAuthentication, true},
		{"plain error matches nothing", errors.New("boom"), IsConflict, false},
		{"nil matches nothing", nil, IsStorage, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("got %v, want %v for %v", got, tt.want, tt.err)
			}
		})
	}
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("saving reply: %w", NewStorage("create message", errors.New("timeout")))
	if !IsStorage(wrapped) {
		t.Error("wrapped storage error no longer classified as storage")
	}
	if IsConflict(wrapped) {
		t.Error("wrapped storage error misclassified as conflict")
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := NewStorage("bump counters", cause)
	if !errors.Is(err, cause) {
		t.Error("storage error does not unwrap to its cause")
	}
}

func TestExternalServiceErrorUnwrap(t *testing.T) {
	cause := errors.New("status 429")
	err := NewExternalService("groq", cause)
	if !errors.Is(err, cause) {
		t.Error("external service error does not unwrap to its cause")
	}
}

func TestNotFoundMessageWithoutID(t *testing.T) {
	err := NewNotFound("session", "")
	if err.Error() != "session not found" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
