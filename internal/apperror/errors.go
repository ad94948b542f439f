package apperror

import (
	"errors"
	"fmt"
)

// The service layer returns these typed errors so controllers can map them
// to HTTP statuses without string matching.

type ConflictError struct {
	Resource string
	Detail   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Detail)
}

func NewConflict(resource, detail string) *ConflictError {
	return &ConflictError{Resource: resource, Detail: detail}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// StorageError wraps a failure of the underlying store. Write paths must
// surface it; dashboard read paths degrade to zero values instead.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Reason
}

func NewAuthentication(reason string) *AuthenticationError {
	return &AuthenticationError{Reason: reason}
}

// ExternalServiceError marks a completion-API failure. The orchestrator
// absorbs it into a substitute reply; it never reaches a transcript.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service %s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func NewExternalService(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Err: err}
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}
