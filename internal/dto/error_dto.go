package dto

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotOwned is returned when a supplied session id does not exist
	// or belongs to another visitor. Both cases look the same to the caller.
	ErrSessionNotOwned = errors.New("session not found for this visitor")

	// ErrAssistantTimeout is returned when the assistant does not answer
	// within the configured deadline.
	ErrAssistantTimeout = errors.New("assistant did not answer in time")

	ErrInvalidCredentials = errors.New("invalid dashboard credentials")

	ErrFeatureDisabled = errors.New("feature is not configured on this server")
)

const (
	RateLimitDaily = "daily"
	RateLimitBurst = "burst"
)

// RateLimitError is returned when the quota accountant denies admission.
type RateLimitError struct {
	Reason  string
	Limit   int
	Message string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (%s): %s", e.Reason, e.Message)
}

// Label is the short public error title for the reason.
func (e *RateLimitError) Label() string {
	if e.Reason == RateLimitBurst {
		return "Spam detected"
	}
	return "Rate limit exceeded"
}

// StorageError wraps a persistence failure with the operation that failed.
// Its public text never includes the underlying driver message.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure while %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) PublicDetails() string {
	return fmt.Sprintf("storage unavailable while %s", e.Op)
}

// DownstreamError wraps an assistant failure. StatusCode is zero when the
// request never got an HTTP answer.
type DownstreamError struct {
	StatusCode int
	Err        error
}

func (e *DownstreamError) Error() string {
	return fmt.Sprintf("assistant call failed: %v", e.Err)
}

func (e *DownstreamError) Unwrap() error {
	return e.Err
}

func (e *DownstreamError) PublicDetails() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("assistant returned status %d", e.StatusCode)
	}
	return "assistant unavailable"
}
