package llm

import (
	"errors"
	"fmt"
)

// ProviderError is the adapter-level failure type. Every transport or
// payload problem inside an adapter is reported as a ProviderError so
// callers always know which backend failed and why. Messages are
// sanitized for display: they never carry credentials or raw upstream
// error bodies beyond a short excerpt.
type ProviderError struct {
	// Provider is the human-readable name of the failing backend.
	Provider string

	// Message is a user-actionable description of the failure.
	Message string

	err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.err
}

// NewProviderError creates a ProviderError with the given message.
func NewProviderError(provider, message string) *ProviderError {
	return &ProviderError{Provider: provider, Message: message}
}

// WrapProviderError creates a ProviderError that preserves the
// underlying cause for errors.Is/As inspection.
func WrapProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Message: message, err: err}
}

// IsProviderError reports whether err is (or wraps) a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// UnsupportedProviderError is returned by the factory when the
// configured provider type does not name a known backend. TypeName
// preserves the caller's input exactly as given.
type UnsupportedProviderError struct {
	TypeName string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported AI provider: %q", e.TypeName)
}

// IsUnsupportedProvider reports whether err is an UnsupportedProviderError.
func IsUnsupportedProvider(err error) bool {
	var ue *UnsupportedProviderError
	return errors.As(err, &ue)
}
