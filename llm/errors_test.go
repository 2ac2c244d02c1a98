package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestProviderErrorFormat(t *testing.T) {
	err := NewProviderError("DeepSeek", "rate limit exceeded")
	if got := err.Error(); got != "[DeepSeek] rate limit exceeded" {
		t.Errorf("Error() = %q", got)
	}
	if !IsProviderError(err) {
		t.Error("IsProviderError should match")
	}
}

func TestProviderErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := WrapProviderError("Ollama", "could not reach the AI service", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}

	wrapped := fmt.Errorf("generating plan: %w", err)
	if !IsProviderError(wrapped) {
		t.Error("IsProviderError should see through wrapping")
	}
}

func TestIsProviderErrorRejectsOthers(t *testing.T) {
	if IsProviderError(fmt.Errorf("plain error")) {
		t.Error("plain errors are not provider errors")
	}
	if IsProviderError(nil) {
		t.Error("nil is not a provider error")
	}
}

func TestUnsupportedProviderError(t *testing.T) {
	err := &UnsupportedProviderError{TypeName: "Skynet"}
	if got := err.Error(); got != `unsupported AI provider: "Skynet"` {
		t.Errorf("Error() = %q", got)
	}
	if !IsUnsupportedProvider(fmt.Errorf("config: %w", err)) {
		t.Error("IsUnsupportedProvider should see through wrapping")
	}
	if IsUnsupportedProvider(errors.New("other")) {
		t.Error("unrelated errors should not match")
	}
}
