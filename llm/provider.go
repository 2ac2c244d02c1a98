// Package llm defines the provider contract shared by all AI backends
// and the plan-generation error taxonomy.
package llm

import (
	"context"
	"strings"
)

// ProviderType identifies a supported backend. The set is closed: the
// factory in llm/providers maps each tag to exactly one constructor.
type ProviderType string

const (
	ProviderGroq     ProviderType = "groq"
	ProviderDeepseek ProviderType = "deepseek"
	ProviderO3       ProviderType = "o3"
	ProviderGrok     ProviderType = "grok"
	ProviderKimi     ProviderType = "kimi"
	ProviderOllama   ProviderType = "ollama"
)

// ParseProviderType maps a configuration value to a ProviderType.
// Matching is case-insensitive; unknown values preserve the caller's
// exact spelling in the error.
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ProviderGroq):
		return ProviderGroq, nil
	case string(ProviderDeepseek):
		return ProviderDeepseek, nil
	case string(ProviderO3):
		return ProviderO3, nil
	case string(ProviderGrok):
		return ProviderGrok, nil
	case string(ProviderKimi):
		return ProviderKimi, nil
	case string(ProviderOllama):
		return ProviderOllama, nil
	default:
		return "", &UnsupportedProviderError{TypeName: s}
	}
}

// OutputMode describes what a provider's GeneratePlan returns.
type OutputMode string

const (
	// OutputStructured means the provider is prompted for a JSON plan
	// and its response goes through extraction and normalization.
	OutputStructured OutputMode = "structured"

	// OutputMarkdown means the provider returns a complete markdown
	// plan document that is wrapped verbatim into the plan overview.
	OutputMarkdown OutputMode = "markdown"
)

// Provider is the uniform contract implemented by every backend adapter.
// Adapters hide transport-specific details (auth headers, body shapes,
// error payloads) so the planner stays backend-agnostic.
type Provider interface {
	// Name returns the human-readable provider label (e.g. "DeepSeek").
	Name() string

	// Type returns the provider tag used for configuration matching.
	Type() ProviderType

	// Output reports whether this adapter produces structured JSON or
	// a freeform markdown plan.
	Output() OutputMode

	// GeneratePlan sends the project description to the backend and
	// returns the raw response text. Failures are always reported as
	// *ProviderError: missing credentials, non-success HTTP status,
	// empty body, network failure, or a malformed upstream payload.
	GeneratePlan(ctx context.Context, prompt string, opts *GenerateOptions) (string, error)

	// RefineSection re-generates one section of an existing plan.
	// Oversized inputs are truncated before transmission.
	RefineSection(ctx context.Context, section, refinement, fullContext string) (string, error)

	// ValidateAPIKey probes the backend with the given credential.
	// It returns false on any failure and never returns an error.
	ValidateAPIKey(ctx context.Context, key string) bool

	// SupportedModels returns the adapter's static model allowlist.
	SupportedModels() []string

	// IsAvailable reports whether the adapter can serve requests.
	IsAvailable(ctx context.Context) bool
}

// Settings carries the per-provider configuration the factory passes to
// adapter constructors. Empty fields fall back to adapter defaults.
type Settings struct {
	APIKey       string
	Model        string
	BaseURL      string
	ProxyURL     string
	Organization string
}
