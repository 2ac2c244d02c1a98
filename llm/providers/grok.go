package providers

import "github.com/manasdutta04/layr/llm"

const (
	grokBaseURL      = "https://api.x.ai/v1"
	grokDefaultModel = "grok-4"
)

var grokModels = []string{"grok-4", "grok-3", "grok-2"}

// NewGrok creates a provider for the xAI Grok API.
func NewGrok(cfg llm.Settings) llm.Provider {
	model := cfg.Model
	if model == "" {
		model = grokDefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = grokBaseURL
	}
	return &compatProvider{
		name:    "Grok",
		ptype:   llm.ProviderGrok,
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		models:  grokModels,
		client:  newHTTPClient(),
	}
}
