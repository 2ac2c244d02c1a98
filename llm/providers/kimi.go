package providers

import "github.com/manasdutta04/layr/llm"

const (
	kimiBaseURL      = "https://api.moonshot.cn/v1"
	kimiDefaultModel = "kimi-k2-0905"
)

var kimiModels = []string{"kimi-k2-0905", "kimi-k2", "moonshot-v1-32k"}

// NewKimi creates a provider for the Moonshot Kimi API.
func NewKimi(cfg llm.Settings) llm.Provider {
	model := cfg.Model
	if model == "" {
		model = kimiDefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = kimiBaseURL
	}
	return &compatProvider{
		name:    "Kimi",
		ptype:   llm.ProviderKimi,
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		models:  kimiModels,
		client:  newHTTPClient(),
	}
}
