package providers

import "github.com/manasdutta04/layr/llm"

const (
	deepseekBaseURL      = "https://api.deepseek.com/v1"
	deepseekDefaultModel = "deepseek-v3.1"
)

var deepseekModels = []string{"deepseek-v3.1", "deepseek-chat", "deepseek-coder"}

// NewDeepseek creates a provider for the DeepSeek chat API.
func NewDeepseek(cfg llm.Settings) llm.Provider {
	model := cfg.Model
	if model == "" {
		model = deepseekDefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = deepseekBaseURL
	}
	return &compatProvider{
		name:    "DeepSeek",
		ptype:   llm.ProviderDeepseek,
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		models:  deepseekModels,
		client:  newHTTPClient(),
	}
}
