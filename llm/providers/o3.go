package providers

import "github.com/manasdutta04/layr/llm"

const (
	o3BaseURL      = "https://api.openai.com/v1"
	o3DefaultModel = "o3"
)

var o3Models = []string{"o3", "o3-mini"}

// NewO3 creates a provider for OpenAI's o3 reasoning models. An
// optional organization id is forwarded on every request.
func NewO3(cfg llm.Settings) llm.Provider {
	model := cfg.Model
	if model == "" {
		model = o3DefaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = o3BaseURL
	}
	var headers map[string]string
	if cfg.Organization != "" {
		headers = map[string]string{"OpenAI-Organization": cfg.Organization}
	}
	return &compatProvider{
		name:    "OpenAI o3",
		ptype:   llm.ProviderO3,
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		models:  o3Models,
		headers: headers,
		client:  newHTTPClient(),
	}
}
