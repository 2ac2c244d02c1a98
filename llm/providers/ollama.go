package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/manasdutta04/layr/llm"
)

const (
	ollamaBaseURL      = "http://localhost:11434"
	ollamaDefaultModel = "llama3"

	// Local inference can be slow on modest hardware.
	ollamaTimeout = 5 * time.Minute
)

var ollamaModels = []string{"llama3", "mistral", "codellama", "deepseek-coder"}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Format  string        `json:"format,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumCtx      int     `json:"num_ctx"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// OllamaProvider runs plans against a local Ollama daemon. No API key
// is involved; availability depends on the daemon being reachable.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllama creates a provider for a local Ollama instance.
func NewOllama(cfg llm.Settings) *OllamaProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ollamaBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = ollamaDefaultModel
	}
	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: ollamaTimeout},
	}
}

func (p *OllamaProvider) Name() string           { return "Ollama" }
func (p *OllamaProvider) Type() llm.ProviderType { return llm.ProviderOllama }
func (p *OllamaProvider) Output() llm.OutputMode { return llm.OutputStructured }

func (p *OllamaProvider) SupportedModels() []string {
	out := make([]string, len(ollamaModels))
	copy(out, ollamaModels)
	return out
}

func (p *OllamaProvider) GeneratePlan(ctx context.Context, prompt string, opts *llm.GenerateOptions) (string, error) {
	return p.generate(ctx, llm.StructuredPlanPrompt(prompt), "json")
}

func (p *OllamaProvider) RefineSection(ctx context.Context, section, refinement, fullContext string) (string, error) {
	section, refinement, fullContext = llm.BoundRefineInputs(section, refinement, fullContext)
	return p.generate(ctx, llm.RefinePrompt(section, refinement, fullContext), "")
}

func (p *OllamaProvider) generate(ctx context.Context, prompt, format string) (string, error) {
	req := ollamaRequest{
		Model:  p.model,
		Prompt: prompt,
		Format: format,
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.7,
			NumCtx:      4096,
		},
	}

	var resp ollamaResponse
	if err := postJSON(ctx, p.client, p.baseURL+"/api/generate", nil, req, &resp); err != nil {
		return "", llm.WrapProviderError("Ollama", err.Error(), err)
	}
	if resp.Response == "" {
		return "", llm.NewProviderError("Ollama", "empty response from local model")
	}
	return resp.Response, nil
}

// ValidateAPIKey always succeeds; local models need no credential.
func (p *OllamaProvider) ValidateAPIKey(ctx context.Context, key string) bool {
	return true
}

// IsAvailable probes the daemon's model listing endpoint.
func (p *OllamaProvider) IsAvailable(ctx context.Context) bool {
	status, err := getStatus(ctx, p.client, p.baseURL+"/api/tags", nil)
	return err == nil && status == http.StatusOK
}
