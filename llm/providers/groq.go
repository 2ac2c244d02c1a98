package providers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/manasdutta04/layr/llm"
	"github.com/manasdutta04/layr/plan"
)

const (
	groqDefaultProxyURL = "https://layr-api.vercel.app/api/chat"
	groqDefaultModel    = "llama-3.3-70b-versatile"

	proxyURLEnv = "LAYR_PROXY_URL"
)

var groqModels = []string{
	"llama-3.3-70b-versatile",
	"llama-3.1-70b-versatile",
	"llama-3.1-8b-instant",
	"mixtral-8x7b-32768",
	"gemma2-9b-it",
}

type proxyPrompt struct {
	SystemPrompt string `json:"systemPrompt"`
	UserPrompt   string `json:"userPrompt"`
}

type proxyRequest struct {
	Prompt    proxyPrompt `json:"prompt"`
	Model     string      `json:"model"`
	MaxTokens int         `json:"maxTokens"`
}

type proxyResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error"`
}

// GroqProvider calls Groq through the hosted proxy, so no API key is
// required locally. It produces complete markdown documents rather
// than structured JSON.
type GroqProvider struct {
	proxyURL string
	model    string
	client   *http.Client
	now      func() time.Time
}

// NewGroq creates the proxy-backed Groq provider. The proxy URL can be
// overridden via configuration or the LAYR_PROXY_URL environment
// variable.
func NewGroq(cfg llm.Settings) *GroqProvider {
	proxyURL := cfg.ProxyURL
	if proxyURL == "" {
		proxyURL = os.Getenv(proxyURLEnv)
	}
	if proxyURL == "" {
		proxyURL = groqDefaultProxyURL
	}
	model := cfg.Model
	if model == "" {
		model = groqDefaultModel
	}
	return &GroqProvider{
		proxyURL: proxyURL,
		model:    model,
		client:   newHTTPClient(),
		now:      time.Now,
	}
}

func (p *GroqProvider) Name() string           { return "Groq" }
func (p *GroqProvider) Type() llm.ProviderType { return llm.ProviderGroq }
func (p *GroqProvider) Output() llm.OutputMode { return llm.OutputMarkdown }

func (p *GroqProvider) SupportedModels() []string {
	out := make([]string, len(groqModels))
	copy(out, groqModels)
	return out
}

func (p *GroqProvider) GeneratePlan(ctx context.Context, prompt string, opts *llm.GenerateOptions) (string, error) {
	o := opts
	if o == nil {
		o = llm.DefaultGenerateOptions()
	}
	system := llm.MarkdownPlanPrompt(o, plan.Watermark(p.now()))
	return p.send(ctx, system, prompt, o.PlanSize.MaxTokens())
}

func (p *GroqProvider) RefineSection(ctx context.Context, section, refinement, fullContext string) (string, error) {
	section, refinement, fullContext = llm.BoundRefineInputs(section, refinement, fullContext)
	system := llm.RefinePrompt(section, refinement, fullContext)
	return p.send(ctx, system, refinement, refineMaxTokens)
}

func (p *GroqProvider) send(ctx context.Context, system, user string, maxTokens int) (string, error) {
	req := proxyRequest{
		Prompt:    proxyPrompt{SystemPrompt: system, UserPrompt: user},
		Model:     p.model,
		MaxTokens: maxTokens,
	}

	var resp proxyResponse
	if err := postJSON(ctx, p.client, p.proxyURL, nil, req, &resp); err != nil {
		return "", llm.WrapProviderError("Groq", err.Error(), err)
	}
	if !resp.Success || resp.Content == "" {
		msg := resp.Error
		if msg == "" {
			msg = "empty response from AI service"
		}
		return "", llm.NewProviderError("Groq", msg)
	}
	return resp.Content, nil
}

// ValidateAPIKey always succeeds when a proxy endpoint is configured.
// The proxy holds the real credential.
func (p *GroqProvider) ValidateAPIKey(ctx context.Context, key string) bool {
	return p.proxyURL != ""
}

func (p *GroqProvider) IsAvailable(ctx context.Context) bool {
	return p.proxyURL != ""
}
