package providers

import (
	"context"
	"net/http"

	"github.com/manasdutta04/layr/llm"
)

const refineMaxTokens = 4000

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// compatProvider talks to any chat-completions endpoint that follows
// the OpenAI wire format. The concrete providers built on it differ
// only in name, base URL, defaults, and extra headers.
type compatProvider struct {
	name    string
	ptype   llm.ProviderType
	apiKey  string
	model   string
	baseURL string
	models  []string
	headers map[string]string
	client  *http.Client
}

func (p *compatProvider) Name() string           { return p.name }
func (p *compatProvider) Type() llm.ProviderType { return p.ptype }
func (p *compatProvider) Output() llm.OutputMode { return llm.OutputStructured }

func (p *compatProvider) SupportedModels() []string {
	out := make([]string, len(p.models))
	copy(out, p.models)
	return out
}

func (p *compatProvider) GeneratePlan(ctx context.Context, prompt string, opts *llm.GenerateOptions) (string, error) {
	o := opts
	if o == nil {
		o = llm.DefaultGenerateOptions()
	}
	system := "You are an expert software architect. Respond with valid JSON only, no markdown formatting."
	return p.chat(ctx, system, llm.StructuredPlanPrompt(prompt), o.PlanSize.MaxTokens())
}

func (p *compatProvider) RefineSection(ctx context.Context, section, refinement, fullContext string) (string, error) {
	section, refinement, fullContext = llm.BoundRefineInputs(section, refinement, fullContext)
	system := "You are an expert software architect."
	return p.chat(ctx, system, llm.RefinePrompt(section, refinement, fullContext), refineMaxTokens)
}

func (p *compatProvider) chat(ctx context.Context, system, user string, maxTokens int) (string, error) {
	req := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}

	var resp chatResponse
	if err := postJSON(ctx, p.client, p.baseURL+"/chat/completions", p.requestHeaders(), req, &resp); err != nil {
		return "", llm.WrapProviderError(p.name, err.Error(), err)
	}
	if len(resp.Choices) == 0 {
		return "", llm.NewProviderError(p.name, "empty response from AI service")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *compatProvider) ValidateAPIKey(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	headers := map[string]string{"Authorization": "Bearer " + key}
	for k, v := range p.headers {
		headers[k] = v
	}
	status, err := getStatus(ctx, p.client, p.baseURL+"/models", headers)
	return err == nil && status == http.StatusOK
}

func (p *compatProvider) IsAvailable(ctx context.Context) bool {
	return p.ValidateAPIKey(ctx, p.apiKey)
}

func (p *compatProvider) requestHeaders() map[string]string {
	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}
	for k, v := range p.headers {
		headers[k] = v
	}
	return headers
}
