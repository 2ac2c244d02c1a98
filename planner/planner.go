// Package planner orchestrates plan generation: provider resolution,
// response parsing with repair, degradation on unparseable output, and
// prompt-keyed caching.
package planner

import (
	"context"
	"log/slog"

	"github.com/manasdutta04/layr/llm"
	"github.com/manasdutta04/layr/plan"
)

// Planner turns a natural-language prompt into a structured plan using
// whichever provider the resolver yields at call time.
type Planner struct {
	resolve func() (llm.Provider, error)
	cache   *Cache
	opts    llm.GenerateOptions
	logger  *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithCache replaces the default plan cache.
func WithCache(c *Cache) Option {
	return func(p *Planner) { p.cache = c }
}

// WithGenerateOptions sets the default size and type for generated
// plans.
func WithGenerateOptions(opts llm.GenerateOptions) Option {
	return func(p *Planner) { p.opts = opts }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// New creates a Planner that resolves its provider on every call, so
// configuration changes take effect without rebuilding the planner.
func New(resolve func() (llm.Provider, error), opts ...Option) *Planner {
	p := &Planner{
		resolve: resolve,
		cache:   NewCache(defaultCacheSize, defaultCacheTTL),
		opts:    *llm.DefaultGenerateOptions(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewForProvider creates a Planner pinned to a single provider.
func NewForProvider(provider llm.Provider, opts ...Option) *Planner {
	return New(func() (llm.Provider, error) { return provider, nil }, opts...)
}

// GeneratePlan produces a plan for the prompt, serving from cache when
// a fresh entry exists. Provider errors propagate unchanged; malformed
// model output degrades to a document-wrapping plan instead of
// failing.
func (p *Planner) GeneratePlan(ctx context.Context, prompt string) (*plan.ProjectPlan, error) {
	provider, err := p.resolve()
	if err != nil {
		return nil, err
	}

	if cached := p.cache.Get(prompt); cached != nil {
		p.logger.Debug("serving plan from cache", "provider", provider.Name())
		return cached, nil
	}

	raw, err := provider.GeneratePlan(ctx, prompt, &p.opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result *plan.ProjectPlan
	if provider.Output() == llm.OutputMarkdown {
		result = plan.FromMarkdown(raw)
	} else {
		result = p.parseStructured(raw, provider)
	}

	if provider.Type() == llm.ProviderOllama {
		result.GeneratedBy = plan.GeneratedByAILocal
	} else {
		result.GeneratedBy = plan.GeneratedByAI
	}

	p.cache.Set(prompt, result)
	return result, nil
}

// parseStructured extracts and parses the JSON payload of a model
// response, repairing common syntax mistakes. Output that never parses
// is wrapped as a document plan so the user still gets something.
func (p *Planner) parseStructured(raw string, provider llm.Provider) *plan.ProjectPlan {
	extracted := llm.ExtractJSON(raw)

	if result, err := plan.FromJSON([]byte(extracted)); err == nil {
		return result
	}

	repaired := llm.RepairJSON(extracted)
	if result, err := plan.FromJSON([]byte(repaired)); err == nil {
		p.logger.Debug("plan JSON required repair", "provider", provider.Name())
		return result
	}

	p.logger.Warn("model output is not parseable JSON, wrapping as document",
		"provider", provider.Name())
	return plan.FromMarkdown(raw)
}

// RefineSection regenerates one section of a plan document through the
// current provider.
func (p *Planner) RefineSection(ctx context.Context, section, refinement, fullContext string) (string, error) {
	provider, err := p.resolve()
	if err != nil {
		return "", err
	}
	return provider.RefineSection(ctx, section, refinement, fullContext)
}

// Markdown renders a plan as its full document form.
func (p *Planner) Markdown(result *plan.ProjectPlan) string {
	return result.ToMarkdown()
}

// ClearCache drops all cached plans.
func (p *Planner) ClearCache() {
	p.cache.Clear()
}
