// Package plan defines the canonical project plan shape, the
// normalization rules that make arbitrary model output conform to it,
// and its markdown rendering.
package plan

import "time"

// Origin of a generated plan.
const (
	GeneratedByAI      = "ai"
	GeneratedByAILocal = "ai-local"
	GeneratedByRules   = "rules"
)

// Step priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// FileStructureItem is one node of the proposed project tree.
type FileStructureItem struct {
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Path        string              `json:"path"`
	Description string              `json:"description,omitempty"`
	Children    []FileStructureItem `json:"children,omitempty"`
}

// PlanStep is one actionable item in the plan's next steps.
type PlanStep struct {
	ID            string   `json:"id"`
	Description   string   `json:"description"`
	Completed     bool     `json:"completed"`
	Priority      string   `json:"priority"`
	EstimatedTime string   `json:"estimatedTime,omitempty"`
	Dependencies  []string `json:"dependencies,omitempty"`
}

// ProjectPlan is the structured result of plan generation.
type ProjectPlan struct {
	Title         string              `json:"title"`
	Overview      string              `json:"overview"`
	Requirements  []string            `json:"requirements"`
	FileStructure []FileStructureItem `json:"fileStructure"`
	NextSteps     []PlanStep          `json:"nextSteps"`
	GeneratedAt   time.Time           `json:"generatedAt"`
	GeneratedBy   string              `json:"generatedBy"`
}

// Clone returns a deep copy. Cached plans are cloned on read so
// callers can mutate their copy freely.
func (p *ProjectPlan) Clone() *ProjectPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.Requirements = append([]string(nil), p.Requirements...)
	out.FileStructure = cloneItems(p.FileStructure)
	out.NextSteps = make([]PlanStep, len(p.NextSteps))
	for i, s := range p.NextSteps {
		s.Dependencies = append([]string(nil), s.Dependencies...)
		out.NextSteps[i] = s
	}
	return &out
}

func cloneItems(items []FileStructureItem) []FileStructureItem {
	if items == nil {
		return nil
	}
	out := make([]FileStructureItem, len(items))
	for i, it := range items {
		it.Children = cloneItems(it.Children)
		out[i] = it
	}
	return out
}
