package plan

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FromJSON parses raw JSON into a normalized plan. Any well-formed
// JSON object yields a usable plan; missing or malformed fields get
// deterministic placeholders rather than causing failure.
func FromJSON(data []byte) (*ProjectPlan, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing plan JSON: %w", err)
	}
	return Normalize(m), nil
}

// Normalize coerces a decoded JSON object into a valid plan. Every
// returned slice is non-nil so downstream rendering never branches on
// missing fields.
func Normalize(m map[string]any) *ProjectPlan {
	p := &ProjectPlan{
		Title:         stringOr(m["title"], "Untitled Project"),
		Overview:      stringOr(m["overview"], ""),
		Requirements:  normalizeRequirements(m["requirements"]),
		FileStructure: normalizeFileStructure(m["fileStructure"]),
		NextSteps:     normalizeSteps(m["nextSteps"]),
		GeneratedAt:   time.Now(),
	}
	return p
}

func normalizeRequirements(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := coerceString(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func normalizeFileStructure(v any) []FileStructureItem {
	items, ok := v.([]any)
	if !ok {
		return []FileStructureItem{}
	}
	out := make([]FileStructureItem, 0, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		item := FileStructureItem{
			Name:        stringOr(m["name"], fmt.Sprintf("item-%d", i)),
			Type:        stringOr(m["type"], "file"),
			Path:        stringOr(m["path"], ""),
			Description: stringOr(m["description"], ""),
		}
		if item.Type != "file" && item.Type != "directory" {
			item.Type = "file"
		}
		if item.Path == "" {
			item.Path = item.Name
		}
		if children, ok := m["children"].([]any); ok {
			item.Children = normalizeFileStructure(children)
		}
		out = append(out, item)
	}
	return out
}

func normalizeSteps(v any) []PlanStep {
	items, ok := v.([]any)
	if !ok {
		return []PlanStep{}
	}
	out := make([]PlanStep, 0, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		step := PlanStep{
			ID:            stringOr(m["id"], fmt.Sprintf("step-%d", i+1)),
			Description:   stringOr(m["description"], fmt.Sprintf("Step %d", i+1)),
			Priority:      stringOr(m["priority"], PriorityMedium),
			EstimatedTime: stringOr(m["estimatedTime"], ""),
		}
		if b, ok := m["completed"].(bool); ok {
			step.Completed = b
		}
		switch step.Priority {
		case PriorityHigh, PriorityMedium, PriorityLow:
		default:
			step.Priority = PriorityMedium
		}
		if deps, ok := m["dependencies"].([]any); ok {
			for _, d := range deps {
				if s := coerceString(d); s != "" {
					step.Dependencies = append(step.Dependencies, s)
				}
			}
		}
		out = append(out, step)
	}
	return out
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// coerceString renders scalars as text so a requirement written as a
// number still survives normalization.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
