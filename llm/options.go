package llm

import "strings"

// PlanSize selects the verbosity tier of a generated plan.
type PlanSize string

const (
	SizeConcise     PlanSize = "concise"
	SizeNormal      PlanSize = "normal"
	SizeDescriptive PlanSize = "descriptive"
)

// ParsePlanSize maps a configuration value to a PlanSize,
// defaulting to normal for unrecognized input.
func ParsePlanSize(s string) PlanSize {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "concise":
		return SizeConcise
	case "descriptive":
		return SizeDescriptive
	default:
		return SizeNormal
	}
}

// MaxTokens returns the response token budget for this size tier.
func (s PlanSize) MaxTokens() int {
	switch s {
	case SizeConcise:
		return 2500
	case SizeDescriptive:
		return 8000
	default:
		return 5000
	}
}

// PlanType selects the project profile embedded in the system prompt.
type PlanType string

const (
	TypeHobby      PlanType = "hobby"
	TypeSaaS       PlanType = "saas"
	TypeProduction PlanType = "production"
	TypeEnterprise PlanType = "enterprise"
	TypePrototype  PlanType = "prototype"
	TypeOpenSource PlanType = "open-source"
)

// ParsePlanType maps a configuration value to a PlanType,
// defaulting to saas for unrecognized input.
func ParsePlanType(s string) PlanType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hobby":
		return TypeHobby
	case "production":
		return TypeProduction
	case "enterprise":
		return TypeEnterprise
	case "prototype":
		return TypePrototype
	case "open-source", "opensource", "open source":
		return TypeOpenSource
	default:
		return TypeSaaS
	}
}

// GenerateOptions adjusts the system instructions sent with a plan
// request. It never changes the contract shape, only the prompt and
// the token budget.
type GenerateOptions struct {
	PlanSize PlanSize
	PlanType PlanType
}

// DefaultGenerateOptions returns the normal/saas tier used when the
// caller passes nil options.
func DefaultGenerateOptions() *GenerateOptions {
	return &GenerateOptions{
		PlanSize: SizeNormal,
		PlanType: TypeSaaS,
	}
}

// normalized returns opts with zero-value fields filled in.
func (o *GenerateOptions) normalized() *GenerateOptions {
	if o == nil {
		return DefaultGenerateOptions()
	}
	out := *o
	if out.PlanSize == "" {
		out.PlanSize = SizeNormal
	}
	if out.PlanType == "" {
		out.PlanType = TypeSaaS
	}
	return &out
}
