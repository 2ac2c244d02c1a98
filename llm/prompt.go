package llm

import (
	"fmt"
	"strings"
)

// Input bounds applied before refinement requests are transmitted.
// Oversized sections or contexts are truncated, never rejected.
const (
	MaxRefineSectionLen = 50000
	MaxRefinePromptLen  = 2000
)

// BoundRefineInputs truncates refinement inputs to their transmission
// limits so a single request can never grow without bound.
func BoundRefineInputs(section, refinement, fullContext string) (string, string, string) {
	return truncate(section, MaxRefineSectionLen),
		truncate(refinement, MaxRefinePromptLen),
		truncate(fullContext, MaxRefineSectionLen)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// StructuredPlanPrompt builds the system prompt for providers that
// return a JSON plan. The embedded schema mirrors the canonical plan
// shape so the response can be normalized without guesswork.
func StructuredPlanPrompt(prompt string) string {
	return fmt.Sprintf(`Create a comprehensive project plan in JSON format for: %q

You are an expert software architect and project manager. Generate a thorough, professional project plan that includes:
- A detailed overview explaining the project's purpose, target audience, and key features
- Comprehensive requirements covering functional, technical, and non-functional aspects
- A well-structured file organization with clear descriptions
- Detailed next steps with realistic time estimates and clear dependencies

CRITICAL: Return ONLY valid JSON. Do not wrap in markdown code blocks. Do not include any explanatory text before or after the JSON. Start your response with { and end with }.

{
  "title": "Descriptive Project Title",
  "overview": "A 3-4 sentence description of what this project does, who it is for, and what makes it valuable.",
  "requirements": [
    "Detailed functional requirement with specific features",
    "Technical requirement specifying frameworks, libraries, or tools",
    "Performance requirement with measurable criteria",
    "Security requirement addressing data protection"
  ],
  "fileStructure": [
    {
      "name": "src",
      "type": "directory",
      "path": "src/",
      "description": "Main source code directory"
    },
    {
      "name": "package.json",
      "type": "file",
      "path": "package.json",
      "description": "Project dependencies and metadata"
    }
  ],
  "nextSteps": [
    {
      "id": "step1",
      "description": "Initialize project structure and install core dependencies",
      "completed": false,
      "priority": "high",
      "estimatedTime": "45 minutes",
      "dependencies": []
    },
    {
      "id": "step2",
      "description": "Set up development environment with linting and testing",
      "completed": false,
      "priority": "medium",
      "estimatedTime": "30 minutes",
      "dependencies": ["step1"]
    }
  ]
}`, prompt)
}

// MarkdownPlanPrompt builds the system prompt for providers that
// return a complete markdown plan document. The watermark line is
// embedded so the rendered document carries the generation marker from
// the very first line.
func MarkdownPlanPrompt(opts *GenerateOptions, watermark string) string {
	o := opts.normalized()

	var b strings.Builder
	b.WriteString("You are an expert software architect and project planner for Layr AI.\n\n")
	b.WriteString(sizeInstructions(o.PlanSize))
	b.WriteString("\n\n")
	b.WriteString(typeInstructions(o.PlanType))
	b.WriteString("\n\nGenerate a project plan following this structure. START YOUR RESPONSE WITH THE WATERMARK ON THE FIRST LINE:\n\n")
	b.WriteString(watermark)
	b.WriteString("\n\n---\n\n")
	b.WriteString(`# Project Title

## Overview
Describe the purpose, target users, key features, and technical approach.

## Requirements

### Functional Requirements
### Technical Requirements
### Non-Functional Requirements

## Technology Stack

### Frontend
### Backend (if applicable)
### DevOps & Tools

## Architecture

## File Structure
(as a fenced code block showing the directory tree)

## Implementation Phases
(numbered phases with objectives, checklists, and deliverables)

## Next Steps
(prioritized, with time estimates and dependencies)

## Testing Strategy

## Deployment Strategy
`)
	return b.String()
}

// RefinePrompt builds the system prompt used to regenerate one section
// of a plan. Inputs must already be bounded via BoundRefineInputs.
func RefinePrompt(section, refinement, fullContext string) string {
	return fmt.Sprintf(`You are an expert software architect. Refine the following section of a project plan based on the user's request.

Original Section Content:
%q

User's Refinement Request:
%q

Full Plan Context (for reference):
%q

CRITICAL INSTRUCTIONS:
1. Return ONLY the refined content for this section.
2. Maintain the same Markdown heading level as the original section if applicable.
3. Ensure the refined content fits seamlessly back into the full plan.
4. Do not include any introductory or concluding text.
5. If the user asks for more detail, be specific and technical.`,
		section, refinement, fullContext)
}

func sizeInstructions(size PlanSize) string {
	switch size {
	case SizeConcise:
		return `CRITICAL SIZE CONSTRAINTS - MUST FOLLOW:
- Total output: 80-100 lines maximum
- Overview: 1 short paragraph only (3-4 sentences)
- Requirements: 3-4 items per category maximum
- Technology Stack: only essential tools (2-3 per section)
- Implementation: 2-3 phases maximum
- File Structure: top-level structure only
- Keep descriptions brief, single sentences only`
	case SizeDescriptive:
		return `SIZE SPECIFICATIONS:
- Total output: 300+ lines
- Overview: 4-5 detailed paragraphs
- Requirements: 10-15 items per category with thorough explanations
- Technology Stack: comprehensive coverage with rationale
- Implementation: 8-12 phases with detailed steps
- File Structure: complete structure with all subdirectories
- Provide extensive explanations and examples`
	default:
		return `SIZE CONSTRAINTS:
- Total output: 180-240 lines
- Overview: 2-3 paragraphs
- Requirements: 5-8 items per category
- Technology Stack: balanced coverage
- Implementation: 4-6 phases
- File Structure: full structure with key directories
- Provide clear but concise explanations`
	}
}

func typeInstructions(planType PlanType) string {
	switch planType {
	case TypeHobby:
		return `PROJECT TYPE: HOBBY/LEARNING PROJECT
- Focus on basic functionality only, no complex enterprise features
- Simple architecture; SQLite or JSON files for storage
- Simple deployment (Vercel, Netlify, GitHub Pages)
- No CI/CD pipelines, microservices, or monitoring infrastructure
- Phases: 2-3 maximum, each 1-2 weeks`
	case TypeProduction:
		return `PROJECT TYPE: PRODUCTION-READY APPLICATION
MUST INCLUDE:
- Comprehensive error handling and logging
- Full test coverage (unit, integration, e2e)
- CI/CD pipeline with automated deployment
- Monitoring and alerting setup
- Security best practices
- Database migrations and backups
- Phases: 6-10, focus on reliability`
	case TypeEnterprise:
		return `PROJECT TYPE: ENTERPRISE APPLICATION
MUST INCLUDE:
- Microservices architecture
- Enterprise authentication (SSO, LDAP, SAML)
- Compliance requirements (GDPR, HIPAA, etc.)
- Audit logging and security monitoring
- API gateway, container orchestration, high availability
- Phases: 10-12, enterprise-grade quality`
	case TypePrototype:
		return `PROJECT TYPE: RAPID PROTOTYPE
FOCUS ON:
- Minimal viable features only
- Quick setup and deployment
- Mock services and hardcoded data acceptable
- Skip testing, CI/CD, monitoring
- Phases: 1-2, 1-2 weeks total`
	case TypeOpenSource:
		return `PROJECT TYPE: OPEN SOURCE PROJECT
MUST INCLUDE:
- Clear contribution guidelines and code of conduct
- License selection
- Documentation for contributors
- Issue templates and PR guidelines
- Community engagement strategy and public roadmap`
	default:
		return `PROJECT TYPE: SOFTWARE AS A SERVICE
MUST INCLUDE:
- Multi-tenant architecture with data isolation
- User authentication with roles and permissions
- Subscription/billing integration
- RESTful or GraphQL API design
- Cloud deployment and scalable database design
- Analytics, monitoring, and a CI/CD pipeline
- Phases: 6-8, production-ready focus`
	}
}
