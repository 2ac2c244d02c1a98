package plan

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// WatermarkPrefix identifies documents produced by this tool. Only the
// prefix is checked so the timestamp portion can vary.
const WatermarkPrefix = "*Generated by Layr"

// Watermark renders the first-line marker stamped into every generated
// document.
func Watermark(t time.Time) string {
	return fmt.Sprintf("*Generated by Layr on %s at %s*",
		t.Format("Monday, January 2, 2006"), t.Format("3:04 PM"))
}

// IsGenerated reports whether content carries the generation marker on
// its first non-empty line. Scaffolding refuses documents without it.
func IsGenerated(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.HasPrefix(line, WatermarkPrefix)
	}
	return false
}

// ToMarkdown renders a structured plan as a complete document,
// watermark first.
func (p *ProjectPlan) ToMarkdown() string {
	var b strings.Builder
	b.WriteString(Watermark(p.GeneratedAt))
	b.WriteString("\n\n# ")
	b.WriteString(p.Title)
	b.WriteString("\n\n## Overview\n\n")
	b.WriteString(p.Overview)
	b.WriteString("\n\n## Requirements\n\n")
	for _, r := range p.Requirements {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	if len(p.FileStructure) > 0 {
		b.WriteString("\n## File Structure\n\n```\n")
		writeTree(&b, p.FileStructure, 0)
		b.WriteString("```\n")
	}
	if len(p.NextSteps) > 0 {
		b.WriteString("\n## Next Steps\n\n")
		for _, s := range p.NextSteps {
			mark := " "
			if s.Completed {
				mark = "x"
			}
			b.WriteString(fmt.Sprintf("- [%s] %s", mark, s.Description))
			if s.EstimatedTime != "" {
				b.WriteString(fmt.Sprintf(" (%s)", s.EstimatedTime))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeTree(b *strings.Builder, items []FileStructureItem, depth int) {
	for _, it := range items {
		b.WriteString(strings.Repeat("  ", depth))
		name := it.Name
		if it.Type == "directory" && !strings.HasSuffix(name, "/") {
			name += "/"
		}
		b.WriteString(name)
		if it.Description != "" {
			b.WriteString("  # ")
			b.WriteString(it.Description)
		}
		b.WriteString("\n")
		writeTree(b, it.Children, depth+1)
	}
}

// FromMarkdown wraps a complete markdown document in a plan entity.
// The document itself is the overview; the title is lifted from the
// first level-one heading when present.
func FromMarkdown(content string) *ProjectPlan {
	title := "AI Generated Plan"
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			break
		}
	}
	return &ProjectPlan{
		Title:         title,
		Overview:      content,
		Requirements:  []string{"See the generated plan document for details"},
		FileStructure: []FileStructureItem{},
		NextSteps:     []PlanStep{},
		GeneratedAt:   time.Now(),
	}
}

// Section is a contiguous heading-delimited region of a markdown
// document. Line numbers are zero-based and inclusive.
type Section struct {
	Title     string
	Content   string
	StartLine int
	EndLine   int
	Level     int
}

var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// ParseSections splits a markdown document into heading-delimited
// sections. A section runs until the next heading of the same or
// shallower level. Text before the first heading is not a section.
func ParseSections(content string) []Section {
	lines := strings.Split(content, "\n")

	type heading struct {
		line  int
		level int
		title string
	}
	var headings []heading
	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			headings = append(headings, heading{line: i, level: len(m[1]), title: strings.TrimSpace(m[2])})
		}
	}

	sections := make([]Section, 0, len(headings))
	for i, h := range headings {
		end := len(lines) - 1
		for _, next := range headings[i+1:] {
			if next.level <= h.level {
				end = next.line - 1
				break
			}
		}
		sections = append(sections, Section{
			Title:     h.title,
			Content:   strings.Join(lines[h.line:end+1], "\n"),
			StartLine: h.line,
			EndLine:   end,
			Level:     h.level,
		})
	}
	return sections
}

// FindSection locates a section by title, matched case-insensitively.
func FindSection(content, title string) (Section, bool) {
	want := strings.ToLower(strings.TrimSpace(title))
	for _, s := range ParseSections(content) {
		if strings.ToLower(s.Title) == want {
			return s, true
		}
	}
	return Section{}, false
}

// ReplaceSection splices new content over a section's line range and
// returns the updated document.
func ReplaceSection(content string, s Section, replacement string) string {
	lines := strings.Split(content, "\n")
	if s.StartLine < 0 || s.EndLine >= len(lines) || s.StartLine > s.EndLine {
		return content
	}
	out := make([]string, 0, len(lines))
	out = append(out, lines[:s.StartLine]...)
	out = append(out, strings.Split(strings.TrimRight(replacement, "\n"), "\n")...)
	out = append(out, lines[s.EndLine+1:]...)
	return strings.Join(out, "\n")
}
