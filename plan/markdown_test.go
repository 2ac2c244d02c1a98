package plan

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermark(t *testing.T) {
	ts := time.Date(2026, time.March, 9, 14, 30, 0, 0, time.UTC)
	got := Watermark(ts)

	assert.Equal(t, "*Generated by Layr on Monday, March 9, 2026 at 2:30 PM*", got)
	assert.True(t, strings.HasPrefix(got, WatermarkPrefix))
}

func TestIsGenerated(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"watermarked", Watermark(time.Now()) + "\n\n# Plan", true},
		{"leading blank lines", "\n\n" + Watermark(time.Now()) + "\n# Plan", true},
		{"hand-written", "# My own document\n\nsome text", false},
		{"watermark not first", "# Plan\n" + Watermark(time.Now()), false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGenerated(tt.content))
		})
	}
}

func TestToMarkdown(t *testing.T) {
	p := &ProjectPlan{
		Title:        "Mock Project",
		Overview:     "An overview.",
		Requirements: []string{"first", "second"},
		FileStructure: []FileStructureItem{
			{Name: "src", Type: "directory", Path: "src/", Children: []FileStructureItem{
				{Name: "main.go", Type: "file", Path: "src/main.go"},
			}},
		},
		NextSteps: []PlanStep{
			{ID: "step1", Description: "Set up", EstimatedTime: "1 hour"},
			{ID: "step2", Description: "Ship it", Completed: true},
		},
		GeneratedAt: time.Date(2026, time.March, 9, 14, 30, 0, 0, time.UTC),
	}

	doc := p.ToMarkdown()

	assert.True(t, IsGenerated(doc))
	assert.Contains(t, doc, "# Mock Project")
	assert.Contains(t, doc, "- first")
	assert.Contains(t, doc, "src/")
	assert.Contains(t, doc, "  main.go")
	assert.Contains(t, doc, "- [ ] Set up (1 hour)")
	assert.Contains(t, doc, "- [x] Ship it")
}

func TestFromMarkdown(t *testing.T) {
	doc := "*Generated by Layr on Monday, March 9, 2026 at 2:30 PM*\n\n# Chat App\n\nSome content"
	p := FromMarkdown(doc)

	assert.Equal(t, "Chat App", p.Title)
	assert.Equal(t, doc, p.Overview)
	assert.NotEmpty(t, p.Requirements)
	assert.Empty(t, p.FileStructure)
	assert.Empty(t, p.NextSteps)
}

func TestFromMarkdownWithoutHeading(t *testing.T) {
	p := FromMarkdown("This is not JSON")
	assert.Equal(t, "AI Generated Plan", p.Title)
	assert.Equal(t, "This is not JSON", p.Overview)
}

const sectionDoc = `# Project

intro line

## Overview

the overview body

## Requirements

- one
- two

### Functional

- three

## Next Steps

- do things
`

func TestParseSections(t *testing.T) {
	sections := ParseSections(sectionDoc)

	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Project", "Overview", "Requirements", "Functional", "Next Steps"}, titles)

	overview, ok := FindSection(sectionDoc, "overview")
	require.True(t, ok)
	assert.Equal(t, 2, overview.Level)
	assert.Contains(t, overview.Content, "the overview body")
	assert.NotContains(t, overview.Content, "- one")

	// A section absorbs deeper subsections.
	reqs, ok := FindSection(sectionDoc, "Requirements")
	require.True(t, ok)
	assert.Contains(t, reqs.Content, "### Functional")
	assert.Contains(t, reqs.Content, "- three")
	assert.NotContains(t, reqs.Content, "do things")
}

func TestParseSectionsIgnoresFencedHeadings(t *testing.T) {
	doc := "## Real\n\n```\n# not a heading\n```\n\n## Also Real\n"
	sections := ParseSections(doc)

	require.Len(t, sections, 2)
	assert.Equal(t, "Real", sections[0].Title)
	assert.Equal(t, "Also Real", sections[1].Title)
}

func TestReplaceSection(t *testing.T) {
	section, ok := FindSection(sectionDoc, "Overview")
	require.True(t, ok)

	updated := ReplaceSection(sectionDoc, section, "## Overview\n\na better overview\n")

	assert.Contains(t, updated, "a better overview")
	assert.NotContains(t, updated, "the overview body")
	assert.Contains(t, updated, "## Requirements")
	assert.Contains(t, updated, "## Next Steps")
}
