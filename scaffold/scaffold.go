// Package scaffold materializes the file structure of a generated plan
// document inside the workspace. It only acts on documents carrying
// the generation watermark and never overwrites existing files.
package scaffold

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/manasdutta04/layr/plan"
)

// ErrNotGenerated is returned when a document lacks the generation
// watermark. Hand-written files are never scaffolded.
var ErrNotGenerated = fmt.Errorf("document does not carry the generation watermark")

// FileSystemError wraps a failed filesystem operation with the path it
// targeted.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

// TreeEntry is one parsed node of a plan's file structure block.
type TreeEntry struct {
	Path  string
	IsDir bool
}

// Result summarizes one scaffold run.
type Result struct {
	CreatedDirs  []string
	CreatedFiles []string
	Skipped      []string
}

// Executor creates the directories and files a plan document describes.
type Executor struct {
	workspace string
	excludes  []string
	logger    *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithExcludes sets glob patterns whose matches are skipped.
func WithExcludes(patterns []string) ExecutorOption {
	return func(e *Executor) { e.excludes = patterns }
}

// WithExecutorLogger sets the structured logger.
func WithExecutorLogger(l *slog.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = l }
}

// NewExecutor creates an executor rooted at the workspace directory.
func NewExecutor(workspace string, opts ...ExecutorOption) *Executor {
	e := &Executor{
		workspace: workspace,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute scaffolds the file structure found in a plan document.
// The document must carry the watermark; existing paths and excluded
// paths are skipped, never touched.
func (e *Executor) Execute(content string) (*Result, error) {
	if !plan.IsGenerated(content) {
		return nil, ErrNotGenerated
	}

	block := fileStructureBlock(content)
	if block == "" {
		return &Result{}, nil
	}

	entries := ParseFileTree(block)
	result := &Result{}

	for _, entry := range entries {
		rel := filepath.FromSlash(entry.Path)
		if !filepath.IsLocal(rel) {
			e.logger.Warn("skipping non-local path", "path", entry.Path)
			result.Skipped = append(result.Skipped, entry.Path)
			continue
		}
		if e.excluded(entry.Path) {
			result.Skipped = append(result.Skipped, entry.Path)
			continue
		}

		abs := filepath.Join(e.workspace, rel)
		if entry.IsDir {
			if err := os.MkdirAll(abs, 0o755); err != nil {
				return result, &FileSystemError{Op: "creating directory", Path: entry.Path, Err: err}
			}
			result.CreatedDirs = append(result.CreatedDirs, entry.Path)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return result, &FileSystemError{Op: "creating directory", Path: entry.Path, Err: err}
		}
		f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			result.Skipped = append(result.Skipped, entry.Path)
			continue
		}
		if err != nil {
			return result, &FileSystemError{Op: "creating file", Path: entry.Path, Err: err}
		}
		f.Close()
		result.CreatedFiles = append(result.CreatedFiles, entry.Path)
	}

	e.logger.Info("scaffold complete",
		"dirs", len(result.CreatedDirs),
		"files", len(result.CreatedFiles),
		"skipped", len(result.Skipped))
	return result, nil
}

func (e *Executor) excluded(path string) bool {
	for _, pattern := range e.excludes {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// fileStructureBlock returns the first fenced code block under the
// File Structure heading, or the first fenced block in the document
// when that heading is absent.
func fileStructureBlock(content string) string {
	if section, ok := plan.FindSection(content, "File Structure"); ok {
		if block := firstFence(section.Content); block != "" {
			return block
		}
	}
	return firstFence(content)
}

func firstFence(content string) string {
	lines := strings.Split(content, "\n")
	var block []string
	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inFence {
				return strings.Join(block, "\n")
			}
			inFence = true
			continue
		}
		if inFence {
			block = append(block, line)
		}
	}
	return ""
}

var treeGlyphs = strings.NewReplacer(
	"├── ", "    ", "└── ", "    ",
	"├─ ", "   ", "└─ ", "   ",
	"│   ", "    ", "│  ", "   ",
	"│", " ",
)

// ParseFileTree converts an indented or box-drawn directory listing
// into entries with slash-separated relative paths. An entry is a
// directory when its name ends with a slash or a deeper entry follows.
func ParseFileTree(block string) []TreeEntry {
	type node struct {
		indent int
		name   string
		isDir  bool
	}

	var nodes []node
	for _, raw := range strings.Split(block, "\n") {
		line := treeGlyphs.Replace(raw)
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		trimmed := strings.TrimLeft(line, " \t")
		name := strings.TrimSpace(trimmed)
		if name == "" {
			continue
		}
		nodes = append(nodes, node{
			indent: len(line) - len(trimmed),
			name:   name,
			isDir:  strings.HasSuffix(name, "/"),
		})
	}

	// A node with a deeper successor is a directory even without a
	// trailing slash.
	for i := range nodes {
		if i+1 < len(nodes) && nodes[i+1].indent > nodes[i].indent {
			nodes[i].isDir = true
		}
	}

	var entries []TreeEntry
	type frame struct {
		indent int
		path   string
	}
	var stack []frame
	for _, n := range nodes {
		for len(stack) > 0 && stack[len(stack)-1].indent >= n.indent {
			stack = stack[:len(stack)-1]
		}
		name := strings.TrimSuffix(n.name, "/")
		path := name
		if len(stack) > 0 {
			path = stack[len(stack)-1].path + "/" + name
		}
		entries = append(entries, TreeEntry{Path: path, IsDir: n.isDir})
		if n.isDir {
			stack = append(stack, frame{indent: n.indent, path: path})
		}
	}
	return entries
}
