// Package template manages prompt templates: a fixed set of builtins
// plus user templates stored as YAML files in the user config
// directory.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template is a reusable plan prompt.
type Template struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags,omitempty"`
	Prompt      string   `yaml:"prompt"`
	Builtin     bool     `yaml:"-"`
}

// TemplateError reports a template operation failure with the id it
// concerned.
type TemplateError struct {
	ID  string
	Msg string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %q: %s", e.ID, e.Msg)
}

// Manager resolves templates by id, user templates shadowing builtins.
type Manager struct {
	userDir string
}

// NewManager creates a manager storing user templates under dir. An
// empty dir uses <user config>/layr/templates.
func NewManager(dir string) *Manager {
	if dir == "" {
		if base, err := os.UserConfigDir(); err == nil {
			dir = filepath.Join(base, "layr", "templates")
		}
	}
	return &Manager{userDir: dir}
}

// List returns user templates followed by builtins, with user
// templates shadowing builtins of the same id.
func (m *Manager) List() ([]Template, error) {
	user, err := m.loadUserTemplates()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(user))
	out := make([]Template, 0, len(user)+len(builtins))
	for _, t := range user {
		seen[t.ID] = true
		out = append(out, t)
	}
	for _, t := range builtins {
		if !seen[t.ID] {
			t.Builtin = true
			out = append(out, t)
		}
	}
	return out, nil
}

// Get resolves one template by id.
func (m *Manager) Get(id string) (*Template, error) {
	list, err := m.List()
	if err != nil {
		return nil, err
	}
	for _, t := range list {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, &TemplateError{ID: id, Msg: "not found"}
}

var templateIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Save persists a user template. Builtin ids can be shadowed but the
// builtin itself is never modified.
func (m *Manager) Save(t Template) error {
	if !templateIDPattern.MatchString(t.ID) {
		return &TemplateError{ID: t.ID, Msg: "id must be lowercase letters, digits, and hyphens"}
	}
	if strings.TrimSpace(t.Prompt) == "" {
		return &TemplateError{ID: t.ID, Msg: "prompt is required"}
	}
	if m.userDir == "" {
		return &TemplateError{ID: t.ID, Msg: "no template directory available"}
	}
	if err := os.MkdirAll(m.userDir, 0o755); err != nil {
		return &TemplateError{ID: t.ID, Msg: err.Error()}
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return &TemplateError{ID: t.ID, Msg: err.Error()}
	}
	if err := os.WriteFile(filepath.Join(m.userDir, t.ID+".yaml"), data, 0o644); err != nil {
		return &TemplateError{ID: t.ID, Msg: err.Error()}
	}
	return nil
}

// Delete removes a user template. Deleting a builtin is an error.
func (m *Manager) Delete(id string) error {
	if !templateIDPattern.MatchString(id) {
		return &TemplateError{ID: id, Msg: "invalid id"}
	}
	path := filepath.Join(m.userDir, id+".yaml")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			for _, t := range builtins {
				if t.ID == id {
					return &TemplateError{ID: id, Msg: "builtin templates cannot be deleted"}
				}
			}
			return &TemplateError{ID: id, Msg: "not found"}
		}
		return &TemplateError{ID: id, Msg: err.Error()}
	}
	return nil
}

func (m *Manager) loadUserTemplates() ([]Template, error) {
	if m.userDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(m.userDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading template directory: %w", err)
	}

	var out []Template
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(m.userDir, entry.Name()))
		if err != nil {
			continue
		}
		var t Template
		if err := yaml.Unmarshal(data, &t); err != nil || t.ID == "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
