// Package config loads and merges Layr settings from defaults, config
// files, and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/manasdutta04/layr/llm"
)

// ProviderConfig selects and parameterizes the AI backend.
type ProviderConfig struct {
	Type         string `yaml:"type"`
	APIKey       string `yaml:"api_key"`
	Model        string `yaml:"model"`
	BaseURL      string `yaml:"base_url"`
	ProxyURL     string `yaml:"proxy_url"`
	Organization string `yaml:"organization"`
}

// PlanConfig sets default generation parameters.
type PlanConfig struct {
	Size string `yaml:"size"`
	Type string `yaml:"type"`
}

// CacheConfig tunes the prompt cache.
type CacheConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
}

// HistoryConfig tunes plan version retention.
type HistoryConfig struct {
	Dir         string `yaml:"dir"`
	MaxVersions int    `yaml:"max_versions"`
}

// ScaffoldConfig controls plan-to-filesystem execution.
type ScaffoldConfig struct {
	Exclude []string `yaml:"exclude"`
}

// Config is the complete tool configuration.
type Config struct {
	Provider  ProviderConfig `yaml:"provider"`
	Plan      PlanConfig     `yaml:"plan"`
	Cache     CacheConfig    `yaml:"cache"`
	History   HistoryConfig  `yaml:"history"`
	Workspace string         `yaml:"workspace"`
	Scaffold  ScaffoldConfig `yaml:"scaffold"`
}

// DefaultConfig returns the configuration used when nothing else is
// set. Groq is the default provider because it works without a local
// API key.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Type: string(llm.ProviderGroq),
		},
		Plan: PlanConfig{
			Size: string(llm.SizeNormal),
			Type: string(llm.TypeSaaS),
		},
		Cache: CacheConfig{
			TTL:        time.Hour,
			MaxEntries: 20,
		},
		History: HistoryConfig{
			MaxVersions: 50,
		},
		Scaffold: ScaffoldConfig{
			Exclude: []string{"**/node_modules/**", "**/.git/**"},
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Provider.Type == "" {
		return fmt.Errorf("provider type is required")
	}
	if _, err := llm.ParseProviderType(c.Provider.Type); err != nil {
		return err
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache max_entries cannot be negative")
	}
	if c.History.MaxVersions < 0 {
		return fmt.Errorf("history max_versions cannot be negative")
	}
	return nil
}

// Merge overlays non-zero fields from other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Provider.Type != "" {
		c.Provider.Type = other.Provider.Type
	}
	if other.Provider.APIKey != "" {
		c.Provider.APIKey = other.Provider.APIKey
	}
	if other.Provider.Model != "" {
		c.Provider.Model = other.Provider.Model
	}
	if other.Provider.BaseURL != "" {
		c.Provider.BaseURL = other.Provider.BaseURL
	}
	if other.Provider.ProxyURL != "" {
		c.Provider.ProxyURL = other.Provider.ProxyURL
	}
	if other.Provider.Organization != "" {
		c.Provider.Organization = other.Provider.Organization
	}
	if other.Plan.Size != "" {
		c.Plan.Size = other.Plan.Size
	}
	if other.Plan.Type != "" {
		c.Plan.Type = other.Plan.Type
	}
	if other.Cache.TTL > 0 {
		c.Cache.TTL = other.Cache.TTL
	}
	if other.Cache.MaxEntries > 0 {
		c.Cache.MaxEntries = other.Cache.MaxEntries
	}
	if other.History.Dir != "" {
		c.History.Dir = other.History.Dir
	}
	if other.History.MaxVersions > 0 {
		c.History.MaxVersions = other.History.MaxVersions
	}
	if other.Workspace != "" {
		c.Workspace = other.Workspace
	}
	if len(other.Scaffold.Exclude) > 0 {
		c.Scaffold.Exclude = other.Scaffold.Exclude
	}
}

// ProviderSettings converts provider configuration to the form the
// adapters accept.
func (c *Config) ProviderSettings() llm.Settings {
	return llm.Settings{
		APIKey:       c.Provider.APIKey,
		Model:        c.Provider.Model,
		BaseURL:      c.Provider.BaseURL,
		ProxyURL:     c.Provider.ProxyURL,
		Organization: c.Provider.Organization,
	}
}

// GenerateOptions converts plan configuration to generation options.
func (c *Config) GenerateOptions() llm.GenerateOptions {
	return llm.GenerateOptions{
		PlanSize: llm.ParsePlanSize(c.Plan.Size),
		PlanType: llm.ParsePlanType(c.Plan.Type),
	}
}

// LoadFromFile reads a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &c, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
