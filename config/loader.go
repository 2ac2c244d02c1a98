package config

import (
	"os"
	"path/filepath"
)

// Environment variables recognized by the loader. They override every
// file-based source.
const (
	EnvProvider = "LAYR_PROVIDER"
	EnvAPIKey   = "LAYR_API_KEY"
	EnvModel    = "LAYR_MODEL"
	EnvBaseURL  = "LAYR_BASE_URL"
	EnvProxyURL = "LAYR_PROXY_URL"
)

// ProjectConfigName is the per-project config file searched for from
// the working directory upward.
const ProjectConfigName = "layr.yaml"

// Load assembles the effective configuration: defaults, then the user
// config, then the nearest project config, then environment variables.
// Missing files are skipped silently; malformed files are an error.
func Load(workdir string) (*Config, error) {
	cfg := DefaultConfig()

	if path := userConfigPath(); path != "" {
		if fileExists(path) {
			user, err := LoadFromFile(path)
			if err != nil {
				return nil, err
			}
			cfg.Merge(user)
		}
	}

	if path := findProjectConfig(workdir); path != "" {
		project, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg.Merge(project)
		if cfg.Workspace == "" {
			cfg.Workspace = filepath.Dir(path)
		}
	}

	applyEnv(cfg)

	if cfg.Workspace == "" {
		cfg.Workspace = DetectWorkspace(workdir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DetectWorkspace walks upward looking for a repository root, falling
// back to the starting directory.
func DetectWorkspace(dir string) string {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	for d := dir; ; {
		if fileExists(filepath.Join(d, ".git")) {
			return d
		}
		parent := filepath.Dir(d)
		if parent == d {
			return dir
		}
		d = parent
	}
}

func userConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "layr", "config.yaml")
}

func findProjectConfig(dir string) string {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	for d := dir; ; {
		path := filepath.Join(d, ProjectConfigName)
		if fileExists(path) {
			return path
		}
		parent := filepath.Dir(d)
		if parent == d {
			return ""
		}
		d = parent
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvProvider); v != "" {
		cfg.Provider.Type = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Provider.Model = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvProxyURL); v != "" {
		cfg.Provider.ProxyURL = v
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
