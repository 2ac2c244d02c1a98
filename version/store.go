// Package version persists timestamped snapshots of generated plans
// under the workspace and enforces a retention cap.
package version

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/manasdutta04/layr/plan"
)

const (
	defaultMaxVersions = 50
	historyDirName     = ".layr/history"
)

// Metadata describes the circumstances of a saved version. Description
// is always present in stored snapshots; a default is filled in when
// the caller leaves it empty.
type Metadata struct {
	Model        string `json:"model,omitempty"`
	Prompt       string `json:"prompt,omitempty"`
	Description  string `json:"description"`
	VersionLabel string `json:"versionLabel,omitempty"`
}

// PlanVersion is one persisted snapshot.
type PlanVersion struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Plan      *plan.ProjectPlan `json:"plan"`
	Metadata  Metadata          `json:"metadata"`
}

// Store writes plan versions as individual JSON files. A store with no
// workspace degrades to a no-op: saves succeed without persisting.
type Store struct {
	dir         string
	maxVersions int
	logger      *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMaxVersions overrides the retention cap.
func WithMaxVersions(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.maxVersions = n
		}
	}
}

// WithStoreLogger sets the structured logger.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// WithHistoryDir uses an explicit directory instead of the workspace
// default.
func WithHistoryDir(dir string) StoreOption {
	return func(s *Store) { s.dir = dir }
}

// NewStore creates a version store rooted in the given workspace. An
// empty workspace yields a store that silently skips persistence.
func NewStore(workspace string, opts ...StoreOption) *Store {
	s := &Store{
		maxVersions: defaultMaxVersions,
		logger:      slog.Default(),
	}
	if workspace != "" {
		s.dir = filepath.Join(workspace, filepath.FromSlash(historyDirName))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir reports where versions are stored. Empty means persistence is
// disabled.
func (s *Store) Dir() string { return s.dir }

// SaveVersion persists a snapshot and returns its id. Persistence
// failures are logged, not returned; generation must never fail
// because history could not be written.
func (s *Store) SaveVersion(p *plan.ProjectPlan, meta Metadata) (string, error) {
	if s.dir == "" || p == nil {
		return "", nil
	}

	if meta.Description == "" {
		meta.Description = "Plan snapshot"
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Warn("cannot create version directory", "dir", s.dir, "error", err)
		return "", nil
	}

	v := PlanVersion{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Plan:      p.Clone(),
		Metadata:  meta,
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.logger.Warn("cannot encode plan version", "error", err)
		return "", nil
	}
	if err := os.WriteFile(s.versionPath(v.ID), data, 0o644); err != nil {
		s.logger.Warn("cannot write plan version", "id", v.ID, "error", err)
		return "", nil
	}

	if _, err := s.CleanupOldVersions(s.maxVersions); err != nil {
		s.logger.Warn("version cleanup failed", "error", err)
	}
	return v.ID, nil
}

// GetVersions lists saved versions newest first. Files that fail to
// parse are skipped with a warning.
func (s *Store) GetVersions() ([]PlanVersion, error) {
	if s.dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version directory: %w", err)
	}

	versions := make([]PlanVersion, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("cannot read plan version", "file", entry.Name(), "error", err)
			continue
		}
		var v PlanVersion
		if err := json.Unmarshal(data, &v); err != nil || v.ID == "" {
			s.logger.Warn("skipping corrupt plan version", "file", entry.Name())
			continue
		}
		versions = append(versions, v)
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Timestamp.After(versions[j].Timestamp)
	})
	return versions, nil
}

// GetVersion loads one version by id, returning nil without error when
// it does not exist.
func (s *Store) GetVersion(id string) (*PlanVersion, error) {
	if s.dir == "" || !validVersionID(id) {
		return nil, nil
	}
	data, err := os.ReadFile(s.versionPath(id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading plan version %s: %w", id, err)
	}
	var v PlanVersion
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing plan version %s: %w", id, err)
	}
	return &v, nil
}

// DeleteVersion removes one version, reporting whether it existed.
func (s *Store) DeleteVersion(id string) (bool, error) {
	if s.dir == "" || !validVersionID(id) {
		return false, nil
	}
	err := os.Remove(s.versionPath(id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("deleting plan version %s: %w", id, err)
	}
	return true, nil
}

// CleanupOldVersions deletes everything beyond the newest keep
// versions and returns how many were removed.
func (s *Store) CleanupOldVersions(keep int) (int, error) {
	if s.dir == "" || keep <= 0 {
		return 0, nil
	}
	versions, err := s.GetVersions()
	if err != nil {
		return 0, err
	}
	if len(versions) <= keep {
		return 0, nil
	}

	removed := 0
	for _, v := range versions[keep:] {
		if err := os.Remove(s.versionPath(v.ID)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("cannot remove old plan version", "id", v.ID, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

func (s *Store) versionPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

var versionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// validVersionID rejects ids that could escape the version directory.
func validVersionID(id string) bool {
	return id != "" && versionIDPattern.MatchString(id)
}
