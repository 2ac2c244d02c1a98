package version

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manasdutta04/layr/plan"
)

func testPlan(title string) *plan.ProjectPlan {
	return &plan.ProjectPlan{
		Title:        title,
		Requirements: []string{"r"},
		GeneratedAt:  time.Now(),
		GeneratedBy:  plan.GeneratedByAI,
	}
}

func TestSaveAndGetVersion(t *testing.T) {
	store := NewStore(t.TempDir())

	id, err := store.SaveVersion(testPlan("First"), Metadata{Model: "m", Prompt: "p"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	v, err := store.GetVersion(id)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, id, v.ID)
	assert.Equal(t, "First", v.Plan.Title)
	assert.Equal(t, "m", v.Metadata.Model)
	assert.False(t, v.Timestamp.IsZero())
}

func TestSaveVersionUniqueIDs(t *testing.T) {
	store := NewStore(t.TempDir())

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		id, err := store.SaveVersion(testPlan("X"), Metadata{})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	versions, err := store.GetVersions()
	require.NoError(t, err)
	assert.Len(t, versions, 10)
}

func TestGetVersionsNewestFirst(t *testing.T) {
	store := NewStore(t.TempDir())

	for _, title := range []string{"a", "b", "c"} {
		_, err := store.SaveVersion(testPlan(title), Metadata{})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	versions, err := store.GetVersions()
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "c", versions[0].Plan.Title)
	assert.Equal(t, "a", versions[2].Plan.Title)
}

func TestGetVersionsSkipsCorruptFiles(t *testing.T) {
	ws := t.TempDir()
	store := NewStore(ws)

	_, err := store.SaveVersion(testPlan("good"), Metadata{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "broken.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("ignore me"), 0o644))

	versions, err := store.GetVersions()
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "good", versions[0].Plan.Title)
}

func TestGetVersionAbsent(t *testing.T) {
	store := NewStore(t.TempDir())

	v, err := store.GetVersion("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestGetVersionRejectsTraversal(t *testing.T) {
	store := NewStore(t.TempDir())

	v, err := store.GetVersion("../../etc/passwd")
	require.NoError(t, err)
	assert.Nil(t, v)

	ok, err := store.DeleteVersion("../escape")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteVersion(t *testing.T) {
	store := NewStore(t.TempDir())

	id, err := store.SaveVersion(testPlan("X"), Metadata{})
	require.NoError(t, err)

	ok, err := store.DeleteVersion(id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.DeleteVersion(id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCleanupOldVersions(t *testing.T) {
	store := NewStore(t.TempDir())

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := store.SaveVersion(testPlan("X"), Metadata{})
		require.NoError(t, err)
		ids = append(ids, id)
		time.Sleep(5 * time.Millisecond)
	}

	removed, err := store.CleanupOldVersions(2)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	versions, err := store.GetVersions()
	require.NoError(t, err)
	require.Len(t, versions, 2)
	// The newest two survive.
	assert.Equal(t, ids[4], versions[0].ID)
	assert.Equal(t, ids[3], versions[1].ID)
}

func TestRetentionAppliedOnSave(t *testing.T) {
	store := NewStore(t.TempDir(), WithMaxVersions(3))

	for i := 0; i < 6; i++ {
		_, err := store.SaveVersion(testPlan("X"), Metadata{})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	versions, err := store.GetVersions()
	require.NoError(t, err)
	assert.Len(t, versions, 3)
}

func TestStoreWithoutWorkspaceIsNoop(t *testing.T) {
	store := NewStore("")

	id, err := store.SaveVersion(testPlan("X"), Metadata{})
	require.NoError(t, err)
	assert.Empty(t, id)

	versions, err := store.GetVersions()
	require.NoError(t, err)
	assert.Empty(t, versions)
}
