package files

import (
	"os"
	"path/filepath"
	"testing"

	"VoxStudio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	base := t.TempDir()
	roots := []string{
		filepath.Join(base, "User_Records"),
		filepath.Join(base, "Generated_Audio"),
	}
	for _, r := range roots {
		require.NoError(t, os.MkdirAll(r, os.ModePerm))
	}
	return NewManager(roots), base
}

func TestListRecursive(t *testing.T) {
	m, base := newTestManager(t)

	require.NoError(t, os.WriteFile(filepath.Join(base, "User_Records", "a.mp3"), []byte("x"), 0o644))
	sub := filepath.Join(base, "Generated_Audio", "jane_001")
	require.NoError(t, os.MkdirAll(sub, os.ModePerm))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "greeting1.mp3"), []byte("y"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("z"), 0o644))

	entries, err := m.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name] = e.Audio
	}
	assert.True(t, names["a.mp3"])
	assert.True(t, names["greeting1.mp3"])
	assert.False(t, names["notes.txt"])
}

func TestListSkipsMissingRoot(t *testing.T) {
	m := NewManager([]string{filepath.Join(t.TempDir(), "missing")})
	entries, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResolveRejectsTraversal(t *testing.T) {
	m, base := newTestManager(t)

	_, err := m.Resolve(filepath.Join(base, "User_Records", "..", "..", "etc", "passwd"))
	assert.Error(t, err)
	assert.Equal(t, errors.CodeInvalidPath, errors.GetCode(err))

	_, err = m.Resolve("/etc/passwd")
	assert.Error(t, err)
	assert.Equal(t, errors.CodeInvalidPath, errors.GetCode(err))

	ok, err := m.Resolve(filepath.Join(base, "User_Records", "a.mp3"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "User_Records", "a.mp3"), ok)
}

func TestDeleteRemovesFromListing(t *testing.T) {
	m, base := newTestManager(t)

	target := filepath.Join(base, "User_Records", "gone.mp3")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	entries, err := m.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, m.Delete(target))

	entries, err = m.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}
