package registry

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	dir := t.TempDir()
	records := filepath.Join(dir, "User_Records")
	require.NoError(t, os.MkdirAll(records, os.ModePerm))
	return New(filepath.Join(dir, "User_Data.xlsx"), records, nil)
}

func TestGenerateUserID(t *testing.T) {
	id := GenerateUserID()
	assert.Regexp(t, regexp.MustCompile(`^U\d{8}-\d{6}-[0-9a-f]{4}$`), id)

	other := GenerateUserID()
	assert.NotEqual(t, id, other, "random suffix should differ")
}

func TestSlugName(t *testing.T) {
	assert.Equal(t, "jane_doe", SlugName("Jane Doe"))
	assert.Equal(t, "user", SlugName(""))
	assert.Equal(t, "user", SlugName("   "))
	assert.NotContains(t, SlugName("a/b c"), "/")
	assert.NotContains(t, SlugName("A B C"), " ")
}

func TestClaimUserID(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, "jane_doe_001", r.ClaimUserID("Jane Doe"))

	// 占用第一个槽位后应探测到下一个
	require.NoError(t, os.WriteFile(r.RecordPath("jane_doe_001"), []byte("x"), 0o644))
	assert.Equal(t, "jane_doe_002", r.ClaimUserID("Jane Doe"))
}

func TestLoadExistingUsersAbsent(t *testing.T) {
	r := newTestRegistry(t)

	users := r.LoadExistingUsers()
	assert.Empty(t, users)
}

func TestSaveAndLoadUserData(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, r.SaveUserData("jane_doe_001", "voice-abc", "Jane Doe", "jane@example.com"))

	users := r.LoadExistingUsers()
	require.Len(t, users, 1)
	assert.Equal(t, "voice-abc", users["jane_doe_001"])

	// 追加第二条
	require.NoError(t, r.SaveUserData("bob_001", "voice-def", "Bob", ""))
	users = r.LoadExistingUsers()
	require.Len(t, users, 2)
	assert.Equal(t, "voice-def", users["bob_001"])
}

func TestSaveUserDataDuplicateTolerated(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, r.SaveUserData("jane_001", "voice-1", "Jane", ""))
	require.NoError(t, r.SaveUserData("jane_001", "voice-2", "Jane", ""))

	// 重复键不报错，读取时最后一行胜出
	users := r.LoadExistingUsers()
	assert.Equal(t, "voice-2", users["jane_001"])
}
