package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")
	store := NewFileStore(path)

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Credentials{}, creds, "missing file loads as empty")

	want := Credentials{AccessToken: "a", RefreshToken: "r", Email: "sam@example.com"}
	require.NoError(t, store.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, Credentials{}, got)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accessToken: [unclosed"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(Credentials{AccessToken: "a"})
	require.NoError(t, store.Save(Credentials{AccessToken: "b", RefreshToken: "r"}))

	got, _ := store.Load()
	assert.Equal(t, "b", got.AccessToken)

	require.NoError(t, store.Clear())
	got, _ = store.Load()
	assert.Equal(t, Credentials{}, got)
}
