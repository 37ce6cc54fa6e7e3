package fsbackend

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cuemby/brokerage/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedOSTag() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "osx"
	default:
		return "linux"
	}
}

func TestEffectiveRootLayout(t *testing.T) {
	root := EffectiveRoot("/srv/fb", 42)
	want := filepath.Join("/srv/fb", "main", "42."+expectedOSTag()) + string(filepath.Separator)
	assert.Equal(t, want, root)
}

func TestAnnounceCreateIfMissingIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, 1)
	identity := types.HostIdentity("build-07")

	require.NoError(t, b.Announce(identity))
	assert.True(t, b.Exists(identity))

	// Second call must not error even though the file already exists.
	require.NoError(t, b.Announce(identity))
	assert.True(t, b.Exists(identity))
}

func TestRevokeAbsentFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, 1)
	assert.NoError(t, b.Revoke(types.HostIdentity("never-announced")))
}

func TestEnumerateHappyPath(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, 42)

	for _, id := range []string{"build-03", "build-07", "build-09"} {
		require.NoError(t, b.Announce(types.HostIdentity(id)))
	}

	workers, err := b.Enumerate()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"build-03", "build-07", "build-09"}, workers)
}

func TestEnumerateMissingDirectoryIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	b := New(filepath.Join(dir, "does-not-exist"), 1)

	workers, err := b.Enumerate()
	require.NoError(t, err)
	assert.Empty(t, workers)
}

func TestSentinelRemovedAfterRevoke(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, 1)
	identity := types.HostIdentity("build-07")

	require.NoError(t, b.Announce(identity))
	require.NoError(t, b.Revoke(identity))

	_, err := os.Stat(b.SentinelPath(identity))
	assert.True(t, os.IsNotExist(err))
}
