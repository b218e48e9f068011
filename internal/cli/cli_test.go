package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func libraryFixture(t *testing.T) (dbPath, musicDir string) {
	t.Helper()
	t.Chdir(t.TempDir())
	musicDir = t.TempDir()
	for _, name := range []string{"b side.flac", "sub/a side.flac", "notes.txt"} {
		path := filepath.Join(musicDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("not audio"), 0o644))
	}
	return filepath.Join(t.TempDir(), "media.db"), musicDir
}

func TestScanThenList(t *testing.T) {
	dbPath, musicDir := libraryFixture(t)

	out, err := run(t, "--db", dbPath, "--dir", musicDir, "scan", "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Scanned 2 files")
	assert.Contains(t, out, "2 added, 0 updated, 0 removed")
	assert.Contains(t, out, "Library: 2 tracks")

	out, err = run(t, "--db", dbPath, "--dir", musicDir, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "a side.flac")
	assert.Contains(t, lines[0], "--:--")
	assert.Contains(t, lines[1], "b side.flac")
}

func TestScan_SecondRunUnchanged(t *testing.T) {
	dbPath, musicDir := libraryFixture(t)

	_, err := run(t, "--db", dbPath, "--dir", musicDir, "scan", "-q")
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(musicDir, "b side.flac")))

	out, err := run(t, "--db", dbPath, "--dir", musicDir, "scan", "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "0 added, 0 updated, 1 removed")
}

func TestList_Paths(t *testing.T) {
	dbPath, musicDir := libraryFixture(t)
	_, err := run(t, "--db", dbPath, "--dir", musicDir, "scan", "-q")
	require.NoError(t, err)

	out, err := run(t, "--db", dbPath, "--dir", musicDir, "list", "--paths")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(musicDir, "sub", "a side.flac"))
}

func TestList_EmptyIndex(t *testing.T) {
	dbPath, musicDir := libraryFixture(t)

	out, err := run(t, "--db", dbPath, "--dir", musicDir, "list")
	require.NoError(t, err)
	assert.Equal(t, "No audio files indexed. Run 'jetaudio scan' first.\n", out)
}

func TestConfigFlag_MissingFile(t *testing.T) {
	dbPath, _ := libraryFixture(t)

	_, err := run(t, "--db", dbPath, "--config", filepath.Join(t.TempDir(), "nope.toml"), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "frobnicate")
	require.Error(t, err)
}
