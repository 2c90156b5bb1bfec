package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/filetree/util"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed to
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeStderr(t, args...)
	return out, err
}

// executeStderr is execute that also returns stderr, where usage text and
// logs go.
func executeStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())

	var out, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), stderr.String(), err
}

func TestHideUnhideRoundTrip(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload.txt")
	treePath := filepath.Join(dir, "tree")
	recovered := filepath.Join(dir, "recovered.txt")

	_, err := execute(t, "seed", "-o", payload, "-c", "50")
	require.NoError(t, err)

	out, err := execute(t, "hide", "-p", treePath, "-f", payload, "-c", "7", "-w", "5", "-b", "little")
	require.NoError(t, err)
	assert.Contains(t, out, "Hid 1850 bytes")

	out, err = execute(t, "unhide", "-p", treePath, "-f", recovered, "-b", "little", "-w", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Recovered 1850 bytes")

	want, err := os.ReadFile(payload)
	require.NoError(t, err)
	got, err := os.ReadFile(recovered)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	out, err = execute(t, "verify", "-p", treePath, "-f", payload, "-b", "little")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

func TestHide_MissingFlags(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload")
	require.NoError(t, os.WriteFile(payload, []byte("abc"), 0o644))

	_, stderr, err := executeStderr(t, "hide", "-p", filepath.Join(dir, "tree"), "-f", payload, "-c", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"width"`)
	assert.Equal(t, 1, strings.Count(stderr, "Usage:"), "usage is printed once")
	assert.Contains(t, stderr, "--width")
	assert.NoDirExists(t, filepath.Join(dir, "tree"))
}

func TestUnhide_MissingFlagsPrintsUsage(t *testing.T) {
	_, stderr, err := executeStderr(t, "unhide", "-p", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"file"`)
	assert.Contains(t, stderr, "Usage:")
	assert.Contains(t, stderr, "unhide [flags]")
}

func TestHide_SettingsFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload")
	treePath := filepath.Join(dir, "tree")
	require.NoError(t, os.WriteFile(payload, []byte{0x0A, 0x0B, 0x0C}, 0o644))

	t.Setenv("FILETREE_COUNT", "1")
	t.Setenv("FILETREE_WIDTH", "2")
	_, err := execute(t, "hide", "-p", treePath, "-f", payload)
	require.NoError(t, err)

	entries, err := os.ReadDir(treePath)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "0-0A", entries[0].Name())
	assert.Equal(t, "1-0B", entries[1].Name())
	assert.DirExists(t, filepath.Join(treePath, "0-0A", "0C"))
}

func TestHide_SettingsFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload")
	treePath := filepath.Join(dir, "tree")
	cfgFile := filepath.Join(dir, "filetree.yaml")
	require.NoError(t, os.WriteFile(payload, []byte{0x01, 0x02}, 0o644))
	require.NoError(t, os.WriteFile(cfgFile, []byte("count: 2\nwidth: 1\nbyteorder: little\n"), 0o644))

	_, err := execute(t, "hide", "--config", cfgFile, "-p", treePath, "-f", payload)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(treePath, "0-0201"))
}

func TestUnhide_LegacyStop(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload")
	treePath := filepath.Join(dir, "tree")
	recovered := filepath.Join(dir, "recovered")
	require.NoError(t, os.WriteFile(payload, []byte{0x0A, 0x0B, 0x0C}, 0o644))

	_, err := execute(t, "hide", "-p", treePath, "-f", payload, "-c", "1", "-w", "2")
	require.NoError(t, err)

	_, err = execute(t, "unhide", "-p", treePath, "-f", recovered, "--legacy-stop")
	require.NoError(t, err)
	got, err := os.ReadFile(recovered)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0A, 0x0B}, got)
}

func TestUnhide_MalformedTreeLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	treePath := filepath.Join(dir, "tree")
	recovered := filepath.Join(dir, "recovered")
	require.NoError(t, os.MkdirAll(filepath.Join(treePath, "0-0A", "0B"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(treePath, "0-0A", "0C"), 0o755))

	_, err := execute(t, "unhide", "-p", treePath, "-f", recovered)
	require.ErrorIs(t, err, util.ErrMalformedTree)
	assert.NoFileExists(t, recovered)
}

func TestInspectJSON(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload")
	treePath := filepath.Join(dir, "tree")
	require.NoError(t, os.WriteFile(payload, []byte("0123456"), 0o644))

	_, err := execute(t, "hide", "-p", treePath, "-f", payload, "-c", "2", "-w", "3")
	require.NoError(t, err)

	out, err := execute(t, "inspect", "-p", treePath, "--json")
	require.NoError(t, err)
	var info util.TreeInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, 3, info.Width)
	assert.Equal(t, []int{2, 1, 1}, info.ChainDepths)
	assert.EqualValues(t, 7, info.PayloadSize)

	out, err = execute(t, "inspect", "-p", treePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Chain depths: [2 1 1]")
}

func TestVerify_Mismatch(t *testing.T) {
	dir := t.TempDir()
	payload := filepath.Join(dir, "payload")
	other := filepath.Join(dir, "other")
	treePath := filepath.Join(dir, "tree")
	require.NoError(t, os.WriteFile(payload, bytes.Repeat([]byte("a"), 100), 0o644))
	require.NoError(t, os.WriteFile(other, bytes.Repeat([]byte("b"), 10), 0o644))

	_, err := execute(t, "hide", "-p", treePath, "-f", payload, "-c", "4", "-w", "3", "--no-progress")
	require.NoError(t, err)

	_, err = execute(t, "verify", "-p", treePath, "-f", other)
	require.ErrorIs(t, err, errMismatch)
}

func TestSeed(t *testing.T) {
	output := filepath.Join(t.TempDir(), "seed.txt")
	_, err := execute(t, "seed", "-o", output, "-c", "3")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSuffix(data, []byte("\n")), []byte("\n"))
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Len(t, l, 36)
	}
}

func TestMount_RejectsOverlap(t *testing.T) {
	treePath := t.TempDir()
	_, err := execute(t, "mount", treePath, filepath.Join(treePath, "mnt"))
	require.ErrorIs(t, err, util.ErrInvalidConfiguration)
}
