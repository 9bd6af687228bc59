package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunDir(t *testing.T) {
	base := t.TempDir()

	first, err := NewRunDir(base)
	require.NoError(t, err)
	second, err := NewRunDir(base)
	require.NoError(t, err)

	assert.DirExists(t, first)
	assert.DirExists(t, second)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(filepath.Base(first), "run_"))
}

func TestCleanOldRuns(t *testing.T) {
	base := t.TempDir()

	old := filepath.Join(base, "run_old")
	require.NoError(t, os.Mkdir(old, 0o755))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	fresh, err := NewRunDir(base)
	require.NoError(t, err)

	unrelated := filepath.Join(base, "keep_me")
	require.NoError(t, os.Mkdir(unrelated, 0o755))
	require.NoError(t, os.Chtimes(unrelated, past, past))

	removed, err := CleanOldRuns(base, 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.NoDirExists(t, old)
	assert.DirExists(t, fresh)
	assert.DirExists(t, unrelated)
}

func TestCleanOldRunsMissingDir(t *testing.T) {
	removed, err := CleanOldRuns(filepath.Join(t.TempDir(), "nope"), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Whale Rock Lodge", 50, "Whale_Rock_Lodge"},
		{"Char'd Grill & Wine Bar", 50, "Chard_Grill__Wine_Bar"},
		{"  trimmed  ", 50, "trimmed"},
		{"abcdef", 3, "abc"},
		{"", 50, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeFilename(tt.in, tt.maxLen), "input %q", tt.in)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("voucher body"), 0o644))

	dst := filepath.Join(dir, "nested", "dst.txt")
	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "voucher body", string(data))
}
