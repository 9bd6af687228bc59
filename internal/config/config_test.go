package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	// Empty file: everything comes from the defaults.
	dir := t.TempDir()
	cfg, err := Load(writeConfig(t, "work_dir: "+filepath.Join(dir, "work")+"\noutput_dir: "+filepath.Join(dir, "out")+"\n"))
	require.NoError(t, err)

	assert.Equal(t, "./configs/suppliers.yaml", cfg.SuppliersFile)
	assert.Equal(t, "SA", cfg.DefaultRegion)
	assert.Equal(t, "pdf", cfg.OutputFormat)
	assert.Equal(t, 60, cfg.ConvertTimeoutSeconds)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadNormalizesValues(t *testing.T) {
	dir := t.TempDir()
	content := `
default_region: eu
output_format: ZIP
work_dir: ` + filepath.Join(dir, "work") + `
output_dir: ` + filepath.Join(dir, "out") + `
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, "EU", cfg.DefaultRegion)
	assert.Equal(t, "zip", cfg.OutputFormat)
}

func TestLoadCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	workDir := filepath.Join(dir, "scratch")
	outDir := filepath.Join(dir, "packs")

	_, err := Load(writeConfig(t, "work_dir: "+workDir+"\noutput_dir: "+outDir+"\n"))
	require.NoError(t, err)

	assert.DirExists(t, workDir)
	assert.DirExists(t, outDir)
}

func TestLoadRejectsBadRegion(t *testing.T) {
	_, err := Load(writeConfig(t, "default_region: MARS\n"))
	assert.Error(t, err)
}

func TestLoadRejectsBadFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "output_format: tarball\n"))
	assert.Error(t, err)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "output_dir: [unclosed\n"))
	assert.Error(t, err)
}
