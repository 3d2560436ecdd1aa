package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fap/internal/config"
)

func TestLoadWithValidation_MissingFileUsesDefaults(t *testing.T) {
	result := config.LoadWithValidation(filepath.Join(t.TempDir(), "does-not-exist.toml"))

	require.NoError(t, result.ValidationError)
	assert.Equal(t, config.DefaultConfig(), result.Config)
}

func TestLoadWithValidation_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fap.toml")
	contents := `
[server]
auth_token = "s3cr3t"
compression_threshold_bytes = 2048

[tree]
cache_size_limit = 500
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	result := config.LoadWithValidation(path)

	require.NoError(t, result.ValidationError)
	assert.Equal(t, "s3cr3t", result.Config.Server.AuthToken)
	assert.Equal(t, 2048, result.Config.Server.CompressionThresholdBytes)
	assert.Equal(t, 500, result.Config.Tree.CacheSizeLimit)
}

func TestLoadWithValidation_InvalidTOMLFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fap.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid toml"), 0o600))

	result := config.LoadWithValidation(path)

	require.Error(t, result.ValidationError)
	assert.Equal(t, config.DefaultConfig(), result.Config)
}

func TestLoadWithValidation_FailsValidationFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fap.toml")
	contents := `
[tree]
cache_size_limit = -1
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	result := config.LoadWithValidation(path)

	require.Error(t, result.ValidationError)
	assert.Equal(t, config.DefaultConfig(), result.Config)
}

func TestFindConfigFile_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)

	defer func() { require.NoError(t, os.Chdir(cwd)) }()

	require.NoError(t, os.Chdir(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fap.toml"), []byte(""), 0o600))

	assert.Equal(t, "fap.toml", config.FindConfigFile())
}
