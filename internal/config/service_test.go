package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fap/internal/config"
)

func TestService_GetAndPath(t *testing.T) {
	cfg := config.DefaultConfig()
	svc := config.NewService(cfg, "fap.toml")

	assert.Same(t, cfg, svc.Get())
	assert.Equal(t, "fap.toml", svc.Path())
}

func TestService_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[tree]
cache_size_limit = 42
`), 0o600))

	svc := config.NewService(config.DefaultConfig(), "")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, svc.Reload(ctx, path))
	assert.Equal(t, 42, svc.Get().Tree.CacheSizeLimit)
	assert.Equal(t, path, svc.Path())
}

func TestService_Reload_InvalidKeepsPriorConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fap.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	original := config.DefaultConfig()
	svc := config.NewService(original, "")

	err := svc.Reload(context.Background(), path)

	require.Error(t, err)
	assert.Same(t, original, svc.Get())
}

func TestService_Watch_ReceivesCurrentAndUpdates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[tree]
cache_size_limit = 7
`), 0o600))

	svc := config.NewService(config.DefaultConfig(), "")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := svc.Watch(ctx)

	select {
	case first := <-updates:
		require.NotNil(t, first)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for initial config")
	}

	require.NoError(t, svc.Reload(context.Background(), path))

	select {
	case updated := <-updates:
		require.NotNil(t, updated)
		assert.Equal(t, 7, updated.Tree.CacheSizeLimit)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for reload notification")
	}
}

func TestService_Watch_ClosesOnCancel(t *testing.T) {
	svc := config.NewService(config.DefaultConfig(), "")

	ctx, cancel := context.WithCancel(context.Background())
	updates := svc.Watch(ctx)
	<-updates // drain the initial send

	cancel()

	select {
	case _, ok := <-updates:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestLoadOrDefault_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
auth_token = "tok"
`), 0o600))

	svc, err := config.LoadOrDefault(path)

	require.NoError(t, err)
	assert.Equal(t, "tok", svc.Get().Server.AuthToken)
	assert.Equal(t, path, svc.Path())
}

func TestLoadOrDefault_InvalidFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fap.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	svc, err := config.LoadOrDefault(path)

	require.Error(t, err)
	assert.Equal(t, config.DefaultConfig(), svc.Get())
	assert.Empty(t, svc.Path())
}
