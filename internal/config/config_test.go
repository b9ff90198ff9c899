package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ebbvc/ebb/internal/config"
)

func TestGet_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.Get(dir)
	require.NoError(t, err)
	require.Nil(t, cfg.SnapshotDir)

	require.False(t, config.IsInitialized(dir))
}

func TestInit_WritesDefaultSnapshotDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, config.Init(dir))
	require.True(t, config.IsInitialized(dir))

	snapshotDir, err := config.GetSnapshotDir(dir)
	require.NoError(t, err)
	require.Equal(t, "revisions", snapshotDir)
}

func TestInit_FailsIfAlreadyInitialized(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Init(dir))
	require.Error(t, config.Init(dir))
}

func TestAutoPurgeOrphans_DefaultsTrue(t *testing.T) {
	dir := t.TempDir()

	enabled, err := config.GetAutoPurgeOrphans(dir)
	require.NoError(t, err)
	require.True(t, enabled)

	require.NoError(t, config.SetAutoPurgeOrphans(dir, false))
	enabled, err = config.GetAutoPurgeOrphans(dir)
	require.NoError(t, err)
	require.False(t, enabled)
}

func TestGistPublishEnabled_RoundTrips(t *testing.T) {
	dir := t.TempDir()

	enabled, err := config.GetGistPublishEnabled(dir)
	require.NoError(t, err)
	require.False(t, enabled)

	require.NoError(t, config.SetGistPublishEnabled(dir, true))
	enabled, err = config.GetGistPublishEnabled(dir)
	require.NoError(t, err)
	require.True(t, enabled)
}
