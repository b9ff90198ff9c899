package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileName is the workspace configuration file, relative to the
// workspace root.
const fileName = ".ebb/config.json"

// WorkspaceConfig is the on-disk, per-workspace configuration. Every
// field is an optional pointer so that an absent key falls back to its
// documented default rather than its zero value.
type WorkspaceConfig struct {
	// SnapshotDir is the git revision store, relative to the workspace
	// root; each revision's snapshot text is committed there, one commit
	// per revision.
	SnapshotDir *string `json:"snapshotDir,omitempty"`

	// AutoPurgeOrphans runs PurgeRecursive before every snapshot write.
	AutoPurgeOrphans *bool `json:"autoPurgeOrphans,omitempty"`

	// GistPublishEnabled gates the "ebb publish" subcommand.
	GistPublishEnabled *bool `json:"gistPublishEnabled,omitempty"`

	// GistPublic controls the visibility of gists created by "ebb publish".
	GistPublic *bool `json:"gistPublic,omitempty"`
}

func configPath(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, fileName)
}

// Get reads the workspace configuration, returning an empty (default)
// config if the file does not yet exist.
func Get(workspaceRoot string) (*WorkspaceConfig, error) {
	data, err := os.ReadFile(configPath(workspaceRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return &WorkspaceConfig{}, nil
		}
		return nil, fmt.Errorf("read workspace config: %w", err)
	}

	var cfg WorkspaceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse workspace config: %w", err)
	}
	return &cfg, nil
}

func write(workspaceRoot string, cfg *WorkspaceConfig) error {
	path := configPath(workspaceRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create workspace config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal workspace config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// IsInitialized reports whether a workspace has a config file at all.
func IsInitialized(workspaceRoot string) bool {
	_, err := os.Stat(configPath(workspaceRoot))
	return err == nil
}

// Init writes a fresh config file with the default snapshot directory,
// failing if one already exists.
func Init(workspaceRoot string) error {
	if IsInitialized(workspaceRoot) {
		return fmt.Errorf("workspace already initialized at %s", configPath(workspaceRoot))
	}
	dir := "revisions"
	return write(workspaceRoot, &WorkspaceConfig{SnapshotDir: &dir})
}

// GetSnapshotDir returns the configured snapshot directory, defaulting
// to "revisions".
func GetSnapshotDir(workspaceRoot string) (string, error) {
	cfg, err := Get(workspaceRoot)
	if err != nil {
		return "", err
	}
	if cfg.SnapshotDir != nil && *cfg.SnapshotDir != "" {
		return *cfg.SnapshotDir, nil
	}
	return "revisions", nil
}

// GetAutoPurgeOrphans returns whether snapshot writes should purge
// orphaned elements first, defaulting to true.
func GetAutoPurgeOrphans(workspaceRoot string) (bool, error) {
	cfg, err := Get(workspaceRoot)
	if err != nil {
		return false, err
	}
	if cfg.AutoPurgeOrphans != nil {
		return *cfg.AutoPurgeOrphans, nil
	}
	return true, nil
}

// SetAutoPurgeOrphans updates the autoPurgeOrphans setting.
func SetAutoPurgeOrphans(workspaceRoot string, enabled bool) error {
	cfg, err := Get(workspaceRoot)
	if err != nil {
		return err
	}
	cfg.AutoPurgeOrphans = &enabled
	return write(workspaceRoot, cfg)
}

// GetGistPublishEnabled returns whether "ebb publish" is allowed to run,
// defaulting to false until the user opts in.
func GetGistPublishEnabled(workspaceRoot string) (bool, error) {
	cfg, err := Get(workspaceRoot)
	if err != nil {
		return false, err
	}
	if cfg.GistPublishEnabled != nil {
		return *cfg.GistPublishEnabled, nil
	}
	return false, nil
}

// SetGistPublishEnabled updates the gistPublishEnabled setting.
func SetGistPublishEnabled(workspaceRoot string, enabled bool) error {
	cfg, err := Get(workspaceRoot)
	if err != nil {
		config := &WorkspaceConfig{}
		config.GistPublishEnabled = &enabled
		return write(workspaceRoot, config)
	}
	cfg.GistPublishEnabled = &enabled
	return write(workspaceRoot, cfg)
}

// GetGistPublic returns whether published gists should be public,
// defaulting to false (secret gist).
func GetGistPublic(workspaceRoot string) (bool, error) {
	cfg, err := Get(workspaceRoot)
	if err != nil {
		return false, err
	}
	if cfg.GistPublic != nil {
		return *cfg.GistPublic, nil
	}
	return false, nil
}
