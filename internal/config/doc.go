// Package config reads and writes the per-workspace configuration file
// that tells the ebb CLI where a workspace's revision snapshots live,
// whether to purge orphans before each commit, and whether and how
// "ebb publish" may share them as gists.
package config
