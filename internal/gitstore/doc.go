// Package gitstore persists revision-root snapshots into a real git
// repository, one commit per revision, so that a workspace's element
// graph and the file content its "normal" elements reference can both be
// inspected with ordinary git tooling. Commit N on the store's branch
// holds the snapshot and working tree for revision N.
package gitstore
