// Package publish shares a serialized revision snapshot as a GitHub
// Gist, for pasting into an issue or review thread without a full
// workspace checkout.
package publish
