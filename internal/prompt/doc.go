// Package prompt drives the interactive wizard behind "ebb new", asking
// the questions needed to map a branch (or subtree) onto a new mount
// point without requiring every flag on the command line.
package prompt
