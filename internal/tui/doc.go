// Package tui implements the interactive tree viewer behind "ebb view":
// a scrollable, colorized rendering of a branch instance's element tree,
// with the ability to step into a mounted sub-branch.
package tui
