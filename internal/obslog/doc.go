// Package obslog provides the command-line tool's structured logging and
// console output, distinct from the library's pure internal/ebb model.
package obslog
