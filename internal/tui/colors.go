package tui

// depthColors cycles a palette of ANSI 256-colors across nesting depth,
// so sibling subtrees stay visually distinct without needing per-branch
// configuration.
var depthColors = []string{
	"39",  // blue
	"42",  // green
	"214", // orange
	"205", // pink
	"99",  // purple
	"220", // yellow
}

func colorForDepth(depth int) string {
	return depthColors[depth%len(depthColors)]
}
