package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/element"
)

// row is one flattened line of the tree view: an element together with
// its nesting depth within the currently displayed branch instance.
type row struct {
	eid         element.EID
	depth       int
	name        string
	isSubbranch bool
	kind        string
}

// flatten walks b's element map depth-first from its root, producing a
// display order. Children are visited alphabetically so the tree reads
// the same way across runs regardless of map iteration order.
func flatten(b *ebb.BranchInstance) []row {
	var rows []row
	var walk func(eid element.EID, depth int)
	walk = func(eid element.EID, depth int) {
		type child struct {
			eid  element.EID
			name string
		}
		var children []child
		for e := b.RevRoot.FirstEID; e < b.RevRoot.NextEID; e++ {
			node, ok := b.Get(e)
			if !ok || node.ParentEID != eid || e == eid {
				continue
			}
			children = append(children, child{eid: e, name: node.Name})
		}
		sort.Slice(children, func(i, j int) bool { return children[i].name < children[j].name })

		for _, c := range children {
			node, _ := b.Get(c.eid)
			kind := "subbranch"
			if node.Content != nil {
				if node.Content.IsReference() {
					kind = "ref"
				} else {
					kind = node.Content.Kind().String()
				}
			}
			rows = append(rows, row{
				eid:         c.eid,
				depth:       depth,
				name:        c.name,
				isSubbranch: node.IsSubbranchRoot(),
				kind:        kind,
			})
			walk(c.eid, depth+1)
		}
	}
	walk(b.RootEID, 0)
	return rows
}

// renderRows renders rows as indented, colorized lines. A subbranch
// mount's name is followed by "/ →" and rendered bold.
func renderRows(rows []row, cursor int, interactive bool) string {
	var sb strings.Builder
	for i, r := range rows {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(colorForDepth(r.depth)))
		label := r.name
		if r.isSubbranch {
			label += "/ →"
			style = style.Bold(true)
		}
		line := fmt.Sprintf("%s%s (e%d, %s)", strings.Repeat("  ", r.depth), style.Render(label), r.eid, r.kind)
		if interactive && i == cursor {
			line = lipgloss.NewStyle().Reverse(true).Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
