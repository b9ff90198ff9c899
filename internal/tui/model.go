package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebbvc/ebb/internal/ebb"
)

// Model is the bubbletea model for "ebb view": a cursor-navigable
// rendering of one branch instance's tree, with Enter stepping into a
// sub-branch mounted at the selected row and Backspace stepping back out.
// Long trees scroll via a bubbles viewport rather than truncating.
type Model struct {
	branch []*ebb.BranchInstance // stack of branches visited; last is current
	rows   []row
	cursor int
	vp     viewport.Model
	ready  bool
	quit   bool
}

// NewModel starts the viewer at root.
func NewModel(root *ebb.BranchInstance) Model {
	return Model{
		branch: []*ebb.BranchInstance{root},
		rows:   flatten(root),
	}
}

func (m Model) current() *ebb.BranchInstance {
	return m.branch[len(m.branch)-1]
}

func (m Model) Init() tea.Cmd { return nil }

// headerHeight and footerHeight reserve room for the branch header line
// and the key-help line around the scrolling viewport body.
const headerHeight, footerHeight = 1, 2

func (m *Model) syncViewport() {
	m.vp.SetContent(renderRows(m.rows, m.cursor, true))
	lineTop := m.vp.YOffset
	lineBottom := m.vp.YOffset + m.vp.Height - 1
	if m.cursor < lineTop {
		m.vp.SetYOffset(m.cursor)
	} else if m.cursor > lineBottom {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight - footerHeight
		}
		m.syncViewport()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.rows) {
				r := m.rows[m.cursor]
				if r.isSubbranch {
					if sub := ebb.GetSubbranchAtEID(m.current(), r.eid); sub != nil {
						m.branch = append(m.branch, sub)
						m.rows = flatten(sub)
						m.cursor = 0
					}
				}
			}
		case "backspace":
			if len(m.branch) > 1 {
				m.branch = m.branch[:len(m.branch)-1]
				m.rows = flatten(m.current())
				m.cursor = 0
			}
		}
		m.syncViewport()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quit {
		return ""
	}
	help := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).
		Render("↑/↓ move · enter: into sub-branch · backspace: out · q: quit")
	header := lipgloss.NewStyle().Bold(true).
		Render(ebb.BranchInstanceID(m.current()))
	if !m.ready {
		return header + "\n" + renderRows(m.rows, m.cursor, true) + help
	}
	return header + "\n" + m.vp.View() + "\n" + help
}

// RenderStatic returns a non-interactive rendering of root's full tree,
// for environments without a TTY.
func RenderStatic(root *ebb.BranchInstance) string {
	return renderRows(flatten(root), -1, false)
}

// Run launches the interactive viewer.
func Run(root *ebb.BranchInstance) error {
	p := tea.NewProgram(NewModel(root))
	_, err := p.Run()
	return err
}
