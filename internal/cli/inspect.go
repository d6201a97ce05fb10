package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Amjad50/Fyp/pkg/pipeline"
	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/tree"
)

// inspectCommand creates the inspect command, an interactive browser for
// the symbol tree.
func (c *CLI) inspectCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "inspect <crops.json>",
		Short: "Browse the symbol tree interactively",
		Long: `Browse the symbol tree of a crops file. Move with up/down (or k/j),
follow the first child with enter or l and go back to the parent with
backspace or h.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			crops, err := loadCrops(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Parse(ctx, pipeline.Options{Crops: crops, Simplify: c.Config.LaTeX.Simplify, Raw: raw})
			if err != nil {
				return err
			}
			t, err := res.Tree()
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newInspectModel(t, res.LaTeX), tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "skip tree optimization")
	return cmd
}

// inspectModel is the bubbletea model of the tree browser.
type inspectModel struct {
	tree  *tree.Tree
	latex string

	cursor int
	height int
	offset int
}

func newInspectModel(t *tree.Tree, latex string) inspectModel {
	m := inspectModel{tree: t, latex: latex, height: 20}
	if root, err := t.Root(); err == nil {
		m.cursor = root
	}
	return m
}

func (m inspectModel) Init() tea.Cmd { return nil }

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.tree.Len()-1 {
				m.cursor++
			}
		case "enter", "l", "right":
			if c, ok := m.firstChild(m.cursor); ok {
				m.cursor = c
			}
		case "backspace", "h", "left":
			if p, ok := m.parent(m.cursor); ok {
				m.cursor = p
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 5)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *inspectModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m inspectModel) firstChild(i int) (int, bool) {
	for _, r := range relation.Forward {
		if c := m.tree.Children(i, r); len(c) > 0 {
			return c[0], true
		}
	}
	return 0, false
}

func (m inspectModel) parent(i int) (int, bool) {
	for _, r := range relation.Forward {
		if p := m.tree.Parents(i, r); len(p) > 0 {
			return p[0], true
		}
	}
	return 0, false
}

var (
	inspectCursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	inspectRelStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

func (m inspectModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("fyp inspect") + "  " + StyleValue.Render(m.latex) + "\n\n")

	end := min(m.offset+m.height, m.tree.Len())
	var rows [][]string
	for i := m.offset; i < end; i++ {
		n := m.tree.Node(i)
		rows = append(rows, []string{
			fmt.Sprint(n.Position),
			n.Label,
			n.Box.String(),
			m.links(i, false),
		})
	}

	cursorRow := m.cursor - m.offset
	b.WriteString(table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "LABEL", "BOX", "CHILDREN").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return StyleTitle.Padding(0, 1)
			case row == cursorRow:
				return style.Inherit(inspectCursorStyle)
			case col == 3:
				return style.Inherit(inspectRelStyle)
			}
			return style
		}).
		String())

	b.WriteString("\n")
	if parents := m.links(m.cursor, true); parents != "" {
		b.WriteString(StyleDim.Render("parent: ") + parents + "\n")
	} else {
		b.WriteString(StyleDim.Render("root") + "\n")
	}
	b.WriteString(StyleDim.Render("↑/↓ move · enter child · backspace parent · q quit"))
	return b.String()
}

// links lists the forward children of i, or its parents when up is set,
// as relation:label#position.
func (m inspectModel) links(i int, up bool) string {
	var parts []string
	for _, r := range relation.Forward {
		ids := m.tree.Children(i, r)
		if up {
			ids = m.tree.Parents(i, r)
		}
		for _, id := range ids {
			parts = append(parts, fmt.Sprintf("%s:%s#%d", relationLabel(r), m.tree.Node(id).Label, id))
		}
	}
	return strings.Join(parts, " ")
}
