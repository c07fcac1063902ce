package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/arcgraph/pkg/edges"
	"github.com/matzehuels/arcgraph/pkg/geom"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RecordListModel - Interactive edge browser
// =============================================================================

// recordRow is one analyzed edge prepared for display.
type recordRow struct {
	ID       string
	From, To string
	Pair     edges.PairID
	Ordinal  int
	Total    int
	Kind     string
	Drawable bool
	Arc      *edges.Arc
	Path     []geom.Vector3
}

// Edge kinds shown in the browser.
const (
	kindStraight = "straight"
	kindCurved   = "curved"
	kindSelf     = "self"
)

// newRecordRows computes arc metrics and paths for every record of a.
func newRecordRows(a *edges.Analyzer, segments int) []recordRow {
	recs := a.Records()
	rows := make([]recordRow, 0, len(recs))
	for _, r := range recs {
		row := recordRow{
			ID:       string(r.Edge.ID),
			From:     string(r.Edge.Source),
			To:       string(r.Edge.Target),
			Pair:     r.Pair,
			Ordinal:  r.Ordinal,
			Total:    r.TotalCoincident,
			Drawable: r.SufficientLength,
		}
		switch {
		case r.SelfEdge:
			row.Kind = kindSelf
		case r.Straight:
			row.Kind = kindStraight
		default:
			row.Kind = kindCurved
		}
		if !r.Straight {
			if arc, err := a.ArcMetrics(r); err == nil {
				row.Arc = &arc
			}
		}
		if path, err := a.Path(r, segments); err == nil {
			row.Path = path
		}
		rows = append(rows, row)
	}
	return rows
}

// RecordListModel is the bubbletea model for browsing analyzed edges.
type RecordListModel struct {
	Rows     []recordRow
	Cursor   int
	Height   int
	Offset   int
	Expanded bool
}

// NewRecordListModel creates a new record list model.
func NewRecordListModel(rows []recordRow) RecordListModel {
	return RecordListModel{Rows: rows, Height: 15}
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 16
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RecordListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edges"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no edges"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		radius, level := "—", "—"
		if r.Arc != nil {
			radius = strconv.FormatFloat(r.Arc.Radius, 'f', 3, 64)
			level = strconv.Itoa(r.Arc.Level)
		}
		rows = append(rows, []string{
			cursor,
			r.ID,
			r.From + " " + iconArrow + " " + r.To,
			strconv.FormatUint(uint64(r.Pair), 10),
			fmt.Sprintf("%d/%d", r.Ordinal, r.Total),
			r.Kind,
			radius,
			level,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Edge", "Nodes", "Pair", "Ord", "Kind", "Radius", "Level").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			r := m.Rows[idx]
			base := lipgloss.NewStyle()
			if !r.Drawable {
				base = base.Foreground(colorDim)
			} else if col == 5 {
				base = base.Foreground(kindColor(r.Kind))
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	b.WriteString("\n")

	if m.Expanded {
		b.WriteString("\n")
		b.WriteString(m.details(m.Rows[m.Cursor]))
	}

	return b.String()
}

// details renders the arc metrics and sampled path of one row.
func (m RecordListModel) details(r recordRow) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(r.ID))
	b.WriteString("\n")
	if !r.Drawable {
		b.WriteString(StyleWarning.Render("  not drawable: endpoints unresolved or coincident"))
		b.WriteString("\n")
	}
	if r.Arc != nil {
		fmt.Fprintf(&b, "  radius %.4f  angle %.4f  level %d/%d  slots %d\n",
			r.Arc.Radius, r.Arc.Angle, r.Arc.Level, r.Arc.MaxLevel, r.Arc.SlotsInLevel)
	}
	for i, p := range r.Path {
		fmt.Fprintf(&b, "  %s %2d  (%.3f, %.3f, %.3f)\n", listDimStyle.Render("·"), i, p.X, p.Y, p.Z)
	}
	return b.String()
}

func kindColor(kind string) lipgloss.Color {
	switch kind {
	case kindSelf:
		return colorYellow
	case kindCurved:
		return colorCyan
	default:
		return colorGreen
	}
}
