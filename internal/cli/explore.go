package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowergraph/pkg/flower"
	"github.com/matzehuels/flowergraph/pkg/observability"
	"github.com/matzehuels/flowergraph/pkg/render/flower/sink"
	"github.com/matzehuels/flowergraph/pkg/render/flower/rings"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	paneStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	activePaneStyle   = paneStyle.BorderForeground(colorCyan)
)

// exploreCommand creates the explore command: a terminal UI whose cursor
// drives the hover state of the graph.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		flags  graphFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "explore [records]",
		Short: "Browse the legend and records interactively",
		Long: `Browse the legend and records interactively.

The cursor hovers what it points at: a legend entry focuses its type, a record
focuses its label and types. Everything off focus is dimmed, as in the SVG.
Press s to save the graph with the current focus as SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, opts, _, err := loadGraph(cmd, &flags, args[0])
			if err != nil {
				return err
			}
			instrumentHover(g.Hover())

			out := output
			if out == "" {
				out = basePath("", args[0]) + ".svg"
			}
			m := newExploreModel(g, opts.RingStyle(), out)
			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("explore: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "file written by s (default: <input>.svg)")

	return cmd
}

// instrumentHover forwards coordinator changes to the hover hooks.
func instrumentHover(co *flower.Coordinator) {
	co.OnLabel(func(_ string, ok bool) { observability.Hover().OnHoverChange("label", ok) })
	co.OnTypes(func(types []string) { observability.Hover().OnHoverChange("types", len(types) > 0) })
}

// =============================================================================
// exploreModel - legend and record panes
// =============================================================================

const (
	paneLegend = iota
	paneRecords
)

// exploreModel is the bubbletea model of the explore command.
type exploreModel struct {
	graph   *flower.Graph[flower.Record]
	style   rings.Style
	legend  []flower.LegendEntry
	records []flower.ProjectedRecord
	output  string

	pane   int
	cursor [2]int
	offset [2]int
	height int
	status string
}

func newExploreModel(g *flower.Graph[flower.Record], style rings.Style, output string) exploreModel {
	return exploreModel{
		graph:   g,
		style:   style,
		legend:  g.Legend(),
		records: g.Records(),
		output:  output,
		height:  15,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			m.pane = 1 - m.pane
			m.hover()
		case "up", "k":
			if m.cursor[m.pane] > 0 {
				m.cursor[m.pane]--
				if m.cursor[m.pane] < m.offset[m.pane] {
					m.offset[m.pane] = m.cursor[m.pane]
				}
			}
			m.hover()
		case "down", "j":
			if m.cursor[m.pane] < m.size(m.pane)-1 {
				m.cursor[m.pane]++
				if m.cursor[m.pane] >= m.offset[m.pane]+m.height {
					m.offset[m.pane] = m.cursor[m.pane] - m.height + 1
				}
			}
			m.hover()
		case "enter", " ":
			m.hover()
		case "esc":
			m.graph.Hover().Leave()
		case "s":
			if err := m.save(); err != nil {
				m.status = StyleWarning.Render(err.Error())
			} else {
				m.status = StyleSuccess.Render("saved " + m.output)
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m exploreModel) size(pane int) int {
	if pane == paneLegend {
		return len(m.legend)
	}
	return len(m.records)
}

// hover points the coordinator at the element under the cursor.
func (m exploreModel) hover() {
	co := m.graph.Hover()
	i := m.cursor[m.pane]
	if i >= m.size(m.pane) {
		co.Leave()
		return
	}
	if m.pane == paneLegend {
		co.LeaveLabel()
		co.EnterTypes([]string{m.legend[i].Type})
		return
	}
	r := m.records[i]
	co.Enter(r.Label, r.TypeNames())
}

// save writes the graph with the current hover state as SVG.
func (m exploreModel) save() error {
	scene, nodes := sink.Place(m.graph, m.style)
	svg := sink.RenderSVG(scene, nodes, sink.WithStyle(m.style))
	return os.WriteFile(m.output, svg, 0o644)
}

func (m exploreModel) View() string {
	var b strings.Builder
	state := m.graph.Hover().State()
	dim := m.graph.Config().OffFocusOpacity

	b.WriteString(StyleTitle.Render("Flower Graph"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(describeHover(state)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  tab switch pane  esc clear  s save svg  q quit"))
	b.WriteString("\n\n")

	var legendLines []string
	legendLines = append(legendLines, StyleHighlight.Render("Types"))
	for i := m.offset[paneLegend]; i < min(m.offset[paneLegend]+m.height, len(m.legend)); i++ {
		e := m.legend[i]
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("●")
		line := fmt.Sprintf("%s %-20s %4d", swatch, rings.Truncate(e.Type, 20), e.Count)
		legendLines = append(legendLines, m.row(paneLegend, i, line, state.TypeOpacity(e.Type, dim) < 1))
	}

	var recordLines []string
	recordLines = append(recordLines, StyleHighlight.Render("Records"))
	for i := m.offset[paneRecords]; i < min(m.offset[paneRecords]+m.height, len(m.records)); i++ {
		r := m.records[i]
		types := r.TypeNames()
		line := fmt.Sprintf("%-24s %s", rings.Truncate(r.Label, 24), rings.Truncate(strings.Join(types, ", "), 30))
		recordLines = append(recordLines, m.row(paneRecords, i, line, state.Opacity(r.Label, types, dim) < 1))
	}

	left, right := paneStyle, paneStyle
	if m.pane == paneLegend {
		left = activePaneStyle
	} else {
		right = activePaneStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(strings.Join(legendLines, "\n")),
		" ",
		right.Render(strings.Join(recordLines, "\n")),
	))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	return b.String()
}

func (m exploreModel) row(pane, i int, line string, dimmed bool) string {
	cursor := "  "
	if pane == m.pane && i == m.cursor[pane] {
		cursor = "▸ "
		return listSelectedStyle.Render(cursor + line)
	}
	if dimmed {
		return listDimStyle.Render(cursor + line)
	}
	return listNormalStyle.Render(cursor + line)
}

func describeHover(s flower.HoverState) string {
	if s.Idle() {
		return "nothing hovered"
	}
	var parts []string
	if s.HasLabel {
		parts = append(parts, "label "+s.Label)
	}
	if len(s.Types) > 0 {
		parts = append(parts, "types "+strings.Join(s.Types, ", "))
	}
	return strings.Join(parts, " · ")
}
