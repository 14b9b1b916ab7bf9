package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowergraph/pkg/flower"
	"github.com/matzehuels/flowergraph/pkg/io"
)

// legendCommand creates the legend command that prints the ranked legend.
func (c *CLI) legendCommand() *cobra.Command {
	var (
		flags  graphFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "legend [records]",
		Short: "Print the ranked legend of a record file",
		Long: `Print the ranked legend of a record file.

Types are listed by descending record count; ties keep the order in which the
types first appear. Colors come from the configured palette, so the output
matches the rendered graph.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, _, err := loadGraph(cmd, &flags, args[0])
			if err != nil {
				return err
			}
			legend := g.Legend()
			if format == "table" {
				fmt.Println(renderLegendTable(legend))
				return nil
			}
			f, err := io.ParseFormat(format)
			if err != nil {
				return err
			}
			return io.Encode(os.Stdout, legend, f)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json, yaml, toml")

	return cmd
}

// renderLegendTable renders the legend with a swatch in each entry's color.
func renderLegendTable(legend []flower.LegendEntry) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(legend))
	for i, e := range legend {
		rows[i] = []string{strconv.Itoa(i + 1), "●", e.Type, strconv.Itoa(e.Count), e.Color}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "", "Type", "Records", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 0, 4:
				return base.Foreground(colorDim)
			case 1:
				return base.Foreground(lipgloss.Color(legend[row].Color))
			case 3:
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return base.Foreground(colorWhite)
		})

	return t.Render()
}
