package terminal

import (
	"fmt"
	"io"
	"strings"

	"opportunity-report/domain/chart"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// BarWidth is the number of cells of the longest bar.
const BarWidth = 50

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// Render prints one horizontal stacked bar per business area: the budget
// segment first, then the actual increment, followed by both totals.
func Render(w io.Writer, c chart.Chart) error {
	var lines []string
	lines = append(lines, titleStyle.Render(c.Title), "")
	if len(c.Bars) == 0 {
		lines = append(lines, dimStyle.Render("  No open opportunities"))
		_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err
	}

	labelW := 0
	scale := decimal.Zero
	for _, b := range c.Bars {
		labelW = max(labelW, lipgloss.Width(b.Area))
		scale = decimal.Max(scale, b.Lower.Height.Abs().Add(b.Upper.Height.Abs()))
	}
	for _, b := range c.Bars {
		budgetCells := cells(b.Lower.Height, scale)
		actualCells := cells(b.Upper.Height, scale)
		budget := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Lower.Color)).Render(strings.Repeat("█", budgetCells))
		actual := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Upper.Color)).Render(strings.Repeat("▓", actualCells))
		pad := strings.Repeat(" ", max(0, BarWidth-budgetCells-actualCells))
		label := b.Area + strings.Repeat(" ", labelW-lipgloss.Width(b.Area))
		ann := b.Annotations()
		lines = append(lines, fmt.Sprintf("  %s %s%s%s  %s %s",
			label, budget, actual, pad,
			"Budget "+ann[0].Text,
			dimStyle.Render("Actual "+ann[1].Text)))
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// cells maps |v| onto the bar width relative to scale.
func cells(v, scale decimal.Decimal) int {
	if scale.IsZero() {
		return 0
	}
	n := int(v.Abs().Div(scale).Mul(decimal.NewFromInt(BarWidth)).Round(0).IntPart())
	return min(max(n, 0), BarWidth)
}
