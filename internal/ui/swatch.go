package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/curator/internal/harvard"
)

// swatchWidths splits width cells between colors in proportion to their
// percent. Every color gets at least one cell while room remains, and the
// result never exceeds width.
func swatchWidths(colors []harvard.Color, width int) []int {
	widths := make([]int, len(colors))
	if width <= 0 || len(colors) == 0 {
		return widths
	}

	var total float64
	for _, c := range colors {
		total += math.Max(c.Percent, 0)
	}

	used := 0
	for i, c := range colors {
		if used >= width {
			break
		}
		share := 1.0 / float64(len(colors))
		if total > 0 {
			share = math.Max(c.Percent, 0) / total
		}
		w := max(int(math.Round(share*float64(width))), 1)
		w = min(w, width-used)
		widths[i] = w
		used += w
	}
	return widths
}

// renderSwatches draws the palette as one bar of background-colored cells
// with the hex codes listed underneath.
func renderSwatches(colors []harvard.Color, width int, faint lipgloss.Style) string {
	if len(colors) == 0 {
		return faint.Render("no color data")
	}

	widths := swatchWidths(colors, width)
	var bar strings.Builder
	labels := make([]string, 0, len(colors))
	for i, c := range colors {
		if widths[i] > 0 {
			bar.WriteString(lipgloss.NewStyle().
				Background(lipgloss.Color(c.Hex)).
				Render(strings.Repeat(" ", widths[i])))
		}
		labels = append(labels, c.Hex)
	}
	return bar.String() + "\n" + faint.Render(truncate(strings.Join(labels, " "), width))
}
