// Package viz renders trajectories: ascii charts for the plot and compare
// commands, and a bubbletea live view stepping all four orders in lockstep.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// PlotSeries charts one named y sequence.
func PlotSeries(name string, ys []float64) string {
	if len(ys) < 2 {
		return fmt.Sprintf("%s: not enough samples to plot", name)
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(name),
	)
}

// PlotMany charts several y sequences on shared axes with a legend line.
func PlotMany(names []string, series [][]float64, caption string) string {
	plottable := make([][]float64, 0, len(series))
	legend := make([]string, 0, len(names))
	for i, ys := range series {
		if len(ys) < 2 {
			continue
		}
		plottable = append(plottable, ys)
		style := OrderStyles[i%len(OrderStyles)]
		legend = append(legend, style.Render("── "+names[i]))
	}
	if len(plottable) == 0 {
		return "not enough samples to plot"
	}

	graph := asciigraph.PlotMany(plottable,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
	return graph + "\n" + strings.Join(legend, "  ")
}
