package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"skateway/dashboard"

	"github.com/guptarohit/asciigraph"
)

// terminalBoard renders status cards as a plain text table.
type terminalBoard struct {
	out io.Writer
}

func (b *terminalBoard) Render(cards []dashboard.StatusCard, updated time.Time) {
	fmt.Fprintf(b.out, "\nIce status — updated %s\n", updated.Format("15:04"))
	fmt.Fprintf(b.out, "%-14s %-8s %-10s %10s %11s %11s %9s\n",
		"Location", "Window", "Status", "Ice (cm)", "Temp (°C)", "Snow (cm)", "Readings")
	for _, c := range cards {
		fmt.Fprintf(b.out, "%-14s %-8s %-10s %10s %11s %11s %9s\n",
			c.Location, c.WindowEnd, c.Badge.Label,
			c.IceThickness, c.SurfaceTemp, c.MaxSnow, c.ReadingCount)
	}
}

func (b *terminalBoard) ShowError() {
	fmt.Fprintln(b.out, "\nIce status — error loading data")
}

func (b *terminalBoard) ShowEmpty() {
	fmt.Fprintln(b.out, "\nIce status — no data available")
}

// terminalCanvas draws one location's dual-series chart as an ASCII plot.
type terminalCanvas struct {
	key string
	out io.Writer
}

func (c *terminalCanvas) Key() string { return c.key }

func (c *terminalCanvas) Draw(chart *dashboard.LineChart) {
	plot := asciigraph.PlotMany(
		[][]float64{chart.Ice.Data, chart.Temp.Data},
		asciigraph.Height(8),
		asciigraph.Caption(fmt.Sprintf("%s — %s / %s, last %dh",
			c.key, chart.LeftAxis.Title, chart.RightAxis.Title, dashboard.HistoryHours)),
	)
	fmt.Fprintf(c.out, "\n%s\n%s\n", plot, strings.Join(chart.TickLabels(), "   "))
}

func (c *terminalCanvas) Clear() {
	fmt.Fprintf(c.out, "\n%s — no history in the last %dh\n", c.key, dashboard.HistoryHours)
}
