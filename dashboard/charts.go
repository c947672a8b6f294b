package dashboard

import (
	"context"
	"fmt"
	"sync"

	"skateway/models"

	"go.uber.org/zap"
)

// HistoryHours is the charted window.
const HistoryHours = 24

// maxAxisTicks caps x-axis labels for readability.
const maxAxisTicks = 6

// Axis describes one y axis of a chart.
type Axis struct {
	ID       string // "y" (left) or "y1" (right)
	Title    string
	DrawGrid bool
}

// Dataset is one plotted series, bound to a y axis.
type Dataset struct {
	Label  string
	Unit   string
	AxisID string
	Data   []float64
}

// Tooltip formats one point of the series, e.g. "Ice: 31.2 cm".
func (d Dataset) Tooltip(v float64) string {
	return fmt.Sprintf("%s: %.1f %s", d.Label, v, d.Unit)
}

// LineChart is one live dual-axis chart handle bound to a canvas. A handle
// is disposed exactly once, when the registry replaces or clears it, and
// must never be drawn after that.
type LineChart struct {
	Labels    []string
	Ice       Dataset
	Temp      Dataset
	LeftAxis  Axis
	RightAxis Axis
	MaxTicks  int

	disposed bool
}

// Dispose releases the handle.
func (c *LineChart) Dispose() { c.disposed = true }

// Disposed reports whether Dispose has been called.
func (c *LineChart) Disposed() bool { return c.disposed }

// TickLabels returns the x-axis labels thinned to at most MaxTicks entries.
// A non-positive MaxTicks means no cap.
func (c *LineChart) TickLabels() []string {
	if c.MaxTicks <= 0 || len(c.Labels) <= c.MaxTicks {
		return c.Labels
	}
	step := (len(c.Labels) + c.MaxTicks - 1) / c.MaxTicks
	out := make([]string, 0, c.MaxTicks)
	for i := 0; i < len(c.Labels) && len(out) < c.MaxTicks; i += step {
		out = append(out, c.Labels[i])
	}
	return out
}

// newLineChart builds the parallel label/series arrays for one location's
// history. Missing or malformed measurements plot as zero.
func newLineChart(docs []models.AggregationDocument) *LineChart {
	labels := make([]string, len(docs))
	ice := make([]float64, len(docs))
	temp := make([]float64, len(docs))
	for i, d := range docs {
		labels[i] = clockLabel(d.WindowEnd)
		ice[i] = valueOrZero(d.AvgIceThickness)
		temp[i] = valueOrZero(d.AvgSurfaceTemperature)
	}
	return &LineChart{
		Labels:    labels,
		Ice:       Dataset{Label: "Ice", Unit: "cm", AxisID: "y", Data: ice},
		Temp:      Dataset{Label: "Temp", Unit: "°C", AxisID: "y1", Data: temp},
		LeftAxis:  Axis{ID: "y", Title: "Ice thickness (cm)", DrawGrid: true},
		RightAxis: Axis{ID: "y1", Title: "Surface temp (°C)", DrawGrid: false},
		MaxTicks:  maxAxisTicks,
	}
}

func valueOrZero(n models.Numeric) float64 {
	if n.Valid {
		return n.Value
	}
	return 0
}

// Canvas is one drawing surface, owned by a single location's chart.
type Canvas interface {
	Key() string
	Draw(chart *LineChart)
	Clear()
}

// Registry owns the single live chart handle per canvas key. All mutation
// goes through Replace and Clear, so a prior handle is always disposed
// before a new one is installed and two handles never share a canvas.
type Registry struct {
	mu     sync.Mutex
	charts map[string]*LineChart
}

func NewRegistry() *Registry {
	return &Registry{charts: make(map[string]*LineChart)}
}

// Replace disposes any chart bound to the canvas, installs the new one and
// draws it.
func (g *Registry) Replace(canvas Canvas, chart *LineChart) {
	g.mu.Lock()
	if prior := g.charts[canvas.Key()]; prior != nil {
		prior.Dispose()
	}
	g.charts[canvas.Key()] = chart
	g.mu.Unlock()

	canvas.Draw(chart)
}

// Clear disposes and removes the canvas's chart, then blanks its pixels.
func (g *Registry) Clear(canvas Canvas) {
	g.mu.Lock()
	if prior := g.charts[canvas.Key()]; prior != nil {
		prior.Dispose()
		delete(g.charts, canvas.Key())
	}
	g.mu.Unlock()

	canvas.Clear()
}

// Chart returns the live handle for a canvas key, or nil.
func (g *Registry) Chart(key string) *LineChart {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.charts[key]
}

// ChartRenderer refreshes one history chart per monitored location.
type ChartRenderer struct {
	api *Client
	reg *Registry
	log *zap.Logger
}

func NewChartRenderer(api *Client, reg *Registry, log *zap.Logger) *ChartRenderer {
	return &ChartRenderer{api: api, reg: reg, log: log}
}

// Refresh redraws the canvas from a fresh 24-hour history. A failed fetch
// leaves the previous chart in place untouched; an empty result clears the
// canvas without creating a chart.
func (r *ChartRenderer) Refresh(ctx context.Context, location string, canvas Canvas) {
	docs, err := r.api.History(ctx, location, HistoryHours)
	if err != nil {
		r.log.Warn("history fetch failed",
			zap.String("location", location),
			zap.Error(err))
		return
	}
	if len(docs) == 0 {
		r.reg.Clear(canvas)
		return
	}
	r.reg.Replace(canvas, newLineChart(docs))
}
