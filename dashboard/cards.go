// Package dashboard polls the skateway API and renders per-location status
// cards and 24-hour history charts onto pluggable display surfaces.
package dashboard

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"skateway/models"

	"go.uber.org/zap"
)

// Locations monitored along the canal, in display priority order.
var Locations = []string{"Dows Lake", "Fifth Avenue", "NAC"}

// unmatchedPriority sorts locations outside the fixed list after all known
// ones.
const unmatchedPriority = 999

// dash is the placeholder for values that are missing or malformed.
const dash = "--"

// Badge is the safety classification rendered on a status card.
type Badge struct {
	Class string // "safe", "warning" or "danger"
	Label string // raw status text, case preserved
}

// StatusCard is one fully formatted per-location card.
type StatusCard struct {
	Location     string
	WindowEnd    string // local hour:minute, or a dash
	Badge        Badge
	IceThickness string
	SurfaceTemp  string
	MaxSnow      string
	ReadingCount string
}

// Board is the surface cards are rendered onto. Render replaces every
// previously shown card; ShowError and ShowEmpty replace them with a fixed
// placeholder.
type Board interface {
	Render(cards []StatusCard, updated time.Time)
	ShowError()
	ShowEmpty()
}

// CardRenderer drives one latest-status refresh per tick. It keeps no state
// between ticks besides the board it owns.
type CardRenderer struct {
	api   *Client
	board Board
	log   *zap.Logger
}

func NewCardRenderer(api *Client, board Board, log *zap.Logger) *CardRenderer {
	return &CardRenderer{api: api, board: board, log: log}
}

// Refresh fetches the latest set and redraws the board. Failures surface as
// placeholders; nothing is retried within a tick.
func (r *CardRenderer) Refresh(ctx context.Context) {
	docs, err := r.api.Latest(ctx)
	if err != nil {
		r.log.Warn("latest fetch failed", zap.Error(err))
		r.board.ShowError()
		return
	}
	if len(docs) == 0 {
		r.board.ShowEmpty()
		return
	}

	sortByPriority(docs)
	cards := make([]StatusCard, len(docs))
	for i, d := range docs {
		cards[i] = buildCard(d)
	}
	r.board.Render(cards, time.Now())
}

// sortByPriority orders documents by the fixed location list; unmatched
// locations follow, alphabetically.
func sortByPriority(docs []models.AggregationDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		pi, pj := locationRank(docs[i].Location), locationRank(docs[j].Location)
		if pi != pj {
			return pi < pj
		}
		return docs[i].Location < docs[j].Location
	})
}

func locationRank(location string) int {
	for i, l := range Locations {
		if l == location {
			return i
		}
	}
	return unmatchedPriority
}

func buildCard(d models.AggregationDocument) StatusCard {
	return StatusCard{
		Location:     d.LocationKey(),
		WindowEnd:    clockLabel(d.WindowEnd),
		Badge:        badgeFor(d.SafetyStatus),
		IceThickness: numberLabel(d.AvgIceThickness),
		SurfaceTemp:  numberLabel(d.AvgSurfaceTemperature),
		MaxSnow:      numberLabel(d.MaxSnowAccumulation),
		ReadingCount: countLabel(d.ReadingCount),
	}
}

// badgeFor classifies a free-text status into the three badge styles. The
// label keeps the original casing; only classification lower-cases, and
// unrecognized statuses fall back to the warning style.
func badgeFor(status string) Badge {
	label := status
	if label == "" {
		label = "Unknown"
	}

	class := "warning"
	switch strings.ToLower(status) {
	case "safe":
		class = "safe"
	case "warning", "caution":
		class = "warning"
	case "unsafe", "closed":
		class = "danger"
	}
	return Badge{Class: class, Label: label}
}

func numberLabel(n models.Numeric) string {
	if !n.Valid {
		return dash
	}
	return strconv.FormatFloat(n.Value, 'f', 1, 64)
}

// countLabel renders a dash only when the count is absent; zero is real.
func countLabel(n *int64) string {
	if n == nil {
		return dash
	}
	return strconv.FormatInt(*n, 10)
}

// clockLabel renders an ISO window-end timestamp as local hour:minute.
func clockLabel(windowEnd string) string {
	t, ok := parseWindowEnd(windowEnd)
	if !ok {
		return dash
	}
	return t.Local().Format("15:04")
}

func parseWindowEnd(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
