package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"skateway/models"

	"go.uber.org/zap"
)

// threadSafeBoard guards the recordingBoard against the tick's fan-out.
type threadSafeBoard struct {
	mu sync.Mutex
	recordingBoard
}

func (b *threadSafeBoard) Render(cards []StatusCard, updated time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.recordingBoard.Render(cards, updated)
}

func TestPoller_TickDrivesAllRefreshes(t *testing.T) {
	var mu sync.Mutex
	historyLocations := make(map[string]bool)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/latest"):
			_ = json.NewEncoder(w).Encode([]models.AggregationDocument{
				{Location: "NAC", SafetyStatus: "Safe"},
			})
		case strings.HasSuffix(r.URL.Path, "/history"):
			mu.Lock()
			historyLocations[r.URL.Query().Get("location")] = true
			mu.Unlock()
			_ = json.NewEncoder(w).Encode([]models.AggregationDocument{
				{WindowEnd: "2026-01-05T12:00:00Z", AvgIceThickness: models.Number(30)},
			})
		}
	}))
	defer srv.Close()

	api := NewClient(srv.URL)
	board := &threadSafeBoard{}
	reg := NewRegistry()

	canvases := make(map[string]Canvas, len(Locations))
	for _, loc := range Locations {
		canvases[loc] = &fakeCanvas{key: loc}
	}

	p := NewPoller(
		NewCardRenderer(api, board, zap.NewNop()),
		NewChartRenderer(api, reg, zap.NewNop()),
		canvases,
		DefaultRefreshInterval,
		zap.NewNop(),
	)

	// One tick, driven directly; it must complete all four sub-tasks before
	// returning.
	p.tick()

	if board.renders != 1 {
		t.Errorf("board renders = %d, want 1", board.renders)
	}
	for _, loc := range Locations {
		if !historyLocations[loc] {
			t.Errorf("no history fetch observed for %q", loc)
		}
		if reg.Chart(loc) == nil {
			t.Errorf("no chart installed for %q", loc)
		}
	}
}
