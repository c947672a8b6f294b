package main

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"skateway/models"

	"go.uber.org/zap"
)

// defaultHistoryHours is used when the hours query parameter is absent or
// not a number.
const defaultHistoryHours = 6

// aggregationSource is the store surface the handlers need. The mongo-backed
// Aggregations implements it; tests substitute a stub.
type aggregationSource interface {
	Latest(ctx context.Context) ([]models.AggregationDocument, error)
	History(ctx context.Context, location string, hours float64) ([]models.AggregationDocument, error)
	Ping(ctx context.Context) error
}

// handleHealth reports store reachability.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := a.store.Ping(ctx); err != nil {
		a.log.Error("store ping failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLatest returns the newest aggregation per location as a JSON array.
func (a *App) handleLatest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	docs, err := a.store.Latest(ctx)
	if err != nil {
		a.log.Error("latest query failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load latest aggregations"})
		return
	}
	if docs == nil {
		docs = []models.AggregationDocument{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// handleHistory returns aggregations from a recent time window, ascending
// by window end. Both query parameters are optional and coerced leniently.
func (a *App) handleHistory(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	hours := parseHours(r.URL.Query().Get("hours"))

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	docs, err := a.store.History(ctx, location, hours)
	if err != nil {
		a.log.Error("history query failed",
			zap.String("location", location),
			zap.Float64("hours", hours),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load history"})
		return
	}
	if docs == nil {
		docs = []models.AggregationDocument{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// parseHours coerces the hours query parameter, falling back to the default
// when it is absent, malformed, NaN or zero.
func parseHours(raw string) float64 {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f == 0 {
		return defaultHistoryHours
	}
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
