package main

import (
	"reflect"
	"testing"
	"time"

	"skateway/models"

	"go.mongodb.org/mongo-driver/bson"
)

func doc(location, windowEnd string) models.AggregationDocument {
	return models.AggregationDocument{Location: location, WindowEnd: windowEnd}
}

func TestLatestPerLocation_KeepsNewestPerLocation(t *testing.T) {
	// Newest-first, the order the store hands back the sample.
	sample := []models.AggregationDocument{
		doc("NAC", "2026-01-05T14:00:00Z"),
		doc("Dows Lake", "2026-01-05T13:30:00Z"),
		doc("NAC", "2026-01-05T13:00:00Z"),
		doc("Fifth Avenue", "2026-01-05T12:30:00Z"),
		doc("Dows Lake", "2026-01-05T12:00:00Z"),
	}

	got := latestPerLocation(sample)
	if len(got) != 3 {
		t.Fatalf("got %d documents, want 3", len(got))
	}

	want := map[string]string{
		"NAC":          "2026-01-05T14:00:00Z",
		"Dows Lake":    "2026-01-05T13:30:00Z",
		"Fifth Avenue": "2026-01-05T12:30:00Z",
	}
	for _, d := range got {
		if want[d.Location] != d.WindowEnd {
			t.Errorf("%s: windowEnd = %s, want %s", d.Location, d.WindowEnd, want[d.Location])
		}
	}
}

func TestLatestPerLocation_EmptyLocationIsUnknown(t *testing.T) {
	sample := []models.AggregationDocument{
		doc("", "2026-01-05T14:00:00Z"),
		doc("", "2026-01-05T13:00:00Z"),
		doc("NAC", "2026-01-05T12:00:00Z"),
	}

	got := latestPerLocation(sample)
	if len(got) != 2 {
		t.Fatalf("got %d documents, want 2 (empty locations share the Unknown key)", len(got))
	}
	if got[0].WindowEnd != "2026-01-05T14:00:00Z" {
		t.Errorf("Unknown representative windowEnd = %s, want the newest", got[0].WindowEnd)
	}
}

func TestLatestPerLocation_Empty(t *testing.T) {
	got := latestPerLocation(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", got)
	}
}

func TestHistoryFilter_WithoutLocation(t *testing.T) {
	got := historyFilter("2026-01-05T08:00:00Z", "")
	want := bson.D{
		{Key: "windowEnd", Value: bson.D{{Key: "$gte", Value: "2026-01-05T08:00:00Z"}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("historyFilter = %v, want %v", got, want)
	}
}

func TestHistoryFilter_WithLocation(t *testing.T) {
	got := historyFilter("2026-01-05T08:00:00Z", "Dows Lake")
	want := bson.D{
		{Key: "windowEnd", Value: bson.D{{Key: "$gte", Value: "2026-01-05T08:00:00Z"}}},
		{Key: "location", Value: "Dows Lake"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("historyFilter = %v, want %v", got, want)
	}
}

func TestSinceTimestamp_MillisecondPrecision(t *testing.T) {
	now := time.Date(2026, 1, 5, 14, 0, 0, 500*int(time.Millisecond), time.UTC)
	got := sinceTimestamp(now, 6)

	if want := "2026-01-05T08:00:00.500Z"; got != want {
		t.Errorf("sinceTimestamp = %q, want %q", got, want)
	}

	// The bound must sort at or below any in-window ISO timestamp,
	// fractional seconds included.
	if inWindow := "2026-01-05T08:00:00.500Z"; got > inWindow {
		t.Errorf("bound %q sorts above in-window %q", got, inWindow)
	}
}

func TestParseHours(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", defaultHistoryHours},
		{"abc", defaultHistoryHours},
		{"12abc", defaultHistoryHours},
		{"0", defaultHistoryHours},
		{"NaN", defaultHistoryHours},
		{"24", 24},
		{"1.5", 1.5},
		{"-2", -2}, // negative passes through; it simply matches nothing
	}
	for _, tc := range cases {
		if got := parseHours(tc.in); got != tc.want {
			t.Errorf("parseHours(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
