package models

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNumeric_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Numeric
	}{
		{"number", `12.34`, Number(12.34)},
		{"integer", `7`, Number(7)},
		{"numeric string", `"3.5"`, Number(3.5)},
		{"null", `null`, Numeric{}},
		{"non-numeric string", `"thick"`, Numeric{}},
		{"object", `{"v":1}`, Numeric{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n Numeric
			if err := json.Unmarshal([]byte(tc.in), &n); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tc.in, err)
			}
			if n != tc.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tc.in, n, tc.want)
			}
		})
	}
}

func TestNumeric_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Number(2.5))
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(b) != "2.5" {
		t.Errorf("valid value marshals to %s, want 2.5", b)
	}

	b, err = json.Marshal(Numeric{})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(b) != "null" {
		t.Errorf("invalid value marshals to %s, want null", b)
	}
}

func TestAggregationDocument_BSONLeniency(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"location":              "NAC",
		"windowEnd":             "2026-01-05T14:30:00Z",
		"avgIceThickness":       "31.2", // numeric string coerces
		"avgSurfaceTemperature": int32(-4),
		"maxSnowAccumulation":   "lots", // malformed, must not error
		"safetyStatus":          "Safe",
	})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var doc AggregationDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	if got, want := doc.AvgIceThickness, Number(31.2); got != want {
		t.Errorf("avgIceThickness = %+v, want %+v", got, want)
	}
	if got, want := doc.AvgSurfaceTemperature, Number(-4); got != want {
		t.Errorf("avgSurfaceTemperature = %+v, want %+v", got, want)
	}
	if doc.MaxSnowAccumulation.Valid {
		t.Errorf("maxSnowAccumulation = %+v, want invalid", doc.MaxSnowAccumulation)
	}
	if doc.ReadingCount != nil {
		t.Errorf("readingCount = %v, want nil when absent", *doc.ReadingCount)
	}
}

func TestAggregationDocument_ReadingCountZero(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"location": "NAC", "readingCount": int64(0)})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	var doc AggregationDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if doc.ReadingCount == nil || *doc.ReadingCount != 0 {
		t.Errorf("readingCount = %v, want explicit zero", doc.ReadingCount)
	}
}

func TestLocationKey(t *testing.T) {
	if got := (AggregationDocument{Location: "Dows Lake"}).LocationKey(); got != "Dows Lake" {
		t.Errorf("LocationKey() = %q, want Dows Lake", got)
	}
	if got := (AggregationDocument{}).LocationKey(); got != UnknownLocation {
		t.Errorf("LocationKey() = %q, want %q", got, UnknownLocation)
	}
}
