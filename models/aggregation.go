package models

import (
	"bytes"
	"encoding/json"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// UnknownLocation is substituted for documents whose location is absent.
const UnknownLocation = "Unknown"

// AggregationDocument is one pre-computed summary for a location over a
// fixed time window. Documents are written upstream and are read-only here;
// field names and tags match the store schema exactly.
type AggregationDocument struct {
	Location  string `bson:"location,omitempty"  json:"location,omitempty"`
	WindowEnd string `bson:"windowEnd,omitempty" json:"windowEnd,omitempty"` // ISO-8601; the store sorts and range-filters on it

	AvgIceThickness       Numeric `bson:"avgIceThickness"       json:"avgIceThickness"`
	AvgSurfaceTemperature Numeric `bson:"avgSurfaceTemperature" json:"avgSurfaceTemperature"`
	MaxSnowAccumulation   Numeric `bson:"maxSnowAccumulation"   json:"maxSnowAccumulation"`

	SafetyStatus string `bson:"safetyStatus,omitempty" json:"safetyStatus,omitempty"`
	ReadingCount *int64 `bson:"readingCount,omitempty" json:"readingCount,omitempty"`
}

// LocationKey returns the location, or UnknownLocation when it is empty.
func (d AggregationDocument) LocationKey() string {
	if d.Location == "" {
		return UnknownLocation
	}
	return d.Location
}

// Numeric is a measurement that may be missing or malformed in storage.
// Decoding never fails: bson doubles, ints and numeric strings become valid
// values, anything else becomes invalid. It marshals to JSON as a number or
// null.
type Numeric struct {
	Value float64
	Valid bool
}

// Number wraps a known-good value.
func Number(v float64) Numeric { return Numeric{Value: v, Valid: true} }

func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Numeric{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Numeric{Value: f, Valid: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Numeric{Value: f, Valid: true}
			return nil
		}
	}
	*n = Numeric{}
	return nil
}

func (n Numeric) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !n.Valid {
		return bsontype.Null, nil, nil
	}
	return bsontype.Double, bsoncore.AppendDouble(nil, n.Value), nil
}

func (n *Numeric) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		*n = Numeric{Value: rv.Double(), Valid: true}
	case bsontype.Int32:
		*n = Numeric{Value: float64(rv.Int32()), Valid: true}
	case bsontype.Int64:
		*n = Numeric{Value: float64(rv.Int64()), Valid: true}
	case bsontype.String:
		f, err := strconv.ParseFloat(rv.StringValue(), 64)
		if err != nil {
			*n = Numeric{}
			return nil
		}
		*n = Numeric{Value: f, Valid: true}
	default:
		*n = Numeric{}
	}
	return nil
}
