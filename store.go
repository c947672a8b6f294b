package main

import (
	"context"
	"time"

	"skateway/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// latestSampleSize bounds the recent sample scanned for per-location latest
// documents. A location whose newest document falls outside the newest 100
// overall is missed; callers accept that approximation.
const latestSampleSize = 100

// Aggregations reads the sensor-aggregation collection. It never writes.
type Aggregations struct {
	db *mongo.Database
	c  *mongo.Collection
}

func newAggregations(db *mongo.Database, collection string) *Aggregations {
	return &Aggregations{db: db, c: db.Collection(collection)}
}

// Latest returns the newest document per location within the newest
// latestSampleSize documents, in encounter order.
func (s *Aggregations) Latest(ctx context.Context) ([]models.AggregationDocument, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "windowEnd", Value: -1}}).
		SetLimit(latestSampleSize)
	cur, err := s.c.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sample []models.AggregationDocument
	if err := cur.All(ctx, &sample); err != nil {
		return nil, err
	}
	return latestPerLocation(sample), nil
}

// latestPerLocation keeps the first document seen per location key. The
// sample arrives newest-first, so first seen is newest within the sample.
func latestPerLocation(sample []models.AggregationDocument) []models.AggregationDocument {
	out := make([]models.AggregationDocument, 0, len(sample))
	seen := make(map[string]bool, len(sample))
	for _, doc := range sample {
		key := doc.LocationKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, doc)
	}
	return out
}

// History returns every document whose window ended within the last hours,
// optionally restricted to one location, oldest first. No limit is applied.
func (s *Aggregations) History(ctx context.Context, location string, hours float64) ([]models.AggregationDocument, error) {
	since := sinceTimestamp(time.Now(), hours)

	opts := options.Find().SetSort(bson.D{{Key: "windowEnd", Value: 1}})
	cur, err := s.c.Find(ctx, historyFilter(since, location), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.AggregationDocument, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// sinceTimestamp formats the lower window bound in the upstream writer's
// ISO form, millisecond precision included: without the fractional part,
// "…00.500Z" compares below "…00Z" and documents inside the boundary second
// would be excluded.
func sinceTimestamp(now time.Time, hours float64) string {
	return now.UTC().
		Add(-time.Duration(hours * float64(time.Hour))).
		Format("2006-01-02T15:04:05.000Z07:00")
}

// historyFilter composes the base window predicate with an optional exact
// location match. ISO timestamps compare lexicographically, so a string
// $gte is a chronological bound. Values are bound through the document,
// never interpolated.
func historyFilter(since, location string) bson.D {
	filter := bson.D{{Key: "windowEnd", Value: bson.D{{Key: "$gte", Value: since}}}}
	if location != "" {
		filter = append(filter, bson.E{Key: "location", Value: location})
	}
	return filter
}

// Ping verifies store reachability without touching any documents.
func (s *Aggregations) Ping(ctx context.Context) error {
	return s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
