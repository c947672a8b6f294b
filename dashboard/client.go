package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"skateway/models"
)

// Client reads the skateway API over HTTP.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Latest fetches the newest aggregation per location.
func (c *Client) Latest(ctx context.Context) ([]models.AggregationDocument, error) {
	return c.getDocs(ctx, "/api/latest", nil)
}

// History fetches one location's aggregations from the last hours, oldest
// first. An empty location fetches all locations.
func (c *Client) History(ctx context.Context, location string, hours int) ([]models.AggregationDocument, error) {
	q := url.Values{}
	q.Set("hours", strconv.Itoa(hours))
	if location != "" {
		q.Set("location", location)
	}
	return c.getDocs(ctx, "/api/history", q)
}

func (c *Client) getDocs(ctx context.Context, path string, q url.Values) ([]models.AggregationDocument, error) {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: non-2xx status %s", path, resp.Status)
	}

	var docs []models.AggregationDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		// A successful response whose body is empty, or valid JSON that is
		// not an array, is a shape anomaly rather than a fetch failure:
		// callers treat it like an empty result.
		if len(bytes.TrimSpace(data)) == 0 || json.Valid(data) {
			return []models.AggregationDocument{}, nil
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return docs, nil
}
