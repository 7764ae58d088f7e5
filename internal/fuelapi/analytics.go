package fuelapi

import (
	"context"
	"encoding/json"

	"github.com/adithyanak/fuelbook/internal/daterange"
)

// AnalyticsKind names the server-side aggregation to fetch.
type AnalyticsKind string

const (
	AnalyticsVehicleCategory AnalyticsKind = "vehicleCategory"
	AnalyticsFuelPrice       AnalyticsKind = "fuelPrice"
	AnalyticsFuelType        AnalyticsKind = "fuelType"
)

// Analytics calls GET /analytics/{kind} for the range. Aggregation happens
// server-side; the client only renders the returned series.
func (c *Client) Analytics(ctx context.Context, kind AnalyticsKind, r daterange.Range) ([]AnalyticsPoint, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/analytics/"+string(kind), rangeQuery(r), &raw); err != nil {
		return nil, err
	}
	wires := decodeItems[wireAnalyticsPoint](raw)
	out := make([]AnalyticsPoint, 0, len(wires))
	for _, w := range wires {
		out = append(out, normalizeAnalyticsPoint(w))
	}
	return out, nil
}
