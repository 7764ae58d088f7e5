package fuelapi

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/adithyanak/fuelbook/internal/daterange"
)

// rangeQuery encodes the API's date-range boundary: 14-digit concatenated
// YYYYMMDDHHMMSS values with fixed start-of-day and end-of-day suffixes.
func rangeQuery(r daterange.Range) url.Values {
	q := url.Values{}
	q.Set("startDate", r.Start.Time().Format("20060102")+"000000")
	q.Set("endDate", r.End.Time().Format("20060102")+"235959")
	return q
}

// FuelRecordPayload is the create/update body. CostPerLitre is included for
// the server's benefit but is always the derived amount/litres value.
type FuelRecordPayload struct {
	VehicleID    string  `json:"vehicleId" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Date         string  `json:"date" validate:"required"`
	CostPerLitre string  `json:"costPerLitre"`
	PaymentType  string  `json:"paymentType" validate:"required"`
	Litres       float64 `json:"litres" validate:"required,gt=0"`
	FuelType     string  `json:"fuelType" validate:"required"`
}

// ListFuelRecords calls GET /fuel for records dated within the range,
// inclusive of both endpoint days.
func (c *Client) ListFuelRecords(ctx context.Context, r daterange.Range) ([]FuelRecord, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/fuel", rangeQuery(r), &raw); err != nil {
		return nil, err
	}
	wires := decodeItems[wireFuelRecord](raw)
	out := make([]FuelRecord, 0, len(wires))
	for _, w := range wires {
		out = append(out, normalizeFuelRecord(w))
	}
	return out, nil
}

// CreateFuelRecord calls POST /fuel.
func (c *Client) CreateFuelRecord(ctx context.Context, payload FuelRecordPayload) error {
	return c.post(ctx, "/fuel", payload, nil)
}

// UpdateFuelRecord calls PUT /fuel/{id}.
func (c *Client) UpdateFuelRecord(ctx context.Context, id string, payload FuelRecordPayload) error {
	return c.put(ctx, "/fuel/"+id, payload, nil)
}

// DeleteFuelRecord calls DELETE /fuel/{id}.
func (c *Client) DeleteFuelRecord(ctx context.Context, id string) error {
	return c.delete(ctx, "/fuel/"+id)
}
