package fuelapi

import (
	"context"
	"encoding/json"

	"github.com/adithyanak/fuelbook/internal/daterange"
)

type ServiceRecordPayload struct {
	VehicleID   string  `json:"vehicleId" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required"`
	Description string  `json:"description,omitempty"`
}

// ListServiceRecords calls GET /serviceRecord for the range.
func (c *Client) ListServiceRecords(ctx context.Context, r daterange.Range) ([]ServiceRecord, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/serviceRecord", rangeQuery(r), &raw); err != nil {
		return nil, err
	}
	wires := decodeItems[wireServiceRecord](raw)
	out := make([]ServiceRecord, 0, len(wires))
	for _, w := range wires {
		out = append(out, normalizeServiceRecord(w))
	}
	return out, nil
}

// CreateServiceRecord calls POST /serviceRecord.
func (c *Client) CreateServiceRecord(ctx context.Context, payload ServiceRecordPayload) error {
	return c.post(ctx, "/serviceRecord", payload, nil)
}

// UpdateServiceRecord calls PUT /serviceRecord/{id}.
func (c *Client) UpdateServiceRecord(ctx context.Context, id string, payload ServiceRecordPayload) error {
	return c.put(ctx, "/serviceRecord/"+id, payload, nil)
}

// DeleteServiceRecord calls DELETE /serviceRecord/{id}.
func (c *Client) DeleteServiceRecord(ctx context.Context, id string) error {
	return c.delete(ctx, "/serviceRecord/"+id)
}
