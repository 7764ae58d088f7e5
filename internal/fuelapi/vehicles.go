package fuelapi

import (
	"context"
	"encoding/json"
)

type VehiclePayload struct {
	Name          string `json:"name" validate:"required"`
	CategoryID    string `json:"categoryId,omitempty"`
	VehicleNumber string `json:"vehicleNumber,omitempty"`
}

// ListVehicles calls GET /vehicle. Vehicles are reference data and are not
// date-bounded.
func (c *Client) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/vehicle", nil, &raw); err != nil {
		return nil, err
	}
	wires := decodeItems[wireVehicle](raw)
	out := make([]Vehicle, 0, len(wires))
	for _, w := range wires {
		out = append(out, normalizeVehicle(w))
	}
	return out, nil
}

// CreateVehicle calls POST /vehicle.
func (c *Client) CreateVehicle(ctx context.Context, payload VehiclePayload) error {
	return c.post(ctx, "/vehicle", payload, nil)
}

// UpdateVehicle calls PUT /vehicle/{id}.
func (c *Client) UpdateVehicle(ctx context.Context, id string, payload VehiclePayload) error {
	return c.put(ctx, "/vehicle/"+id, payload, nil)
}

// DeleteVehicle calls DELETE /vehicle/{id}.
func (c *Client) DeleteVehicle(ctx context.Context, id string) error {
	return c.delete(ctx, "/vehicle/"+id)
}
