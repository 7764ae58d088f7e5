package fuelapi

import (
	"context"
	"encoding/json"
)

type CategoryPayload struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// ListCategories calls GET /vehicleCategory.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/vehicleCategory", nil, &raw); err != nil {
		return nil, err
	}
	wires := decodeItems[wireCategory](raw)
	out := make([]Category, 0, len(wires))
	for _, w := range wires {
		out = append(out, normalizeCategory(w))
	}
	return out, nil
}

// CreateCategory calls POST /vehicleCategory.
func (c *Client) CreateCategory(ctx context.Context, payload CategoryPayload) error {
	return c.post(ctx, "/vehicleCategory", payload, nil)
}

// UpdateCategory calls PUT /vehicleCategory/{id}.
func (c *Client) UpdateCategory(ctx context.Context, id string, payload CategoryPayload) error {
	return c.put(ctx, "/vehicleCategory/"+id, payload, nil)
}

// DeleteCategory calls DELETE /vehicleCategory/{id}.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "/vehicleCategory/"+id)
}
