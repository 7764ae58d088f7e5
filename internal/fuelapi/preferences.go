package fuelapi

import "context"

// GetPreferences calls GET /preferences. A missing preferences document is
// not an error; zero values mean no defaults are set.
func (c *Client) GetPreferences(ctx context.Context) (Preferences, error) {
	var out Preferences
	if err := c.get(ctx, "/preferences", nil, &out); err != nil {
		return Preferences{}, err
	}
	return out, nil
}

// SavePreferences calls POST /preferences, which upserts the full document.
func (c *Client) SavePreferences(ctx context.Context, prefs Preferences) error {
	return c.post(ctx, "/preferences", prefs, nil)
}
