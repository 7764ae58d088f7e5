package fuelapi

import (
	"context"
	"errors"
)

// LoginResult is the payload of a successful token exchange.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Login exchanges an identity-provider ID token for an API session token via
// POST /user/login. The client itself carries no token yet at this point.
func (c *Client) Login(ctx context.Context, idToken string) (LoginResult, error) {
	if idToken == "" {
		return LoginResult{}, errors.New("id token is empty")
	}
	body := struct {
		IDToken string `json:"idToken"`
	}{IDToken: idToken}

	var out LoginResult
	if err := c.post(ctx, "/user/login", body, &out); err != nil {
		return LoginResult{}, err
	}
	if out.Token == "" {
		return LoginResult{}, errors.New("login response carried no token")
	}
	return out, nil
}
