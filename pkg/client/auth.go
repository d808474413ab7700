package client

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Admin       Admin  `json:"admin"`
	AccessToken string `json:"access_token"`
}

// Login authenticates and stores the access token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*Admin, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login",
		loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)
	return &resp.Admin, nil
}

// Me returns the authenticated admin
func (c *Client) Me(ctx context.Context) (*Admin, error) {
	var a Admin
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/auth/me", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
