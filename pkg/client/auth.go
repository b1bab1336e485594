package client

import (
	"context"
	"fmt"
	"net/http"
)

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// Login authenticates with a username and password and stores the returned
// bearer token for subsequent requests.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	req := LoginRequest{
		Username: username,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/login", req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	var result LoginResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	c.SetAuthToken(result.Token)

	return &result, nil
}

// Logout clears the stored bearer token. Tokens are opaque server-side
// sessions; dropping the client copy is sufficient once it expires.
func (c *Client) Logout() {
	c.SetAuthToken("")
}
