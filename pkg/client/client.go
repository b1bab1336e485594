// Package client provides a Go HTTP client for programmatic access to the
// jot API.
//
// The client mirrors the server's endpoint structure with strongly-typed
// methods: note listing, retrieval, creation, update and deletion, user
// registration, and login. Request and response bodies use the same
// [github.com/jotpad/jot/pkg/models] entities as the server, so type safety
// holds across the API boundary.
//
// Authentication is token based: a successful [Client.Login] stores the
// returned bearer token and the client includes it in the Authorization
// header of every subsequent request. Read endpoints work without a token.
//
// Client instances are safe for concurrent use by multiple goroutines once
// authenticated; SetAuthToken and Login must not race other calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jotpad/jot/pkg/models"
)

// Client provides typed access to the jot REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

// NewClient creates a new jot API client.
//
// The baseURL should include the protocol and host (e.g.
// "http://localhost:8080") without a trailing slash or API path prefix.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetAuthToken sets the bearer token sent with subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// doRequest performs an HTTP request with proper headers.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	return c.httpClient.Do(req)
}

// decodeResponse decodes the JSON response into the target struct.
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Health checks the health status of the server.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// Note operations

// NoteRequest is the request body for creating a note.
type NoteRequest struct {
	Content   string `json:"content"`
	Important bool   `json:"important,omitempty"`
}

// ListNotes retrieves all notes in insertion order.
func (c *Client) ListNotes(ctx context.Context) ([]*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/notes", nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetNote retrieves a single note by id.
func (c *Client) GetNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/notes/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateNote creates a note owned by the authenticated user. Requires a
// prior Login.
func (c *Client) CreateNote(ctx context.Context, content string, important bool) (*models.Note, error) {
	req := NoteRequest{Content: content, Important: important}
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/notes", req)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateNote applies a partial update to a note.
func (c *Client) UpdateNote(ctx context.Context, id models.NoteID, patch models.NotePatch) (*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/api/notes/"+id.String(), patch)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteNote deletes a note by id. Deleting an absent note succeeds.
func (c *Client) DeleteNote(ctx context.Context, id models.NoteID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/notes/"+id.String(), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// User operations

// CreateUser registers a new user account.
func (c *Client) CreateUser(ctx context.Context, username, name, password string) (*models.User, error) {
	req := CreateUserRequest{
		Username: username,
		Name:     name,
		Password: password,
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users", req)
	if err != nil {
		return nil, err
	}

	var result models.User
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListUsers retrieves all users. Credential fields are never present in the
// response.
func (c *Client) ListUsers(ctx context.Context) ([]*models.User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}

	var result []*models.User
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}
