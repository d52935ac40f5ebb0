// Package idsdk is the Go client for the Gatehouse identity service. It
// mirrors the service's wire types so handlers and clients cannot drift.
package idsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a Gatehouse instance.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.postJSON(ctx, "/v1/auth/login", LoginRequest{Email: email, Password: password}, "", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a prior token pair for a new one. The prior pair is
// dead afterwards regardless of outcome.
func (c *Client) Refresh(ctx context.Context, prior AuthResponse) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.postJSON(ctx, "/v1/auth/refresh", prior, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns its first token pair. Rejected
// profiles come back as *ValidationError.
func (c *Client) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.postJSON(ctx, "/v1/auth/register", RegisterRequest{Email: email, Password: password}, "", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UserInfo returns the profile for the token's subject.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (*UserInfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var out UserInfoResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddRole grants a role to a user. Requires an admin token.
func (c *Client) AddRole(ctx context.Context, accessToken, userID, role string) error {
	path := "/v1/users/" + userID + "/roles"
	return c.postJSON(ctx, path, AddRoleRequest{Role: role}, accessToken, nil)
}

// Healthy reports whether the service answers its readiness probe.
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/readyz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, accessToken string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
