// Package crates is the HTTP client for the crates.io registry API.
package crates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"rustbot/internal/usecase/commands"
)

const defaultBaseURL = "https://crates.io/api/v1"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

type crateResponse struct {
	Crate struct {
		Name          string `json:"name"`
		MaxVersion    string `json:"max_version"`
		Description   string `json:"description"`
		Documentation string `json:"documentation"`
		Downloads     int64  `json:"downloads"`
	} `json:"crate"`
}

func (c *Client) Lookup(ctx context.Context, name string) (commands.Crate, error) {
	endpoint := fmt.Sprintf("%s/crates/%s", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return commands.Crate{}, err
	}
	// crates.io requires an identifying user agent.
	req.Header.Set("User-Agent", "rustbot (community discord bot)")

	resp, err := c.http.Do(req)
	if err != nil {
		return commands.Crate{}, fmt.Errorf("crates.io lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return commands.Crate{}, fmt.Errorf("crate `%s` not found", name)
	}
	if resp.StatusCode != http.StatusOK {
		return commands.Crate{}, fmt.Errorf("crates.io lookup: unexpected status %s", resp.Status)
	}

	var body crateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return commands.Crate{}, fmt.Errorf("crates.io lookup: %w", err)
	}

	return commands.Crate{
		Name:          body.Crate.Name,
		Version:       body.Crate.MaxVersion,
		Description:   body.Crate.Description,
		Documentation: body.Crate.Documentation,
		Downloads:     body.Crate.Downloads,
	}, nil
}
