// Package playground is the HTTP client for the Rust playground. It
// produces opaque (stdout, stderr, success) tuples for the response
// pipeline and shareable gist links for truncation notices.
package playground

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rustbot/internal/domain"
)

const defaultBaseURL = "https://play.rust-lang.org"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL exists for tests against a local server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

type executeRequest struct {
	Channel   string `json:"channel"`
	Mode      string `json:"mode"`
	Edition   string `json:"edition"`
	CrateType string `json:"crateType"`
	Tests     bool   `json:"tests"`
	Code      string `json:"code"`
	Backtrace bool   `json:"backtrace"`
}

type executeResponse struct {
	Success bool   `json:"success"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

func (c *Client) Execute(ctx context.Context, code string) (domain.CommandOutput, error) {
	req := executeRequest{
		Channel:   "stable",
		Mode:      "debug",
		Edition:   "2021",
		CrateType: "bin",
		Code:      code,
	}

	var resp executeResponse
	if err := c.post(ctx, "/execute", req, &resp); err != nil {
		return domain.CommandOutput{}, fmt.Errorf("playground execute: %w", err)
	}
	return domain.CommandOutput{
		Stdout:  resp.Stdout,
		Stderr:  resp.Stderr,
		Success: resp.Success,
	}, nil
}

type gistRequest struct {
	Code string `json:"code"`
}

type gistResponse struct {
	ID string `json:"id"`
}

// ShareLink uploads the code as a playground gist and returns the
// permalink. Called lazily by the truncator's notice producer.
func (c *Client) ShareLink(ctx context.Context, code string) (string, error) {
	var resp gistResponse
	if err := c.post(ctx, "/meta/gist", gistRequest{Code: code}, &resp); err != nil {
		return "", fmt.Errorf("playground gist: %w", err)
	}
	return fmt.Sprintf("%s/?version=stable&mode=debug&edition=2021&gist=%s", c.baseURL, resp.ID), nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
