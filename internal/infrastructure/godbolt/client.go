// Package godbolt is the HTTP client for Compiler Explorer.
package godbolt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rustbot/internal/domain"
)

const (
	defaultBaseURL  = "https://godbolt.org"
	defaultCompiler = "r1770" // rustc stable
)

type Client struct {
	baseURL  string
	compiler string
	http     *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:  defaultBaseURL,
		compiler: defaultCompiler,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

type compileRequest struct {
	Source  string         `json:"source"`
	Options compileOptions `json:"options"`
}

type compileOptions struct {
	UserArguments string `json:"userArguments"`
}

type compileResponse struct {
	Code   int          `json:"code"`
	Asm    []outputLine `json:"asm"`
	Stderr []outputLine `json:"stderr"`
}

type outputLine struct {
	Text string `json:"text"`
}

// Compile sends the code through Compiler Explorer and returns the
// generated assembly as stdout, compiler diagnostics as stderr.
func (c *Client) Compile(ctx context.Context, code string) (domain.CommandOutput, error) {
	payload, err := json.Marshal(compileRequest{
		Source:  code,
		Options: compileOptions{UserArguments: "-Copt-level=3"},
	})
	if err != nil {
		return domain.CommandOutput{}, err
	}

	url := fmt.Sprintf("%s/api/compiler/%s/compile", c.baseURL, c.compiler)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return domain.CommandOutput{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.CommandOutput{}, fmt.Errorf("godbolt compile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.CommandOutput{}, fmt.Errorf("godbolt compile: unexpected status %s", resp.Status)
	}

	var body compileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.CommandOutput{}, fmt.Errorf("godbolt compile: %w", err)
	}

	return domain.CommandOutput{
		Stdout:  joinLines(body.Asm),
		Stderr:  joinLines(body.Stderr),
		Success: body.Code == 0,
	}, nil
}

func joinLines(lines []outputLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}
