package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a minimal Discord REST client covering exactly the surface
// the bot consumes.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: apiBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

type messageCreate struct {
	Content string `json:"content"`
}

func (c *Client) CreateMessage(ctx context.Context, channelID, content string) (Message, error) {
	var msg Message
	err := c.do(ctx, http.MethodPost, "/channels/"+channelID+"/messages", messageCreate{Content: content}, &msg, "")
	return msg, err
}

func (c *Client) EditMessage(ctx context.Context, channelID, messageID, content string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	return c.do(ctx, http.MethodPatch, path, messageCreate{Content: content}, nil, "")
}

func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", channelID, messageID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "")
}

// CreateReaction attaches emoji to a message. emoji is either a unicode
// character or a "name:id" custom emoji reference.
func (c *Client) CreateReaction(ctx context.Context, channelID, messageID, emoji string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s/@me",
		channelID, messageID, url.PathEscape(emoji))
	return c.do(ctx, http.MethodPut, path, nil, nil, "")
}

func (c *Client) GuildEmojis(ctx context.Context, guildID string) ([]Emoji, error) {
	var emojis []Emoji
	err := c.do(ctx, http.MethodGet, "/guilds/"+guildID+"/emojis", nil, &emojis, "")
	return emojis, err
}

// AddMemberRole grants a role with an audit-log reason.
func (c *Client) AddMemberRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	path := fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
	return c.do(ctx, http.MethodPut, path, nil, nil, reason)
}

// RegisterGuildCommands overwrites the guild's slash command set.
func (c *Client) RegisterGuildCommands(ctx context.Context, appID, guildID string, cmds []SlashCommand) error {
	path := fmt.Sprintf("/applications/%s/guilds/%s/commands", appID, guildID)
	return c.do(ctx, http.MethodPut, path, cmds, nil, "")
}

type interactionResponse struct {
	Type int                     `json:"type"`
	Data interactionResponseData `json:"data"`
}

type interactionResponseData struct {
	Content string `json:"content"`
}

// respondTypeMessage answers an interaction with a visible message.
const respondTypeMessage = 4

// RespondToInteraction sends the initial interaction response.
func (c *Client) RespondToInteraction(ctx context.Context, interactionID, token, content string) error {
	path := fmt.Sprintf("/interactions/%s/%s/callback", interactionID, token)
	return c.do(ctx, http.MethodPost, path, interactionResponse{
		Type: respondTypeMessage,
		Data: interactionResponseData{Content: content},
	}, nil, "")
}

// CreateFollowup posts an additional message on an already-answered
// interaction and returns it, so it can be deleted later.
func (c *Client) CreateFollowup(ctx context.Context, appID, token, content string) (Message, error) {
	var msg Message
	path := fmt.Sprintf("/webhooks/%s/%s", appID, token)
	err := c.do(ctx, http.MethodPost, path, messageCreate{Content: content}, &msg, "")
	return msg, err
}

// OriginalResponse fetches the message created by the initial
// interaction response.
func (c *Client) OriginalResponse(ctx context.Context, appID, token string) (Message, error) {
	var msg Message
	path := fmt.Sprintf("/webhooks/%s/%s/messages/@original", appID, token)
	err := c.do(ctx, http.MethodGet, path, nil, &msg, "")
	return msg, err
}

// DeleteFollowup removes an interaction response or followup message.
func (c *Client) DeleteFollowup(ctx context.Context, appID, token, messageID string) error {
	path := fmt.Sprintf("/webhooks/%s/%s/messages/%s", appID, token, messageID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, "")
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, auditReason string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auditReason != "" {
		req.Header.Set("X-Audit-Log-Reason", url.PathEscape(auditReason))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord api %s %s: %s: %s", method, path, resp.Status, bytes.TrimSpace(data))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
