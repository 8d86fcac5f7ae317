package commands

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const sourceURL = "https://github.com/rust-community/rustbot"

type HelpCommand struct {
	router *Router
	prefix string
}

func NewHelpCommand(router *Router, prefix string) *HelpCommand {
	return &HelpCommand{router: router, prefix: prefix}
}

func (h *HelpCommand) Name() string        { return "help" }
func (h *HelpCommand) Aliases() []string   { return nil }
func (h *HelpCommand) Description() string { return "List available commands" }
func (h *HelpCommand) Help() string        { return "" }

func (h *HelpCommand) Handle(ctx context.Context, c *Context) error {
	var b strings.Builder
	b.WriteString("Commands (also available as slash commands):\n")
	for _, cmd := range h.router.Catalog() {
		fmt.Fprintf(&b, "`%s%s` - %s\n", h.prefix, cmd.Name(), cmd.Description())
	}
	return c.Say(ctx, b.String())
}

type UptimeCommand struct {
	start time.Time
}

func NewUptimeCommand(start time.Time) *UptimeCommand {
	return &UptimeCommand{start: start}
}

func (u *UptimeCommand) Name() string        { return "uptime" }
func (u *UptimeCommand) Aliases() []string   { return nil }
func (u *UptimeCommand) Description() string { return "Show how long the bot has been running" }
func (u *UptimeCommand) Help() string        { return "" }

func (u *UptimeCommand) Handle(ctx context.Context, c *Context) error {
	return c.Say(ctx, "Uptime: "+time.Since(u.start).Round(time.Second).String())
}

type SourceCommand struct{}

func (SourceCommand) Name() string        { return "source" }
func (SourceCommand) Aliases() []string   { return nil }
func (SourceCommand) Description() string { return "Link the bot's source code" }
func (SourceCommand) Help() string        { return "" }

func (SourceCommand) Handle(ctx context.Context, c *Context) error {
	return c.Say(ctx, "<"+sourceURL+">")
}

// GoCommand answers the eternal question.
type GoCommand struct{}

func (GoCommand) Name() string        { return "go" }
func (GoCommand) Aliases() []string   { return nil }
func (GoCommand) Description() string { return "Evaluate Go code" }
func (GoCommand) Help() string        { return "" }

func (GoCommand) Handle(ctx context.Context, c *Context) error {
	return c.Say(ctx, "No")
}
