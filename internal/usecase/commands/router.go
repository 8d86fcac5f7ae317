package commands

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"rustbot/internal/domain"
	"rustbot/internal/usecase/ack"
)

type Router struct {
	prefix             string
	additionalPrefixes []string
	cmdIndex           map[string]Command
	catalog            []Command
	ack                *ack.Controller
	log                *zap.Logger
}

func NewRouter(prefix string, additionalPrefixes []string, ackCtl *ack.Controller, log *zap.Logger) *Router {
	return &Router{
		prefix:             prefix,
		additionalPrefixes: additionalPrefixes,
		cmdIndex:           make(map[string]Command),
		ack:                ackCtl,
		log:                log,
	}
}

func (r *Router) Register(cmd Command) {
	r.cmdIndex[strings.ToLower(cmd.Name())] = cmd
	for _, alias := range cmd.Aliases() {
		r.cmdIndex[strings.ToLower(alias)] = cmd
	}
	r.catalog = append(r.catalog, cmd)
}

// Catalog lists registered commands in registration order, once each.
func (r *Router) Catalog() []Command {
	return append([]Command(nil), r.catalog...)
}

// HandleMessage routes a legacy prefix invocation. Messages without a
// recognized prefix or command are ignored. Command errors never escape:
// execution failures go to the acknowledgment controller's failure path,
// everything else to the generic error reporter.
func (r *Router) HandleMessage(ctx context.Context, msg domain.Message, replier domain.Replier) {
	text := strings.TrimSpace(msg.Content)
	rest, ok := r.stripPrefix(text)
	if !ok {
		return
	}

	name, raw := splitCommand(rest)
	if name == "" {
		return
	}
	cmd, ok := r.cmdIndex[strings.ToLower(name)]
	if !ok {
		return
	}

	r.log.Info("prefix command",
		zap.String("author", msg.Username),
		zap.String("command", cmd.Name()))

	cctx := &Context{
		Mode:      domain.ModeLegacy,
		Message:   msg,
		GuildID:   msg.GuildID,
		ChannelID: msg.ChannelID,
		Raw:       raw,
		Args:      strings.Fields(raw),
		Replier:   replier,
		Ack:       r.ack,
	}
	r.run(ctx, cmd, cctx)
}

// HandleInteraction routes a native slash invocation.
func (r *Router) HandleInteraction(ctx context.Context, ev domain.InteractionEvent, replier domain.Replier) {
	cmd, ok := r.cmdIndex[strings.ToLower(ev.CommandName)]
	if !ok {
		return
	}

	r.log.Info("slash command",
		zap.String("user", ev.UserID),
		zap.String("command", cmd.Name()))

	raw := ev.Options["code"]
	if raw == "" {
		raw = ev.Options["query"]
	}
	cctx := &Context{
		Mode:      domain.ModeNative,
		GuildID:   ev.GuildID,
		ChannelID: ev.ChannelID,
		Raw:       raw,
		Args:      strings.Fields(raw),
		Replier:   replier,
		Ack:       r.ack,
	}
	r.run(ctx, cmd, cctx)
}

func (r *Router) run(ctx context.Context, cmd Command, cctx *Context) {
	err := cmd.Handle(ctx, cctx)
	if err == nil {
		return
	}

	var execErr *domain.ExecutionError
	if errors.As(err, &execErr) {
		r.ack.Fail(ctx, cctx.Invocation(), execErr.Err)
		return
	}
	r.ack.ReportError(ctx, cctx.Invocation(), err, cmd.Help())
}

func (r *Router) stripPrefix(text string) (string, bool) {
	if strings.HasPrefix(text, r.prefix) {
		return text[len(r.prefix):], true
	}
	for _, p := range r.additionalPrefixes {
		if strings.HasPrefix(text, p) {
			return text[len(p):], true
		}
	}
	return "", false
}

// splitCommand separates the command name from the rest of the
// invocation text, preserving the raw remainder for code-block parsing.
func splitCommand(s string) (name, raw string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	if i := strings.IndexAny(s, " \t\n"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i:])
	}
	return s, ""
}
