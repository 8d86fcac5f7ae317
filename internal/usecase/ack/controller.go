// Package ack signals command success or failure back to the user. All
// platform I/O here is cosmetic: failures are logged and swallowed,
// acknowledgment must never abort a command that otherwise completed.
package ack

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"rustbot/internal/domain"
)

// How long a native-mode success reply stays visible before the bot
// removes it again.
const successCleanupDelay = 3 * time.Second

const missingCodeBlockHelp = "Missing code block. Please use the following markdown:\n" +
	"\\`code here\\`\n" +
	"or\n" +
	"\\`\\`\\`rust\ncode here\n\\`\\`\\`"

// Invocation is the slice of a command context the controller needs:
// which mode the command came in through, where the originating message
// lives, and how to reply.
type Invocation struct {
	Mode    domain.InvocationMode
	GuildID string
	Origin  domain.MessageRef
	Replier domain.Replier
}

type Controller struct {
	chat         domain.ChatPort
	log          *zap.Logger
	cleanupDelay time.Duration
}

func NewController(chat domain.ChatPort, log *zap.Logger) *Controller {
	return &Controller{
		chat:         chat,
		log:          log,
		cleanupDelay: successCleanupDelay,
	}
}

// Success acknowledges a completed command. The semantic emoji name is
// resolved against the guild's custom emoji set, falling back to the
// given unicode character. Legacy invocations get a durable reaction on
// the originating message; native invocations get a transient reply that
// is deleted again after a short delay, because the platform offers no
// way to react to the implicit interaction response.
func (c *Controller) Success(ctx context.Context, inv Invocation, emojiName string, fallback rune) {
	emoji, found := c.findCustomEmoji(ctx, inv.GuildID, emojiName)

	switch inv.Mode {
	case domain.ModeLegacy:
		reaction := string(fallback)
		if found {
			reaction = emoji.ReactionCode()
		}
		if err := c.chat.AddReaction(ctx, inv.Origin, reaction); err != nil {
			c.log.Warn("failed to react with success emoji", zap.Error(err))
		}
	case domain.ModeNative:
		content := string(fallback)
		if found {
			content = emoji.Code()
		}
		ref, err := inv.Replier.Say(ctx, content)
		if err != nil {
			c.log.Warn("failed to send success acknowledgment", zap.Error(err))
			return
		}
		replier := inv.Replier
		delay := c.cleanupDelay
		go func() {
			time.Sleep(delay)
			// The response may be ephemeral and already gone.
			_ = replier.Delete(context.Background(), ref)
		}()
	}
}

// Fail acknowledges a command whose execution failed. Legacy invocations
// get a red-cross reaction, native ones a short explanatory reply.
func (c *Controller) Fail(ctx context.Context, inv Invocation, cmdErr error) {
	c.log.Warn("reacting with red cross because of error", zap.Error(cmdErr))

	switch inv.Mode {
	case domain.ModeLegacy:
		if err := c.chat.AddReaction(ctx, inv.Origin, "❌"); err != nil {
			c.log.Warn("failed to react with red cross", zap.Error(err))
		}
	case domain.ModeNative:
		if _, err := inv.Replier.Say(ctx, "❌ "+cmdErr.Error()); err != nil {
			c.log.Warn("failed to send failure acknowledgment", zap.Error(err))
		}
	}
}

// ReportError handles every error class other than "execution failed":
// argument and parse problems are rendered with the command's help text,
// a missing code block gets the fixed backticks explainer.
func (c *Controller) ReportError(ctx context.Context, inv Invocation, err error, help string) {
	c.log.Warn("command error", zap.Error(err))

	var response string
	switch {
	case errors.Is(err, domain.ErrMissingCodeBlock):
		response = missingCodeBlockHelp
	case help != "":
		response = "**" + err.Error() + "**\n" + help
	default:
		response = err.Error()
	}

	if _, sendErr := inv.Replier.Say(ctx, response); sendErr != nil {
		c.log.Warn("failed to send error report", zap.Error(sendErr))
	}
}

func (c *Controller) findCustomEmoji(ctx context.Context, guildID, name string) (domain.Emoji, bool) {
	if guildID == "" {
		return domain.Emoji{}, false
	}
	emojis, err := c.chat.GuildEmojis(ctx, guildID)
	if err != nil {
		c.log.Warn("failed to list guild emojis", zap.Error(err))
		return domain.Emoji{}, false
	}
	for _, e := range emojis {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return domain.Emoji{}, false
}
