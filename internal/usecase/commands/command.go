package commands

import (
	"context"

	"rustbot/internal/domain"
	"rustbot/internal/usecase/ack"
)

type Command interface {
	Name() string
	Aliases() []string
	Description() string
	// Help returns multi-line usage text rendered when argument parsing
	// fails, or "" when the command has none.
	Help() string
	Handle(ctx context.Context, c *Context) error
}

// Context carries everything one invocation needs. Mode decides how
// acknowledgments are delivered; it lives exactly as long as the
// invocation.
type Context struct {
	Mode      domain.InvocationMode
	Message   domain.Message
	GuildID   string
	ChannelID string

	// Raw is the invocation text after the command name.
	Raw  string
	Args []string

	Replier domain.Replier
	Ack     *ack.Controller
}

func (c *Context) Invocation() ack.Invocation {
	return ack.Invocation{
		Mode:    c.Mode,
		GuildID: c.GuildID,
		Origin:  domain.MessageRef{ChannelID: c.ChannelID, MessageID: c.Message.ID},
		Replier: c.Replier,
	}
}

func (c *Context) Say(ctx context.Context, content string) error {
	_, err := c.Replier.Say(ctx, content)
	return err
}

// CodeBlock extracts the delimited code block from the invocation text.
func (c *Context) CodeBlock() (string, error) {
	code, _, err := ExtractCodeBlock(c.Raw)
	return code, err
}
