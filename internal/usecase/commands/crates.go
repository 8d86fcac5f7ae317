package commands

import (
	"context"
	"errors"
	"fmt"

	"rustbot/internal/domain"
)

// Crate is the registry metadata the commands render.
type Crate struct {
	Name          string
	Version       string
	Description   string
	Documentation string
	Downloads     int64
}

// Registry looks up crate metadata in the package registry.
type Registry interface {
	Lookup(ctx context.Context, name string) (Crate, error)
}

type CrateCommand struct {
	registry Registry
}

func NewCrateCommand(registry Registry) *CrateCommand {
	return &CrateCommand{registry: registry}
}

func (cc *CrateCommand) Name() string        { return "crate" }
func (cc *CrateCommand) Aliases() []string   { return nil }
func (cc *CrateCommand) Description() string { return "Look up a crate on crates.io" }

func (cc *CrateCommand) Help() string {
	return "Look up a crate.\n?crate crate_name"
}

func (cc *CrateCommand) Handle(ctx context.Context, c *Context) error {
	if len(c.Args) == 0 {
		return errors.New("missing crate name")
	}

	crate, err := cc.registry.Lookup(ctx, c.Args[0])
	if err != nil {
		return &domain.ExecutionError{Err: err}
	}

	reply := fmt.Sprintf("**%s** v%s (%d downloads)\n%s\n<https://crates.io/crates/%s>",
		crate.Name, crate.Version, crate.Downloads, crate.Description, crate.Name)
	if err := c.Say(ctx, reply); err != nil {
		return err
	}
	c.Ack.Success(ctx, c.Invocation(), "ferris", '✅')
	return nil
}

type DocCommand struct {
	registry Registry
}

func NewDocCommand(registry Registry) *DocCommand {
	return &DocCommand{registry: registry}
}

func (dc *DocCommand) Name() string        { return "doc" }
func (dc *DocCommand) Aliases() []string   { return []string{"docs"} }
func (dc *DocCommand) Description() string { return "Link the documentation of a crate" }

func (dc *DocCommand) Help() string {
	return "Link a crate's documentation.\n?doc crate_name"
}

func (dc *DocCommand) Handle(ctx context.Context, c *Context) error {
	if len(c.Args) == 0 {
		return c.Say(ctx, "<https://doc.rust-lang.org/stable/std/>")
	}

	name := c.Args[0]
	crate, err := dc.registry.Lookup(ctx, name)
	if err != nil {
		return &domain.ExecutionError{Err: err}
	}

	link := crate.Documentation
	if link == "" {
		link = "https://docs.rs/" + crate.Name
	}
	return c.Say(ctx, "<"+link+">")
}
