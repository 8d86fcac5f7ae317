package commands

import (
	"context"
	"errors"

	"rustbot/internal/domain"
	"rustbot/internal/usecase/format"
)

// Compiler turns source code into assembly via Compiler Explorer.
type Compiler interface {
	Compile(ctx context.Context, code string) (domain.CommandOutput, error)
}

type GodboltCommand struct {
	compiler Compiler
}

func NewGodboltCommand(compiler Compiler) *GodboltCommand {
	return &GodboltCommand{compiler: compiler}
}

func (g *GodboltCommand) Name() string      { return "godbolt" }
func (g *GodboltCommand) Aliases() []string { return []string{"asm"} }

func (g *GodboltCommand) Description() string {
	return "Show the assembly the code compiles to"
}

func (g *GodboltCommand) Help() string {
	return "View the assembly for the given code.\n" +
		"?godbolt \\`\\`\\`rust\ncode here\n\\`\\`\\`"
}

func (g *GodboltCommand) Handle(ctx context.Context, c *Context) error {
	code, err := c.CodeBlock()
	if err != nil {
		return err
	}

	out, err := g.compiler.Compile(ctx, code)
	if err != nil {
		return &domain.ExecutionError{Err: err}
	}

	merged := format.MergeOutput(out.Stdout, out.Stderr)
	notice := func(context.Context) string {
		return "\n... (assembly truncated)"
	}
	reply := format.Truncate(ctx, "```x86asm\n"+merged+"\n", "```", notice)
	if err := c.Say(ctx, reply); err != nil {
		return err
	}

	if !out.Success {
		return &domain.ExecutionError{Err: errors.New("compilation failed, see the output above")}
	}
	c.Ack.Success(ctx, c.Invocation(), "godbolt", '✅')
	return nil
}
