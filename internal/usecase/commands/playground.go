package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rustbot/internal/domain"
	"rustbot/internal/usecase/format"
)

// Runner executes code on the playground and produces opaque
// stdout/stderr text plus a success flag.
type Runner interface {
	Execute(ctx context.Context, code string) (domain.CommandOutput, error)
	// ShareLink uploads the code and returns a shareable playground URL.
	// Only called when output had to be truncated.
	ShareLink(ctx context.Context, code string) (string, error)
}

// runAndReply is the shared back half of every playground command:
// merge the streams, bound the message, deliver, acknowledge.
func runAndReply(ctx context.Context, c *Context, runner Runner, code string) error {
	out, err := runner.Execute(ctx, code)
	if err != nil {
		return &domain.ExecutionError{Err: err}
	}

	merged := format.MergeOutput(out.Stdout, out.Stderr)
	notice := func(ctx context.Context) string {
		link, err := runner.ShareLink(ctx, code)
		if err != nil {
			return "\n... (output truncated)"
		}
		return fmt.Sprintf("\n... (output truncated; full version at <%s>)", link)
	}

	reply := format.Truncate(ctx, "```rust\n"+merged+"\n", "```", notice)
	if err := c.Say(ctx, reply); err != nil {
		return err
	}

	if !out.Success {
		return &domain.ExecutionError{Err: errors.New("the code failed to run, see the output above")}
	}
	c.Ack.Success(ctx, c.Invocation(), "ferris", '✅')
	return nil
}

type PlayCommand struct {
	runner Runner
}

func NewPlayCommand(runner Runner) *PlayCommand {
	return &PlayCommand{runner: runner}
}

func (p *PlayCommand) Name() string        { return "play" }
func (p *PlayCommand) Aliases() []string   { return []string{"run"} }
func (p *PlayCommand) Description() string { return "Compile and run Rust code on the playground" }

func (p *PlayCommand) Help() string {
	return "Compile and run the given code.\n" +
		"?play \\`\\`\\`rust\ncode here\n\\`\\`\\`"
}

func (p *PlayCommand) Handle(ctx context.Context, c *Context) error {
	code, err := c.CodeBlock()
	if err != nil {
		return err
	}
	return runAndReply(ctx, c, p.runner, code)
}

type EvalCommand struct {
	runner Runner
}

func NewEvalCommand(runner Runner) *EvalCommand {
	return &EvalCommand{runner: runner}
}

func (e *EvalCommand) Name() string        { return "eval" }
func (e *EvalCommand) Aliases() []string   { return nil }
func (e *EvalCommand) Description() string { return "Evaluate a single Rust expression" }

func (e *EvalCommand) Help() string {
	return "Evaluate a single expression and print its Debug representation.\n" +
		"?eval \\`1 + 1\\`"
}

func (e *EvalCommand) Handle(ctx context.Context, c *Context) error {
	code, err := c.CodeBlock()
	if err != nil {
		return err
	}
	return runAndReply(ctx, c, e.runner, wrapExpression(code))
}

// wrapExpression turns a bare expression into a runnable program printing
// its Debug representation. Code that already has a main function is
// passed through untouched.
func wrapExpression(code string) string {
	if strings.Contains(code, "fn main") {
		return code
	}
	return "fn main() {\n    println!(\"{:?}\", {\n" + code + "\n    });\n}"
}
