package commands

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rustbot/internal/domain"
	"rustbot/internal/usecase/ack"
)

type fakeChat struct {
	mu        sync.Mutex
	reactions []string
}

func (f *fakeChat) SendMessage(ctx context.Context, channelID, content string) (domain.MessageRef, error) {
	return domain.MessageRef{ChannelID: channelID, MessageID: "m"}, nil
}

func (f *fakeChat) EditMessage(ctx context.Context, ref domain.MessageRef, content string) error {
	return nil
}

func (f *fakeChat) DeleteMessage(ctx context.Context, ref domain.MessageRef) error { return nil }

func (f *fakeChat) AddReaction(ctx context.Context, ref domain.MessageRef, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reactions = append(f.reactions, emoji)
	return nil
}

func (f *fakeChat) GuildEmojis(ctx context.Context, guildID string) ([]domain.Emoji, error) {
	return nil, nil
}

func (f *fakeChat) GrantRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	return nil
}

type fakeReplier struct {
	mu   sync.Mutex
	said []string
}

func (f *fakeReplier) Say(ctx context.Context, content string) (domain.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.said = append(f.said, content)
	return domain.MessageRef{ChannelID: "c", MessageID: "r"}, nil
}

func (f *fakeReplier) Delete(ctx context.Context, ref domain.MessageRef) error { return nil }

type fakeRunner struct {
	out      domain.CommandOutput
	execErr  error
	link     string
	executed []string
}

func (f *fakeRunner) Execute(ctx context.Context, code string) (domain.CommandOutput, error) {
	f.executed = append(f.executed, code)
	return f.out, f.execErr
}

func (f *fakeRunner) ShareLink(ctx context.Context, code string) (string, error) {
	if f.link == "" {
		return "", errors.New("gist upload failed")
	}
	return f.link, nil
}

func newTestRouter(chat domain.ChatPort) *Router {
	ackCtl := ack.NewController(chat, zap.NewNop())
	return NewRouter("?", []string{"🦀 ", "🦀"}, ackCtl, zap.NewNop())
}

func legacyMessage(content string) domain.Message {
	return domain.Message{
		ID:        "src",
		GuildID:   "g",
		ChannelID: "c",
		UserID:    "u",
		Username:  "alice",
		Content:   content,
	}
}

func TestRouterRunsPrefixCommand(t *testing.T) {
	runner := &fakeRunner{out: domain.CommandOutput{Stdout: "hello", Success: true}}
	router := newTestRouter(&fakeChat{})
	router.Register(NewPlayCommand(runner))
	replier := &fakeReplier{}

	router.HandleMessage(context.Background(), legacyMessage("?play ```rust\nfn main() {}\n```"), replier)

	require.Equal(t, []string{"fn main() {}"}, runner.executed)
	require.Len(t, replier.said, 1)
	assert.Equal(t, "```rust\nhello\n```", replier.said[0])
}

func TestRouterAcceptsAdditionalPrefixes(t *testing.T) {
	runner := &fakeRunner{out: domain.CommandOutput{Success: true}}
	router := newTestRouter(&fakeChat{})
	router.Register(NewPlayCommand(runner))

	router.HandleMessage(context.Background(), legacyMessage("🦀 play `fn main() {}`"), &fakeReplier{})

	assert.Len(t, runner.executed, 1)
}

func TestRouterIgnoresUnknownCommand(t *testing.T) {
	router := newTestRouter(&fakeChat{})
	replier := &fakeReplier{}

	router.HandleMessage(context.Background(), legacyMessage("?nosuchthing"), replier)
	router.HandleMessage(context.Background(), legacyMessage("plain chatter"), replier)

	assert.Empty(t, replier.said)
}

func TestRouterReportsMissingCodeBlock(t *testing.T) {
	router := newTestRouter(&fakeChat{})
	router.Register(NewPlayCommand(&fakeRunner{}))
	replier := &fakeReplier{}

	router.HandleMessage(context.Background(), legacyMessage("?play no backticks"), replier)

	require.Len(t, replier.said, 1)
	assert.Contains(t, replier.said[0], "Missing code block")
}

func TestRouterReactsWithCrossOnExecutionFailure(t *testing.T) {
	chat := &fakeChat{}
	router := newTestRouter(chat)
	router.Register(NewPlayCommand(&fakeRunner{execErr: errors.New("playground unreachable")}))

	router.HandleMessage(context.Background(), legacyMessage("?play `x`"), &fakeReplier{})

	assert.Equal(t, []string{"❌"}, chat.reactions)
}

func TestRouterRoutesInteractionAsNative(t *testing.T) {
	chat := &fakeChat{}
	router := newTestRouter(chat)
	router.Register(NewPlayCommand(&fakeRunner{execErr: errors.New("boom")}))
	replier := &fakeReplier{}

	router.HandleInteraction(context.Background(), domain.InteractionEvent{
		CommandName: "play",
		GuildID:     "g",
		ChannelID:   "c",
		Options:     map[string]string{"code": "`x`"},
	}, replier)

	// Native failure path replies instead of reacting.
	require.Len(t, replier.said, 1)
	assert.Contains(t, replier.said[0], "❌ boom")
	assert.Empty(t, chat.reactions)
}

func TestCompilerRunTruncatesLongOutput(t *testing.T) {
	runner := &fakeRunner{
		out:  domain.CommandOutput{Stdout: strings.Repeat("x", 4000), Success: true},
		link: "https://play.rust-lang.org/?gist=abc",
	}
	router := newTestRouter(&fakeChat{})
	router.Register(NewPlayCommand(runner))
	replier := &fakeReplier{}

	router.HandleMessage(context.Background(), legacyMessage("?play `x`"), replier)

	require.Len(t, replier.said, 1)
	reply := replier.said[0]
	assert.LessOrEqual(t, len(reply), 2000)
	assert.Contains(t, reply, "```\n... (output truncated; full version at <https://play.rust-lang.org/?gist=abc>)")
}

func TestEvalWrapsExpression(t *testing.T) {
	runner := &fakeRunner{out: domain.CommandOutput{Stdout: "2", Success: true}}
	router := newTestRouter(&fakeChat{})
	router.Register(NewEvalCommand(runner))

	router.HandleMessage(context.Background(), legacyMessage("?eval `1 + 1`"), &fakeReplier{})

	require.Len(t, runner.executed, 1)
	assert.Contains(t, runner.executed[0], "fn main()")
	assert.Contains(t, runner.executed[0], "1 + 1")
}
