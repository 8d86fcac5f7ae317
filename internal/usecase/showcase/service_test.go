package showcase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rustbot/internal/domain"
)

type memoryRepo struct {
	links map[string]domain.MessageRef
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{links: map[string]domain.MessageRef{}}
}

func (m *memoryRepo) Link(ctx context.Context, sourceID string, derived domain.MessageRef) error {
	m.links[sourceID] = derived
	return nil
}

func (m *memoryRepo) FindDerived(ctx context.Context, sourceID string) (domain.MessageRef, bool, error) {
	ref, ok := m.links[sourceID]
	return ref, ok, nil
}

func (m *memoryRepo) UnlinkDerived(ctx context.Context, derivedID string) error {
	for src, ref := range m.links {
		if ref.MessageID == derivedID {
			delete(m.links, src)
		}
	}
	return nil
}

type fakeChat struct {
	sent    []string
	edits   []string
	deletes []string
	sendErr error
	delErr  error
}

func (f *fakeChat) SendMessage(ctx context.Context, channelID, content string) (domain.MessageRef, error) {
	f.sent = append(f.sent, content)
	return domain.MessageRef{ChannelID: channelID, MessageID: "derived1"}, f.sendErr
}

func (f *fakeChat) EditMessage(ctx context.Context, ref domain.MessageRef, content string) error {
	f.edits = append(f.edits, ref.MessageID+":"+content)
	return nil
}

func (f *fakeChat) DeleteMessage(ctx context.Context, ref domain.MessageRef) error {
	f.deletes = append(f.deletes, ref.MessageID)
	return f.delErr
}

func (f *fakeChat) AddReaction(ctx context.Context, ref domain.MessageRef, emoji string) error {
	return nil
}

func (f *fakeChat) GuildEmojis(ctx context.Context, guildID string) ([]domain.Emoji, error) {
	return nil, nil
}

func (f *fakeChat) GrantRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	return nil
}

func newTestService(repo domain.ShowcaseRepository, chat domain.ChatPort) *Service {
	return NewService(repo, chat, "showcase-channel", zap.NewNop())
}

func showcaseMessage() domain.Message {
	return domain.Message{
		ID:        "src1",
		ChannelID: "showcase-channel",
		Username:  "alice",
		Content:   "my project",
	}
}

func TestMirrorRecordsLink(t *testing.T) {
	repo := newMemoryRepo()
	chat := &fakeChat{}
	s := newTestService(repo, chat)

	require.NoError(t, s.Mirror(context.Background(), showcaseMessage()))

	require.Len(t, chat.sent, 1)
	assert.Equal(t, "**alice**\nmy project", chat.sent[0])

	ref, ok, err := s.FindDerived(context.Background(), "src1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "derived1", ref.MessageID)
}

func TestMirrorIgnoresOtherChannelsAndBots(t *testing.T) {
	chat := &fakeChat{}
	s := newTestService(newMemoryRepo(), chat)

	other := showcaseMessage()
	other.ChannelID = "general"
	require.NoError(t, s.Mirror(context.Background(), other))

	bot := showcaseMessage()
	bot.Bot = true
	require.NoError(t, s.Mirror(context.Background(), bot))

	assert.Empty(t, chat.sent)
}

func TestMirrorPropagatesSendError(t *testing.T) {
	chat := &fakeChat{sendErr: errors.New("missing permissions")}
	s := newTestService(newMemoryRepo(), chat)

	err := s.Mirror(context.Background(), showcaseMessage())
	assert.ErrorContains(t, err, "missing permissions")
}

func TestUpdateRerendersDerivedMessage(t *testing.T) {
	chat := &fakeChat{}
	s := newTestService(newMemoryRepo(), chat)

	err := s.Update(context.Background(), domain.MessageRef{ChannelID: "c", MessageID: "derived1"}, "alice", "edited")
	require.NoError(t, err)
	assert.Equal(t, []string{"derived1:**alice**\nedited"}, chat.edits)
}

func TestDeleteForgetsLinkEvenWhenPlatformDeleteFails(t *testing.T) {
	repo := newMemoryRepo()
	chat := &fakeChat{}
	s := newTestService(repo, chat)
	require.NoError(t, s.Mirror(context.Background(), showcaseMessage()))

	chat.delErr = errors.New("already gone")
	err := s.Delete(context.Background(), domain.MessageRef{ChannelID: "showcase-channel", MessageID: "derived1"})

	assert.ErrorContains(t, err, "already gone")
	_, ok, findErr := s.FindDerived(context.Background(), "src1")
	require.NoError(t, findErr)
	assert.False(t, ok)
}

func TestRenderPlaceholdsEmptyContent(t *testing.T) {
	assert.Equal(t, "**alice**\n*(no text)*", Render("alice", "  \n "))
}
