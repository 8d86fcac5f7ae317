// Package showcase owns the relationship between a user's message in the
// showcase channel and the bot-authored copy derived from it. The event
// synchronizer consumes this service to keep derived messages in step
// with edits and deletions of their source.
package showcase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"rustbot/internal/domain"
)

type Service struct {
	repo      domain.ShowcaseRepository
	chat      domain.ChatPort
	channelID string
	log       *zap.Logger
}

func NewService(repo domain.ShowcaseRepository, chat domain.ChatPort, channelID string, log *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		chat:      chat,
		channelID: channelID,
		log:       log,
	}
}

// Render builds the derived message body from the source author and text.
func Render(username, content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		content = "*(no text)*"
	}
	return fmt.Sprintf("**%s**\n%s", username, content)
}

// Mirror posts the bot-authored copy of a showcase-channel message and
// records the link. Messages outside the showcase channel and messages
// by bots are ignored.
func (s *Service) Mirror(ctx context.Context, msg domain.Message) error {
	if msg.ChannelID != s.channelID || msg.Bot {
		return nil
	}

	ref, err := s.chat.SendMessage(ctx, s.channelID, Render(msg.Username, msg.Content))
	if err != nil {
		return fmt.Errorf("posting showcase copy: %w", err)
	}
	if err := s.repo.Link(ctx, msg.ID, ref); err != nil {
		return fmt.Errorf("recording showcase link: %w", err)
	}
	s.log.Info("showcased message", zap.String("source", msg.ID), zap.String("derived", ref.MessageID))
	return nil
}

func (s *Service) FindDerived(ctx context.Context, sourceID string) (domain.MessageRef, bool, error) {
	return s.repo.FindDerived(ctx, sourceID)
}

func (s *Service) Update(ctx context.Context, derived domain.MessageRef, username, content string) error {
	return s.chat.EditMessage(ctx, derived, Render(username, content))
}

// Delete removes the derived message and forgets the link. The link is
// dropped even if the platform delete fails so a permanently gone
// message cannot wedge future lookups.
func (s *Service) Delete(ctx context.Context, derived domain.MessageRef) error {
	err := s.chat.DeleteMessage(ctx, derived)
	if uerr := s.repo.UnlinkDerived(ctx, derived.MessageID); uerr != nil && err == nil {
		err = uerr
	}
	return err
}
