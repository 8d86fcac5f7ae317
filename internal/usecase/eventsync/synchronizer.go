// Package eventsync keeps bot-derived content consistent with the
// gateway event stream: showcase messages follow edits and deletions of
// their source, and new guild members get the community role after a
// grace period.
package eventsync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rustbot/internal/domain"
)

// RustificationDelay is how long a new member waits before the community
// role is granted.
const RustificationDelay = 30 * time.Minute

// ShowcasePort is the collaborator owning the source→derived message
// relationship. The synchronizer only reads and mutates through it.
type ShowcasePort interface {
	FindDerived(ctx context.Context, sourceID string) (domain.MessageRef, bool, error)
	Update(ctx context.Context, derived domain.MessageRef, username, content string) error
	Delete(ctx context.Context, derived domain.MessageRef) error
}

type Synchronizer struct {
	showcase   ShowcasePort
	chat       domain.ChatPort
	memberRole string
	grantDelay time.Duration
	log        *zap.Logger
}

func NewSynchronizer(showcase ShowcasePort, chat domain.ChatPort, memberRole string, log *zap.Logger) *Synchronizer {
	return &Synchronizer{
		showcase:   showcase,
		chat:       chat,
		memberRole: memberRole,
		grantDelay: RustificationDelay,
		log:        log,
	}
}

// Dispatch routes one gateway event to its handler. Unknown event types
// are a no-op. Errors out of the message-lifecycle handlers indicate a
// real inconsistency and propagate to the caller; the member-join branch
// is fire-and-forget and never blocks dispatch.
func (s *Synchronizer) Dispatch(ctx context.Context, event any) error {
	switch ev := event.(type) {
	case domain.MessageUpdateEvent:
		return s.handleMessageUpdate(ctx, ev)
	case domain.MessageDeleteEvent:
		return s.handleMessageDelete(ctx, ev)
	case domain.MemberJoinEvent:
		s.handleMemberJoin(ctx, ev)
		return nil
	default:
		return nil
	}
}

func (s *Synchronizer) handleMessageUpdate(ctx context.Context, ev domain.MessageUpdateEvent) error {
	derived, ok, err := s.showcase.FindDerived(ctx, ev.MessageID)
	if err != nil {
		return fmt.Errorf("looking up showcase message for %s: %w", ev.MessageID, err)
	}
	if !ok {
		return nil
	}
	if err := s.showcase.Update(ctx, derived, ev.Username, ev.Content); err != nil {
		return fmt.Errorf("updating showcase message %s: %w", derived.MessageID, err)
	}
	return nil
}

func (s *Synchronizer) handleMessageDelete(ctx context.Context, ev domain.MessageDeleteEvent) error {
	derived, ok, err := s.showcase.FindDerived(ctx, ev.MessageID)
	if err != nil {
		return fmt.Errorf("looking up showcase message for %s: %w", ev.MessageID, err)
	}
	if !ok {
		return nil
	}
	if err := s.showcase.Delete(ctx, derived); err != nil {
		return fmt.Errorf("deleting showcase message %s: %w", derived.MessageID, err)
	}
	return nil
}

// handleMemberJoin schedules the delayed role grant in its own goroutine.
// The grant is best-effort and deliberately silent: the member may have
// left again before the timer fires, and that is not worth log spam.
func (s *Synchronizer) handleMemberJoin(ctx context.Context, ev domain.MemberJoinEvent) {
	delay := s.grantDelay
	go func() {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
		reason := fmt.Sprintf("Automatically rustified after %d minutes", int(delay.Minutes()))
		_ = s.chat.GrantRole(context.Background(), ev.GuildID, ev.UserID, s.memberRole, reason)
	}()
}
