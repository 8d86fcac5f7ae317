package domain

import "context"

// ChatPort is the outgoing platform surface the usecases depend on.
// The adapter layer implements it on top of the Discord REST API.
type ChatPort interface {
	SendMessage(ctx context.Context, channelID, content string) (MessageRef, error)
	EditMessage(ctx context.Context, ref MessageRef, content string) error
	DeleteMessage(ctx context.Context, ref MessageRef) error
	// AddReaction attaches an emoji to a message. The emoji is either a
	// plain unicode character or an Emoji.ReactionCode value.
	AddReaction(ctx context.Context, ref MessageRef, emoji string) error
	GuildEmojis(ctx context.Context, guildID string) ([]Emoji, error)
	GrantRole(ctx context.Context, guildID, userID, roleID, reason string) error
}

// Replier answers one specific invocation. For prefix commands it posts
// into the originating channel; for slash commands it goes through the
// interaction response channel.
type Replier interface {
	Say(ctx context.Context, content string) (MessageRef, error)
	Delete(ctx context.Context, ref MessageRef) error
}

// ShowcaseRepository persists the source→derived message relationship.
type ShowcaseRepository interface {
	Link(ctx context.Context, sourceID string, derived MessageRef) error
	// FindDerived reports the derived message for a source message, if any.
	FindDerived(ctx context.Context, sourceID string) (MessageRef, bool, error)
	UnlinkDerived(ctx context.Context, derivedID string) error
}
