package domain

// Gateway events the bot reacts to. Anything the adapter does not map to
// one of these is dropped at the adapter boundary.

type MessageUpdateEvent struct {
	MessageID string
	ChannelID string
	GuildID   string
	Username  string
	Content   string
}

type MessageDeleteEvent struct {
	MessageID string
	ChannelID string
	GuildID   string
}

type MemberJoinEvent struct {
	GuildID string
	UserID  string
}

// InteractionEvent is a native slash-command invocation. Token is the
// short-lived credential for responding to this specific interaction.
type InteractionEvent struct {
	ID          string
	Token       string
	GuildID     string
	ChannelID   string
	UserID      string
	CommandName string
	Options     map[string]string
}
