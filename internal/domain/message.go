package domain

// InvocationMode says how a command reached the bot: as a prefixed chat
// message or as a native slash interaction. It is carried by the command
// context for one invocation and never persisted.
type InvocationMode string

const (
	ModeLegacy InvocationMode = "legacy"
	ModeNative InvocationMode = "native"
)

type Message struct {
	ID        string
	GuildID   string
	ChannelID string
	UserID    string
	Username  string
	Content   string
	Bot       bool
}

// MessageRef identifies a message the bot can later edit, delete or react to.
type MessageRef struct {
	ChannelID string
	MessageID string
}

func (r MessageRef) IsZero() bool {
	return r.MessageID == ""
}

type Emoji struct {
	ID       string
	Name     string
	Animated bool
}

// Code renders the emoji for use inside message content.
func (e Emoji) Code() string {
	if e.Animated {
		return "<a:" + e.Name + ":" + e.ID + ">"
	}
	return "<:" + e.Name + ":" + e.ID + ">"
}

// ReactionCode renders the emoji the way the reaction endpoints expect it.
func (e Emoji) ReactionCode() string {
	return e.Name + ":" + e.ID
}

// CommandOutput is what an execution/compilation collaborator produces.
// Stdout and Stderr are opaque text; Success reports whether the run
// completed without failure.
type CommandOutput struct {
	Stdout  string
	Stderr  string
	Success bool
}
