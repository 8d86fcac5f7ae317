package discord

import "encoding/json"

const (
	gatewayURL = "wss://gateway.discord.gg/?v=10&encoding=json"
	apiBaseURL = "https://discord.com/api/v10"

	// Gateway opcodes.
	opDispatch       = 0
	opHeartbeat      = 1
	opIdentify       = 2
	opResume         = 6
	opReconnect      = 7
	opInvalidSession = 9
	opHello          = 10
	opHeartbeatAck   = 11

	// Gateway intents.
	intentGuilds         = 1 << 0
	intentGuildMembers   = 1 << 1
	intentGuildEmojis    = 1 << 3
	intentGuildMessages  = 1 << 9
	intentMessageContent = 1 << 15
)

type gatewayPayload struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d,omitempty"`
	S  *int            `json:"s,omitempty"`
	T  string          `json:"t,omitempty"`
}

type helloData struct {
	HeartbeatInterval int `json:"heartbeat_interval"`
}

type identifyData struct {
	Token      string            `json:"token"`
	Intents    int               `json:"intents"`
	Properties map[string]string `json:"properties"`
}

type resumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       int    `json:"seq"`
}

type readyData struct {
	SessionID   string `json:"session_id"`
	User        User   `json:"user"`
	Application struct {
		ID string `json:"id"`
	} `json:"application"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	GuildID   string `json:"guild_id,omitempty"`
	Author    User   `json:"author"`
	Content   string `json:"content"`
}

type Emoji struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Animated bool   `json:"animated"`
}

type Interaction struct {
	ID      string `json:"id"`
	Token   string `json:"token"`
	Type    int    `json:"type"`
	GuildID string `json:"guild_id,omitempty"`
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
	Member *struct {
		User User `json:"user"`
	} `json:"member,omitempty"`
	User *User `json:"user,omitempty"`
	Data struct {
		Name    string `json:"name"`
		Options []struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
		} `json:"options"`
	} `json:"data"`
}

// SlashCommand is the registration payload for a guild slash command.
type SlashCommand struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Options     []SlashCommandOption `json:"options,omitempty"`
}

type SlashCommandOption struct {
	Type        int    `json:"type"` // 3 = string
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}
