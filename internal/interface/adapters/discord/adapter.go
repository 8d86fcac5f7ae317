// Package discordadapter maps between the raw Discord gateway/REST
// surface and the bot's domain: incoming dispatches become domain events
// on the bus, and the domain's outgoing ports are implemented on the
// REST client.
package discordadapter

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"rustbot/internal/app/events"
	"rustbot/internal/domain"
	"rustbot/internal/infrastructure/platform/discord"
)

type Adapter struct {
	rest    *discord.Client
	gateway *discord.Gateway
	bus     *events.Bus
	log     *zap.Logger
	guildID string
	slash   []discord.SlashCommand

	mu        sync.RWMutex
	botUserID string
	appID     string
}

func New(token, guildID string, bus *events.Bus, log *zap.Logger) *Adapter {
	a := &Adapter{
		rest:    discord.NewClient(token),
		bus:     bus,
		log:     log,
		guildID: guildID,
	}
	a.gateway = discord.NewGateway(token, a.handleEvent, log)
	return a
}

// SetSlashCommands stores the command set registered on READY.
func (a *Adapter) SetSlashCommands(cmds []discord.SlashCommand) {
	a.slash = cmds
}

// Start runs the gateway until the context is cancelled.
func (a *Adapter) Start(ctx context.Context) error {
	return a.gateway.Run(ctx)
}

func (a *Adapter) handleEvent(eventType string, data json.RawMessage) {
	switch eventType {
	case "READY":
		var ready struct {
			User        discord.User `json:"user"`
			Application struct {
				ID string `json:"id"`
			} `json:"application"`
		}
		if err := json.Unmarshal(data, &ready); err != nil {
			return
		}
		a.mu.Lock()
		a.botUserID = ready.User.ID
		a.appID = ready.Application.ID
		a.mu.Unlock()
		a.log.Info("connected to discord",
			zap.String("user", ready.User.Username),
			zap.String("id", ready.User.ID))
		go a.registerSlashCommands(ready.Application.ID)

	case "MESSAGE_CREATE":
		var msg discord.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		if msg.Author.Bot || msg.Author.ID == a.botID() {
			return
		}
		a.bus.Publish(events.TopicChatMessage, domain.Message{
			ID:        msg.ID,
			GuildID:   msg.GuildID,
			ChannelID: msg.ChannelID,
			UserID:    msg.Author.ID,
			Username:  msg.Author.Username,
			Content:   msg.Content,
			Bot:       msg.Author.Bot,
		})

	case "MESSAGE_UPDATE":
		var msg discord.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		a.bus.Publish(events.TopicLifecycle, domain.MessageUpdateEvent{
			MessageID: msg.ID,
			ChannelID: msg.ChannelID,
			GuildID:   msg.GuildID,
			Username:  msg.Author.Username,
			Content:   msg.Content,
		})

	case "MESSAGE_DELETE":
		var del struct {
			ID        string `json:"id"`
			ChannelID string `json:"channel_id"`
			GuildID   string `json:"guild_id"`
		}
		if err := json.Unmarshal(data, &del); err != nil {
			return
		}
		a.bus.Publish(events.TopicLifecycle, domain.MessageDeleteEvent{
			MessageID: del.ID,
			ChannelID: del.ChannelID,
			GuildID:   del.GuildID,
		})

	case "GUILD_MEMBER_ADD":
		var add struct {
			GuildID string       `json:"guild_id"`
			User    discord.User `json:"user"`
		}
		if err := json.Unmarshal(data, &add); err != nil {
			return
		}
		a.bus.Publish(events.TopicLifecycle, domain.MemberJoinEvent{
			GuildID: add.GuildID,
			UserID:  add.User.ID,
		})

	case "INTERACTION_CREATE":
		var in discord.Interaction
		if err := json.Unmarshal(data, &in); err != nil {
			return
		}
		ev, ok := a.mapInteraction(in)
		if !ok {
			return
		}
		a.bus.Publish(events.TopicInteraction, ev)
	}
}

func (a *Adapter) mapInteraction(in discord.Interaction) (domain.InteractionEvent, bool) {
	if in.Type != 2 { // application command
		return domain.InteractionEvent{}, false
	}

	options := make(map[string]string, len(in.Data.Options))
	for _, opt := range in.Data.Options {
		var s string
		if err := json.Unmarshal(opt.Value, &s); err == nil {
			options[opt.Name] = s
		} else {
			options[opt.Name] = string(opt.Value)
		}
	}

	userID := ""
	if in.Member != nil {
		userID = in.Member.User.ID
	} else if in.User != nil {
		userID = in.User.ID
	}

	return domain.InteractionEvent{
		ID:          in.ID,
		Token:       in.Token,
		GuildID:     in.GuildID,
		ChannelID:   in.Channel.ID,
		UserID:      userID,
		CommandName: in.Data.Name,
		Options:     options,
	}, true
}

func (a *Adapter) registerSlashCommands(appID string) {
	if len(a.slash) == 0 || a.guildID == "" {
		return
	}
	if err := a.rest.RegisterGuildCommands(context.Background(), appID, a.guildID, a.slash); err != nil {
		a.log.Error("failed to register slash commands", zap.Error(err))
		return
	}
	a.log.Info("registered slash commands", zap.Int("count", len(a.slash)))
}

func (a *Adapter) botID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.botUserID
}

func (a *Adapter) applicationID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.appID
}

// --- domain.ChatPort ---

func (a *Adapter) SendMessage(ctx context.Context, channelID, content string) (domain.MessageRef, error) {
	msg, err := a.rest.CreateMessage(ctx, channelID, content)
	if err != nil {
		return domain.MessageRef{}, err
	}
	return domain.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (a *Adapter) EditMessage(ctx context.Context, ref domain.MessageRef, content string) error {
	return a.rest.EditMessage(ctx, ref.ChannelID, ref.MessageID, content)
}

func (a *Adapter) DeleteMessage(ctx context.Context, ref domain.MessageRef) error {
	return a.rest.DeleteMessage(ctx, ref.ChannelID, ref.MessageID)
}

func (a *Adapter) AddReaction(ctx context.Context, ref domain.MessageRef, emoji string) error {
	return a.rest.CreateReaction(ctx, ref.ChannelID, ref.MessageID, emoji)
}

func (a *Adapter) GuildEmojis(ctx context.Context, guildID string) ([]domain.Emoji, error) {
	emojis, err := a.rest.GuildEmojis(ctx, guildID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Emoji, len(emojis))
	for i, e := range emojis {
		out[i] = domain.Emoji{ID: e.ID, Name: e.Name, Animated: e.Animated}
	}
	return out, nil
}

func (a *Adapter) GrantRole(ctx context.Context, guildID, userID, roleID, reason string) error {
	return a.rest.AddMemberRole(ctx, guildID, userID, roleID, reason)
}

// --- repliers ---

// LegacyReplier answers prefix commands by posting into the originating
// channel.
func (a *Adapter) LegacyReplier(channelID string) domain.Replier {
	return &legacyReplier{rest: a.rest, channelID: channelID}
}

type legacyReplier struct {
	rest      *discord.Client
	channelID string
}

func (r *legacyReplier) Say(ctx context.Context, content string) (domain.MessageRef, error) {
	msg, err := r.rest.CreateMessage(ctx, r.channelID, content)
	if err != nil {
		return domain.MessageRef{}, err
	}
	return domain.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (r *legacyReplier) Delete(ctx context.Context, ref domain.MessageRef) error {
	return r.rest.DeleteMessage(ctx, ref.ChannelID, ref.MessageID)
}

// NativeReplier answers a slash interaction: the first Say becomes the
// interaction response, later ones become followups.
func (a *Adapter) NativeReplier(ev domain.InteractionEvent) domain.Replier {
	return &nativeReplier{rest: a.rest, appID: a.applicationID(), interaction: ev}
}

type nativeReplier struct {
	rest        *discord.Client
	appID       string
	interaction domain.InteractionEvent

	mu        sync.Mutex
	responded bool
}

func (r *nativeReplier) Say(ctx context.Context, content string) (domain.MessageRef, error) {
	r.mu.Lock()
	first := !r.responded
	r.responded = true
	r.mu.Unlock()

	if first {
		if err := r.rest.RespondToInteraction(ctx, r.interaction.ID, r.interaction.Token, content); err != nil {
			return domain.MessageRef{}, err
		}
		msg, err := r.rest.OriginalResponse(ctx, r.appID, r.interaction.Token)
		if err != nil {
			return domain.MessageRef{}, err
		}
		return domain.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
	}

	msg, err := r.rest.CreateFollowup(ctx, r.appID, r.interaction.Token, content)
	if err != nil {
		return domain.MessageRef{}, err
	}
	return domain.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (r *nativeReplier) Delete(ctx context.Context, ref domain.MessageRef) error {
	return r.rest.DeleteFollowup(ctx, r.appID, r.interaction.Token, ref.MessageID)
}
