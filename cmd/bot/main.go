package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"rustbot/internal/app/events"
	"rustbot/internal/domain"
	"rustbot/internal/infrastructure/config"
	cratesinfra "rustbot/internal/infrastructure/crates"
	godboltinfra "rustbot/internal/infrastructure/godbolt"
	sqlitestorage "rustbot/internal/infrastructure/persistence/sqlite"
	playgroundinfra "rustbot/internal/infrastructure/playground"
	discordinfra "rustbot/internal/infrastructure/platform/discord"
	discordadapter "rustbot/internal/interface/adapters/discord"
	"rustbot/internal/usecase/ack"
	"rustbot/internal/usecase/commands"
	"rustbot/internal/usecase/eventsync"
	"rustbot/internal/usecase/handle_message"
	"rustbot/internal/usecase/notifications"
	"rustbot/internal/usecase/showcase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("loading config", zap.Error(err))
	}

	store, err := sqlitestorage.NewShowcaseStore(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("opening showcase store", zap.Error(err))
	}
	defer store.Close()

	bus := events.NewBus(logger)
	adapter := discordadapter.New(cfg.DiscordToken, cfg.GuildID, bus, logger)

	showcaseSvc := showcase.NewService(store, adapter, cfg.ShowcaseChannelID, logger)
	ackCtl := ack.NewController(adapter, logger)

	router := commands.NewRouter(cfg.CommandPrefix, []string{"🦀 ", "🦀"}, ackCtl, logger)

	playgroundClient := playgroundinfra.NewClient()
	registry := cratesinfra.NewClient()
	router.Register(commands.NewPlayCommand(playgroundClient))
	router.Register(commands.NewEvalCommand(playgroundClient))
	router.Register(commands.NewGodboltCommand(godboltinfra.NewClient()))
	router.Register(commands.NewCrateCommand(registry))
	router.Register(commands.NewDocCommand(registry))
	router.Register(commands.NewHelpCommand(router, cfg.CommandPrefix))
	router.Register(commands.NewUptimeCommand(time.Now()))
	router.Register(commands.SourceCommand{})
	router.Register(commands.GoCommand{})

	adapter.SetSlashCommands(slashCommands(router))

	interactor := handle_message.NewInteractor(router, showcaseSvc, adapter.LegacyReplier, logger)
	synchronizer := eventsync.NewSynchronizer(showcaseSvc, adapter, cfg.RustaceanRoleID, logger)
	errLogger := notifications.NewErrorLogger(bus, logger)

	go errLogger.Run(ctx)
	go consumeChatMessages(ctx, bus, interactor)
	go consumeLifecycle(ctx, bus, synchronizer)
	go consumeInteractions(ctx, bus, router, adapter)

	logger.Info("starting bot")
	if err := adapter.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("gateway stopped", zap.Error(err))
	}
	logger.Info("bot shut down")
}

func consumeChatMessages(ctx context.Context, bus *events.Bus, interactor *handle_message.Interactor) {
	ch, unsubscribe := bus.Subscribe(events.TopicChatMessage)
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-ch:
			if !ok {
				return
			}
			if msg, isMsg := payload.(domain.Message); isMsg {
				interactor.Handle(ctx, msg)
			}
		}
	}
}

// consumeLifecycle feeds message edits/deletes and member joins to the
// synchronizer, one at a time in arrival order. Consistency errors go to
// the error topic; they have no command context to answer into.
func consumeLifecycle(ctx context.Context, bus *events.Bus, s *eventsync.Synchronizer) {
	ch, unsubscribe := bus.Subscribe(events.TopicLifecycle)
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-ch:
			if !ok {
				return
			}
			if err := s.Dispatch(ctx, payload); err != nil {
				bus.Publish(events.TopicAppError, err)
			}
		}
	}
}

func consumeInteractions(ctx context.Context, bus *events.Bus, router *commands.Router, adapter *discordadapter.Adapter) {
	ch, unsubscribe := bus.Subscribe(events.TopicInteraction)
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-ch:
			if !ok {
				return
			}
			if ev, isEv := payload.(domain.InteractionEvent); isEv {
				router.HandleInteraction(ctx, ev, adapter.NativeReplier(ev))
			}
		}
	}
}

// slashCommands derives the guild slash command set from the router's
// catalog.
func slashCommands(router *commands.Router) []discordinfra.SlashCommand {
	var out []discordinfra.SlashCommand
	for _, cmd := range router.Catalog() {
		sc := discordinfra.SlashCommand{
			Name:        cmd.Name(),
			Description: cmd.Description(),
		}
		switch cmd.Name() {
		case "play", "eval", "godbolt":
			sc.Options = []discordinfra.SlashCommandOption{{
				Type:        3, // string
				Name:        "code",
				Description: "Code to run, in backticks",
				Required:    true,
			}}
		case "crate", "doc":
			sc.Options = []discordinfra.SlashCommandOption{{
				Type:        3,
				Name:        "query",
				Description: "Crate name",
				Required:    cmd.Name() == "crate",
			}}
		}
		out = append(out, sc)
	}
	return out
}
