// Package handle_message wires an incoming chat message through the
// showcase mirror and the command router.
package handle_message

import (
	"context"

	"go.uber.org/zap"

	"rustbot/internal/domain"
	"rustbot/internal/usecase/commands"
	"rustbot/internal/usecase/showcase"
)

// ReplierFactory builds the legacy replier for a channel.
type ReplierFactory func(channelID string) domain.Replier

type Interactor struct {
	router   *commands.Router
	showcase *showcase.Service
	repliers ReplierFactory
	log      *zap.Logger
}

func NewInteractor(router *commands.Router, sc *showcase.Service, repliers ReplierFactory, log *zap.Logger) *Interactor {
	return &Interactor{
		router:   router,
		showcase: sc,
		repliers: repliers,
		log:      log,
	}
}

func (uc *Interactor) Handle(ctx context.Context, msg domain.Message) {
	if err := uc.showcase.Mirror(ctx, msg); err != nil {
		uc.log.Error("failed to showcase message", zap.String("source", msg.ID), zap.Error(err))
	}
	uc.router.HandleMessage(ctx, msg, uc.repliers(msg.ChannelID))
}
