package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// EventHandler receives every dispatched gateway event, sequentially, in
// arrival order. Handlers that need to suspend must hand off to their own
// goroutine so the read loop is never blocked.
type EventHandler func(eventType string, data json.RawMessage)

// Gateway maintains the websocket connection to the Discord gateway:
// hello/heartbeat handshake, identify or resume, and the dispatch loop.
type Gateway struct {
	token   string
	handler EventHandler
	log     *zap.Logger

	sessionID string
	seqMu     sync.Mutex
	seq       int
}

func NewGateway(token string, handler EventHandler, log *zap.Logger) *Gateway {
	return &Gateway{
		token:   token,
		handler: handler,
		log:     log,
	}
}

// Run connects and processes events until the context is cancelled,
// reconnecting with a fixed backoff on any connection failure.
func (g *Gateway) Run(ctx context.Context) error {
	for {
		if err := g.connectAndRun(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			g.log.Error("gateway connection ended", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			g.log.Info("reconnecting to gateway")
		}
	}
}

func (g *Gateway) connectAndRun(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, gatewayURL, nil)
	if err != nil {
		return fmt.Errorf("dialing gateway: %w", err)
	}
	defer conn.Close()

	var hello gatewayPayload
	if err := conn.ReadJSON(&hello); err != nil {
		return fmt.Errorf("reading hello: %w", err)
	}
	if hello.Op != opHello {
		return fmt.Errorf("expected hello op %d, got %d", opHello, hello.Op)
	}
	var hd helloData
	if err := json.Unmarshal(hello.D, &hd); err != nil {
		return fmt.Errorf("decoding hello: %w", err)
	}

	// Writes may come from the heartbeat goroutine and the read loop.
	var writeMu sync.Mutex
	writeJSON := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	hbCtx, hbCancel := context.WithCancel(ctx)
	defer hbCancel()
	go g.heartbeatLoop(hbCtx, writeJSON, time.Duration(hd.HeartbeatInterval)*time.Millisecond)

	if g.sessionID != "" {
		err = g.sendResume(writeJSON)
	} else {
		err = g.sendIdentify(writeJSON)
	}
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var payload gatewayPayload
		if err := conn.ReadJSON(&payload); err != nil {
			return fmt.Errorf("reading gateway frame: %w", err)
		}

		if payload.S != nil {
			g.seqMu.Lock()
			g.seq = *payload.S
			g.seqMu.Unlock()
		}

		switch payload.Op {
		case opDispatch:
			if payload.T == "READY" {
				var ready readyData
				if json.Unmarshal(payload.D, &ready) == nil {
					g.sessionID = ready.SessionID
				}
			}
			g.handler(payload.T, payload.D)
		case opHeartbeat:
			if err := g.sendHeartbeat(writeJSON); err != nil {
				return err
			}
		case opReconnect:
			g.log.Info("gateway requested reconnect")
			return nil
		case opInvalidSession:
			g.log.Warn("gateway session invalidated")
			g.sessionID = ""
			return nil
		case opHeartbeatAck:
		}
	}
}

func (g *Gateway) sendIdentify(write func(any) error) error {
	intents := intentGuilds | intentGuildMembers | intentGuildEmojis |
		intentGuildMessages | intentMessageContent

	d, err := json.Marshal(identifyData{
		Token:   g.token,
		Intents: intents,
		Properties: map[string]string{
			"os": "linux", "browser": "rustbot", "device": "rustbot",
		},
	})
	if err != nil {
		return err
	}
	return write(gatewayPayload{Op: opIdentify, D: d})
}

func (g *Gateway) sendResume(write func(any) error) error {
	g.seqMu.Lock()
	seq := g.seq
	g.seqMu.Unlock()

	d, err := json.Marshal(resumeData{Token: g.token, SessionID: g.sessionID, Seq: seq})
	if err != nil {
		return err
	}
	return write(gatewayPayload{Op: opResume, D: d})
}

func (g *Gateway) sendHeartbeat(write func(any) error) error {
	g.seqMu.Lock()
	seq := g.seq
	g.seqMu.Unlock()

	d, _ := json.Marshal(seq)
	return write(gatewayPayload{Op: opHeartbeat, D: d})
}

func (g *Gateway) heartbeatLoop(ctx context.Context, write func(any) error, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := g.sendHeartbeat(write); err != nil {
				return
			}
		}
	}
}
