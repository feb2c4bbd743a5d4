// Package ws is the websocket transport between browsers and the coordinator.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/KirkDiggler/timebid/internal/common/clock"
	"github.com/KirkDiggler/timebid/internal/common/ids"
	"github.com/KirkDiggler/timebid/internal/services/coordinator"
	"github.com/KirkDiggler/timebid/internal/services/game"
	"github.com/KirkDiggler/timebid/internal/services/messaging"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Gateway owns every websocket connection. The connection ID is the participant ID.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection

	upgrader    websocket.Upgrader
	config      Config
	ids         ids.Generator
	clock       clock.Clock
	messaging   messaging.Service
	coordinator coordinator.Service

	broadcastCh chan outbound
}

// Config holds websocket tuning and collaborators
type Config struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBufferSize  int
	CheckOrigin     func(r *http.Request) bool

	// IDGenerator names new connections; UUIDs when nil
	IDGenerator ids.Generator

	// Messaging turns rejected intents into friendly text; optional
	Messaging messaging.Service

	// Clock stamps error events; wall clock when nil
	Clock clock.Clock
}

type target int

const (
	targetAll target = iota
	targetOnly
	targetExcept
)

type outbound struct {
	target        target
	participantID string
	event         *coordinator.Event
}

// DefaultConfig returns the default websocket configuration
func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  4096,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBufferSize:  256,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// New creates a gateway; call SetCoordinator before serving connections
func New(cfg Config) *Gateway {
	generator := cfg.IDGenerator
	if generator == nil {
		generator = ids.New()
	}
	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = 256
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Gateway{
		connections: make(map[string]*Connection),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
		config:      cfg,
		ids:         generator,
		clock:       clk,
		messaging:   cfg.Messaging,
		broadcastCh: make(chan outbound, 1000),
	}
}

// SetCoordinator attaches the service that handles inbound intents
func (g *Gateway) SetCoordinator(c coordinator.Service) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.coordinator = c
}

// Start delivers queued events in order until ctx is done
func (g *Gateway) Start(ctx context.Context) {
	log.Info().Msg("Gateway started")

	for {
		select {
		case <-ctx.Done():
			g.closeAll()
			log.Info().Msg("Gateway shutting down")
			return
		case message := <-g.broadcastCh:
			g.deliver(message)
		}
	}
}

// ServeHTTP upgrades the request and starts the connection pumps
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.RLock()
	ready := g.coordinator != nil
	g.mu.RUnlock()
	if !ready {
		http.Error(w, "game is not ready", http.StatusServiceUnavailable)
		return
	}

	id := g.ids.NewID()
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	c := &Connection{
		ID:      id,
		conn:    conn,
		send:    make(chan []byte, g.config.SendBufferSize),
		gateway: g,
	}
	g.register(c)

	go c.writePump()
	go c.readPump()

	log.Info().
		Str("connection_id", c.ID).
		Str("remote_addr", r.RemoteAddr).
		Msg("Websocket connection established")
}

// Broadcast sends to every connection
func (g *Gateway) Broadcast(event *coordinator.Event) {
	g.enqueue(outbound{target: targetAll, event: event})
}

// SendTo sends to one connection
func (g *Gateway) SendTo(participantID string, event *coordinator.Event) {
	g.enqueue(outbound{target: targetOnly, participantID: participantID, event: event})
}

// SendToOthers sends to every connection except one
func (g *Gateway) SendToOthers(participantID string, event *coordinator.Event) {
	g.enqueue(outbound{target: targetExcept, participantID: participantID, event: event})
}

// ConnectionCount reports how many sockets are open
func (g *Gateway) ConnectionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.connections)
}

func (g *Gateway) enqueue(message outbound) {
	select {
	case g.broadcastCh <- message:
	default:
		log.Warn().Str("event_type", string(message.event.Type)).Msg("Broadcast channel full, dropping event")
	}
}

func (g *Gateway) deliver(message outbound) {
	data, err := json.Marshal(message.event)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(message.event.Type)).Msg("Failed to marshal event")
		return
	}

	var slow []*Connection

	g.mu.RLock()
	for id, c := range g.connections {
		switch message.target {
		case targetOnly:
			if id != message.participantID {
				continue
			}
		case targetExcept:
			if id == message.participantID {
				continue
			}
		}

		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	g.mu.RUnlock()

	for _, c := range slow {
		log.Warn().Str("connection_id", c.ID).Msg("Send buffer full, closing connection")
		g.unregister(c)
		c.conn.Close()
	}
}

func (g *Gateway) register(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.connections[c.ID] = c
}

// unregister is safe to call more than once
func (g *Gateway) unregister(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if current, ok := g.connections[c.ID]; ok && current == c {
		delete(g.connections, c.ID)
		close(c.send)
	}
}

func (g *Gateway) closeAll() {
	g.mu.Lock()
	connections := make([]*Connection, 0, len(g.connections))
	for _, c := range g.connections {
		connections = append(connections, c)
	}
	g.mu.Unlock()

	for _, c := range connections {
		g.unregister(c)
		c.conn.Close()
	}
}

// handle forwards one decoded intent and reports rejections to the sender
func (g *Gateway) handle(c *Connection, intent *coordinator.Intent) {
	g.mu.RLock()
	svc := g.coordinator
	g.mu.RUnlock()

	ctx := context.Background()
	err := svc.Handle(ctx, c.ID, intent)
	if err == nil || errors.Is(err, game.ErrParticipantNotFound) {
		return
	}

	g.SendTo(c.ID, &coordinator.Event{
		Type:      coordinator.EventError,
		Timestamp: g.clock.Now(),
		Data:      coordinator.ErrorPayload{Message: g.errorMessage(ctx, err)},
	})
}

func (g *Gateway) errorMessage(ctx context.Context, err error) string {
	if g.messaging == nil {
		return err.Error()
	}
	output, msgErr := g.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		return err.Error()
	}
	return output.Message
}

// disconnected removes the participant behind a closed connection
func (g *Gateway) disconnected(c *Connection) {
	g.mu.RLock()
	svc := g.coordinator
	g.mu.RUnlock()

	err := svc.Leave(context.Background(), c.ID)
	if err != nil && !errors.Is(err, game.ErrParticipantNotFound) && !errors.Is(err, game.ErrNoGame) {
		log.Error().Err(err).Str("connection_id", c.ID).Msg("Failed to remove participant")
	}
}
