// Package eventbus fans coordinator events out to more than one sink.
package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/KirkDiggler/timebid/internal/services/coordinator"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Publisher is the part of *nats.Conn the bus uses
type Publisher interface {
	PublishMsg(msg *nats.Msg) error
}

// Fanout delivers every event to the primary broadcaster and mirrors public events to NATS
type Fanout struct {
	primary   coordinator.Broadcaster
	publisher Publisher
	subject   string
	skip      map[coordinator.EventType]bool
}

// Config holds the sinks of a Fanout
type Config struct {
	// Primary receives every event, usually the websocket gateway
	Primary coordinator.Broadcaster

	// Publisher is optional; broadcast events are published to "<Subject>.<event type>"
	Publisher Publisher
	Subject   string

	// Skip lists event types that are never published
	Skip []coordinator.EventType
}

// New creates a Fanout
func New(cfg *Config) (*Fanout, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Primary == nil {
		return nil, ErrNilPrimary
	}
	if cfg.Publisher != nil && cfg.Subject == "" {
		return nil, ErrMissingSubject
	}

	f := &Fanout{
		primary:   cfg.Primary,
		publisher: cfg.Publisher,
		subject:   cfg.Subject,
		skip:      make(map[coordinator.EventType]bool),
	}
	for _, t := range cfg.Skip {
		f.skip[t] = true
	}
	return f, nil
}

// Broadcast sends to every participant and publishes the event
func (f *Fanout) Broadcast(event *coordinator.Event) {
	f.primary.Broadcast(event)
	f.publish(event)
}

// SendTo is private to one participant and never published
func (f *Fanout) SendTo(participantID string, event *coordinator.Event) {
	f.primary.SendTo(participantID, event)
}

// SendToOthers sends to everyone but one participant and publishes the event
func (f *Fanout) SendToOthers(participantID string, event *coordinator.Event) {
	f.primary.SendToOthers(participantID, event)
	f.publish(event)
}

func (f *Fanout) publish(event *coordinator.Event) {
	if f.publisher == nil || f.skip[event.Type] {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("event_type", string(event.Type)).Msg("Failed to marshal event")
		return
	}

	subject := fmt.Sprintf("%s.%s", f.subject, event.Type)
	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header: nats.Header{
			"Event-Type": []string{string(event.Type)},
		},
	}
	if err := f.publisher.PublishMsg(msg); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to publish event")
	}
}

// Connect dials NATS with reconnect logging
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("timebid"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}
