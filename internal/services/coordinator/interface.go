package coordinator

//go:generate mockgen -package=mocks -destination=mocks/mock_coordinator.go github.com/KirkDiggler/timebid/internal/services/coordinator Broadcaster,Announcer

import (
	"context"

	"github.com/KirkDiggler/timebid/internal/models"
)

// Service is the entry point the transport layer calls into
type Service interface {
	// Handle validates and applies one client intent
	Handle(ctx context.Context, participantID string, intent *Intent) error

	// Leave removes a participant whose connection closed
	Leave(ctx context.Context, participantID string) error

	// Snapshot returns the current game state, or nil when there is no game
	Snapshot() *GameSnapshot
}

// Broadcaster delivers events to connected participants.
// Implementations must not block.
type Broadcaster interface {
	// Broadcast sends to every participant
	Broadcast(event *Event)

	// SendTo sends to one participant
	SendTo(participantID string, event *Event)

	// SendToOthers sends to everyone except one participant
	SendToOthers(participantID string, event *Event)
}

// Announcer posts finished rounds and games somewhere outside the game
type Announcer interface {
	AnnounceRound(ctx context.Context, result *models.RoundResult) error
	AnnounceGame(ctx context.Context, results *models.GameResults) error
}
