package coordinator

import (
	"time"
)

// EventType names an outbound event
type EventType string

const (
	EventJoined       EventType = "game:joined"
	EventStateUpdated EventType = "game:updated"
	EventStarted      EventType = "game:started"
	EventRoundPrepare EventType = "round:prepare"
	EventCountdown    EventType = "game:countdown"
	EventRoundStarted EventType = "round:started"
	EventBidConfirmed EventType = "bid:confirmed"
	EventBidPlaced    EventType = "player:bid"
	EventGaveUp       EventType = "player:gaveup"
	EventRoundEnded   EventType = "round:ended"
	EventTimeTick     EventType = "game:timeUpdate"
	EventGameEnded    EventType = "game:ended"
	EventError        EventType = "error"
)

// ReasonTimeExhausted marks bids completed by the server when the budget ran out
const ReasonTimeExhausted = "time_exhausted"

// Event is one message pushed to clients
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// JoinedPayload is sent to a participant after joining
type JoinedPayload struct {
	ParticipantID string          `json:"participantId"`
	IsHost        bool            `json:"isHost"`
	Participant   ParticipantView `json:"participant"`
}

type RoundPreparePayload struct {
	Round int `json:"round"`
}

type CountdownPayload struct {
	Seconds int `json:"seconds"`
}

type RoundStartedPayload struct {
	Round        int      `json:"round"`
	StillHolding []string `json:"playersStillHolding"`
}

// BidConfirmedPayload is sent to the bidder only
type BidConfirmedPayload struct {
	BidTimeMillis int64   `json:"bidTime"`
	TimeExhausted bool    `json:"timeExhausted"`
	AutoCompleted bool    `json:"autoCompleted,omitempty"`
	Reason        string  `json:"reason,omitempty"`
	RemainingTime float64 `json:"remainingTime"`
}

// BidPlacedPayload is sent to everyone except the bidder
type BidPlacedPayload struct {
	ParticipantID string `json:"playerId"`
	Name          string `json:"playerName"`
	BidTimeMillis int64  `json:"bidTime"`
	TimeExhausted bool   `json:"timeExhausted"`
}

type GaveUpPayload struct {
	ParticipantID string `json:"playerId"`
	Name          string `json:"playerName"`
}

type TimeTickPayload struct {
	ElapsedSeconds float64        `json:"elapsedTime"`
	RoundStartTime int64          `json:"roundStartTime"`
	Players        []EstimateView `json:"players"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
