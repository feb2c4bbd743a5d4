package game

import (
	"time"

	"github.com/KirkDiggler/timebid/internal/common/clock"
	"github.com/KirkDiggler/timebid/internal/common/ids"
	"github.com/KirkDiggler/timebid/internal/models"
)

const (
	// OutOfTimeTolerance is the budget below which a player counts as out of time
	OutOfTimeTolerance = 10 * time.Millisecond

	// ExhaustionTolerance is how far past the budget a hold may run before the poll finalizes it
	ExhaustionTolerance = time.Millisecond

	// TieTolerance is the distance from the top bid within which bids tie
	TieTolerance = time.Millisecond

	// DefaultCountdownSeconds is the length of the countdown gate
	DefaultCountdownSeconds = 5

	// MinPlayers is the number of ready players needed to start
	MinPlayers = 2

	// MaxTimePerPlayer caps the per-player budget a host can configure
	MaxTimePerPlayer = 24 * time.Hour
)

// DefaultSettings give each player ten minutes over nineteen rounds
var DefaultSettings = models.Settings{
	TimePerPlayer: 600 * time.Second,
	TotalRounds:   19,
}

// Config holds configuration for the game service
type Config struct {
	// Clock is the time source used for every elapsed-time computation
	Clock clock.Clock

	// IDGenerator names new games
	IDGenerator ids.Generator

	// Settings are applied to each newly created game; zero uses DefaultSettings
	Settings models.Settings

	// CountdownSeconds is the first countdown value; zero uses DefaultCountdownSeconds
	CountdownSeconds int
}

// ReleaseKind describes what a button release did
type ReleaseKind string

const (
	// ReleaseIgnored means the participant was not holding
	ReleaseIgnored ReleaseKind = "ignored"

	// ReleaseCleared means a release before the countdown, which only clears the hold
	ReleaseCleared ReleaseKind = "cleared"

	// ReleaseGaveUp means a release during the countdown
	ReleaseGaveUp ReleaseKind = "gave_up"

	// ReleaseBid means a release while bidding, which placed a bid
	ReleaseBid ReleaseKind = "bid"
)

// JoinInput contains parameters for joining the game
type JoinInput struct {
	// ParticipantID is the connection identity of the participant
	ParticipantID string

	// Name is the display name
	Name string

	// Role is the requested role
	Role models.Role
}

// JoinOutput contains the result of joining
type JoinOutput struct {
	Participant *models.Participant

	// Created is true when this join created the game
	Created bool

	// Rejoined is true when the participant was already registered
	Rejoined bool

	// CountdownStarted and Result report a round re-evaluated after a role change
	CountdownStarted bool
	Result           *models.RoundResult
}

// LeaveInput contains parameters for leaving the game
type LeaveInput struct {
	ParticipantID string
}

// LeaveOutput contains the consequences of a participant leaving
type LeaveOutput struct {
	// Participant is the removed participant
	Participant *models.Participant

	// GameClosed is true when the last participant left
	GameClosed bool

	// CountdownStarted is true when the remaining players were all holding
	CountdownStarted bool

	// Result is set when the departure resolved the round
	Result *models.RoundResult
}

// UpdateSettingsInput contains a partial settings change
type UpdateSettingsInput struct {
	ParticipantID string

	// TimePerPlayer replaces the time budget when set
	TimePerPlayer *time.Duration

	// TotalRounds replaces the number of rounds when set
	TotalRounds *int
}

// UpdateSettingsOutput contains the settings after the change
type UpdateSettingsOutput struct {
	Settings models.Settings
}

// HostInput identifies the participant issuing a host-only action
type HostInput struct {
	ParticipantID string
}

// ToggleReadyInput contains parameters for toggling ready
type ToggleReadyInput struct {
	ParticipantID string
}

// ToggleReadyOutput contains the new ready flag
type ToggleReadyOutput struct {
	IsReady bool
}

// StartGameOutput contains the first prepared round
type StartGameOutput struct {
	Round int
}

// PressButtonInput contains parameters for a button press
type PressButtonInput struct {
	ParticipantID string
}

// PressButtonOutput contains the result of a button press
type PressButtonOutput struct {
	// Accepted is false when the participant was already holding
	Accepted bool

	// CountdownStarted is true when this press completed the gate
	CountdownStarted bool
}

// ReleaseButtonInput contains parameters for a button release
type ReleaseButtonInput struct {
	ParticipantID string
}

// ReleaseButtonOutput contains the result of a button release
type ReleaseButtonOutput struct {
	Kind ReleaseKind

	// Participant is a copy of the releasing participant after the release
	Participant *models.Participant

	// Bid is set when Kind is ReleaseBid
	Bid *models.RoundBid

	// CountdownAborted is true when nobody is left holding during the countdown
	CountdownAborted bool

	// Result is set when the release resolved the round
	Result *models.RoundResult
}

// CountdownTickOutput contains the result of one countdown second
type CountdownTickOutput struct {
	// Seconds is the countdown value to announce
	Seconds int

	// BiddingStarted is true on the final tick when the common timer starts
	BiddingStarted bool

	// Bidding lists the participants whose bids are live
	Bidding []string

	// Forfeited lists participants who held through the countdown with no time left
	Forfeited []*models.Participant

	// Result is set when the final tick resolved the round
	Result *models.RoundResult
}

// PollBiddingOutput contains the result of a bidding poll
type PollBiddingOutput struct {
	// Elapsed is the time since the common timer started
	Elapsed time.Duration

	// Expired are the bids finalized because their budget ran out
	Expired []*models.RoundBid

	// Result is set when the poll resolved the round
	Result *models.RoundResult
}

// Estimate is a player's remaining time as seen right now
type Estimate struct {
	ParticipantID string
	Name          string
	Remaining     time.Duration
	IsBidding     bool
}

// EstimatesOutput contains the live remaining time of every player
type EstimatesOutput struct {
	// Elapsed is the time since the common timer started, zero outside bidding
	Elapsed        time.Duration
	RoundStartTime time.Time
	Players        []Estimate
}

// AdvanceRoundOutput contains either the next round or the final results
type AdvanceRoundOutput struct {
	// NextRound is set when another round was prepared
	NextRound int

	// Results is set when the game ended
	Results *models.GameResults
}
