package models

import (
	"time"
)

// GameStatus represents the lifecycle stage of a game
type GameStatus string

const (
	// GameStatusConfiguring indicates the host is still adjusting settings
	GameStatusConfiguring GameStatus = "configuring"

	// GameStatusWaiting indicates players are readying up
	GameStatusWaiting GameStatus = "waiting"

	// GameStatusPlaying indicates a round is being prepared, counted down, or bid on
	GameStatusPlaying GameStatus = "playing"

	// GameStatusRoundEnd indicates a round has resolved and the host may advance
	GameStatusRoundEnd GameStatus = "roundEnd"

	// GameStatusEnded indicates every round has been played
	GameStatusEnded GameStatus = "ended"
)

// RoundPhase is the sub-phase of a round while the game is playing
type RoundPhase string

const (
	// RoundPhaseNone means no round is in progress
	RoundPhaseNone RoundPhase = ""

	// RoundPhaseGate means players may press and the countdown waits for everyone
	RoundPhaseGate RoundPhase = "gate"

	// RoundPhaseCountdown means everyone pressed and the countdown is ticking
	RoundPhaseCountdown RoundPhase = "countdown"

	// RoundPhaseBidding means the common timer is running
	RoundPhaseBidding RoundPhase = "bidding"

	// RoundPhaseResolved means the round result is final
	RoundPhaseResolved RoundPhase = "resolved"
)

// Settings are the host-controlled game parameters
type Settings struct {
	// TimePerPlayer is the time budget each player gets for the whole game
	TimePerPlayer time.Duration

	// TotalRounds is the number of rounds in a game
	TotalRounds int
}

// GameState holds the round machinery of a game
type GameState struct {
	Status       GameStatus
	Phase        RoundPhase
	CurrentRound int

	// CountdownRemaining is the next countdown value to announce
	CountdownRemaining int
	CountdownStartTime time.Time

	// RoundStartTime is when the common timer started
	RoundStartTime time.Time

	// CurrentBids maps participant ID to the bid placed this round
	CurrentBids map[string]RoundBid

	// ButtonPressStartTimes maps participant ID to the instant their clock started
	ButtonPressStartTimes map[string]time.Time

	// GaveUp marks participants who released during the countdown or had no time left
	GaveUp map[string]bool

	RoundHistory []*RoundResult
}

// IsWaitingForCountdown reports whether the countdown is running
func (s *GameState) IsWaitingForCountdown() bool {
	return s.Phase == RoundPhaseCountdown
}

// CommonTimerStarted reports whether bids are being measured
func (s *GameState) CommonTimerStarted() bool {
	return s.Phase == RoundPhaseBidding
}

// HistoryFor returns the recorded result of a round, if any
func (s *GameState) HistoryFor(round int) *RoundResult {
	for _, r := range s.RoundHistory {
		if r.Round == round {
			return r
		}
	}
	return nil
}

// ResetRound clears the round-scoped transient fields
func (s *GameState) ResetRound() {
	s.Phase = RoundPhaseNone
	s.CountdownRemaining = 0
	s.CountdownStartTime = time.Time{}
	s.RoundStartTime = time.Time{}
	s.CurrentBids = make(map[string]RoundBid)
	s.ButtonPressStartTimes = make(map[string]time.Time)
	s.GaveUp = make(map[string]bool)
}

// Game is the single authoritative game instance
type Game struct {
	// ID is the unique identifier for the game
	ID string

	// HostID is the participant who created the game
	HostID string

	Settings Settings

	// Participants are kept in join order
	Participants []*Participant

	State GameState

	CreatedAt time.Time

	// StartedAt is when the host last started the game
	StartedAt time.Time
}

// Participant looks up a participant by ID
func (g *Game) Participant(id string) *Participant {
	for _, p := range g.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Players returns the player-role participants in join order
func (g *Game) Players() []*Participant {
	players := make([]*Participant, 0, len(g.Participants))
	for _, p := range g.Participants {
		if p.IsPlayer() {
			players = append(players, p)
		}
	}
	return players
}
