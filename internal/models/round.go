package models

import (
	"time"
)

// DrawReason explains why a round produced no winner
type DrawReason string

const (
	DrawReasonNone             DrawReason = ""
	DrawReasonNoBids           DrawReason = "no_bids"
	DrawReasonTie              DrawReason = "tie"
	DrawReasonAllPlayersGaveUp DrawReason = "all_players_gave_up"
)

// RoundBid is one participant's offer in a round
type RoundBid struct {
	ParticipantID   string
	ParticipantName string

	// BidTime is the time since the common timer started when the participant let go
	BidTime time.Duration

	// TimeExhausted is set when the bid was clamped to the remaining budget
	TimeExhausted bool
}

// RoundResult is the outcome of a single round
type RoundResult struct {
	// Round is the 1-based round number
	Round int

	IsDraw bool
	Reason DrawReason

	// WinnerID, WinnerName and WinTime are set only when the round is not a draw
	WinnerID   string
	WinnerName string
	WinTime    time.Duration

	// Bids lists every bid placed this round in join order
	Bids []RoundBid

	ResolvedAt time.Time
}
