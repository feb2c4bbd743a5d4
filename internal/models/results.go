package models

import (
	"time"
)

// Standing is a player's final position in a game
type Standing struct {
	Rank          int
	ParticipantID string
	Name          string
	Wins          int
	RemainingTime time.Duration
}

// GameResults is the summary produced when the last round is advanced past
type GameResults struct {
	// GameID identifies the finished game
	GameID string

	Settings Settings

	// Winner is the top standing, Loser the bottom one
	Winner *Standing
	Loser  *Standing

	// Standings are sorted by wins descending, then remaining time descending
	Standings []*Standing

	Rounds []*RoundResult

	StartedAt time.Time
	EndedAt   time.Time
}
