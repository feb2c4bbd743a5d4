package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/timebid/internal/services/game Service

import (
	"github.com/KirkDiggler/timebid/internal/models"
)

// Service is the participant registry and round engine of a single game.
// It is not safe for concurrent use; callers serialize access.
type Service interface {
	// Game returns the live game, or nil when nobody has joined
	Game() *models.Game

	// Join registers a participant, creating the game for the first one
	Join(input *JoinInput) (*JoinOutput, error)

	// Leave removes a participant and discards the game when it empties
	Leave(input *LeaveInput) (*LeaveOutput, error)

	// UpdateSettings merges host settings and resets player budgets
	UpdateSettings(input *UpdateSettingsInput) (*UpdateSettingsOutput, error)

	// FinishConfiguration moves the game from configuring to waiting
	FinishConfiguration(input *HostInput) error

	// ToggleReady flips a player's ready flag
	ToggleReady(input *ToggleReadyInput) (*ToggleReadyOutput, error)

	// StartGame resets scores and budgets and prepares round one
	StartGame(input *HostInput) (*StartGameOutput, error)

	// PressButton records a button press
	PressButton(input *PressButtonInput) (*PressButtonOutput, error)

	// ReleaseButton records a button release
	ReleaseButton(input *ReleaseButtonInput) (*ReleaseButtonOutput, error)

	// CountdownTick advances the countdown by one second
	CountdownTick() (*CountdownTickOutput, error)

	// PollBidding finalizes bidders who ran out of time
	PollBidding() (*PollBiddingOutput, error)

	// ResolveRound resolves the current round; repeated calls return the recorded result
	ResolveRound() (*models.RoundResult, error)

	// AdvanceRound prepares the next round or ends the game
	AdvanceRound(input *HostInput) (*AdvanceRoundOutput, error)

	// Estimates reports each player's remaining time including holds in progress
	Estimates() (*EstimatesOutput, error)
}
