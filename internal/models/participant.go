package models

import (
	"time"
)

// Role distinguishes button-holding players from display clients
type Role string

const (
	// RolePlayer is a participant who holds the button and bids
	RolePlayer Role = "player"

	// RoleDisplay is the shared screen that configures the game and drives rounds
	RoleDisplay Role = "display"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RolePlayer || r == RoleDisplay
}

// Participant represents one connected client attached to the game
type Participant struct {
	// ID is the connection identity of the participant
	ID string

	// Name is the display name chosen by the participant
	Name string

	// Role is the participant's role in the game
	Role Role

	// RemainingTime is the unspent time budget for the whole game
	RemainingTime time.Duration

	// Wins is the number of rounds won in the current game
	Wins int

	// IsReady is set by players in the waiting phase
	IsReady bool

	// IsHoldingButton is true while the button is down and not yet resolved
	IsHoldingButton bool

	// IsBidding is true once the common timer has started and the participant still holds
	IsBidding bool
}

// IsPlayer reports whether the participant takes part in rounds
func (p *Participant) IsPlayer() bool {
	return p.Role == RolePlayer
}

// ClearRoundFlags drops the per-round button state
func (p *Participant) ClearRoundFlags() {
	p.IsHoldingButton = false
	p.IsBidding = false
}

// Clone returns a copy that is safe to hand outside the engine
func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
