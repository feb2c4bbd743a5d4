package coordinator

import (
	"time"

	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/KirkDiggler/timebid/internal/services/game"
)

// IntentType names an inbound client action
type IntentType string

const (
	IntentJoin                IntentType = "join"
	IntentRejoin              IntentType = "rejoin"
	IntentGetInfo             IntentType = "getInfo"
	IntentUpdateSettings      IntentType = "updateSettings"
	IntentFinishConfiguration IntentType = "finishConfiguration"
	IntentStartGame           IntentType = "startGame"
	IntentToggleReady         IntentType = "toggleReady"
	IntentButtonPress         IntentType = "buttonPress"
	IntentButtonRelease       IntentType = "buttonRelease"
	IntentAdvanceRound        IntentType = "advanceRound"
)

// Intent is a decoded client action
type Intent struct {
	Type IntentType

	// Name and Role are used by join
	Name string
	Role models.Role

	// Settings is used by updateSettings
	Settings *SettingsPatch
}

// SettingsPatch is a partial settings change as sent by the display
type SettingsPatch struct {
	// TimePerPlayer is in whole seconds
	TimePerPlayer *int `json:"timePerPlayer,omitempty"`
	TotalRounds   *int `json:"totalRounds,omitempty"`
}

func (p *SettingsPatch) timePerPlayer() (*time.Duration, error) {
	if p == nil || p.TimePerPlayer == nil {
		return nil, nil
	}
	seconds := *p.TimePerPlayer
	if seconds > int(game.MaxTimePerPlayer/time.Second) {
		return nil, game.ErrInvalidSettings
	}
	d := time.Duration(seconds) * time.Second
	return &d, nil
}

func (p *SettingsPatch) totalRounds() *int {
	if p == nil {
		return nil
	}
	return p.TotalRounds
}
