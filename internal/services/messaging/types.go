package messaging

import (
	"math/rand"

	"github.com/KirkDiggler/timebid/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// GetRoundResultMessageInput contains the round to describe
type GetRoundResultMessageInput struct {
	Result *models.RoundResult

	// TotalRounds is used for "round 3 of 19" phrasing; zero omits it
	TotalRounds int
}

// GetRoundResultMessageOutput contains the round announcement
type GetRoundResultMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetGameResultMessageInput contains the final results to describe
type GetGameResultMessageInput struct {
	Results *models.GameResults
}

// GetGameResultMessageOutput contains the final announcement
type GetGameResultMessageOutput struct {
	Title   string
	Message string

	// Lines is one line per standing, best first
	Lines []string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Err is the rejected intent's error
	Err error
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Rand picks between phrasings; seeded from the clock when nil
	Rand *rand.Rand
}
