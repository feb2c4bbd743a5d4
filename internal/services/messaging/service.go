package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/KirkDiggler/timebid/internal/services/game"
	"github.com/dustin/go-humanize"
)

// service implements the Service interface
type service struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (*service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	r := config.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &service{rand: r}, nil
}

// GetRoundResultMessage returns a headline and summary for a finished round
func (s *service) GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error) {
	if input == nil || input.Result == nil {
		return nil, errors.New("input cannot be nil")
	}
	r := input.Result

	title := fmt.Sprintf("%s round", humanize.Ordinal(r.Round))
	if input.TotalRounds > 0 {
		title = fmt.Sprintf("Round %d of %d", r.Round, input.TotalRounds)
	}

	if !r.IsDraw {
		message := s.pick([]string{
			"%s takes it after holding for %s.",
			"%s outlasted everyone with %s on the clock.",
			"Nobody wanted it more than %s: %s.",
			"%s buys the round for %s.",
		})
		return &GetRoundResultMessageOutput{
			Title:   title,
			Message: fmt.Sprintf(message, r.WinnerName, Seconds(r.WinTime)),
			Tone:    ToneCelebration,
		}, nil
	}

	var messages []string
	switch r.Reason {
	case models.DrawReasonNoBids:
		messages = []string{
			"Nobody bid. The round goes to nobody.",
			"Everyone kept their time in their pocket. No winner.",
		}
	case models.DrawReasonAllPlayersGaveUp:
		messages = []string{
			"Everyone let go before the timer started. Draw.",
			"Cold feet all around. Nobody made it through the countdown.",
		}
	default:
		messages = []string{
			"Dead heat at %s. Nobody wins.",
			"A tie at %s. Everyone paid, nobody collects.",
		}
	}

	message := s.pick(messages)
	if strings.Contains(message, "%s") {
		message = fmt.Sprintf(message, Seconds(topBid(r)))
	}

	return &GetRoundResultMessageOutput{
		Title:   title,
		Message: message,
		Tone:    ToneFunny,
	}, nil
}

// GetGameResultMessage returns a headline and summary for a finished game
func (s *service) GetGameResultMessage(ctx context.Context, input *GetGameResultMessageInput) (*GetGameResultMessageOutput, error) {
	if input == nil || input.Results == nil {
		return nil, errors.New("input cannot be nil")
	}
	results := input.Results

	output := &GetGameResultMessageOutput{Title: "Game over"}
	for _, st := range results.Standings {
		output.Lines = append(output.Lines, fmt.Sprintf("%s %s: %s, %s left",
			humanize.Ordinal(st.Rank), st.Name, pluralWins(st.Wins), Seconds(st.RemainingTime)))
	}

	if results.Winner == nil {
		output.Message = "Nobody finished the game."
		return output, nil
	}

	message := s.pick([]string{
		"%s wins the auction with %s.",
		"%s walks away with %s. Well bid.",
		"All hail %s, holder of %s.",
	})
	output.Message = fmt.Sprintf(message, results.Winner.Name, pluralWins(results.Winner.Wins))

	if results.Loser != nil && results.Loser.ParticipantID != results.Winner.ParticipantID {
		output.Message += " " + fmt.Sprintf(s.pick([]string{
			"%s brings up the rear.",
			"%s will get them next time.",
		}), results.Loser.Name)
	}

	return output, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch {
	case errors.Is(input.Err, game.ErrOutOfTime):
		message = "You're out of time. Sit this one out."
	case errors.Is(input.Err, game.ErrGaveUp):
		message = "You let go already. Wait for the next round."
	case errors.Is(input.Err, game.ErrNotHost):
		message = "Only the host can do that."
	case errors.Is(input.Err, game.ErrNotEnoughPlayers):
		message = "Need at least two players to start."
	case errors.Is(input.Err, game.ErrPlayersNotReady):
		message = "Not everyone is ready yet."
	case errors.Is(input.Err, game.ErrSettingsLocked):
		message = "Settings can't change while a game is running."
	case errors.Is(input.Err, game.ErrInvalidSettings):
		message = "Time and rounds must both be positive."
	case errors.Is(input.Err, game.ErrInvalidName):
		message = "Pick a name first."
	case errors.Is(input.Err, game.ErrNoGame):
		message = "There's no game running. Join to start one."
	default:
		message = input.Err.Error()
	}

	return &GetErrorMessageOutput{Message: message}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

// Seconds renders a duration as seconds with up to three decimals, e.g. "2.5s"
func Seconds(d time.Duration) string {
	return humanize.FtoaWithDigits(d.Seconds(), 3) + "s"
}

func pluralWins(n int) string {
	if n == 1 {
		return "1 win"
	}
	return fmt.Sprintf("%d wins", n)
}

func topBid(r *models.RoundResult) time.Duration {
	var top time.Duration
	for _, b := range r.Bids {
		if b.BidTime > top {
			top = b.BidTime
		}
	}
	return top
}
