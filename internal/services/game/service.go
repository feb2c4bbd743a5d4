package game

import (
	"strings"

	"github.com/KirkDiggler/timebid/internal/common/clock"
	"github.com/KirkDiggler/timebid/internal/common/ids"
	"github.com/KirkDiggler/timebid/internal/models"
)

// service implements the Service interface
type service struct {
	clock            clock.Clock
	idGenerator      ids.Generator
	settings         models.Settings
	countdownSeconds int

	game *models.Game
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.IDGenerator == nil {
		return nil, ErrNilIDGenerator
	}

	settings := cfg.Settings
	if settings.TimePerPlayer == 0 && settings.TotalRounds == 0 {
		settings = DefaultSettings
	}
	if !validSettings(settings) {
		return nil, ErrInvalidSettings
	}

	countdown := cfg.CountdownSeconds
	if countdown <= 0 {
		countdown = DefaultCountdownSeconds
	}

	return &service{
		clock:            cfg.Clock,
		idGenerator:      cfg.IDGenerator,
		settings:         settings,
		countdownSeconds: countdown,
	}, nil
}

func (s *service) Game() *models.Game {
	return s.game
}

// Join registers a participant, creating the game for the first one.
// A role change during play re-evaluates the round the same way Leave does.
func (s *service) Join(input *JoinInput) (*JoinOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.ParticipantID == "" {
		return nil, ErrInvalidParticipant
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	created := false
	if s.game == nil {
		s.game = s.newGame(input.ParticipantID)
		created = true
	}

	// Known participant: update in place and hand back a fresh budget
	if p := s.game.Participant(input.ParticipantID); p != nil {
		roleChanged := p.Role != input.Role
		if roleChanged {
			p.ClearRoundFlags()
			delete(s.game.State.ButtonPressStartTimes, p.ID)
			delete(s.game.State.GaveUp, p.ID)
		}
		p.Name = name
		p.Role = input.Role
		p.RemainingTime = s.game.Settings.TimePerPlayer

		output := &JoinOutput{Participant: p, Rejoined: true}
		if roleChanged {
			output.CountdownStarted, output.Result = s.reevaluateRound()
		}
		return output, nil
	}

	p := &models.Participant{
		ID:            input.ParticipantID,
		Name:          name,
		Role:          input.Role,
		RemainingTime: s.game.Settings.TimePerPlayer,
	}
	s.game.Participants = append(s.game.Participants, p)

	return &JoinOutput{Participant: p, Created: created}, nil
}

// Leave removes a participant.
// A departure can complete the gate or finish a round, so the round is re-evaluated.
func (s *service) Leave(input *LeaveInput) (*LeaveOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if s.game == nil {
		return nil, ErrNoGame
	}

	idx := -1
	for i, p := range s.game.Participants {
		if p.ID == input.ParticipantID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrParticipantNotFound
	}

	removed := s.game.Participants[idx]
	s.game.Participants = append(s.game.Participants[:idx], s.game.Participants[idx+1:]...)
	delete(s.game.State.ButtonPressStartTimes, removed.ID)
	delete(s.game.State.GaveUp, removed.ID)

	output := &LeaveOutput{Participant: removed}

	if len(s.game.Participants) == 0 {
		s.game = nil
		output.GameClosed = true
		return output, nil
	}

	output.CountdownStarted, output.Result = s.reevaluateRound()

	return output, nil
}

// reevaluateRound re-checks the current phase after the player set changed
func (s *service) reevaluateRound() (countdownStarted bool, result *models.RoundResult) {
	if s.game.State.Status != models.GameStatusPlaying {
		return false, nil
	}

	switch s.game.State.Phase {
	case models.RoundPhaseGate:
		return s.maybeStartCountdown(), nil
	case models.RoundPhaseCountdown:
		if len(s.holders()) == 0 {
			return false, s.resolveRound()
		}
	case models.RoundPhaseBidding:
		return false, s.checkRoundEnd()
	}

	return false, nil
}

// UpdateSettings merges host settings and resets player budgets
func (s *service) UpdateSettings(input *UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if _, err := s.host(input.ParticipantID); err != nil {
		return nil, err
	}

	switch s.game.State.Status {
	case models.GameStatusConfiguring, models.GameStatusWaiting, models.GameStatusEnded:
	default:
		return nil, ErrSettingsLocked
	}

	settings := s.game.Settings
	if input.TimePerPlayer != nil {
		settings.TimePerPlayer = *input.TimePerPlayer
	}
	if input.TotalRounds != nil {
		settings.TotalRounds = *input.TotalRounds
	}
	if !validSettings(settings) {
		return nil, ErrInvalidSettings
	}

	s.game.Settings = settings
	for _, p := range s.game.Players() {
		p.RemainingTime = settings.TimePerPlayer
	}

	return &UpdateSettingsOutput{Settings: settings}, nil
}

// FinishConfiguration moves the game from configuring to waiting
func (s *service) FinishConfiguration(input *HostInput) error {
	if input == nil {
		return ErrNilInput
	}
	if _, err := s.host(input.ParticipantID); err != nil {
		return err
	}
	if s.game.State.Status != models.GameStatusConfiguring {
		return ErrInvalidGameState
	}

	for _, p := range s.game.Players() {
		p.IsReady = false
		p.ClearRoundFlags()
		p.Wins = 0
	}
	s.game.State.Status = models.GameStatusWaiting

	return nil
}

// ToggleReady flips a player's ready flag
func (s *service) ToggleReady(input *ToggleReadyInput) (*ToggleReadyOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	p, err := s.player(input.ParticipantID)
	if err != nil {
		return nil, err
	}

	switch s.game.State.Status {
	case models.GameStatusWaiting, models.GameStatusEnded:
	default:
		return nil, ErrInvalidGameState
	}

	p.IsReady = !p.IsReady

	return &ToggleReadyOutput{IsReady: p.IsReady}, nil
}

// StartGame resets scores and budgets and prepares round one
func (s *service) StartGame(input *HostInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if _, err := s.host(input.ParticipantID); err != nil {
		return nil, err
	}

	switch s.game.State.Status {
	case models.GameStatusWaiting, models.GameStatusEnded:
	default:
		return nil, ErrInvalidGameState
	}

	players := s.game.Players()
	if len(players) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}
	for _, p := range players {
		if !p.IsReady {
			return nil, ErrPlayersNotReady
		}
	}

	for _, p := range players {
		p.ClearRoundFlags()
		p.Wins = 0
		p.RemainingTime = s.game.Settings.TimePerPlayer
	}
	s.game.State.CurrentRound = 0
	s.game.State.RoundHistory = nil
	s.game.StartedAt = s.clock.Now()

	s.prepareRound()

	return &StartGameOutput{Round: s.game.State.CurrentRound}, nil
}

func (s *service) newGame(hostID string) *models.Game {
	g := &models.Game{
		ID:        s.idGenerator.NewID(),
		HostID:    hostID,
		Settings:  s.settings,
		CreatedAt: s.clock.Now(),
	}
	g.State.Status = models.GameStatusConfiguring
	g.State.ResetRound()
	return g
}

func (s *service) participant(id string) (*models.Participant, error) {
	if s.game == nil {
		return nil, ErrNoGame
	}
	p := s.game.Participant(id)
	if p == nil {
		return nil, ErrParticipantNotFound
	}
	return p, nil
}

func (s *service) host(id string) (*models.Participant, error) {
	p, err := s.participant(id)
	if err != nil {
		return nil, err
	}
	if s.game.HostID != p.ID {
		return nil, ErrNotHost
	}
	return p, nil
}

func (s *service) player(id string) (*models.Participant, error) {
	p, err := s.participant(id)
	if err != nil {
		return nil, err
	}
	if !p.IsPlayer() {
		return nil, ErrNotAPlayer
	}
	return p, nil
}

func validSettings(settings models.Settings) bool {
	return settings.TimePerPlayer > 0 &&
		settings.TimePerPlayer <= MaxTimePerPlayer &&
		settings.TotalRounds > 0
}
