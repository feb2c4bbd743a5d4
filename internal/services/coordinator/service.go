package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/timebid/internal/common/clock"
	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/KirkDiggler/timebid/internal/repositories/results"
	"github.com/KirkDiggler/timebid/internal/services/game"
	"github.com/KirkDiggler/timebid/internal/services/scheduler"
	"github.com/rs/zerolog/log"
)

const (
	// KeyCountdown is the scheduler key of the one-shot countdown tick
	KeyCountdown = "countdown"

	// KeyBiddingPoll is the scheduler key of the repeating exhaustion poll
	KeyBiddingPoll = "bidding-poll"

	DefaultCountdownInterval = time.Second
	DefaultPollInterval      = 100 * time.Millisecond
)

// Config holds the collaborators of the coordinator
type Config struct {
	GameService game.Service
	Scheduler   scheduler.Scheduler
	Broadcaster Broadcaster
	Clock       clock.Clock

	// Announcer is optional
	Announcer Announcer

	// ResultsRepository is optional; finished games are archived when set
	ResultsRepository results.Repository

	CountdownInterval time.Duration
	PollInterval      time.Duration
}

// effects collects work that happens after the state lock is released
type effects struct {
	rounds []*models.RoundResult
	game   *models.GameResults
}

type service struct {
	mu sync.Mutex

	game        game.Service
	scheduler   scheduler.Scheduler
	broadcaster Broadcaster
	clock       clock.Clock
	announcer   Announcer
	resultsRepo results.Repository

	countdownInterval time.Duration
	pollInterval      time.Duration
}

// New creates a coordinator for a single game
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}
	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}
	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	s := &service{
		game:              cfg.GameService,
		scheduler:         cfg.Scheduler,
		broadcaster:       cfg.Broadcaster,
		clock:             cfg.Clock,
		announcer:         cfg.Announcer,
		resultsRepo:       cfg.ResultsRepository,
		countdownInterval: cfg.CountdownInterval,
		pollInterval:      cfg.PollInterval,
	}
	if s.countdownInterval <= 0 {
		s.countdownInterval = DefaultCountdownInterval
	}
	if s.pollInterval <= 0 {
		s.pollInterval = DefaultPollInterval
	}

	return s, nil
}

// Handle validates and applies one client intent
func (s *service) Handle(ctx context.Context, participantID string, intent *Intent) error {
	if intent == nil {
		return ErrNilIntent
	}

	fx := &effects{}

	s.mu.Lock()
	err := s.dispatch(participantID, intent, fx)
	s.mu.Unlock()

	if err != nil {
		log.Debug().
			Str("participant_id", participantID).
			Str("intent", string(intent.Type)).
			Err(err).
			Msg("Intent rejected")
		return err
	}

	s.publish(ctx, fx)
	return nil
}

// Leave removes a participant whose connection closed
func (s *service) Leave(ctx context.Context, participantID string) error {
	fx := &effects{}

	s.mu.Lock()
	err := s.leave(participantID, fx)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.publish(ctx, fx)
	return nil
}

// Snapshot returns the current game state, or nil when there is no game
func (s *service) Snapshot() *GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return newSnapshot(s.game.Game())
}

func (s *service) dispatch(participantID string, intent *Intent, fx *effects) error {
	switch intent.Type {
	case IntentJoin:
		return s.join(participantID, intent, fx)
	case IntentRejoin, IntentGetInfo:
		return s.resync(participantID)
	case IntentUpdateSettings:
		return s.updateSettings(participantID, intent.Settings)
	case IntentFinishConfiguration:
		return s.finishConfiguration(participantID)
	case IntentStartGame:
		return s.startGame(participantID)
	case IntentToggleReady:
		return s.toggleReady(participantID)
	case IntentButtonPress:
		return s.buttonPress(participantID, fx)
	case IntentButtonRelease:
		return s.buttonRelease(participantID, fx)
	case IntentAdvanceRound:
		return s.advanceRound(participantID, fx)
	default:
		return ErrUnknownIntent
	}
}

func (s *service) join(participantID string, intent *Intent, fx *effects) error {
	role := intent.Role
	if role == "" {
		role = models.RolePlayer
	}

	output, err := s.game.Join(&game.JoinInput{
		ParticipantID: participantID,
		Name:          intent.Name,
		Role:          role,
	})
	if err != nil {
		return err
	}

	g := s.game.Game()
	s.broadcaster.SendTo(participantID, s.event(EventJoined, JoinedPayload{
		ParticipantID: participantID,
		IsHost:        g.HostID == participantID,
		Participant:   newParticipantView(output.Participant, g.HostID),
	}))

	if output.CountdownStarted {
		s.countdownTick(fx)
	}
	if output.Result != nil {
		s.endRound(output.Result, fx)
	}
	s.broadcastState()

	log.Info().
		Str("participant_id", participantID).
		Str("name", output.Participant.Name).
		Str("role", string(output.Participant.Role)).
		Bool("created_game", output.Created).
		Bool("rejoined", output.Rejoined).
		Msg("Participant joined")

	return nil
}

// resync sends the current state to one connection, joined or not
func (s *service) resync(participantID string) error {
	g := s.game.Game()
	if g == nil {
		return game.ErrNoGame
	}

	switch g.State.Status {
	case models.GameStatusPlaying, models.GameStatusRoundEnd:
		s.broadcaster.SendTo(participantID, s.event(EventRoundPrepare, RoundPreparePayload{Round: g.State.CurrentRound}))
	}
	s.broadcaster.SendTo(participantID, s.event(EventStateUpdated, newSnapshot(g)))

	return nil
}

func (s *service) updateSettings(participantID string, patch *SettingsPatch) error {
	timePerPlayer, err := patch.timePerPlayer()
	if err != nil {
		return err
	}

	output, err := s.game.UpdateSettings(&game.UpdateSettingsInput{
		ParticipantID: participantID,
		TimePerPlayer: timePerPlayer,
		TotalRounds:   patch.totalRounds(),
	})
	if err != nil {
		return err
	}

	s.broadcastState()

	log.Info().
		Dur("time_per_player", output.Settings.TimePerPlayer).
		Int("total_rounds", output.Settings.TotalRounds).
		Msg("Settings updated")

	return nil
}

func (s *service) finishConfiguration(participantID string) error {
	if err := s.game.FinishConfiguration(&game.HostInput{ParticipantID: participantID}); err != nil {
		return err
	}
	s.broadcastState()
	return nil
}

func (s *service) toggleReady(participantID string) error {
	if _, err := s.game.ToggleReady(&game.ToggleReadyInput{ParticipantID: participantID}); err != nil {
		return err
	}
	s.broadcastState()
	return nil
}

func (s *service) startGame(participantID string) error {
	output, err := s.game.StartGame(&game.HostInput{ParticipantID: participantID})
	if err != nil {
		return err
	}

	s.scheduler.CancelAll()
	s.broadcaster.Broadcast(s.event(EventStarted, newSnapshot(s.game.Game())))
	s.broadcaster.Broadcast(s.event(EventRoundPrepare, RoundPreparePayload{Round: output.Round}))
	s.broadcastState()

	log.Info().Str("game_id", s.game.Game().ID).Msg("Game started")

	return nil
}

func (s *service) buttonPress(participantID string, fx *effects) error {
	output, err := s.game.PressButton(&game.PressButtonInput{ParticipantID: participantID})
	if err != nil {
		return err
	}
	if !output.Accepted {
		return nil
	}

	s.broadcastState()

	if output.CountdownStarted {
		log.Info().Int("round", s.game.Game().State.CurrentRound).Msg("Everyone is holding, countdown started")
		s.countdownTick(fx)
	}

	return nil
}

func (s *service) buttonRelease(participantID string, fx *effects) error {
	output, err := s.game.ReleaseButton(&game.ReleaseButtonInput{ParticipantID: participantID})
	if err != nil {
		return err
	}

	switch output.Kind {
	case game.ReleaseIgnored:
		return nil

	case game.ReleaseGaveUp:
		s.broadcaster.Broadcast(s.event(EventGaveUp, GaveUpPayload{
			ParticipantID: output.Participant.ID,
			Name:          output.Participant.Name,
		}))
		if output.CountdownAborted {
			s.scheduler.Cancel(KeyCountdown)
		}

	case game.ReleaseBid:
		s.sendBid(output.Bid, output.Participant.RemainingTime, false)
	}

	if output.Result != nil {
		s.endRound(output.Result, fx)
	}
	s.broadcastState()

	return nil
}

func (s *service) advanceRound(participantID string, fx *effects) error {
	output, err := s.game.AdvanceRound(&game.HostInput{ParticipantID: participantID})
	if err != nil {
		return err
	}

	s.scheduler.CancelAll()

	if output.Results != nil {
		s.broadcaster.Broadcast(s.event(EventGameEnded, NewGameResultsView(output.Results)))
		fx.game = output.Results

		event := log.Info().Str("game_id", output.Results.GameID)
		if output.Results.Winner != nil {
			event = event.Str("winner", output.Results.Winner.Name)
		}
		event.Msg("Game ended")
	} else {
		s.broadcaster.Broadcast(s.event(EventRoundPrepare, RoundPreparePayload{Round: output.NextRound}))
	}
	s.broadcastState()

	return nil
}

func (s *service) leave(participantID string, fx *effects) error {
	output, err := s.game.Leave(&game.LeaveInput{ParticipantID: participantID})
	if err != nil {
		return err
	}

	log.Info().
		Str("participant_id", participantID).
		Bool("game_closed", output.GameClosed).
		Msg("Participant left")

	if output.GameClosed {
		s.scheduler.CancelAll()
		return nil
	}

	if output.CountdownStarted {
		s.countdownTick(fx)
	}
	if output.Result != nil {
		s.endRound(output.Result, fx)
	}
	s.broadcastState()

	return nil
}

func (s *service) onCountdownTick() {
	fx := &effects{}

	s.mu.Lock()
	s.countdownTick(fx)
	s.mu.Unlock()

	s.publish(context.Background(), fx)
}

// countdownTick announces the next countdown value and arms whatever comes after it
func (s *service) countdownTick(fx *effects) {
	output, err := s.game.CountdownTick()
	if err != nil {
		log.Debug().Err(err).Msg("Stale countdown tick ignored")
		s.scheduler.Cancel(KeyCountdown)
		return
	}

	s.broadcaster.Broadcast(s.event(EventCountdown, CountdownPayload{Seconds: output.Seconds}))

	if !output.BiddingStarted && output.Result == nil {
		s.scheduler.Schedule(KeyCountdown, s.onCountdownTick, s.countdownInterval)
		return
	}
	s.scheduler.Cancel(KeyCountdown)

	if output.BiddingStarted {
		for _, p := range output.Forfeited {
			s.broadcaster.Broadcast(s.event(EventGaveUp, GaveUpPayload{ParticipantID: p.ID, Name: p.Name}))
		}
		round := s.game.Game().State.CurrentRound
		s.broadcaster.Broadcast(s.event(EventRoundStarted, RoundStartedPayload{
			Round:        round,
			StillHolding: output.Bidding,
		}))
		log.Info().Int("round", round).Strs("bidding", output.Bidding).Msg("Common timer started")
	}

	if output.Result != nil {
		s.endRound(output.Result, fx)
	} else {
		s.scheduler.ScheduleRepeating(KeyBiddingPoll, s.onBiddingPoll, s.pollInterval)
	}
	s.broadcastState()
}

func (s *service) onBiddingPoll() {
	fx := &effects{}

	s.mu.Lock()
	s.biddingPoll(fx)
	s.mu.Unlock()

	s.publish(context.Background(), fx)
}

func (s *service) biddingPoll(fx *effects) {
	output, err := s.game.PollBidding()
	if err != nil {
		log.Debug().Err(err).Msg("Stale bidding poll ignored")
		s.scheduler.Cancel(KeyBiddingPoll)
		return
	}

	for _, bid := range output.Expired {
		s.sendBid(bid, 0, true)
	}

	if output.Result != nil {
		s.endRound(output.Result, fx)
		s.broadcastState()
		return
	}
	if len(output.Expired) > 0 {
		s.broadcastState()
	}

	estimates, err := s.game.Estimates()
	if err != nil {
		return
	}
	s.broadcaster.Broadcast(s.event(EventTimeTick, newTimeTickPayload(estimates)))
}

// sendBid confirms a bid to the bidder and announces it to everyone else
func (s *service) sendBid(bid *models.RoundBid, remaining time.Duration, auto bool) {
	confirmed := BidConfirmedPayload{
		BidTimeMillis: bid.BidTime.Milliseconds(),
		TimeExhausted: bid.TimeExhausted,
		AutoCompleted: auto,
		RemainingTime: remaining.Seconds(),
	}
	if auto {
		confirmed.Reason = ReasonTimeExhausted
	}

	s.broadcaster.SendTo(bid.ParticipantID, s.event(EventBidConfirmed, confirmed))
	s.broadcaster.SendToOthers(bid.ParticipantID, s.event(EventBidPlaced, BidPlacedPayload{
		ParticipantID: bid.ParticipantID,
		Name:          bid.ParticipantName,
		BidTimeMillis: bid.BidTime.Milliseconds(),
		TimeExhausted: bid.TimeExhausted,
	}))
}

func (s *service) endRound(result *models.RoundResult, fx *effects) {
	s.scheduler.Cancel(KeyCountdown)
	s.scheduler.Cancel(KeyBiddingPoll)

	s.broadcaster.Broadcast(s.event(EventRoundEnded, newRoundResultView(result)))
	fx.rounds = append(fx.rounds, result)

	log.Info().
		Int("round", result.Round).
		Bool("draw", result.IsDraw).
		Str("reason", string(result.Reason)).
		Str("winner_id", result.WinnerID).
		Dur("win_time", result.WinTime).
		Msg("Round ended")
}

func (s *service) broadcastState() {
	snapshot := newSnapshot(s.game.Game())
	if snapshot == nil {
		return
	}
	s.broadcaster.Broadcast(s.event(EventStateUpdated, snapshot))
}

func (s *service) event(t EventType, data any) *Event {
	return &Event{
		Type:      t,
		Timestamp: s.clock.Now(),
		Data:      data,
	}
}

// publish archives and announces outside the state lock; failures never touch the game
func (s *service) publish(ctx context.Context, fx *effects) {
	if s.announcer != nil {
		for _, r := range fx.rounds {
			if err := s.announcer.AnnounceRound(ctx, r); err != nil {
				log.Error().Err(err).Int("round", r.Round).Msg("Failed to announce round")
			}
		}
	}

	if fx.game == nil {
		return
	}

	if s.resultsRepo != nil {
		if err := s.resultsRepo.SaveResults(ctx, &results.SaveResultsInput{Results: fx.game}); err != nil {
			log.Error().Err(err).Str("game_id", fx.game.GameID).Msg("Failed to archive results")
		}
	}
	if s.announcer != nil {
		if err := s.announcer.AnnounceGame(ctx, fx.game); err != nil {
			log.Error().Err(err).Str("game_id", fx.game.GameID).Msg("Failed to announce game")
		}
	}
}
