package coordinator_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/KirkDiggler/timebid/internal/common/ids"
	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/KirkDiggler/timebid/internal/repositories/results"
	resultsMocks "github.com/KirkDiggler/timebid/internal/repositories/results/mocks"
	"github.com/KirkDiggler/timebid/internal/services/coordinator"
	"github.com/KirkDiggler/timebid/internal/services/coordinator/mocks"
	"github.com/KirkDiggler/timebid/internal/services/game"
	schedulerMocks "github.com/KirkDiggler/timebid/internal/services/scheduler/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// sent is one recorded delivery; target is "*" for everyone, an ID, or "!ID" for everyone but ID
type sent struct {
	target string
	event  *coordinator.Event
}

type CoordinatorTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockScheduler   *schedulerMocks.MockScheduler
	mockBroadcaster *mocks.MockBroadcaster
	mockAnnouncer   *mocks.MockAnnouncer
	mockResultsRepo *resultsMocks.MockRepository
	clock           *clockwork.FakeClock
	coordinator     coordinator.Service
	ctx             context.Context

	timers map[string]func()
	sent   []sent

	testTime    time.Time
	testHostID  string
	testPlayerA string
	testPlayerB string
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockScheduler = schedulerMocks.NewMockScheduler(s.mockCtrl)
	s.mockBroadcaster = mocks.NewMockBroadcaster(s.mockCtrl)
	s.mockAnnouncer = mocks.NewMockAnnouncer(s.mockCtrl)
	s.mockResultsRepo = resultsMocks.NewMockRepository(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testHostID = "display"
	s.testPlayerA = "alice"
	s.testPlayerB = "bob"
	s.clock = clockwork.NewFakeClockAt(s.testTime)
	s.timers = make(map[string]func())
	s.sent = nil

	// The scheduler keeps callbacks so tests can fire them by key
	s.mockScheduler.EXPECT().Schedule(gomock.Any(), gomock.Any(), time.Second).
		Do(func(key string, fn func(), _ time.Duration) { s.timers[key] = fn }).AnyTimes()
	s.mockScheduler.EXPECT().ScheduleRepeating(gomock.Any(), gomock.Any(), 100*time.Millisecond).
		Do(func(key string, fn func(), _ time.Duration) { s.timers[key] = fn }).AnyTimes()
	s.mockScheduler.EXPECT().Cancel(gomock.Any()).
		Do(func(key string) { delete(s.timers, key) }).AnyTimes()
	s.mockScheduler.EXPECT().CancelAll().
		Do(func() { s.timers = make(map[string]func()) }).AnyTimes()

	s.mockBroadcaster.EXPECT().Broadcast(gomock.Any()).
		Do(func(e *coordinator.Event) { s.sent = append(s.sent, sent{target: "*", event: e}) }).AnyTimes()
	s.mockBroadcaster.EXPECT().SendTo(gomock.Any(), gomock.Any()).
		Do(func(id string, e *coordinator.Event) { s.sent = append(s.sent, sent{target: id, event: e}) }).AnyTimes()
	s.mockBroadcaster.EXPECT().SendToOthers(gomock.Any(), gomock.Any()).
		Do(func(id string, e *coordinator.Event) { s.sent = append(s.sent, sent{target: "!" + id, event: e}) }).AnyTimes()

	gameService, err := game.New(&game.Config{
		Clock:       s.clock,
		IDGenerator: ids.NewSequence("game"),
		Settings:    models.Settings{TimePerPlayer: 10 * time.Second, TotalRounds: 1},
	})
	s.Require().NoError(err)

	c, err := coordinator.New(&coordinator.Config{
		GameService:       gameService,
		Scheduler:         s.mockScheduler,
		Broadcaster:       s.mockBroadcaster,
		Clock:             s.clock,
		Announcer:         s.mockAnnouncer,
		ResultsRepository: s.mockResultsRepo,
	})
	s.Require().NoError(err)
	s.coordinator = c
}

func (s *CoordinatorTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *CoordinatorTestSuite) handle(id string, intent *coordinator.Intent) {
	s.Require().NoError(s.coordinator.Handle(s.ctx, id, intent))
}

func (s *CoordinatorTestSuite) do(id string, t coordinator.IntentType) {
	s.handle(id, &coordinator.Intent{Type: t})
}

// fire runs the callback registered under key
func (s *CoordinatorTestSuite) fire(key string) {
	fn, ok := s.timers[key]
	s.Require().True(ok, "no timer under %s", key)
	fn()
}

func (s *CoordinatorTestSuite) events(t coordinator.EventType) []sent {
	var matched []sent
	for _, m := range s.sent {
		if m.event.Type == t {
			matched = append(matched, m)
		}
	}
	return matched
}

func (s *CoordinatorTestSuite) reset() {
	s.sent = nil
}

func (s *CoordinatorTestSuite) lobby() {
	s.handle(s.testHostID, &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Big Screen", Role: models.RoleDisplay})
	s.handle(s.testPlayerA, &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Alice"})
	s.handle(s.testPlayerB, &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Bob", Role: models.RolePlayer})
	s.do(s.testHostID, coordinator.IntentFinishConfiguration)
	s.do(s.testPlayerA, coordinator.IntentToggleReady)
	s.do(s.testPlayerB, coordinator.IntentToggleReady)
}

// bidding starts a game and runs the countdown through to the common timer
func (s *CoordinatorTestSuite) bidding() {
	s.lobby()
	s.do(s.testHostID, coordinator.IntentStartGame)
	s.do(s.testPlayerA, coordinator.IntentButtonPress)
	s.do(s.testPlayerB, coordinator.IntentButtonPress)
	for i := 0; i < game.DefaultCountdownSeconds; i++ {
		s.clock.Advance(time.Second)
		s.fire(coordinator.KeyCountdown)
	}
}

func (s *CoordinatorTestSuite) TestNew_Validation() {
	_, err := coordinator.New(nil)
	s.ErrorIs(err, coordinator.ErrNilConfig)

	_, err = coordinator.New(&coordinator.Config{})
	s.ErrorIs(err, coordinator.ErrNilGameService)
}

func (s *CoordinatorTestSuite) TestHandle_NilAndUnknownIntent() {
	s.ErrorIs(s.coordinator.Handle(s.ctx, s.testPlayerA, nil), coordinator.ErrNilIntent)
	s.ErrorIs(s.coordinator.Handle(s.ctx, s.testPlayerA, &coordinator.Intent{Type: "dance"}), coordinator.ErrUnknownIntent)
	s.Empty(s.sent)
}

func (s *CoordinatorTestSuite) TestJoin_SendsJoinedAndState() {
	s.handle(s.testHostID, &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Big Screen", Role: models.RoleDisplay})

	s.Require().Len(s.sent, 2)
	s.Equal(s.testHostID, s.sent[0].target)
	s.Equal(coordinator.EventJoined, s.sent[0].event.Type)
	joined := s.sent[0].event.Data.(coordinator.JoinedPayload)
	s.True(joined.IsHost)
	s.Equal(s.testTime, s.sent[0].event.Timestamp)

	s.Equal("*", s.sent[1].target)
	s.Equal(coordinator.EventStateUpdated, s.sent[1].event.Type)
	snapshot := s.sent[1].event.Data.(*coordinator.GameSnapshot)
	s.Equal(models.GameStatusConfiguring, snapshot.State.Status)
	s.Equal(10, snapshot.Settings.TimePerPlayer)
}

func (s *CoordinatorTestSuite) TestJoin_DefaultsToPlayer() {
	s.handle(s.testPlayerA, &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Alice"})

	snapshot := s.coordinator.Snapshot()
	s.Require().NotNil(snapshot)
	s.Equal(models.RolePlayer, snapshot.Players[0].Role)
}

func (s *CoordinatorTestSuite) TestHandle_RejectedIntentBroadcastsNothing() {
	s.lobby()
	s.reset()

	err := s.coordinator.Handle(s.ctx, s.testPlayerA, &coordinator.Intent{Type: coordinator.IntentStartGame})

	s.ErrorIs(err, game.ErrNotHost)
	s.Empty(s.sent)
}

func (s *CoordinatorTestSuite) TestUpdateSettings_ConvertsSeconds() {
	s.lobby()
	seconds := 30
	rounds := 4

	s.handle(s.testHostID, &coordinator.Intent{
		Type:     coordinator.IntentUpdateSettings,
		Settings: &coordinator.SettingsPatch{TimePerPlayer: &seconds, TotalRounds: &rounds},
	})

	snapshot := s.coordinator.Snapshot()
	s.Equal(30, snapshot.Settings.TimePerPlayer)
	s.Equal(4, snapshot.Settings.TotalRounds)
	s.Equal(30.0, snapshot.Players[1].RemainingTime)
}

func (s *CoordinatorTestSuite) TestUpdateSettings_RejectsOversizedBudget() {
	s.lobby()
	s.reset()
	seconds := math.MaxInt

	err := s.coordinator.Handle(s.ctx, s.testHostID, &coordinator.Intent{
		Type:     coordinator.IntentUpdateSettings,
		Settings: &coordinator.SettingsPatch{TimePerPlayer: &seconds},
	})

	s.ErrorIs(err, game.ErrInvalidSettings)
	s.Empty(s.sent)
	s.Equal(10, s.coordinator.Snapshot().Settings.TimePerPlayer)
}

func (s *CoordinatorTestSuite) TestStartGame_BroadcastsStartedAndPrepare() {
	s.lobby()
	s.reset()

	s.do(s.testHostID, coordinator.IntentStartGame)

	s.Require().Len(s.sent, 3)
	s.Equal(coordinator.EventStarted, s.sent[0].event.Type)
	s.Equal(coordinator.EventRoundPrepare, s.sent[1].event.Type)
	s.Equal(coordinator.RoundPreparePayload{Round: 1}, s.sent[1].event.Data)
	s.Equal(coordinator.EventStateUpdated, s.sent[2].event.Type)
}

func (s *CoordinatorTestSuite) TestButtonPress_StartsCountdown() {
	s.lobby()
	s.do(s.testHostID, coordinator.IntentStartGame)
	s.do(s.testPlayerA, coordinator.IntentButtonPress)
	s.NotContains(s.timers, coordinator.KeyCountdown)
	s.reset()

	s.do(s.testPlayerB, coordinator.IntentButtonPress)

	countdown := s.events(coordinator.EventCountdown)
	s.Require().Len(countdown, 1)
	s.Equal(coordinator.CountdownPayload{Seconds: 5}, countdown[0].event.Data)
	s.Contains(s.timers, coordinator.KeyCountdown)
}

func (s *CoordinatorTestSuite) TestButtonPress_RepeatedPressIsSilent() {
	s.lobby()
	s.do(s.testHostID, coordinator.IntentStartGame)
	s.do(s.testPlayerA, coordinator.IntentButtonPress)
	s.reset()

	s.do(s.testPlayerA, coordinator.IntentButtonPress)

	s.Empty(s.sent)
}

func (s *CoordinatorTestSuite) TestCountdown_RunsToCommonTimer() {
	s.bidding()

	var seconds []int
	for _, m := range s.events(coordinator.EventCountdown) {
		seconds = append(seconds, m.event.Data.(coordinator.CountdownPayload).Seconds)
	}
	s.Equal([]int{5, 4, 3, 2, 1, 0}, seconds)

	started := s.events(coordinator.EventRoundStarted)
	s.Require().Len(started, 1)
	payload := started[0].event.Data.(coordinator.RoundStartedPayload)
	s.Equal(1, payload.Round)
	s.Equal([]string{s.testPlayerA, s.testPlayerB}, payload.StillHolding)

	s.NotContains(s.timers, coordinator.KeyCountdown)
	s.Contains(s.timers, coordinator.KeyBiddingPoll)
	s.True(s.coordinator.Snapshot().State.CommonTimerStarted)
}

// Scenario A through the coordinator, ending the one-round game
func (s *CoordinatorTestSuite) TestRound_BasicWinThenGameEnd() {
	s.bidding()
	s.reset()

	s.clock.Advance(time.Second)
	s.do(s.testPlayerA, coordinator.IntentButtonRelease)

	confirmed := s.events(coordinator.EventBidConfirmed)
	s.Require().Len(confirmed, 1)
	s.Equal(s.testPlayerA, confirmed[0].target)
	s.Equal(int64(1000), confirmed[0].event.Data.(coordinator.BidConfirmedPayload).BidTimeMillis)
	s.Equal(9.0, confirmed[0].event.Data.(coordinator.BidConfirmedPayload).RemainingTime)
	placed := s.events(coordinator.EventBidPlaced)
	s.Require().Len(placed, 1)
	s.Equal("!"+s.testPlayerA, placed[0].target)

	// The poll keeps the display's clocks moving
	s.clock.Advance(500 * time.Millisecond)
	s.fire(coordinator.KeyBiddingPoll)
	ticks := s.events(coordinator.EventTimeTick)
	s.Require().Len(ticks, 1)
	s.Equal(1.5, ticks[0].event.Data.(coordinator.TimeTickPayload).ElapsedSeconds)

	s.mockAnnouncer.EXPECT().
		AnnounceRound(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.RoundResult) error {
			s.Equal(s.testPlayerB, r.WinnerID)
			return nil
		})

	s.clock.Advance(500 * time.Millisecond)
	s.do(s.testPlayerB, coordinator.IntentButtonRelease)

	ended := s.events(coordinator.EventRoundEnded)
	s.Require().Len(ended, 1)
	result := ended[0].event.Data.(coordinator.RoundResultView)
	s.False(result.IsDraw)
	s.Equal(s.testPlayerB, result.WinnerID)
	s.Equal(2.0, result.WinTimeSeconds)
	s.NotContains(s.timers, coordinator.KeyBiddingPoll)
	s.Equal(models.GameStatusRoundEnd, s.coordinator.Snapshot().State.Status)

	// Advance past the final round
	s.mockResultsRepo.EXPECT().
		SaveResults(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *results.SaveResultsInput) error {
			s.Equal("game-1", input.Results.GameID)
			s.Equal(s.testPlayerB, input.Results.Winner.ParticipantID)
			return nil
		})
	s.mockAnnouncer.EXPECT().AnnounceGame(gomock.Any(), gomock.Any()).Return(errors.New("discord is down"))
	s.reset()

	s.do(s.testHostID, coordinator.IntentAdvanceRound)

	gameEnded := s.events(coordinator.EventGameEnded)
	s.Require().Len(gameEnded, 1)
	view := gameEnded[0].event.Data.(*coordinator.GameResultsView)
	s.Equal(s.testPlayerB, view.Winner.ParticipantID)
	s.Equal(s.testPlayerA, view.Loser.ParticipantID)
	s.Len(view.Rounds, 1)
	s.Equal(models.GameStatusEnded, s.coordinator.Snapshot().State.Status)
}

// Scenario B: the poll completes both bids when the budget runs out
func (s *CoordinatorTestSuite) TestRound_PollAutoCompletesExhaustedBids() {
	one := 1
	s.handle(s.testHostID, &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Big Screen", Role: models.RoleDisplay})
	s.handle(s.testHostID, &coordinator.Intent{
		Type:     coordinator.IntentUpdateSettings,
		Settings: &coordinator.SettingsPatch{TimePerPlayer: &one},
	})
	s.handle(s.testPlayerA, &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Alice"})
	s.handle(s.testPlayerB, &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Bob"})
	s.do(s.testHostID, coordinator.IntentFinishConfiguration)
	s.do(s.testPlayerA, coordinator.IntentToggleReady)
	s.do(s.testPlayerB, coordinator.IntentToggleReady)
	s.do(s.testHostID, coordinator.IntentStartGame)
	s.do(s.testPlayerA, coordinator.IntentButtonPress)
	s.do(s.testPlayerB, coordinator.IntentButtonPress)
	for i := 0; i < game.DefaultCountdownSeconds; i++ {
		s.clock.Advance(time.Second)
		s.fire(coordinator.KeyCountdown)
	}
	s.reset()

	s.mockAnnouncer.EXPECT().AnnounceRound(gomock.Any(), gomock.Any()).Return(nil)

	s.clock.Advance(1100 * time.Millisecond)
	s.fire(coordinator.KeyBiddingPoll)

	confirmed := s.events(coordinator.EventBidConfirmed)
	s.Require().Len(confirmed, 2)
	for _, m := range confirmed {
		payload := m.event.Data.(coordinator.BidConfirmedPayload)
		s.Equal(int64(1000), payload.BidTimeMillis)
		s.True(payload.TimeExhausted)
		s.True(payload.AutoCompleted)
		s.Equal(coordinator.ReasonTimeExhausted, payload.Reason)
	}

	ended := s.events(coordinator.EventRoundEnded)
	s.Require().Len(ended, 1)
	result := ended[0].event.Data.(coordinator.RoundResultView)
	s.True(result.IsDraw)
	s.Equal(models.DrawReasonTie, result.Reason)
	s.Empty(s.events(coordinator.EventTimeTick))
	s.NotContains(s.timers, coordinator.KeyBiddingPoll)
}

func (s *CoordinatorTestSuite) TestRound_CountdownAbortCancelsTimer() {
	s.lobby()
	s.do(s.testHostID, coordinator.IntentStartGame)
	s.do(s.testPlayerA, coordinator.IntentButtonPress)
	s.do(s.testPlayerB, coordinator.IntentButtonPress)
	staleTick := s.timers[coordinator.KeyCountdown]
	s.reset()

	s.mockAnnouncer.EXPECT().AnnounceRound(gomock.Any(), gomock.Any()).Return(nil)

	s.do(s.testPlayerA, coordinator.IntentButtonRelease)
	s.do(s.testPlayerB, coordinator.IntentButtonRelease)

	s.Len(s.events(coordinator.EventGaveUp), 2)
	ended := s.events(coordinator.EventRoundEnded)
	s.Require().Len(ended, 1)
	s.Equal(models.DrawReasonAllPlayersGaveUp, ended[0].event.Data.(coordinator.RoundResultView).Reason)
	s.NotContains(s.timers, coordinator.KeyCountdown)

	// A tick that was already in flight is a no-op
	s.reset()
	staleTick()
	s.Empty(s.sent)
}

func (s *CoordinatorTestSuite) TestRejoin_ResendsToRequesterOnly() {
	s.lobby()
	s.do(s.testHostID, coordinator.IntentStartGame)
	s.reset()

	s.do(s.testPlayerA, coordinator.IntentRejoin)

	s.Require().Len(s.sent, 2)
	for _, m := range s.sent {
		s.Equal(s.testPlayerA, m.target)
	}
	s.Equal(coordinator.EventRoundPrepare, s.sent[0].event.Type)
	s.Equal(coordinator.EventStateUpdated, s.sent[1].event.Type)
}

func (s *CoordinatorTestSuite) TestRejoin_FreshConnectionGetsState() {
	s.lobby()
	s.do(s.testHostID, coordinator.IntentStartGame)
	s.reset()

	s.do("reloaded-tab", coordinator.IntentRejoin)

	s.Require().Len(s.sent, 2)
	for _, m := range s.sent {
		s.Equal("reloaded-tab", m.target)
	}
	s.Equal(coordinator.EventRoundPrepare, s.sent[0].event.Type)
	s.Equal(1, s.sent[0].event.Data.(coordinator.RoundPreparePayload).Round)
	s.Equal(coordinator.EventStateUpdated, s.sent[1].event.Type)
	s.Len(s.coordinator.Snapshot().Players, 3)
}

func (s *CoordinatorTestSuite) TestGetInfo_SendsSnapshotOnlyInLobby() {
	s.lobby()
	s.reset()

	s.do("new-tab", coordinator.IntentGetInfo)

	s.Require().Len(s.sent, 1)
	s.Equal("new-tab", s.sent[0].target)
	s.Equal(coordinator.EventStateUpdated, s.sent[0].event.Type)
	snapshot := s.sent[0].event.Data.(*coordinator.GameSnapshot)
	s.Equal(models.GameStatusWaiting, snapshot.State.Status)
}

func (s *CoordinatorTestSuite) TestRejoin_NoGame() {
	err := s.coordinator.Handle(s.ctx, "reloaded-tab", &coordinator.Intent{Type: coordinator.IntentRejoin})
	s.ErrorIs(err, game.ErrNoGame)

	err = s.coordinator.Handle(s.ctx, "reloaded-tab", &coordinator.Intent{Type: coordinator.IntentGetInfo})
	s.ErrorIs(err, game.ErrNoGame)

	s.Empty(s.sent)
}

func (s *CoordinatorTestSuite) TestJoin_RoleChangeOfLastHolderEndsRound() {
	s.lobby()
	s.do(s.testHostID, coordinator.IntentStartGame)
	s.do(s.testPlayerA, coordinator.IntentButtonPress)
	s.do(s.testPlayerB, coordinator.IntentButtonPress)
	s.do(s.testPlayerA, coordinator.IntentButtonRelease)
	s.Require().Contains(s.timers, coordinator.KeyCountdown)
	s.reset()

	s.mockAnnouncer.EXPECT().AnnounceRound(gomock.Any(), gomock.Any()).Return(nil)

	s.handle(s.testPlayerB, &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Bob", Role: models.RoleDisplay})

	ended := s.events(coordinator.EventRoundEnded)
	s.Require().Len(ended, 1)
	result := ended[0].event.Data.(coordinator.RoundResultView)
	s.True(result.IsDraw)
	s.Equal(models.DrawReasonAllPlayersGaveUp, result.Reason)
	s.NotContains(s.timers, coordinator.KeyCountdown)
	s.Equal(models.GameStatusRoundEnd, s.coordinator.Snapshot().State.Status)
}

func (s *CoordinatorTestSuite) TestJoin_RoleChangeCompletesGate() {
	s.lobby()
	s.do(s.testHostID, coordinator.IntentStartGame)
	s.handle("carol", &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Carol"})
	s.do(s.testPlayerA, coordinator.IntentButtonPress)
	s.do(s.testPlayerB, coordinator.IntentButtonPress)
	s.Require().NotContains(s.timers, coordinator.KeyCountdown)
	s.reset()

	s.handle("carol", &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Carol", Role: models.RoleDisplay})

	countdown := s.events(coordinator.EventCountdown)
	s.Require().Len(countdown, 1)
	s.Equal(game.DefaultCountdownSeconds, countdown[0].event.Data.(coordinator.CountdownPayload).Seconds)
	s.Contains(s.timers, coordinator.KeyCountdown)
}

func (s *CoordinatorTestSuite) TestLeave_LastParticipantCancelsTimers() {
	s.handle(s.testHostID, &coordinator.Intent{Type: coordinator.IntentJoin, Name: "Big Screen", Role: models.RoleDisplay})
	s.timers["leftover"] = func() {}
	s.reset()

	s.Require().NoError(s.coordinator.Leave(s.ctx, s.testHostID))

	s.Empty(s.timers)
	s.Empty(s.sent)
	s.Nil(s.coordinator.Snapshot())
}

func (s *CoordinatorTestSuite) TestLeave_BidderLeavingEndsRound() {
	s.bidding()
	s.clock.Advance(time.Second)
	s.do(s.testPlayerA, coordinator.IntentButtonRelease)
	s.reset()

	s.mockAnnouncer.EXPECT().AnnounceRound(gomock.Any(), gomock.Any()).Return(nil)

	s.Require().NoError(s.coordinator.Leave(s.ctx, s.testPlayerB))

	ended := s.events(coordinator.EventRoundEnded)
	s.Require().Len(ended, 1)
	s.Equal(s.testPlayerA, ended[0].event.Data.(coordinator.RoundResultView).WinnerID)
	s.NotContains(s.timers, coordinator.KeyBiddingPoll)
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}
