package coordinator

import (
	"sort"
	"time"

	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/KirkDiggler/timebid/internal/services/game"
)

// GameSnapshot is the full state every client reconciles against.
// Times are seconds, bids are milliseconds, instants are unix milliseconds.
type GameSnapshot struct {
	GameID   string            `json:"gameId"`
	HostID   string            `json:"hostId"`
	Settings SettingsView      `json:"settings"`
	Players  []ParticipantView `json:"players"`
	State    StateView         `json:"gameState"`
}

type SettingsView struct {
	TimePerPlayer int `json:"timePerPlayer"`
	TotalRounds   int `json:"totalRounds"`
}

type ParticipantView struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Role            models.Role `json:"role"`
	IsHost          bool        `json:"isHost"`
	RemainingTime   float64     `json:"remainingTime"`
	Wins            int         `json:"roundsWon"`
	IsReady         bool        `json:"isReady"`
	IsHoldingButton bool        `json:"isHoldingButton"`
	IsBidding       bool        `json:"isBidding"`
}

type StateView struct {
	Status                models.GameStatus `json:"status"`
	Phase                 models.RoundPhase `json:"phase,omitempty"`
	CurrentRound          int               `json:"currentRound"`
	RoundStartTime        int64             `json:"roundStartTime,omitempty"`
	CountdownStartTime    int64             `json:"countdownStartTime,omitempty"`
	IsWaitingForCountdown bool              `json:"isWaitingForCountdown"`
	CommonTimerStarted    bool              `json:"commonTimerStarted"`
	BidderIDs             []string          `json:"bidderIds"`
	RoundHistory          []RoundResultView `json:"roundHistory"`
}

type BidView struct {
	ParticipantID string `json:"playerId"`
	Name          string `json:"playerName"`
	BidTimeMillis int64  `json:"bidTime"`
	TimeExhausted bool   `json:"timeExhausted"`
}

type RoundResultView struct {
	Round          int               `json:"round"`
	IsDraw         bool              `json:"isDraw"`
	Reason         models.DrawReason `json:"reason,omitempty"`
	WinnerID       string            `json:"winnerId,omitempty"`
	WinnerName     string            `json:"winnerName,omitempty"`
	WinTimeSeconds float64           `json:"winTime,omitempty"`
	Bids           []BidView         `json:"bids"`
}

type StandingView struct {
	Rank          int     `json:"rank"`
	ParticipantID string  `json:"id"`
	Name          string  `json:"name"`
	Wins          int     `json:"roundsWon"`
	RemainingTime float64 `json:"remainingTime"`
}

type GameResultsView struct {
	GameID     string            `json:"gameId"`
	Winner     *StandingView     `json:"winner"`
	Loser      *StandingView     `json:"loser"`
	AllPlayers []StandingView    `json:"allPlayers"`
	Rounds     []RoundResultView `json:"rounds"`
	EndedAt    int64             `json:"endedAt"`
}

type EstimateView struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	RemainingTime float64 `json:"remainingTime"`
	IsBidding     bool    `json:"isBidding"`
}

func unixMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func newSnapshot(g *models.Game) *GameSnapshot {
	if g == nil {
		return nil
	}

	snapshot := &GameSnapshot{
		GameID: g.ID,
		HostID: g.HostID,
		Settings: SettingsView{
			TimePerPlayer: int(g.Settings.TimePerPlayer / time.Second),
			TotalRounds:   g.Settings.TotalRounds,
		},
		Players: make([]ParticipantView, 0, len(g.Participants)),
		State: StateView{
			Status:                g.State.Status,
			Phase:                 g.State.Phase,
			CurrentRound:          g.State.CurrentRound,
			RoundStartTime:        unixMillis(g.State.RoundStartTime),
			CountdownStartTime:    unixMillis(g.State.CountdownStartTime),
			IsWaitingForCountdown: g.State.IsWaitingForCountdown(),
			CommonTimerStarted:    g.State.CommonTimerStarted(),
			BidderIDs:             make([]string, 0, len(g.State.CurrentBids)),
			RoundHistory:          make([]RoundResultView, 0, len(g.State.RoundHistory)),
		},
	}

	for _, p := range g.Participants {
		snapshot.Players = append(snapshot.Players, newParticipantView(p, g.HostID))
	}
	for id := range g.State.CurrentBids {
		snapshot.State.BidderIDs = append(snapshot.State.BidderIDs, id)
	}
	sort.Strings(snapshot.State.BidderIDs)
	for _, r := range g.State.RoundHistory {
		snapshot.State.RoundHistory = append(snapshot.State.RoundHistory, newRoundResultView(r))
	}

	return snapshot
}

func newParticipantView(p *models.Participant, hostID string) ParticipantView {
	return ParticipantView{
		ID:              p.ID,
		Name:            p.Name,
		Role:            p.Role,
		IsHost:          p.ID == hostID,
		RemainingTime:   p.RemainingTime.Seconds(),
		Wins:            p.Wins,
		IsReady:         p.IsReady,
		IsHoldingButton: p.IsHoldingButton,
		IsBidding:       p.IsBidding,
	}
}

func newBidView(b models.RoundBid) BidView {
	return BidView{
		ParticipantID: b.ParticipantID,
		Name:          b.ParticipantName,
		BidTimeMillis: b.BidTime.Milliseconds(),
		TimeExhausted: b.TimeExhausted,
	}
}

func newRoundResultView(r *models.RoundResult) RoundResultView {
	view := RoundResultView{
		Round:      r.Round,
		IsDraw:     r.IsDraw,
		Reason:     r.Reason,
		WinnerID:   r.WinnerID,
		WinnerName: r.WinnerName,
		Bids:       make([]BidView, 0, len(r.Bids)),
	}
	if !r.IsDraw {
		view.WinTimeSeconds = r.WinTime.Seconds()
	}
	for _, b := range r.Bids {
		view.Bids = append(view.Bids, newBidView(b))
	}
	return view
}

func newStandingView(s *models.Standing) *StandingView {
	if s == nil {
		return nil
	}
	return &StandingView{
		Rank:          s.Rank,
		ParticipantID: s.ParticipantID,
		Name:          s.Name,
		Wins:          s.Wins,
		RemainingTime: s.RemainingTime.Seconds(),
	}
}

// NewGameResultsView converts final results for the wire and the HTTP API
func NewGameResultsView(r *models.GameResults) *GameResultsView {
	view := &GameResultsView{
		GameID:     r.GameID,
		Winner:     newStandingView(r.Winner),
		Loser:      newStandingView(r.Loser),
		AllPlayers: make([]StandingView, 0, len(r.Standings)),
		Rounds:     make([]RoundResultView, 0, len(r.Rounds)),
		EndedAt:    unixMillis(r.EndedAt),
	}
	for _, s := range r.Standings {
		view.AllPlayers = append(view.AllPlayers, *newStandingView(s))
	}
	for _, round := range r.Rounds {
		view.Rounds = append(view.Rounds, newRoundResultView(round))
	}
	return view
}

func newTimeTickPayload(est *game.EstimatesOutput) TimeTickPayload {
	payload := TimeTickPayload{
		ElapsedSeconds: est.Elapsed.Seconds(),
		RoundStartTime: unixMillis(est.RoundStartTime),
		Players:        make([]EstimateView, 0, len(est.Players)),
	}
	for _, p := range est.Players {
		payload.Players = append(payload.Players, EstimateView{
			ID:            p.ParticipantID,
			Name:          p.Name,
			RemainingTime: p.Remaining.Seconds(),
			IsBidding:     p.IsBidding,
		})
	}
	return payload
}
