package game

import (
	"sort"
	"time"

	"github.com/KirkDiggler/timebid/internal/models"
)

// PressButton records a button press
func (s *service) PressButton(input *PressButtonInput) (*PressButtonOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	p, err := s.player(input.ParticipantID)
	if err != nil {
		return nil, err
	}
	st := &s.game.State
	if st.Status != models.GameStatusPlaying {
		return nil, ErrInvalidGameState
	}

	switch st.Phase {
	case models.RoundPhaseGate:
		if p.IsHoldingButton {
			return &PressButtonOutput{}, nil
		}
		p.IsHoldingButton = true
		st.ButtonPressStartTimes[p.ID] = s.clock.Now()

		return &PressButtonOutput{
			Accepted:         true,
			CountdownStarted: s.maybeStartCountdown(),
		}, nil

	case models.RoundPhaseCountdown:
		if st.GaveUp[p.ID] {
			return nil, ErrGaveUp
		}
		if p.IsHoldingButton {
			return &PressButtonOutput{}, nil
		}
		return nil, ErrInvalidRoundPhase

	case models.RoundPhaseBidding:
		if p.RemainingTime <= OutOfTimeTolerance {
			return nil, ErrOutOfTime
		}
		return nil, ErrInvalidRoundPhase

	default:
		return nil, ErrInvalidRoundPhase
	}
}

// ReleaseButton records a button release
func (s *service) ReleaseButton(input *ReleaseButtonInput) (*ReleaseButtonOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	p, err := s.player(input.ParticipantID)
	if err != nil {
		return nil, err
	}
	st := &s.game.State
	if st.Status != models.GameStatusPlaying {
		return nil, ErrInvalidGameState
	}

	output := &ReleaseButtonOutput{Kind: ReleaseIgnored}

	switch st.Phase {
	case models.RoundPhaseGate:
		if p.IsHoldingButton {
			p.ClearRoundFlags()
			delete(st.ButtonPressStartTimes, p.ID)
			output.Kind = ReleaseCleared
		}

	case models.RoundPhaseCountdown:
		if p.IsHoldingButton {
			p.ClearRoundFlags()
			delete(st.ButtonPressStartTimes, p.ID)
			st.GaveUp[p.ID] = true
			output.Kind = ReleaseGaveUp

			if len(s.holders()) == 0 {
				output.CountdownAborted = true
				output.Result = s.resolveRound()
			}
		}

	case models.RoundPhaseBidding:
		if !p.IsBidding {
			return nil, ErrNotBidding
		}
		output.Kind = ReleaseBid
		output.Bid = s.finalizeRelease(p, s.clock.Now())
		output.Result = s.checkRoundEnd()

	default:
		p.ClearRoundFlags()
	}

	output.Participant = p.Clone()
	return output, nil
}

// CountdownTick advances the countdown by one second.
// The value returned is the one to announce; the tick announcing zero starts the common timer.
func (s *service) CountdownTick() (*CountdownTickOutput, error) {
	if s.game == nil {
		return nil, ErrNoGame
	}
	st := &s.game.State
	if st.Status != models.GameStatusPlaying || st.Phase != models.RoundPhaseCountdown {
		return nil, ErrInvalidRoundPhase
	}

	output := &CountdownTickOutput{Seconds: st.CountdownRemaining}
	if st.CountdownRemaining > 0 {
		st.CountdownRemaining--
		return output, nil
	}

	holders := s.holders()
	if len(holders) == 0 {
		output.Result = s.resolveRound()
		return output, nil
	}

	now := s.clock.Now()
	st.RoundStartTime = now
	st.Phase = models.RoundPhaseBidding
	output.BiddingStarted = true

	// Time spent holding through the countdown is free: every clock restarts now
	for _, p := range holders {
		if p.RemainingTime <= OutOfTimeTolerance {
			p.ClearRoundFlags()
			delete(st.ButtonPressStartTimes, p.ID)
			st.GaveUp[p.ID] = true
			output.Forfeited = append(output.Forfeited, p.Clone())
			continue
		}
		p.IsBidding = true
		st.ButtonPressStartTimes[p.ID] = now
		output.Bidding = append(output.Bidding, p.ID)
	}

	output.Result = s.checkRoundEnd()
	return output, nil
}

// PollBidding finalizes bidders who held past their budget
func (s *service) PollBidding() (*PollBiddingOutput, error) {
	if s.game == nil {
		return nil, ErrNoGame
	}
	st := &s.game.State
	if st.Status != models.GameStatusPlaying || st.Phase != models.RoundPhaseBidding {
		return nil, ErrInvalidRoundPhase
	}

	now := s.clock.Now()
	output := &PollBiddingOutput{Elapsed: now.Sub(st.RoundStartTime)}

	for _, p := range s.game.Players() {
		if !p.IsBidding {
			continue
		}
		if _, done := st.CurrentBids[p.ID]; done {
			continue
		}
		if now.Sub(st.ButtonPressStartTimes[p.ID]) > p.RemainingTime+ExhaustionTolerance {
			output.Expired = append(output.Expired, s.finalizeExhausted(p))
		}
	}

	output.Result = s.checkRoundEnd()
	return output, nil
}

// ResolveRound resolves the current round; repeated calls return the recorded result
func (s *service) ResolveRound() (*models.RoundResult, error) {
	if s.game == nil {
		return nil, ErrNoGame
	}
	st := &s.game.State
	if st.CurrentRound == 0 {
		return nil, ErrInvalidGameState
	}

	switch st.Phase {
	case models.RoundPhaseCountdown, models.RoundPhaseBidding, models.RoundPhaseResolved:
		return s.resolveRound(), nil
	default:
		return nil, ErrInvalidRoundPhase
	}
}

// AdvanceRound prepares the next round or ends the game
func (s *service) AdvanceRound(input *HostInput) (*AdvanceRoundOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if _, err := s.host(input.ParticipantID); err != nil {
		return nil, err
	}
	if s.game.State.Status != models.GameStatusRoundEnd {
		return nil, ErrInvalidGameState
	}

	if s.game.State.CurrentRound < s.game.Settings.TotalRounds {
		s.prepareRound()
		return &AdvanceRoundOutput{NextRound: s.game.State.CurrentRound}, nil
	}

	return &AdvanceRoundOutput{Results: s.endGame()}, nil
}

// Estimates reports each player's remaining time including holds in progress
func (s *service) Estimates() (*EstimatesOutput, error) {
	if s.game == nil {
		return nil, ErrNoGame
	}
	st := &s.game.State
	now := s.clock.Now()

	output := &EstimatesOutput{RoundStartTime: st.RoundStartTime}
	if st.Phase == models.RoundPhaseBidding {
		output.Elapsed = now.Sub(st.RoundStartTime)
	}

	for _, p := range s.game.Players() {
		remaining := p.RemainingTime
		if p.IsBidding {
			remaining -= now.Sub(st.ButtonPressStartTimes[p.ID])
			if remaining < OutOfTimeTolerance {
				remaining = 0
			}
		}
		output.Players = append(output.Players, Estimate{
			ParticipantID: p.ID,
			Name:          p.Name,
			Remaining:     remaining,
			IsBidding:     p.IsBidding,
		})
	}

	return output, nil
}

func (s *service) prepareRound() {
	st := &s.game.State
	st.CurrentRound++
	st.ResetRound()
	st.Status = models.GameStatusPlaying
	st.Phase = models.RoundPhaseGate

	for _, p := range s.game.Players() {
		p.ClearRoundFlags()
		p.IsReady = false
	}
}

// maybeStartCountdown opens the countdown once every player is holding
func (s *service) maybeStartCountdown() bool {
	players := s.game.Players()
	if len(players) == 0 {
		return false
	}
	for _, p := range players {
		if !p.IsHoldingButton {
			return false
		}
	}

	st := &s.game.State
	st.Phase = models.RoundPhaseCountdown
	st.CountdownStartTime = s.clock.Now()
	st.CountdownRemaining = s.countdownSeconds
	return true
}

func (s *service) holders() []*models.Participant {
	var holders []*models.Participant
	for _, p := range s.game.Players() {
		if p.IsHoldingButton {
			holders = append(holders, p)
		}
	}
	return holders
}

// finalizeRelease turns an explicit release into a bid
func (s *service) finalizeRelease(p *models.Participant, now time.Time) *models.RoundBid {
	st := &s.game.State
	used := now.Sub(st.ButtonPressStartTimes[p.ID])
	if used > p.RemainingTime+OutOfTimeTolerance {
		return s.finalizeExhausted(p)
	}

	bid := now.Sub(st.RoundStartTime)
	if budget := p.RemainingTime.Truncate(time.Millisecond); bid > budget {
		bid = budget
	}

	p.RemainingTime -= used
	if p.RemainingTime < OutOfTimeTolerance {
		p.RemainingTime = 0
	}

	return s.recordBid(p, bid, false)
}

// finalizeExhausted clamps the bid to whatever budget was left
func (s *service) finalizeExhausted(p *models.Participant) *models.RoundBid {
	bid := p.RemainingTime.Truncate(time.Millisecond)
	p.RemainingTime = 0
	return s.recordBid(p, bid, true)
}

func (s *service) recordBid(p *models.Participant, bid time.Duration, exhausted bool) *models.RoundBid {
	st := &s.game.State
	record := models.RoundBid{
		ParticipantID:   p.ID,
		ParticipantName: p.Name,
		BidTime:         bid,
		TimeExhausted:   exhausted,
	}
	st.CurrentBids[p.ID] = record
	p.ClearRoundFlags()
	delete(st.ButtonPressStartTimes, p.ID)

	return &record
}

// checkRoundEnd resolves the round once no player is holding or bidding
func (s *service) checkRoundEnd() *models.RoundResult {
	if s.game.State.Phase != models.RoundPhaseBidding {
		return nil
	}
	for _, p := range s.game.Players() {
		if p.IsBidding || p.IsHoldingButton {
			return nil
		}
	}
	return s.resolveRound()
}

// resolveRound records the result of the current round exactly once
func (s *service) resolveRound() *models.RoundResult {
	st := &s.game.State
	if existing := st.HistoryFor(st.CurrentRound); existing != nil {
		return existing
	}

	result := &models.RoundResult{
		Round:      st.CurrentRound,
		ResolvedAt: s.clock.Now(),
	}

	if st.Phase == models.RoundPhaseCountdown {
		result.IsDraw = true
		result.Reason = models.DrawReasonAllPlayersGaveUp
	} else {
		var maxBid time.Duration
		for _, p := range s.game.Players() {
			bid, ok := st.CurrentBids[p.ID]
			if !ok {
				continue
			}
			result.Bids = append(result.Bids, bid)
			if bid.BidTime > maxBid {
				maxBid = bid.BidTime
			}
		}

		var tied []models.RoundBid
		for _, b := range result.Bids {
			if maxBid-b.BidTime < TieTolerance {
				tied = append(tied, b)
			}
		}

		switch {
		case len(result.Bids) == 0:
			result.IsDraw = true
			result.Reason = models.DrawReasonNoBids
		case len(tied) > 1:
			result.IsDraw = true
			result.Reason = models.DrawReasonTie
		default:
			winner := s.game.Participant(tied[0].ParticipantID)
			winner.Wins++
			result.WinnerID = winner.ID
			result.WinnerName = winner.Name
			result.WinTime = tied[0].BidTime
		}
	}

	st.RoundHistory = append(st.RoundHistory, result)
	st.Phase = models.RoundPhaseResolved
	st.Status = models.GameStatusRoundEnd
	for _, p := range s.game.Players() {
		p.ClearRoundFlags()
	}
	st.ButtonPressStartTimes = make(map[string]time.Time)

	return result
}

// endGame ranks players by wins, then by time left
func (s *service) endGame() *models.GameResults {
	players := s.game.Players()
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Wins != players[j].Wins {
			return players[i].Wins > players[j].Wins
		}
		return players[i].RemainingTime > players[j].RemainingTime
	})

	results := &models.GameResults{
		GameID:    s.game.ID,
		Settings:  s.game.Settings,
		Rounds:    append([]*models.RoundResult(nil), s.game.State.RoundHistory...),
		StartedAt: s.game.StartedAt,
		EndedAt:   s.clock.Now(),
	}
	for i, p := range players {
		results.Standings = append(results.Standings, &models.Standing{
			Rank:          i + 1,
			ParticipantID: p.ID,
			Name:          p.Name,
			Wins:          p.Wins,
			RemainingTime: p.RemainingTime,
		})
	}
	if n := len(results.Standings); n > 0 {
		results.Winner = results.Standings[0]
		results.Loser = results.Standings[n-1]
	}

	s.game.State.Status = models.GameStatusEnded
	s.game.State.Phase = models.RoundPhaseNone

	return results
}
