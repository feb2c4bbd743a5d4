package eventbus

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/timebid/internal/services/coordinator"
	"github.com/KirkDiggler/timebid/internal/services/coordinator/mocks"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type fakePublisher struct {
	msgs []*nats.Msg
	err  error
}

func (f *fakePublisher) PublishMsg(msg *nats.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

type FanoutTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockPrimary *mocks.MockBroadcaster
	publisher   *fakePublisher
	fanout      *Fanout
	testTime    time.Time
}

func (s *FanoutTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockPrimary = mocks.NewMockBroadcaster(s.mockCtrl)
	s.publisher = &fakePublisher{}
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	f, err := New(&Config{
		Primary:   s.mockPrimary,
		Publisher: s.publisher,
		Subject:   "timebid.events",
		Skip:      []coordinator.EventType{coordinator.EventTimeTick},
	})
	s.Require().NoError(err)
	s.fanout = f
}

func (s *FanoutTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *FanoutTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilPrimary)

	_, err = New(&Config{Primary: s.mockPrimary, Publisher: s.publisher})
	s.ErrorIs(err, ErrMissingSubject)

	_, err = New(&Config{Primary: s.mockPrimary})
	s.NoError(err)
}

func (s *FanoutTestSuite) TestBroadcast_PublishesBySubject() {
	event := &coordinator.Event{
		Type:      coordinator.EventCountdown,
		Timestamp: s.testTime,
		Data:      coordinator.CountdownPayload{Seconds: 3},
	}
	s.mockPrimary.EXPECT().Broadcast(event)

	s.fanout.Broadcast(event)

	s.Require().Len(s.publisher.msgs, 1)
	msg := s.publisher.msgs[0]
	s.Equal("timebid.events.game:countdown", msg.Subject)
	s.Equal("game:countdown", msg.Header.Get("Event-Type"))

	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(msg.Data, &decoded))
	s.Equal("game:countdown", decoded["type"])
	s.Equal(map[string]any{"seconds": float64(3)}, decoded["data"])
}

func (s *FanoutTestSuite) TestSendTo_NotPublished() {
	event := &coordinator.Event{Type: coordinator.EventBidConfirmed, Timestamp: s.testTime}
	s.mockPrimary.EXPECT().SendTo("alice", event)

	s.fanout.SendTo("alice", event)

	s.Empty(s.publisher.msgs)
}

func (s *FanoutTestSuite) TestSendToOthers_Published() {
	event := &coordinator.Event{Type: coordinator.EventBidPlaced, Timestamp: s.testTime}
	s.mockPrimary.EXPECT().SendToOthers("alice", event)

	s.fanout.SendToOthers("alice", event)

	s.Require().Len(s.publisher.msgs, 1)
	s.Equal("timebid.events.player:bid", s.publisher.msgs[0].Subject)
}

func (s *FanoutTestSuite) TestBroadcast_SkippedType() {
	event := &coordinator.Event{Type: coordinator.EventTimeTick, Timestamp: s.testTime}
	s.mockPrimary.EXPECT().Broadcast(event)

	s.fanout.Broadcast(event)

	s.Empty(s.publisher.msgs)
}

func (s *FanoutTestSuite) TestBroadcast_PublishErrorStillDelivers() {
	s.publisher.err = errors.New("nats: connection closed")
	event := &coordinator.Event{Type: coordinator.EventRoundEnded, Timestamp: s.testTime}
	s.mockPrimary.EXPECT().Broadcast(event)

	s.fanout.Broadcast(event)

	s.Empty(s.publisher.msgs)
}

func TestFanoutTestSuite(t *testing.T) {
	suite.Run(t, new(FanoutTestSuite))
}
