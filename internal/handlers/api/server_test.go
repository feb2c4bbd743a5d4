package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/KirkDiggler/timebid/internal/repositories/results"
	resultsMocks "github.com/KirkDiggler/timebid/internal/repositories/results/mocks"
	"github.com/KirkDiggler/timebid/internal/services/coordinator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type fakeCoordinator struct {
	snapshot *coordinator.GameSnapshot
}

func (f *fakeCoordinator) Handle(context.Context, string, *coordinator.Intent) error { return nil }
func (f *fakeCoordinator) Leave(context.Context, string) error                       { return nil }
func (f *fakeCoordinator) Snapshot() *coordinator.GameSnapshot                       { return f.snapshot }

type ServerTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockResultsRepo *resultsMocks.MockRepository
	coordinator     *fakeCoordinator
	handler         http.Handler
	testTime        time.Time
}

func (s *ServerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *ServerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockResultsRepo = resultsMocks.NewMockRepository(s.mockCtrl)
	s.coordinator = &fakeCoordinator{}
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	server, err := New(&Config{
		Coordinator: s.coordinator,
		Gateway: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
		Results:   s.mockResultsRepo,
		PublicURL: "http://192.168.1.20:3001",
	})
	s.Require().NoError(err)
	s.handler = server.Handler()
}

func (s *ServerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ServerTestSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Origin", "http://localhost:5173")
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (s *ServerTestSuite) finished(id string) *models.GameResults {
	winner := &models.Standing{Rank: 1, ParticipantID: "bob", Name: "Bob", Wins: 1, RemainingTime: 8 * time.Second}
	return &models.GameResults{
		GameID:    id,
		Winner:    winner,
		Loser:     winner,
		Standings: []*models.Standing{winner},
		EndedAt:   s.testTime,
	}
}

func (s *ServerTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Gateway: http.NotFoundHandler()})
	s.ErrorIs(err, ErrNilCoordinator)

	_, err = New(&Config{Coordinator: s.coordinator})
	s.ErrorIs(err, ErrNilGateway)
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.get("/health")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(map[string]any{"status": "ok", "players": float64(0)}, s.decode(rec))
	s.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *ServerTestSuite) TestHealth_WithGame() {
	s.coordinator.snapshot = &coordinator.GameSnapshot{
		GameID:  "game-1",
		Players: []coordinator.ParticipantView{{ID: "display"}, {ID: "alice"}},
		State:   coordinator.StateView{Status: models.GameStatusPlaying},
	}

	body := s.decode(s.get("/health"))

	s.Equal(float64(2), body["players"])
	s.Equal("playing", body["gameStatus"])
}

func (s *ServerTestSuite) TestWebsocketRouteUsesGateway() {
	rec := s.get("/ws")

	s.Equal(http.StatusTeapot, rec.Code)
}

func (s *ServerTestSuite) TestGetGame_NoGame() {
	rec := s.get("/api/game")

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestGetGame_Snapshot() {
	s.coordinator.snapshot = &coordinator.GameSnapshot{
		GameID: "game-1",
		HostID: "display",
		State:  coordinator.StateView{Status: models.GameStatusWaiting},
	}

	rec := s.get("/api/game")

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Equal("game-1", body["gameId"])
	s.Equal("waiting", body["gameState"].(map[string]any)["status"])
}

func (s *ServerTestSuite) TestListRecentGames() {
	s.mockResultsRepo.EXPECT().
		ListRecent(gomock.Any(), &results.ListRecentInput{Limit: 2}).
		Return(&results.ListRecentOutput{Results: []*models.GameResults{s.finished("game-2"), s.finished("game-1")}}, nil)

	rec := s.get("/api/games/recent?limit=2")

	s.Equal(http.StatusOK, rec.Code)
	games := s.decode(rec)["games"].([]any)
	s.Require().Len(games, 2)
	s.Equal("game-2", games[0].(map[string]any)["gameId"])
}

func (s *ServerTestSuite) TestListRecentGames_DefaultLimitAndBadLimit() {
	s.mockResultsRepo.EXPECT().
		ListRecent(gomock.Any(), &results.ListRecentInput{Limit: defaultRecentLimit}).
		Return(&results.ListRecentOutput{}, nil)

	rec := s.get("/api/games/recent")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal([]any{}, s.decode(rec)["games"])

	rec = s.get("/api/games/recent?limit=zero")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestListRecentGames_RepositoryError() {
	s.mockResultsRepo.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

	rec := s.get("/api/games/recent")

	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *ServerTestSuite) TestGetGameResults() {
	s.mockResultsRepo.EXPECT().
		GetResults(gomock.Any(), &results.GetResultsInput{GameID: "game-1"}).
		Return(s.finished("game-1"), nil)
	s.mockResultsRepo.EXPECT().
		GetResults(gomock.Any(), &results.GetResultsInput{GameID: "missing"}).
		Return(nil, results.ErrResultsNotFound)

	rec := s.get("/api/games/game-1")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Bob", s.decode(rec)["winner"].(map[string]any)["name"])

	rec = s.get("/api/games/missing")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestJoinQR() {
	rec := s.get("/api/join-qr.png")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	s.Require().NoError(err)
	s.Equal(qrSize, img.Bounds().Dx())
}

func (s *ServerTestSuite) TestArchiveRoutesWithoutRepository() {
	server, err := New(&Config{Coordinator: s.coordinator, Gateway: http.NotFoundHandler()})
	s.Require().NoError(err)
	s.handler = server.Handler()

	s.Equal(http.StatusNotFound, s.get("/api/games/recent").Code)
	s.Equal(http.StatusNotFound, s.get("/api/games/game-1").Code)
	s.Equal(http.StatusNotFound, s.get("/api/join-qr.png").Code)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
