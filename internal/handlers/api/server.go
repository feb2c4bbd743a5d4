// Package api serves the REST surface and mounts the websocket gateway.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KirkDiggler/timebid/internal/repositories/results"
	"github.com/KirkDiggler/timebid/internal/services/coordinator"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

const (
	defaultRecentLimit = 10
	qrSize             = 256
)

// Config holds what the routes read from
type Config struct {
	Coordinator coordinator.Service

	// Gateway serves /ws
	Gateway http.Handler

	// Results is optional; the archive routes answer 404 without it
	Results results.Repository

	// PublicURL is encoded into the join QR code
	PublicURL string
}

// Server holds the HTTP handlers
type Server struct {
	coordinator coordinator.Service
	gateway     http.Handler
	results     results.Repository
	publicURL   string
}

// New creates a Server
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Coordinator == nil {
		return nil, ErrNilCoordinator
	}
	if cfg.Gateway == nil {
		return nil, ErrNilGateway
	}

	return &Server{
		coordinator: cfg.Coordinator,
		gateway:     cfg.Gateway,
		results:     cfg.Results,
		publicURL:   cfg.PublicURL,
	}, nil
}

// Handler returns the routes wrapped in CORS
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.Health)
	r.GET("/ws", gin.WrapH(s.gateway))

	api := r.Group("/api")
	{
		api.GET("/game", s.GetGame)
		api.GET("/games/recent", s.ListRecentGames)
		api.GET("/games/:id", s.GetGameResults)
		api.GET("/join-qr.png", s.JoinQR)
	}

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodHead, http.MethodGet},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

// Health reports liveness plus a one-line view of the game
func (s *Server) Health(c *gin.Context) {
	body := gin.H{"status": "ok", "players": 0}
	if snapshot := s.coordinator.Snapshot(); snapshot != nil {
		body["players"] = len(snapshot.Players)
		body["gameStatus"] = snapshot.State.Status
	}
	c.JSON(http.StatusOK, body)
}

// GetGame returns the live game snapshot
func (s *Server) GetGame(c *gin.Context) {
	snapshot := s.coordinator.Snapshot()
	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no game in progress"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// ListRecentGames returns archived results, newest first
func (s *Server) ListRecentGames(c *gin.Context) {
	if s.results == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "results archive is disabled"})
		return
	}

	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	output, err := s.results.ListRecent(c.Request.Context(), &results.ListRecentInput{Limit: limit})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list recent games")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list games"})
		return
	}

	games := make([]*coordinator.GameResultsView, 0, len(output.Results))
	for _, r := range output.Results {
		games = append(games, coordinator.NewGameResultsView(r))
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

// GetGameResults returns one archived game
func (s *Server) GetGameResults(c *gin.Context) {
	if s.results == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "results archive is disabled"})
		return
	}

	found, err := s.results.GetResults(c.Request.Context(), &results.GetResultsInput{GameID: c.Param("id")})
	if errors.Is(err, results.ErrResultsNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("game_id", c.Param("id")).Msg("Failed to load game results")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load game"})
		return
	}

	c.JSON(http.StatusOK, coordinator.NewGameResultsView(found))
}

// JoinQR renders the public URL as a PNG for the display screen
func (s *Server) JoinQR(c *gin.Context) {
	if s.publicURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "public URL is not configured"})
		return
	}

	png, err := qrcode.Encode(s.publicURL, qrcode.Medium, qrSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render join QR code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render QR code"})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", png)
}
