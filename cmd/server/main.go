package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/timebid/internal/common/clock"
	"github.com/KirkDiggler/timebid/internal/common/ids"
	"github.com/KirkDiggler/timebid/internal/common/logging"
	"github.com/KirkDiggler/timebid/internal/config"
	"github.com/KirkDiggler/timebid/internal/handlers/api"
	"github.com/KirkDiggler/timebid/internal/handlers/discord"
	"github.com/KirkDiggler/timebid/internal/handlers/ws"
	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/KirkDiggler/timebid/internal/repositories/results"
	"github.com/KirkDiggler/timebid/internal/services/coordinator"
	"github.com/KirkDiggler/timebid/internal/services/eventbus"
	gameService "github.com/KirkDiggler/timebid/internal/services/game"
	"github.com/KirkDiggler/timebid/internal/services/messaging"
	"github.com/KirkDiggler/timebid/internal/services/scheduler"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// shutdownSignals stop the server gracefully
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	// Results archive
	var resultsRepo results.Repository
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		repo, err := results.NewRedis(&results.Config{
			RedisClient: redisClient,
			Keep:        cfg.ResultsKeep,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to create results repository")
		}
		resultsRepo = repo
	} else {
		resultsRepo = results.NewMemory(cfg.ResultsKeep)
		log.Info().Msg("REDIS_ADDR not set, keeping results in memory")
	}

	msgSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create messaging service")
	}

	// Optional Discord announcer
	var announcer coordinator.Announcer
	var bot *discord.Bot
	if cfg.DiscordEnabled() {
		bot, err = discord.New(&discord.Config{
			Token:     cfg.Discord.Token,
			ChannelID: cfg.Discord.ChannelID,
			Messaging: msgSvc,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Discord bot")
		}
		if err := bot.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start Discord bot")
		}
		announcer = bot
	}

	// Transport
	clk := clock.New()

	wsConfig := ws.DefaultConfig()
	wsConfig.Messaging = msgSvc
	wsConfig.Clock = clk
	gateway := ws.New(wsConfig)

	var nc *nats.Conn
	busConfig := &eventbus.Config{
		Primary: gateway,
		Subject: cfg.NATS.Subject,
		Skip:    []coordinator.EventType{coordinator.EventTimeTick},
	}
	if cfg.NATSEnabled() {
		nc, err = eventbus.Connect(cfg.NATS.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to NATS")
		}
		busConfig.Publisher = nc
	}
	bus, err := eventbus.New(busConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create event bus")
	}

	// Game
	sched, err := scheduler.New(&scheduler.Config{Clock: clk})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	gameSvc, err := gameService.New(&gameService.Config{
		Clock:       clk,
		IDGenerator: ids.New(),
		Settings: models.Settings{
			TimePerPlayer: cfg.Game.TimePerPlayer,
			TotalRounds:   cfg.Game.TotalRounds,
		},
		CountdownSeconds: cfg.Game.CountdownSeconds,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game service")
	}

	coord, err := coordinator.New(&coordinator.Config{
		GameService:       gameSvc,
		Scheduler:         sched,
		Broadcaster:       bus,
		Clock:             clk,
		Announcer:         announcer,
		ResultsRepository: resultsRepo,
		PollInterval:      cfg.Game.PollInterval,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create coordinator")
	}
	gateway.SetCoordinator(coord)

	apiServer, err := api.New(&api.Config{
		Coordinator: coord,
		Gateway:     gateway,
		Results:     resultsRepo,
		PublicURL:   cfg.PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create API server")
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		gateway.Start(gctx)
		return nil
	})

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Str("public_url", cfg.PublicURL).Msg("Server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		sched.CancelAll()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}

	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Error().Err(err).Msg("Error stopping Discord bot")
		}
	}
	if nc != nil {
		if err := nc.Drain(); err != nil {
			log.Error().Err(err).Msg("Error draining NATS connection")
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Redis client")
		}
	}

	log.Info().Msg("Server has been shut down")
}
