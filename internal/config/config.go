// Package config loads server settings from the environment, an optional .env file
// and an optional YAML file of game defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is everything cmd/server needs to wire the application
type Config struct {
	HTTPAddr  string
	PublicURL string
	LogLevel  string
	LogFormat string

	Redis       RedisConfig
	ResultsKeep int

	NATS    NATSConfig
	Discord DiscordConfig

	Game GameConfig
}

type RedisConfig struct {
	// Addr empty keeps results in memory
	Addr     string
	Password string
	DB       int
}

type NATSConfig struct {
	// URL empty disables publishing
	URL     string
	Subject string
}

type DiscordConfig struct {
	Token     string
	ChannelID string
}

// GameConfig holds the defaults a new game starts with
type GameConfig struct {
	TimePerPlayer    time.Duration
	TotalRounds      int
	CountdownSeconds int
	PollInterval     time.Duration
}

// gameFile is the YAML layout of GAME_CONFIG_FILE
type gameFile struct {
	TimePerPlayer    *int `yaml:"time_per_player"`
	TotalRounds      *int `yaml:"total_rounds"`
	CountdownSeconds *int `yaml:"countdown_seconds"`
	PollIntervalMS   *int `yaml:"poll_interval_ms"`
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

func (c *Config) NATSEnabled() bool {
	return c.NATS.URL != ""
}

// DiscordEnabled reports whether both the token and the channel are set
func (c *Config) DiscordEnabled() bool {
	return c.Discord.Token != "" && c.Discord.ChannelID != ""
}

// Load reads .env if present, then the YAML game defaults, then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", "0.0.0.0:3001"),
		PublicURL:   getEnv("PUBLIC_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
		ResultsKeep: 50,
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", ""),
			Subject: getEnv("NATS_SUBJECT", "timebid.events"),
		},
		Discord: DiscordConfig{
			Token:     getEnv("DISCORD_TOKEN", ""),
			ChannelID: getEnv("DISCORD_CHANNEL_ID", ""),
		},
		Game: GameConfig{
			TimePerPlayer:    600 * time.Second,
			TotalRounds:      19,
			CountdownSeconds: 5,
			PollInterval:     100 * time.Millisecond,
		},
	}

	if path := getEnv("GAME_CONFIG_FILE", ""); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	var err error
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.ResultsKeep, err = getEnvInt("RESULTS_KEEP", cfg.ResultsKeep); err != nil {
		return nil, err
	}

	seconds, err := getEnvInt("TIME_PER_PLAYER", int(cfg.Game.TimePerPlayer/time.Second))
	if err != nil {
		return nil, err
	}
	cfg.Game.TimePerPlayer = time.Duration(seconds) * time.Second

	if cfg.Game.TotalRounds, err = getEnvInt("TOTAL_ROUNDS", cfg.Game.TotalRounds); err != nil {
		return nil, err
	}
	if cfg.Game.CountdownSeconds, err = getEnvInt("COUNTDOWN_SECONDS", cfg.Game.CountdownSeconds); err != nil {
		return nil, err
	}

	millis, err := getEnvInt("POLL_INTERVAL_MS", int(cfg.Game.PollInterval/time.Millisecond))
	if err != nil {
		return nil, err
	}
	cfg.Game.PollInterval = time.Duration(millis) * time.Millisecond

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Game.TimePerPlayer <= 0:
		return errors.New("TIME_PER_PLAYER must be positive")
	case c.Game.TotalRounds <= 0:
		return errors.New("TOTAL_ROUNDS must be positive")
	case c.Game.CountdownSeconds <= 0:
		return errors.New("COUNTDOWN_SECONDS must be positive")
	case c.Game.PollInterval <= 0:
		return errors.New("POLL_INTERVAL_MS must be positive")
	case c.ResultsKeep <= 0:
		return errors.New("RESULTS_KEEP must be positive")
	case c.NATSEnabled() && c.NATS.Subject == "":
		return errors.New("NATS_SUBJECT cannot be empty when NATS_URL is set")
	}
	return nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	var file gameFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse game config %s: %w", path, err)
	}

	if file.TimePerPlayer != nil {
		c.Game.TimePerPlayer = time.Duration(*file.TimePerPlayer) * time.Second
	}
	if file.TotalRounds != nil {
		c.Game.TotalRounds = *file.TotalRounds
	}
	if file.CountdownSeconds != nil {
		c.Game.CountdownSeconds = *file.CountdownSeconds
	}
	if file.PollIntervalMS != nil {
		c.Game.PollInterval = time.Duration(*file.PollIntervalMS) * time.Millisecond
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
