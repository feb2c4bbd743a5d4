package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	resultsKeyPrefix = "results:"
	recentKey        = "results_recent"
)

// Config holds configuration for the Redis results repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Keep is how many finished games to retain; zero uses DefaultKeep
	Keep int
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	keep   int
}

// NewRedis creates a new Redis-backed results repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	keep := cfg.Keep
	if keep <= 0 {
		keep = DefaultKeep
	}

	return &redisRepository{
		client: cfg.RedisClient,
		keep:   keep,
	}, nil
}

// SaveResults stores the results and trims the archive to the configured size
func (r *redisRepository) SaveResults(ctx context.Context, input *SaveResultsInput) error {
	if input == nil || input.Results == nil {
		return ErrNilResults
	}
	if input.Results.GameID == "" {
		return ErrMissingGameID
	}

	resultsJSON, err := json.Marshal(input.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, resultsKey(input.Results.GameID), resultsJSON, 0)
	pipe.ZAdd(ctx, recentKey, redis.Z{
		Score:  float64(input.Results.EndedAt.UnixNano()),
		Member: input.Results.GameID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	return r.trim(ctx)
}

// GetResults retrieves the results of one game
func (r *redisRepository) GetResults(ctx context.Context, input *GetResultsInput) (*models.GameResults, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrMissingGameID
	}

	resultsJSON, err := r.client.Get(ctx, resultsKey(input.GameID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrResultsNotFound
		}
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	var results models.GameResults
	if err := json.Unmarshal([]byte(resultsJSON), &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}

	return &results, nil
}

// ListRecent returns the most recently finished games, newest first
func (r *redisRepository) ListRecent(ctx context.Context, input *ListRecentInput) (*ListRecentOutput, error) {
	stop := int64(-1)
	if input != nil && input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}

	gameIDs, err := r.client.ZRevRange(ctx, recentKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent results: %w", err)
	}

	output := &ListRecentOutput{Results: []*models.GameResults{}}
	if len(gameIDs) == 0 {
		return output, nil
	}

	keys := make([]string, len(gameIDs))
	for i, id := range gameIDs {
		keys[i] = resultsKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	for _, v := range values {
		// Entries trimmed between the two reads come back nil
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var results models.GameResults
		if err := json.Unmarshal([]byte(raw), &results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal results: %w", err)
		}
		output.Results = append(output.Results, &results)
	}

	return output, nil
}

func (r *redisRepository) trim(ctx context.Context) error {
	count, err := r.client.ZCard(ctx, recentKey).Result()
	if err != nil {
		return fmt.Errorf("failed to count results: %w", err)
	}
	excess := count - int64(r.keep)
	if excess <= 0 {
		return nil
	}

	stale, err := r.client.ZRange(ctx, recentKey, 0, excess-1).Result()
	if err != nil {
		return fmt.Errorf("failed to find stale results: %w", err)
	}

	pipe := r.client.TxPipeline()
	for _, id := range stale {
		pipe.Del(ctx, resultsKey(id))
		pipe.ZRem(ctx, recentKey, id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to trim results: %w", err)
	}

	return nil
}

func resultsKey(gameID string) string {
	return fmt.Sprintf("%s%s", resultsKeyPrefix, gameID)
}
