package results

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/timebid/internal/repositories/results Repository

import (
	"context"

	"github.com/KirkDiggler/timebid/internal/models"
)

// Repository archives the results of finished games
type Repository interface {
	// SaveResults stores the results of a finished game
	SaveResults(ctx context.Context, input *SaveResultsInput) error

	// GetResults retrieves the results of one game
	GetResults(ctx context.Context, input *GetResultsInput) (*models.GameResults, error)

	// ListRecent returns the most recently finished games, newest first
	ListRecent(ctx context.Context, input *ListRecentInput) (*ListRecentOutput, error)
}
