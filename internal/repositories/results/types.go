package results

import "github.com/KirkDiggler/timebid/internal/models"

// DefaultKeep is how many finished games are retained when no limit is configured
const DefaultKeep = 50

// RepositoryError is a custom error type for archive errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

const (
	ErrResultsNotFound RepositoryError = "results not found"
	ErrNilConfig       RepositoryError = "config cannot be nil"
	ErrNilRedisClient  RepositoryError = "redis client cannot be nil"
	ErrNilResults      RepositoryError = "input and results cannot be nil"
	ErrMissingGameID   RepositoryError = "game ID is required"
)

type SaveResultsInput struct {
	Results *models.GameResults
}

type GetResultsInput struct {
	GameID string
}

type ListRecentInput struct {
	// Limit caps the number of results; zero means everything retained
	Limit int
}

type ListRecentOutput struct {
	Results []*models.GameResults
}
