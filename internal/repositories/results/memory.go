package results

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/timebid/internal/models"
)

// memoryRepository keeps results in process memory when Redis is not configured
type memoryRepository struct {
	mu      sync.RWMutex
	keep    int
	results map[string]*models.GameResults
}

// NewMemory creates an in-process results repository retaining at most keep games
func NewMemory(keep int) *memoryRepository {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &memoryRepository{
		keep:    keep,
		results: make(map[string]*models.GameResults),
	}
}

func (m *memoryRepository) SaveResults(ctx context.Context, input *SaveResultsInput) error {
	if input == nil || input.Results == nil {
		return ErrNilResults
	}
	if input.Results.GameID == "" {
		return ErrMissingGameID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[input.Results.GameID] = input.Results

	if excess := len(m.results) - m.keep; excess > 0 {
		for _, old := range m.sortedLocked()[m.keep:] {
			delete(m.results, old.GameID)
		}
	}

	return nil
}

func (m *memoryRepository) GetResults(ctx context.Context, input *GetResultsInput) (*models.GameResults, error) {
	if input == nil || input.GameID == "" {
		return nil, ErrMissingGameID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results, ok := m.results[input.GameID]
	if !ok {
		return nil, ErrResultsNotFound
	}
	return results, nil
}

func (m *memoryRepository) ListRecent(ctx context.Context, input *ListRecentInput) (*ListRecentOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sorted := m.sortedLocked()
	if input != nil && input.Limit > 0 && input.Limit < len(sorted) {
		sorted = sorted[:input.Limit]
	}

	return &ListRecentOutput{Results: sorted}, nil
}

// sortedLocked returns results newest first
func (m *memoryRepository) sortedLocked() []*models.GameResults {
	sorted := make([]*models.GameResults, 0, len(m.results))
	for _, r := range m.results {
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EndedAt.After(sorted[j].EndedAt)
	})
	return sorted
}
