package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator hands out opaque identifiers for connections and games
type Generator interface {
	NewID() string
}

// UUIDGenerator issues random v4 UUIDs
type UUIDGenerator struct{}

func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a new UUID string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Sequence issues predictable identifiers like "p-1", "p-2".
// Handy in tests where assertions need to name participants.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, s.next)
}
