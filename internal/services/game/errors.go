package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig           GameError = "config cannot be nil"
	ErrNilClock            GameError = "clock cannot be nil"
	ErrNilIDGenerator      GameError = "id generator cannot be nil"
	ErrNilInput            GameError = "input cannot be nil"
	ErrNoGame              GameError = "no game in progress"
	ErrParticipantNotFound GameError = "participant not found"
	ErrInvalidParticipant  GameError = "participant id is required"
	ErrInvalidName         GameError = "name is required"
	ErrInvalidRole         GameError = "invalid role"
	ErrInvalidSettings     GameError = "settings out of range"
	ErrNotHost             GameError = "only the host can do that"
	ErrNotAPlayer          GameError = "only players can do that"
	ErrInvalidGameState    GameError = "invalid game state"
	ErrInvalidRoundPhase   GameError = "not allowed in this phase of the round"
	ErrSettingsLocked      GameError = "settings cannot change once the game has started"
	ErrNotEnoughPlayers    GameError = "at least two players are required"
	ErrPlayersNotReady     GameError = "all players must be ready"
	ErrNotBidding          GameError = "participant is not bidding"
	ErrGaveUp              GameError = "participant already gave up this round"
	ErrOutOfTime           GameError = "no time left"
)
