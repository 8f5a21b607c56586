package rotation

import "errors"

// Typed failures of the rotation engine. Callers decide status codes and
// messaging; operations either fully succeed or fail before mutating the
// returned snapshot.
var (
	// Not found
	ErrCourtNotFound  = errors.New("court not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Invalid state
	ErrNoActiveMatch      = errors.New("no active match on this court")
	ErrSessionNotLive     = errors.New("session is not live")
	ErrNotEnoughPlayers   = errors.New("not enough players for this game type")
	ErrCourtOccupied      = errors.New("court has an active match")
	ErrPlayerNotOnCourt   = errors.New("player is not on this court")
	ErrOddRosterForTeams  = errors.New("round robin requires an even number of players")
	ErrBracketNotBuilt    = errors.New("tournament bracket has not been built")

	// Conflict
	ErrPlayerAlreadyPlaying = errors.New("player is already on a court")
	ErrPlayerAlreadyExists  = errors.New("player id already in roster")

	// Validation
	ErrNegativeScore      = errors.New("scores must be non-negative")
	ErrInvalidWinnerIndex = errors.New("winner team index must be 0 or 1")
	ErrUnknownGameType    = errors.New("unknown game type")
	ErrInvalidCourtCount  = errors.New("court count must be positive")
	ErrInvalidResetScope  = errors.New("reset scope must be session or historical")
)
