package services

import "errors"

// Shared service-level errors, mapped to HTTP statuses in the handlers.
var (
	// Not found
	ErrNotFound        = errors.New("requested resource not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrCourtNotFound   = errors.New("court not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrVenueNotFound   = errors.New("venue not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrUserNotFound    = errors.New("user not found")

	// Invalid state / business rules
	ErrValidationFailed     = errors.New("validation failed")
	ErrNoActiveMatch        = errors.New("no active match on this court")
	ErrSessionNotLive       = errors.New("session is not live")
	ErrSessionAlreadyLive   = errors.New("session is already live")
	ErrNotEnoughPlayers     = errors.New("not enough players for this game type")
	ErrCourtOccupied        = errors.New("court has an active match")
	ErrConfirmationRequired = errors.New("historical reset requires explicit confirmation")

	// Conflicts
	ErrSessionWriteConflict = errors.New("session was modified concurrently, retry")
	ErrLiveSessionConflict  = errors.New("another session is already live")
	ErrPlayerAlreadyPlaying = errors.New("player is already on a court")
	ErrPlayerAlreadyExists  = errors.New("player id already in roster")
	ErrUserEmailConflict    = errors.New("email address is already in use")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
)
