package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shuttlehub/club-system/live"
	"github.com/shuttlehub/club-system/models"
	"github.com/shuttlehub/club-system/repositories"
	"github.com/shuttlehub/club-system/rotation"
)

type PlayerInput struct {
	ID          string `json:"player_id,omitempty"`
	Name        string `json:"name"`
	SkillRating int    `json:"skill_rating,omitempty"`
}

type CreateSessionInput struct {
	Date     time.Time            `json:"date"`
	Location string               `json:"location"`
	Config   models.SessionConfig `json:"config"`
	Players  []PlayerInput        `json:"players"`
}

type AutoAssignOutput struct {
	Session        *models.Session `json:"session"`
	CourtsFilled   int             `json:"courts_filled"`
	PlayersWaiting int             `json:"players_waiting"`
}

type CompleteMatchOutput struct {
	Session   *models.Session `json:"session"`
	Completed models.Match    `json:"completed_match"`
	Next      *models.Match   `json:"next_match,omitempty"`
}

// SessionService is the control surface over the rotation engine: it brackets
// every engine operation with load, per-session lock, compare-and-swap save
// and a live broadcast.
type SessionService interface {
	Create(ctx context.Context, input CreateSessionInput) (*models.Session, error)
	GetByID(ctx context.Context, id string) (*models.Session, error)
	GetLive(ctx context.Context) (*models.Session, error)
	List(ctx context.Context, limit, offset int) ([]*models.Session, error)

	Start(ctx context.Context, id string) (*models.Session, error)
	End(ctx context.Context, id string) (*models.Session, error)
	AutoAssign(ctx context.Context, id string) (*AutoAssignOutput, error)
	CompleteMatch(ctx context.Context, id string, courtNumber int, scores [2]int, winnerTeamIndex int) (*CompleteMatchOutput, error)
	SubstitutePlayer(ctx context.Context, id string, courtNumber int, playerOutID, playerInID string) (*models.Session, error)
	PausePlayer(ctx context.Context, id, playerID string) (*models.Session, error)
	ResumePlayer(ctx context.Context, id, playerID string) (*models.Session, error)
	AddPlayer(ctx context.Context, id string, input PlayerInput) (*models.Session, error)
	AddCourt(ctx context.Context, id string) (*models.Session, error)
	RemoveCourt(ctx context.Context, id string, courtNumber int) (*models.Session, error)
	ResetRatings(ctx context.Context, id string, scope rotation.ResetScope, confirmed bool) (*models.Session, error)
	Rankings(ctx context.Context, id string) ([]models.Ranking, error)
}

type sessionService struct {
	repo   repositories.SessionRepository
	hub    *live.Hub
	locker *sessionLocker
	logger *slog.Logger
	now    func() time.Time
}

func NewSessionService(repo repositories.SessionRepository, hub *live.Hub, logger *slog.Logger) SessionService {
	return &sessionService{
		repo:   repo,
		hub:    hub,
		locker: newSessionLocker(),
		logger: logger,
		now:    time.Now,
	}
}

func (s *sessionService) Create(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	if len(input.Players) == 0 {
		return nil, fmt.Errorf("%w: at least one player required", ErrValidationFailed)
	}
	if input.Config.CourtCount < 1 {
		return nil, fmt.Errorf("%w: court count must be at least 1", ErrValidationFailed)
	}
	if _, err := rotation.ForGameType(input.Config.GameType); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, input.Config.GameType)
	}

	session := &models.Session{
		ID:       uuid.NewString(),
		Date:     input.Date,
		Location: input.Location,
		Config:   input.Config,
		Status:   models.SessionScheduled,
	}
	for _, in := range input.Players {
		if in.Name == "" {
			return nil, fmt.Errorf("%w: player name required", ErrValidationFailed)
		}
		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		if session.Player(id) != nil {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrValidationFailed, id)
		}
		rating := in.SkillRating
		if rating == 0 {
			rating = rotation.SessionRatingMidpoint
		}
		session.Players = append(session.Players, models.Player{
			ID:                 id,
			Name:               in.Name,
			SkillRating:        rating,
			SessionSkillRating: rotation.SessionRatingMidpoint,
			IsActive:           true,
		})
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, mapRepositoryError(err)
	}
	s.logger.Info("session created",
		slog.String("session_id", session.ID),
		slog.String("game_type", string(session.Config.GameType)),
		slog.Int("players", len(session.Players)))
	return session, nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return session, nil
}

func (s *sessionService) GetLive(ctx context.Context) (*models.Session, error) {
	session, err := s.repo.GetLive(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return session, nil
}

func (s *sessionService) List(ctx context.Context, limit, offset int) ([]*models.Session, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *sessionService) Start(ctx context.Context, id string) (*models.Session, error) {
	return s.mutate(ctx, id, "session started", func(current *models.Session) (*models.Session, error) {
		if current.IsLive() {
			return nil, ErrSessionAlreadyLive
		}
		return rotation.Initialize(current, s.now())
	})
}

func (s *sessionService) End(ctx context.Context, id string) (*models.Session, error) {
	return s.mutate(ctx, id, "session ended", func(current *models.Session) (*models.Session, error) {
		return rotation.EndSession(current)
	})
}

// AutoAssign fills open courts from the waiting queue. When nothing could be
// filled the snapshot is returned as-is without a write, since an empty
// queue is an expected steady state.
func (s *sessionService) AutoAssign(ctx context.Context, id string) (*AutoAssignOutput, error) {
	unlock := s.locker.Lock(id)
	defer unlock()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !current.IsLive() {
		return nil, ErrSessionNotLive
	}

	result := rotation.AutoAssign(current, s.now())
	out := &AutoAssignOutput{
		Session:        result.Session,
		CourtsFilled:   result.CourtsFilled,
		PlayersWaiting: result.PlayersWaiting,
	}
	if result.CourtsFilled == 0 {
		return out, nil
	}

	if err := s.repo.Save(ctx, result.Session); err != nil {
		return nil, mapRepositoryError(err)
	}
	s.broadcast(result.Session, "SESSION_UPDATED")
	s.logger.Info("courts auto-assigned",
		slog.String("session_id", id),
		slog.Int("courts_filled", result.CourtsFilled),
		slog.Int("players_waiting", result.PlayersWaiting))
	return out, nil
}

func (s *sessionService) CompleteMatch(ctx context.Context, id string, courtNumber int, scores [2]int, winnerTeamIndex int) (*CompleteMatchOutput, error) {
	unlock := s.locker.Lock(id)
	defer unlock()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !current.IsLive() {
		return nil, ErrSessionNotLive
	}

	result, err := rotation.CompleteMatch(current, courtNumber, scores, winnerTeamIndex, s.now())
	if err != nil {
		return nil, mapEngineError(err)
	}
	if err := s.repo.Save(ctx, result.Session); err != nil {
		return nil, mapRepositoryError(err)
	}
	s.broadcast(result.Session, "MATCH_COMPLETED")
	s.logger.Info("match completed",
		slog.String("session_id", id),
		slog.Int("court", courtNumber),
		slog.String("match_id", result.Completed.ID))
	return &CompleteMatchOutput{
		Session:   result.Session,
		Completed: result.Completed,
		Next:      result.Next,
	}, nil
}

func (s *sessionService) SubstitutePlayer(ctx context.Context, id string, courtNumber int, playerOutID, playerInID string) (*models.Session, error) {
	return s.mutate(ctx, id, "player substituted", func(current *models.Session) (*models.Session, error) {
		return rotation.SubstitutePlayer(current, courtNumber, playerOutID, playerInID)
	})
}

func (s *sessionService) PausePlayer(ctx context.Context, id, playerID string) (*models.Session, error) {
	return s.mutate(ctx, id, "player paused", func(current *models.Session) (*models.Session, error) {
		return rotation.PausePlayer(current, playerID)
	})
}

func (s *sessionService) ResumePlayer(ctx context.Context, id, playerID string) (*models.Session, error) {
	return s.mutate(ctx, id, "player resumed", func(current *models.Session) (*models.Session, error) {
		return rotation.ResumePlayer(current, playerID)
	})
}

func (s *sessionService) AddPlayer(ctx context.Context, id string, input PlayerInput) (*models.Session, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: player name required", ErrValidationFailed)
	}
	playerID := input.ID
	if playerID == "" {
		playerID = uuid.NewString()
	}
	return s.mutate(ctx, id, "player added", func(current *models.Session) (*models.Session, error) {
		return rotation.AddPlayer(current, models.Player{
			ID:          playerID,
			Name:        input.Name,
			SkillRating: input.SkillRating,
		})
	})
}

func (s *sessionService) AddCourt(ctx context.Context, id string) (*models.Session, error) {
	return s.mutate(ctx, id, "court added", func(current *models.Session) (*models.Session, error) {
		return rotation.AddCourt(current)
	})
}

func (s *sessionService) RemoveCourt(ctx context.Context, id string, courtNumber int) (*models.Session, error) {
	return s.mutate(ctx, id, "court removed", func(current *models.Session) (*models.Session, error) {
		return rotation.RemoveCourt(current, courtNumber)
	})
}

// ResetRatings dispatches the two reset kinds. The historical reset wipes
// cross-session ratings and is refused without explicit confirmation.
func (s *sessionService) ResetRatings(ctx context.Context, id string, scope rotation.ResetScope, confirmed bool) (*models.Session, error) {
	if scope == rotation.ResetScopeHistorical && !confirmed {
		return nil, ErrConfirmationRequired
	}
	return s.mutate(ctx, id, "ratings reset", func(current *models.Session) (*models.Session, error) {
		return rotation.ResetRatings(current, scope)
	})
}

func (s *sessionService) Rankings(ctx context.Context, id string) ([]models.Ranking, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rotation.Rankings(session.Players), nil
}

// mutate runs one locked load-compute-save cycle and broadcasts the result.
func (s *sessionService) mutate(ctx context.Context, id, action string, op func(*models.Session) (*models.Session, error)) (*models.Session, error) {
	unlock := s.locker.Lock(id)
	defer unlock()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	next, err := op(current)
	if err != nil {
		return nil, mapEngineError(err)
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return nil, mapRepositoryError(err)
	}
	s.broadcast(next, "SESSION_UPDATED")
	s.logger.Info(action, slog.String("session_id", id))
	return next, nil
}

func (s *sessionService) broadcast(session *models.Session, eventType string) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(session.ID, live.Event{Type: eventType, Payload: session})
}

// mapEngineError translates rotation engine failures into the service error
// taxonomy the handlers know how to map to HTTP.
func mapEngineError(err error) error {
	switch {
	case errors.Is(err, rotation.ErrCourtNotFound):
		return ErrCourtNotFound
	case errors.Is(err, rotation.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, rotation.ErrNoActiveMatch):
		return ErrNoActiveMatch
	case errors.Is(err, rotation.ErrSessionNotLive):
		return ErrSessionNotLive
	case errors.Is(err, rotation.ErrNotEnoughPlayers):
		return ErrNotEnoughPlayers
	case errors.Is(err, rotation.ErrCourtOccupied):
		return ErrCourtOccupied
	case errors.Is(err, rotation.ErrPlayerAlreadyPlaying):
		return ErrPlayerAlreadyPlaying
	case errors.Is(err, rotation.ErrPlayerAlreadyExists):
		return ErrPlayerAlreadyExists
	case errors.Is(err, rotation.ErrPlayerNotOnCourt),
		errors.Is(err, rotation.ErrOddRosterForTeams),
		errors.Is(err, rotation.ErrBracketNotBuilt):
		return fmt.Errorf("%w: %s", ErrValidationFailed, err)
	case errors.Is(err, rotation.ErrNegativeScore),
		errors.Is(err, rotation.ErrInvalidWinnerIndex),
		errors.Is(err, rotation.ErrUnknownGameType),
		errors.Is(err, rotation.ErrInvalidCourtCount),
		errors.Is(err, rotation.ErrInvalidResetScope):
		return fmt.Errorf("%w: %s", ErrValidationFailed, err)
	default:
		return err
	}
}

func mapRepositoryError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, repositories.ErrSessionVersionStale):
		return ErrSessionWriteConflict
	case errors.Is(err, repositories.ErrLiveSessionExists):
		return ErrLiveSessionConflict
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrUserEmailConflict):
		return ErrUserEmailConflict
	case errors.Is(err, repositories.ErrVenueNotFound):
		return ErrVenueNotFound
	case errors.Is(err, repositories.ErrPostNotFound):
		return ErrPostNotFound
	default:
		return err
	}
}
