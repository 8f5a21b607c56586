package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuttlehub/club-system/models"
	"github.com/shuttlehub/club-system/repositories"
	"github.com/shuttlehub/club-system/rotation"
)

// fakeSessionRepository keeps sessions in memory and mimics the version
// compare-and-swap of the real repository.
type fakeSessionRepository struct {
	sessions map[string]*models.Session
	saveErr  error
	saves    int
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepository) Create(ctx context.Context, s *models.Session) error {
	for _, existing := range r.sessions {
		if existing.IsLive() && s.IsLive() {
			return repositories.ErrLiveSessionExists
		}
	}
	s.Version = 1
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *fakeSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (r *fakeSessionRepository) GetLive(ctx context.Context) (*models.Session, error) {
	for _, s := range r.sessions {
		if s.IsLive() {
			return s.Clone(), nil
		}
	}
	return nil, repositories.ErrSessionNotFound
}

func (r *fakeSessionRepository) List(ctx context.Context, limit, offset int) ([]*models.Session, error) {
	out := make([]*models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (r *fakeSessionRepository) Save(ctx context.Context, s *models.Session) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	current, ok := r.sessions[s.ID]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	if current.Version != s.Version {
		return repositories.ErrSessionVersionStale
	}
	s.Version++
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *fakeSessionRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return repositories.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCreateInput(playerCount int) CreateSessionInput {
	input := CreateSessionInput{
		Date:     time.Date(2026, 3, 5, 19, 30, 0, 0, time.UTC),
		Location: "Main Hall",
		Config: models.SessionConfig{
			GameType:   models.GameTypePartnershipRotation,
			CourtCount: 1,
		},
	}
	for i := 1; i <= playerCount; i++ {
		input.Players = append(input.Players, PlayerInput{Name: "Player"})
	}
	return input
}

func TestSessionServiceCreateValidates(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepository(), nil, testLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSessionInput{})
	assert.ErrorIs(t, err, ErrValidationFailed)

	input := testCreateInput(4)
	input.Config.GameType = models.GameType("bocce")
	_, err = svc.Create(ctx, input)
	assert.ErrorIs(t, err, ErrValidationFailed)

	session, err := svc.Create(ctx, testCreateInput(5))
	require.NoError(t, err)
	assert.Equal(t, models.SessionScheduled, session.Status)
	assert.Len(t, session.Players, 5)
	for _, p := range session.Players {
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, rotation.SessionRatingMidpoint, p.SkillRating)
	}
}

func TestSessionServiceStartAndCompleteFlow(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := NewSessionService(repo, nil, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, testCreateInput(6))
	require.NoError(t, err)

	live, err := svc.Start(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, live.IsLive())

	_, err = svc.Start(ctx, created.ID)
	assert.ErrorIs(t, err, ErrSessionAlreadyLive)

	result, err := svc.CompleteMatch(ctx, created.ID, 1, [2]int{21, 16}, 0)
	require.NoError(t, err)
	assert.Equal(t, models.MatchCompleted, result.Completed.Status)

	stored, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Matches, 1, "completion must be persisted")

	rankings, err := svc.Rankings(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, rankings, 4)
}

func TestSessionServiceMapsRepositoryErrors(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := NewSessionService(repo, nil, testLogger())
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	created, err := svc.Create(ctx, testCreateInput(4))
	require.NoError(t, err)

	repo.saveErr = repositories.ErrSessionVersionStale
	_, err = svc.Start(ctx, created.ID)
	assert.ErrorIs(t, err, ErrSessionWriteConflict)

	repo.saveErr = repositories.ErrLiveSessionExists
	_, err = svc.Start(ctx, created.ID)
	assert.ErrorIs(t, err, ErrLiveSessionConflict)
}

func TestSessionServiceMapsEngineErrors(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := NewSessionService(repo, nil, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, testCreateInput(6))
	require.NoError(t, err)

	_, err = svc.CompleteMatch(ctx, created.ID, 1, [2]int{21, 16}, 0)
	assert.ErrorIs(t, err, ErrSessionNotLive)

	_, err = svc.Start(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.CompleteMatch(ctx, created.ID, 42, [2]int{21, 16}, 0)
	assert.ErrorIs(t, err, ErrCourtNotFound)

	_, err = svc.CompleteMatch(ctx, created.ID, 1, [2]int{21, 16}, 7)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestSessionServiceAutoAssignNoOpSkipsSave(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := NewSessionService(repo, nil, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, testCreateInput(4))
	require.NoError(t, err)
	_, err = svc.Start(ctx, created.ID)
	require.NoError(t, err)

	savesBefore := repo.saves
	out, err := svc.AutoAssign(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, out.CourtsFilled)
	assert.Equal(t, savesBefore, repo.saves, "a no-op assignment must not write")
}

func TestSessionServiceHistoricalResetRequiresConfirmation(t *testing.T) {
	repo := newFakeSessionRepository()
	svc := NewSessionService(repo, nil, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, testCreateInput(4))
	require.NoError(t, err)

	_, err = svc.ResetRatings(ctx, created.ID, rotation.ResetScopeHistorical, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	_, err = svc.ResetRatings(ctx, created.ID, rotation.ResetScopeHistorical, true)
	assert.NoError(t, err)

	// Session-scope resets never need confirmation.
	_, err = svc.ResetRatings(ctx, created.ID, rotation.ResetScopeSession, false)
	assert.NoError(t, err)
}
