package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/shuttlehub/club-system/models"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionVersionStale = errors.New("session was modified by another writer")
	ErrLiveSessionExists   = errors.New("another session is already live")
)

// SessionRepository stores the session aggregate as a whole document. The
// version column implements optimistic concurrency: Save only succeeds when
// the caller holds the latest version, so two racing read-modify-write
// cycles cannot silently overwrite each other. A partial unique index keeps
// at most one session live at a time.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	GetLive(ctx context.Context) (*models.Session, error)
	List(ctx context.Context, limit, offset int) ([]*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) Create(ctx context.Context, s *models.Session) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session document: %w", err)
	}

	query := `
		INSERT INTO sessions (id, date, location, status, data, version)
		VALUES ($1, $2, $3, $4, $5, 1)`

	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Date, s.Location, s.Status, doc); err != nil {
		return r.handleSessionError(err)
	}
	s.Version = 1
	return nil
}

func (r *postgresSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	query := `SELECT data, version FROM sessions WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSessionRepository) GetLive(ctx context.Context) (*models.Session, error) {
	query := `SELECT data, version FROM sessions WHERE status = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, models.SessionLive))
}

func (r *postgresSessionRepository) List(ctx context.Context, limit, offset int) ([]*models.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT data, version FROM sessions ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		var doc []byte
		var version int
		if err := rows.Scan(&doc, &version); err != nil {
			return nil, err
		}
		s := &models.Session{}
		if err := json.Unmarshal(doc, s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session document: %w", err)
		}
		s.Version = version
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Save writes the full document back, bumping the version. The WHERE clause
// on the expected version is the compare-and-swap.
func (r *postgresSessionRepository) Save(ctx context.Context, s *models.Session) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session document: %w", err)
	}

	query := `
		UPDATE sessions
		SET date = $2, location = $3, status = $4, data = $5,
		    version = version + 1, updated_at = $6
		WHERE id = $1 AND version = $7`

	result, err := r.db.ExecContext(ctx, query,
		s.ID, s.Date, s.Location, s.Status, doc, time.Now().UTC(), s.Version)
	if err != nil {
		return r.handleSessionError(err)
	}
	if err := checkAffectedRows(result, ErrSessionVersionStale); err != nil {
		// Distinguish a stale version from a missing row.
		var exists bool
		if probeErr := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1)`, s.ID).Scan(&exists); probeErr == nil && !exists {
			return ErrSessionNotFound
		}
		return err
	}
	s.Version++
	return nil
}

func (r *postgresSessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresSessionRepository) scanOne(row *sql.Row) (*models.Session, error) {
	var doc []byte
	var version int
	if err := row.Scan(&doc, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	s := &models.Session{}
	if err := json.Unmarshal(doc, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session document: %w", err)
	}
	s.Version = version
	return s, nil
}

func (r *postgresSessionRepository) handleSessionError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if pqErr.Constraint == "sessions_one_live_idx" {
			return ErrLiveSessionExists
		}
	}
	return err
}
