package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shuttlehub/club-system/models"
)

var ErrVenueNotFound = errors.New("venue not found")

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) Create(ctx context.Context, v *models.Venue) error {
	query := `
		INSERT INTO venues (name, address, court_count, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, v.Name, v.Address, v.CourtCount, v.Notes).
		Scan(&v.ID, &v.CreatedAt)
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `
		SELECT id, name, address, court_count, notes, photo_key, created_at
		FROM venues WHERE id = $1`
	v := &models.Venue{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&v.ID, &v.Name, &v.Address, &v.CourtCount, &v.Notes, &v.PhotoKey, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *postgresVenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	query := `
		SELECT id, name, address, court_count, notes, photo_key, created_at
		FROM venues ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.CourtCount, &v.Notes, &v.PhotoKey, &v.CreatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *postgresVenueRepository) Update(ctx context.Context, v *models.Venue) error {
	query := `
		UPDATE venues SET name = $2, address = $3, court_count = $4, notes = $5
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, v.ID, v.Name, v.Address, v.CourtCount, v.Notes)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE venues SET photo_key = $2 WHERE id = $1`, id, photoKey)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}
