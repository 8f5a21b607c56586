package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shuttlehub/club-system/models"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context, publishedOnly bool, limit int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int) error
}

type postgresPostRepository struct {
	db *sql.DB
}

func NewPostgresPostRepository(db *sql.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

func (r *postgresPostRepository) Create(ctx context.Context, p *models.Post) error {
	query := `
		INSERT INTO posts (author_id, title, body, published)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, p.AuthorID, p.Title, p.Body, p.Published).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	query := `
		SELECT id, author_id, title, body, published, created_at, updated_at
		FROM posts WHERE id = $1`
	p := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPostRepository) List(ctx context.Context, publishedOnly bool, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, author_id, title, body, published, created_at, updated_at
		FROM posts`
	if publishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postgresPostRepository) Update(ctx context.Context, p *models.Post) error {
	query := `
		UPDATE posts SET title = $2, body = $3, published = $4, updated_at = now()
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Body, p.Published)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPostNotFound)
}

func (r *postgresPostRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPostNotFound)
}
