package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shuttlehub/club-system/models"
	"github.com/shuttlehub/club-system/repositories"
)

type PostInput struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

type PostService interface {
	Create(ctx context.Context, authorID int, input PostInput) (*models.Post, error)
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context, publishedOnly bool, limit int) ([]models.Post, error)
	Update(ctx context.Context, id int, input PostInput) (*models.Post, error)
	Delete(ctx context.Context, id int) error
}

type postService struct {
	postRepo repositories.PostRepository
}

func NewPostService(postRepo repositories.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) Create(ctx context.Context, authorID int, input PostInput) (*models.Post, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: post title required", ErrValidationFailed)
	}
	post := &models.Post{
		AuthorID:  authorID,
		Title:     input.Title,
		Body:      input.Body,
		Published: input.Published,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetByID(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, publishedOnly bool, limit int) ([]models.Post, error) {
	return s.postRepo.List(ctx, publishedOnly, limit)
}

func (s *postService) Update(ctx context.Context, id int, input PostInput) (*models.Post, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: post title required", ErrValidationFailed)
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	post.Title = input.Title
	post.Body = input.Body
	post.Published = input.Published
	if err := s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id int) error {
	err := s.postRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return err
}
