package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/shuttlehub/club-system/models"
	"github.com/shuttlehub/club-system/repositories"
)

type Dashboard struct {
	LiveSession    *models.Session   `json:"live_session,omitempty"`
	LiveRankings   []models.Ranking  `json:"live_rankings,omitempty"`
	RecentSessions []*models.Session `json:"recent_sessions"`
	Venues         []models.Venue    `json:"venues"`
	Posts          []models.Post     `json:"posts"`
}

// DashboardService aggregates the club front page in one round trip.
type DashboardService interface {
	Load(ctx context.Context) (*Dashboard, error)
}

type dashboardService struct {
	sessionService SessionService
	venueRepo      repositories.VenueRepository
	postRepo       repositories.PostRepository
}

func NewDashboardService(sessionService SessionService, venueRepo repositories.VenueRepository, postRepo repositories.PostRepository) DashboardService {
	return &dashboardService{
		sessionService: sessionService,
		venueRepo:      venueRepo,
		postRepo:       postRepo,
	}
}

func (s *dashboardService) Load(ctx context.Context) (*Dashboard, error) {
	dashboard := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		live, err := s.sessionService.GetLive(gctx)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				return nil
			}
			return err
		}
		dashboard.LiveSession = live
		dashboard.LiveRankings, err = s.sessionService.Rankings(gctx, live.ID)
		return err
	})
	g.Go(func() error {
		sessions, err := s.sessionService.List(gctx, 5, 0)
		if err != nil {
			return err
		}
		dashboard.RecentSessions = sessions
		return nil
	})
	g.Go(func() error {
		venues, err := s.venueRepo.List(gctx)
		if err != nil {
			return err
		}
		dashboard.Venues = venues
		return nil
	})
	g.Go(func() error {
		posts, err := s.postRepo.List(gctx, true, 5)
		if err != nil {
			return err
		}
		dashboard.Posts = posts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}
