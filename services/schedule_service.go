package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shuttlehub/club-system/models"
	"github.com/shuttlehub/club-system/repositories"
)

const maxScheduledOccurrences = 52

type ScheduleInput struct {
	Weekday     time.Weekday         `json:"weekday"`
	StartTime   string               `json:"start_time"` // "19:30"
	Location    string               `json:"location"`
	Occurrences int                  `json:"occurrences"`
	Config      models.SessionConfig `json:"config"`
}

// ScheduleService creates the recurring club-night sessions in advance so
// organizers only fill in the roster on the day.
type ScheduleService interface {
	UpcomingDates(from time.Time, input ScheduleInput) ([]time.Time, error)
	CreateRecurring(ctx context.Context, from time.Time, input ScheduleInput) ([]*models.Session, error)
}

type scheduleService struct {
	sessionRepo repositories.SessionRepository
}

func NewScheduleService(sessionRepo repositories.SessionRepository) ScheduleService {
	return &scheduleService{sessionRepo: sessionRepo}
}

// UpcomingDates lists the next occurrence dates without creating anything.
func (s *scheduleService) UpcomingDates(from time.Time, input ScheduleInput) ([]time.Time, error) {
	if input.Occurrences < 1 || input.Occurrences > maxScheduledOccurrences {
		return nil, fmt.Errorf("%w: occurrences must be between 1 and %d", ErrValidationFailed, maxScheduledOccurrences)
	}
	hour, minute, err := parseClock(input.StartTime)
	if err != nil {
		return nil, err
	}

	first := from
	for first.Weekday() != input.Weekday {
		first = first.AddDate(0, 0, 1)
	}
	first = time.Date(first.Year(), first.Month(), first.Day(), hour, minute, 0, 0, from.Location())
	if !first.After(from) {
		first = first.AddDate(0, 0, 7)
	}

	dates := make([]time.Time, 0, input.Occurrences)
	for i := 0; i < input.Occurrences; i++ {
		dates = append(dates, first.AddDate(0, 0, 7*i))
	}
	return dates, nil
}

func (s *scheduleService) CreateRecurring(ctx context.Context, from time.Time, input ScheduleInput) ([]*models.Session, error) {
	if input.Config.CourtCount < 1 {
		return nil, fmt.Errorf("%w: court count must be at least 1", ErrValidationFailed)
	}
	dates, err := s.UpcomingDates(from, input)
	if err != nil {
		return nil, err
	}

	sessions := make([]*models.Session, 0, len(dates))
	for _, date := range dates {
		session := &models.Session{
			ID:       uuid.NewString(),
			Date:     date,
			Location: input.Location,
			Config:   input.Config,
			Status:   models.SessionScheduled,
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return sessions, mapRepositoryError(err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func parseClock(value string) (hour, minute int, err error) {
	t, parseErr := time.Parse("15:04", value)
	if parseErr != nil {
		return 0, 0, fmt.Errorf("%w: start_time must be HH:MM", ErrValidationFailed)
	}
	return t.Hour(), t.Minute(), nil
}
