package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuttlehub/club-system/models"
)

func TestUpcomingDatesWeeklyOccurrences(t *testing.T) {
	svc := NewScheduleService(nil)

	// A Monday afternoon; club night is Thursday 19:30.
	from := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	dates, err := svc.UpcomingDates(from, ScheduleInput{
		Weekday:     time.Thursday,
		StartTime:   "19:30",
		Occurrences: 3,
	})
	require.NoError(t, err)
	require.Len(t, dates, 3)

	assert.Equal(t, time.Date(2026, 3, 5, 19, 30, 0, 0, time.UTC), dates[0])
	for i, d := range dates {
		assert.Equal(t, time.Thursday, d.Weekday())
		if i > 0 {
			assert.Equal(t, 7*24*time.Hour, d.Sub(dates[i-1]))
		}
	}
}

func TestUpcomingDatesSameDaySkipsToNextWeek(t *testing.T) {
	svc := NewScheduleService(nil)

	// Already past Thursday 19:30, so the first occurrence is next week.
	from := time.Date(2026, 3, 5, 21, 0, 0, 0, time.UTC)
	require.Equal(t, time.Thursday, from.Weekday())

	dates, err := svc.UpcomingDates(from, ScheduleInput{
		Weekday:     time.Thursday,
		StartTime:   "19:30",
		Occurrences: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 12, 19, 30, 0, 0, time.UTC), dates[0])
}

func TestUpcomingDatesValidation(t *testing.T) {
	svc := NewScheduleService(nil)
	from := time.Now()

	_, err := svc.UpcomingDates(from, ScheduleInput{Weekday: time.Monday, StartTime: "19:30", Occurrences: 0})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.UpcomingDates(from, ScheduleInput{Weekday: time.Monday, StartTime: "late", Occurrences: 2})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestCreateRecurringRequiresCourts(t *testing.T) {
	svc := NewScheduleService(nil)
	_, err := svc.CreateRecurring(context.Background(), time.Now(), ScheduleInput{
		Weekday:     time.Monday,
		StartTime:   "19:30",
		Occurrences: 2,
		Config:      models.SessionConfig{GameType: models.GameTypePartnershipRotation},
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
