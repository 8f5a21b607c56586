package rotation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shuttlehub/club-system/models"
)

var testNow = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

// newTestSession builds a scheduled session with n players named p1..pn.
func newTestSession(gameType models.GameType, courtCount, playerCount int) *models.Session {
	s := &models.Session{
		ID:     "test-session",
		Date:   testNow,
		Status: models.SessionScheduled,
		Config: models.SessionConfig{
			GameType:   gameType,
			CourtCount: courtCount,
		},
	}
	for i := 1; i <= playerCount; i++ {
		s.Players = append(s.Players, models.Player{
			ID:                 fmt.Sprintf("p%d", i),
			Name:               fmt.Sprintf("Player %d", i),
			SkillRating:        SessionRatingMidpoint,
			SessionSkillRating: SessionRatingMidpoint,
			IsActive:           true,
		})
	}
	return s
}

// startLive initializes the session and fails the test on error.
func startLive(t *testing.T, s *models.Session) *models.Session {
	t.Helper()
	live, err := Initialize(s, testNow)
	require.NoError(t, err)
	require.True(t, live.IsLive())
	return live
}

// assertDisjoint checks the core placement invariant: every player is on at
// most one court, and nobody is both on a court and in the waiting queue.
func assertDisjoint(t *testing.T, s *models.Session) {
	t.Helper()
	seen := map[string]int{}
	for _, c := range s.Courts {
		for _, id := range c.Players {
			seen[id]++
		}
	}
	for id, n := range seen {
		require.Equalf(t, 1, n, "player %s is on %d courts", id, n)
	}
	for _, id := range s.WaitingQueue {
		_, onCourt := seen[id]
		require.Falsef(t, onCourt, "player %s is both on a court and waiting", id)
	}
}

// completeOnCourt finishes the current match on the court with the given
// winner index and default scores.
func completeOnCourt(t *testing.T, s *models.Session, courtNumber, winnerIdx int) *CompletionResult {
	t.Helper()
	result, err := CompleteMatch(s, courtNumber, [2]int{21, 15}, winnerIdx, testNow.Add(20*time.Minute))
	require.NoError(t, err)
	return result
}
