package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuttlehub/club-system/models"
)

func TestCompleteMatchValidation(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypePartnershipRotation, 1, 4))

	_, err := CompleteMatch(s, 1, [2]int{-1, 21}, 1, testNow)
	assert.ErrorIs(t, err, ErrNegativeScore)

	_, err = CompleteMatch(s, 1, [2]int{21, 15}, 2, testNow)
	assert.ErrorIs(t, err, ErrInvalidWinnerIndex)

	_, err = CompleteMatch(s, 9, [2]int{21, 15}, 0, testNow)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestCompleteMatchNoActiveMatch(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypePartnershipRotation, 2, 4))
	// Court 2 never got players.
	_, err := CompleteMatch(s, 2, [2]int{21, 15}, 0, testNow)
	assert.ErrorIs(t, err, ErrNoActiveMatch)
}

func TestCompleteMatchDoesNotMutateSnapshot(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypePartnershipRotation, 1, 6))
	queueBefore := append([]string(nil), s.WaitingQueue...)

	result := completeOnCourt(t, s, 1, 0)
	require.NotNil(t, result.Session)

	assert.Empty(t, s.Matches, "input snapshot must stay untouched")
	assert.Equal(t, queueBefore, s.WaitingQueue)
	assert.Equal(t, SessionRatingMidpoint, s.Players[0].SessionSkillRating)
	assert.Len(t, result.Session.Matches, 1)
}

func TestCompleteMatchRecordsHistoryAndRatings(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypePartnershipRotation, 1, 4))
	s.Config.RatingPreset = models.RatingPresetFull

	end := testNow.Add(18 * time.Minute)
	result, err := CompleteMatch(s, 1, [2]int{21, 17}, 0, end)
	require.NoError(t, err)

	completed := result.Completed
	assert.Equal(t, models.MatchCompleted, completed.Status)
	require.NotNil(t, completed.EndTime)
	assert.Equal(t, 18*60, completed.DurationSeconds)
	assert.Equal(t, [2]int{21, 17}, completed.Scores)

	winners, ok := completed.WinnerTeam()
	require.True(t, ok)
	for _, id := range winners {
		assert.Equal(t, 525, result.Session.Player(id).SessionSkillRating)
	}
	losers, _ := completed.LoserTeam()
	for _, id := range losers {
		assert.Equal(t, 480, result.Session.Player(id).SessionSkillRating)
	}
}

func TestPartnershipProgressWinnersStayLosersRotate(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypePartnershipRotation, 1, 6))
	require.Equal(t, []string{"p5", "p6"}, s.WaitingQueue)

	result := completeOnCourt(t, s, 1, 0)
	next := result.Next
	require.NotNil(t, next, "two waiting players should trigger a follow-up match")

	winners, _ := result.Completed.WinnerTeam()
	losers, _ := result.Completed.LoserTeam()

	court := result.Session.Court(1)
	assert.Equal(t, models.CourtInProgress, court.Status)
	for _, id := range winners {
		assert.True(t, court.HasPlayer(id), "winner %s should stay on court", id)
	}
	for _, id := range []string{"p5", "p6"} {
		assert.True(t, court.HasPlayer(id), "waiting player %s should join", id)
	}
	for _, id := range losers {
		assert.False(t, court.HasPlayer(id))
		assert.True(t, result.Session.InWaitingQueue(id), "loser %s should rejoin the queue", id)
	}
	assertDisjoint(t, result.Session)
}

func TestPartnershipProgressInsufficientReplacements(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypePartnershipRotation, 1, 5))
	require.Equal(t, []string{"p5"}, s.WaitingQueue)

	result := completeOnCourt(t, s, 1, 1)
	assert.Nil(t, result.Next, "one waiting player cannot sustain a rotation")

	court := result.Session.Court(1)
	assert.True(t, court.Open())
	// All four plus the original waiter are queued; the court stays free
	// until an explicit auto-assign.
	assert.Len(t, result.Session.WaitingQueue, 5)
	assertDisjoint(t, result.Session)
}

func TestPartnershipProgressRePairsAllFour(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypePartnershipRotation, 1, 6))
	result := completeOnCourt(t, s, 1, 0)
	require.NotNil(t, result.Next)

	winners, _ := result.Completed.WinnerTeam()
	// The winning pair played together once already; the selector should
	// split them for the follow-up match.
	onSame := result.Next.Teams[0].Contains(winners[0]) && result.Next.Teams[0].Contains(winners[1]) ||
		result.Next.Teams[1].Contains(winners[0]) && result.Next.Teams[1].Contains(winners[1])
	assert.False(t, onSame, "winners should be split after partnering once")
}
