package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuttlehub/club-system/models"
)

func TestRoundRobinInitializeEnumeratesAllPairings(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypeRoundRobin, 1, 8))

	// 8 players form 4 fixed teams, giving C(4,2)=6 matches. One runs on the
	// court, five wait.
	require.NotNil(t, s.Court(1).CurrentMatch)
	assert.Len(t, s.UpcomingMatches, 5)
	for _, m := range s.UpcomingMatches {
		assert.Equal(t, models.MatchUpcoming, m.Status)
	}
	assert.Empty(t, s.WaitingQueue)
}

func TestRoundRobinTeamsAreConsecutivePairs(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypeRoundRobin, 1, 6))

	wantTeams := []models.Team{{"p1", "p2"}, {"p3", "p4"}, {"p5", "p6"}}
	seen := map[models.Team]bool{}
	collect := func(m models.Match) {
		seen[m.Teams[0]] = true
		seen[m.Teams[1]] = true
	}
	collect(*s.Court(1).CurrentMatch)
	for _, m := range s.UpcomingMatches {
		collect(m)
	}
	for _, team := range wantTeams {
		assert.Truef(t, seen[team], "expected fixed team %v", team)
	}
	assert.Len(t, seen, 3, "teams must stay fixed for the whole session")
}

func TestRoundRobinOddPlayerSitsOut(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypeRoundRobin, 1, 7))
	assert.Equal(t, []string{"p7"}, s.WaitingQueue)
	assert.Len(t, s.UpcomingMatches, 2) // 3 teams, one match running
}

func TestRoundRobinInitializeNotEnoughPlayers(t *testing.T) {
	s := newTestSession(models.GameTypeRoundRobin, 1, 3)
	_, err := Initialize(s, testNow)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func TestRoundRobinProgressStartsNextStartableMatch(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypeRoundRobin, 1, 8))

	played := 1
	for {
		result := completeOnCourt(t, s, 1, 0)
		s = result.Session
		if result.Next == nil {
			break
		}
		played++
		// The next match only involves players who are off-court.
		ids := result.Next.PlayerIDs()
		court := s.Court(1)
		for _, id := range ids {
			assert.True(t, court.HasPlayer(id))
		}
		assertDisjoint(t, s)
	}

	assert.Equal(t, 6, played, "all enumerated matches should eventually run")
	assert.Empty(t, s.UpcomingMatches)
	assert.Len(t, s.Matches, 6)
}

func TestRoundRobinProgressSkipsMatchesWithBusyPlayers(t *testing.T) {
	s := startLive(t, newTestSession(models.GameTypeRoundRobin, 2, 8))
	// Courts 1 and 2 run (t1 v t2) and (t3 v t4). After court 1 finishes,
	// every remaining pairing involves t3 or t4, still busy on court 2, so
	// court 1 has to idle.
	result := completeOnCourt(t, s, 1, 0)
	assert.Nil(t, result.Next)
	assert.True(t, result.Session.Court(1).Open())
	s = result.Session

	// Court 2 finishing frees t3 and t4; a cross pairing can start.
	result = completeOnCourt(t, s, 2, 0)
	require.NotNil(t, result.Next)
	for _, id := range result.Next.PlayerIDs() {
		assert.False(t, result.Session.Court(1).HasPlayer(id))
	}
	assertDisjoint(t, result.Session)
}
