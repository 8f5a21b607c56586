package rotation

import (
	"time"

	"github.com/google/uuid"

	"github.com/shuttlehub/club-system/models"
)

// AssignResult reports what AutoAssign did with the snapshot it was given.
type AssignResult struct {
	Session        *models.Session
	CourtsFilled   int
	PlayersWaiting int
}

// newMatch creates an in-progress match for the two teams on a court.
func newMatch(team1, team2 models.Team, courtNumber int, now time.Time) models.Match {
	return models.Match{
		ID:          uuid.NewString(),
		Teams:       [2]models.Team{team1, team2},
		Scores:      [2]int{0, 0},
		CourtNumber: courtNumber,
		StartTime:   now,
		Status:      models.MatchInProgress,
	}
}

// startMatchOnCourt places the match and its four players on the court.
func startMatchOnCourt(court *models.Court, m models.Match) {
	ids := m.PlayerIDs()
	court.Players = ids[:]
	court.Status = models.CourtInProgress
	court.IsActive = true
	court.CurrentMatch = &m
}

// freeCourt clears the court back to the available state.
func freeCourt(court *models.Court) {
	court.Players = nil
	court.Status = models.CourtAvailable
	court.IsActive = false
	court.CurrentMatch = nil
}

// AutoAssign fills open courts from the waiting queue for partnership
// rotation sessions: the first four eligible waiting players per court, FIFO,
// teamed by the partnership selector. Other game types drive their own
// progression, so the call is a no-op for them. Filling zero courts is an
// expected steady state, not an error.
func AutoAssign(snapshot *models.Session, now time.Time) *AssignResult {
	s := snapshot.Clone()
	result := &AssignResult{Session: s}

	if s.Config.GameType != models.GameTypePartnershipRotation {
		result.PlayersWaiting = len(eligibleWaiting(s))
		return result
	}

	eligible := eligibleWaiting(s)
	for i := range s.Courts {
		court := &s.Courts[i]
		if !assignableCourt(court) || len(eligible) < 4 {
			continue
		}
		four := [4]string{eligible[0], eligible[1], eligible[2], eligible[3]}
		eligible = eligible[4:]

		byID := indexPlayers(s.Players)
		team1, team2 := SelectTeams(four, byID, s.Config.SkillBalancing)
		startMatchOnCourt(court, newMatch(team1, team2, court.Number, now))
		s.WaitingQueue = removeFromQueue(s.WaitingQueue, four[:]...)
		result.CourtsFilled++
	}

	refreshNextUp(s)
	result.PlayersWaiting = len(eligibleWaiting(s))
	return result
}

// assignableCourt reports whether auto-assign may start a match here. Paused
// and maintenance courts are skipped; an in-progress court is full by
// invariant.
func assignableCourt(c *models.Court) bool {
	if c.Status == models.CourtPaused || c.Status == models.CourtMaintenance || c.Status == models.CourtInProgress {
		return false
	}
	return len(c.Players) < 4
}
