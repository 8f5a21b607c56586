package rotation

import (
	"github.com/shuttlehub/club-system/models"
)

// ResetScope selects which kind of rating reset to perform.
type ResetScope string

const (
	ResetScopeSession    ResetScope = "session"
	ResetScopeHistorical ResetScope = "historical"
)

// SubstitutePlayer swaps playerOut for playerIn on the given court, both in
// the court's player list and in the running match's teams. The incoming
// player must be in the roster and off-court.
func SubstitutePlayer(snapshot *models.Session, courtNumber int, playerOutID, playerInID string) (*models.Session, error) {
	s := snapshot.Clone()
	court := s.Court(courtNumber)
	if court == nil {
		return nil, ErrCourtNotFound
	}
	if !court.HasPlayer(playerOutID) {
		return nil, ErrPlayerNotOnCourt
	}
	in := s.Player(playerInID)
	if in == nil {
		return nil, ErrPlayerNotFound
	}
	if s.OnAnyCourt(playerInID) {
		return nil, ErrPlayerAlreadyPlaying
	}

	for i, id := range court.Players {
		if id == playerOutID {
			court.Players[i] = playerInID
		}
	}
	if court.CurrentMatch != nil {
		for t := range court.CurrentMatch.Teams {
			for p := range court.CurrentMatch.Teams[t] {
				if court.CurrentMatch.Teams[t][p] == playerOutID {
					court.CurrentMatch.Teams[t][p] = playerInID
				}
			}
		}
	}

	s.WaitingQueue = removeFromQueue(s.WaitingQueue, playerInID)
	enqueueEligible(s, playerOutID)
	refreshNextUp(s)
	return s, nil
}

// PausePlayer takes the player out of rotation without removing them from
// the session. A paused player keeps their roster spot and stats.
func PausePlayer(snapshot *models.Session, playerID string) (*models.Session, error) {
	s := snapshot.Clone()
	p := s.Player(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	p.IsPaused = true
	s.WaitingQueue = removeFromQueue(s.WaitingQueue, playerID)
	refreshNextUp(s)
	return s, nil
}

// ResumePlayer puts a paused player back into rotation, re-enqueueing them at
// the waiting queue tail unless they are already on a court or queued.
func ResumePlayer(snapshot *models.Session, playerID string) (*models.Session, error) {
	s := snapshot.Clone()
	p := s.Player(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	p.IsPaused = false
	if !s.OnAnyCourt(playerID) && !s.InWaitingQueue(playerID) {
		enqueueEligible(s, playerID)
	}
	refreshNextUp(s)
	return s, nil
}

// AddPlayer registers a live-add. The newcomer joins the waiting queue tail
// when the session is running.
func AddPlayer(snapshot *models.Session, player models.Player) (*models.Session, error) {
	s := snapshot.Clone()
	if s.Player(player.ID) != nil {
		return nil, ErrPlayerAlreadyExists
	}
	player.IsActive = true
	player.IsEliminated = false
	if player.SkillRating == 0 {
		player.SkillRating = SessionRatingMidpoint
	}
	if player.SessionSkillRating == 0 {
		player.SessionSkillRating = SessionRatingMidpoint
	}
	s.Players = append(s.Players, player)
	if s.IsLive() {
		enqueueEligible(s, player.ID)
	}
	refreshNextUp(s)
	return s, nil
}

// AddCourt appends a new court in the available state.
func AddCourt(snapshot *models.Session) (*models.Session, error) {
	s := snapshot.Clone()
	highest := 0
	for i := range s.Courts {
		if s.Courts[i].Number > highest {
			highest = s.Courts[i].Number
		}
	}
	s.Courts = append(s.Courts, models.Court{Number: highest + 1, Status: models.CourtAvailable})
	s.Config.CourtCount = len(s.Courts)
	return s, nil
}

// RemoveCourt deletes an empty court. A court with players must finish or be
// cleared first.
func RemoveCourt(snapshot *models.Session, courtNumber int) (*models.Session, error) {
	s := snapshot.Clone()
	court := s.Court(courtNumber)
	if court == nil {
		return nil, ErrCourtNotFound
	}
	if len(court.Players) > 0 || court.CurrentMatch != nil {
		return nil, ErrCourtOccupied
	}
	for i := range s.Courts {
		if s.Courts[i].Number == courtNumber {
			s.Courts = append(s.Courts[:i], s.Courts[i+1:]...)
			break
		}
	}
	s.Config.CourtCount = len(s.Courts)
	return s, nil
}

// ResetRatings applies one of the two reset kinds. The historical reset
// destroys cross-session data; the boundary asks for confirmation before
// calling it.
func ResetRatings(snapshot *models.Session, scope ResetScope) (*models.Session, error) {
	s := snapshot.Clone()
	switch scope {
	case ResetScopeSession:
		ResetSessionStats(s.Players)
	case ResetScopeHistorical:
		ResetHistoricalRatings(s.Players)
	default:
		return nil, ErrInvalidResetScope
	}
	return s, nil
}

// EndSession closes the session and folds each player's session performance
// into their historical rating (midpoint blend, clamped to the rating range).
func EndSession(snapshot *models.Session) (*models.Session, error) {
	s := snapshot.Clone()
	if !s.IsLive() {
		return nil, ErrSessionNotLive
	}
	for i := range s.Players {
		p := &s.Players[i]
		p.SkillRating = clampRating((p.SkillRating+p.SessionSkillRating)/2, RatingFloor)
	}
	s.Status = models.SessionCompleted
	return s, nil
}

// enqueueEligible appends the given players to the waiting queue tail,
// skipping anyone paused, inactive or eliminated so the queue only ever
// holds assignable players.
func enqueueEligible(s *models.Session, ids ...string) {
	for _, id := range ids {
		if p := s.Player(id); p != nil && p.Eligible() && !s.OnAnyCourt(id) {
			s.WaitingQueue = appendUnique(s.WaitingQueue, id)
		}
	}
}
