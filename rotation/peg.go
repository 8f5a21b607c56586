package rotation

import (
	"sort"
	"time"

	"github.com/shuttlehub/club-system/models"
)

// pegSystem is the ladder mode: court 1 holds the strongest group, winners
// climb toward it and losers slide down. Courts re-form from per-court entry
// lists; the lowest court tops up from the waiting queue, which is also where
// its losers land, so newcomers enter at the bottom of the ladder.
type pegSystem struct{}

func (pegSystem) Name() string { return "PegSystem" }

func (pegSystem) Initialize(s *models.Session, now time.Time) error {
	ids := activeRoster(s)
	byID := indexPlayers(s.Players)
	sortByRating(ids, byID)

	s.CourtQueues = make(map[int][]string)
	for i := range s.Courts {
		if len(ids) < 4 {
			break
		}
		four := [4]string{ids[0], ids[1], ids[2], ids[3]}
		ids = ids[4:]
		team1, team2 := pegSplit(four, s.Config.PegMode)
		startMatchOnCourt(&s.Courts[i], newMatch(team1, team2, s.Courts[i].Number, now))
	}
	s.WaitingQueue = ids
	return nil
}

func (pegSystem) Progress(s *models.Session, court *models.Court, completed models.Match, now time.Time) (*models.Match, error) {
	if s.CourtQueues == nil {
		s.CourtQueues = make(map[int][]string)
	}
	winners, _ := completed.WinnerTeam()
	losers, _ := completed.LoserTeam()
	freeCourt(court)

	// Winners move up one court level; at the top they defend court 1.
	up := court.Number - 1
	if up < 1 {
		up = 1
	}
	s.CourtQueues[up] = appendUnique(s.CourtQueues[up], winners[0], winners[1])

	// Losers move down one level; off the bottom they rejoin the queue.
	down := court.Number + 1
	if down > len(s.Courts) {
		enqueueEligible(s, losers[0], losers[1])
	} else {
		s.CourtQueues[down] = appendUnique(s.CourtQueues[down], losers[0], losers[1])
	}

	var restarted *models.Match
	byID := indexPlayers(s.Players)
	lowest := len(s.Courts)
	for i := range s.Courts {
		c := &s.Courts[i]
		if !c.Open() {
			continue
		}
		entrants := s.CourtQueues[c.Number]
		// Drop entrants that paused or left while waiting at this court.
		kept := entrants[:0]
		for _, id := range entrants {
			if p := s.Player(id); p != nil && p.Eligible() {
				kept = append(kept, id)
			}
		}
		entrants = kept
		s.CourtQueues[c.Number] = entrants
		if c.Number == lowest && len(entrants) < 4 {
			// Top up the bottom court from the waiting queue.
			need := 4 - len(entrants)
			waiting := eligibleWaiting(s)
			if len(waiting) < need {
				continue
			}
			pulled := waiting[:need]
			s.WaitingQueue = removeFromQueue(s.WaitingQueue, pulled...)
			entrants = append(entrants, pulled...)
		}
		if len(entrants) < 4 {
			continue
		}

		four := [4]string{entrants[0], entrants[1], entrants[2], entrants[3]}
		s.CourtQueues[c.Number] = entrants[4:]
		sortByRating(four[:], byID)
		team1, team2 := pegSplit(four, s.Config.PegMode)
		startMatchOnCourt(c, newMatch(team1, team2, c.Number, now))
		if c.Number == court.Number {
			restarted = c.CurrentMatch
		}
	}
	return restarted, nil
}

// sortByRating orders ids by session rating descending, stable so equal
// ratings keep their existing order.
func sortByRating(ids []string, byID map[string]*models.Player) {
	sort.SliceStable(ids, func(i, j int) bool {
		var ri, rj int
		if p := byID[ids[i]]; p != nil {
			ri = p.SessionSkillRating
		}
		if p := byID[ids[j]]; p != nil {
			rj = p.SessionSkillRating
		}
		return ri > rj
	})
}

// pegSplit teams up four rating-sorted players per the configured sub-mode:
// balanced_teams pairs best+3rd against 2nd+4th, skill_based_courts pairs
// best+worst against 2nd+3rd.
func pegSplit(four [4]string, mode models.PegMode) (models.Team, models.Team) {
	if mode == models.PegSkillBasedCourts {
		return models.Team{four[0], four[3]}, models.Team{four[1], four[2]}
	}
	return models.Team{four[0], four[2]}, models.Team{four[1], four[3]}
}
