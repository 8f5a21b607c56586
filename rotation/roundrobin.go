package rotation

import (
	"time"

	"github.com/google/uuid"

	"github.com/shuttlehub/club-system/models"
)

// roundRobin fixes teams up front and enumerates every team-versus-team
// pairing as a match. The first courtCount matches start immediately; the
// rest wait in the upcoming queue and fill courts as they free up. Nobody is
// eliminated and there is no rotation bias.
type roundRobin struct{}

func (roundRobin) Name() string { return "RoundRobin" }

func (roundRobin) Initialize(s *models.Session, now time.Time) error {
	ids := activeRoster(s)
	if len(ids) < 4 {
		return ErrNotEnoughPlayers
	}
	if len(ids)%2 == 1 {
		// An odd player sits out the enumeration but stays visible in the queue.
		s.WaitingQueue = append(s.WaitingQueue, ids[len(ids)-1])
		ids = ids[:len(ids)-1]
	}

	teams := make([]models.Team, 0, len(ids)/2)
	for i := 0; i < len(ids); i += 2 {
		teams = append(teams, models.Team{ids[i], ids[i+1]})
	}

	upcoming := make([]models.Match, 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			upcoming = append(upcoming, models.Match{
				ID:     uuid.NewString(),
				Teams:  [2]models.Team{teams[i], teams[j]},
				Scores: [2]int{0, 0},
				Status: models.MatchUpcoming,
			})
		}
	}

	for i := range s.Courts {
		m, ok := popStartableMatch(s, &upcoming)
		if !ok {
			break
		}
		m.CourtNumber = s.Courts[i].Number
		m.StartTime = now
		m.Status = models.MatchInProgress
		startMatchOnCourt(&s.Courts[i], m)
	}
	s.UpcomingMatches = upcoming
	return nil
}

func (roundRobin) Progress(s *models.Session, court *models.Court, completed models.Match, now time.Time) (*models.Match, error) {
	freeCourt(court)
	m, ok := popStartableMatch(s, &s.UpcomingMatches)
	if !ok {
		return nil, nil
	}
	m.CourtNumber = court.Number
	m.StartTime = now
	m.Status = models.MatchInProgress
	startMatchOnCourt(court, m)
	return court.CurrentMatch, nil
}

// popStartableMatch removes and returns the first upcoming match whose four
// players are all off-court right now.
func popStartableMatch(s *models.Session, upcoming *[]models.Match) (models.Match, bool) {
	for i := range *upcoming {
		m := (*upcoming)[i]
		ids := m.PlayerIDs()
		busy := false
		for _, id := range ids[:] {
			if s.OnAnyCourt(id) {
				busy = true
				break
			}
		}
		if busy {
			continue
		}
		*upcoming = append((*upcoming)[:i], (*upcoming)[i+1:]...)
		return m, true
	}
	return models.Match{}, false
}
