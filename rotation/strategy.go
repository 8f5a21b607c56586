package rotation

import (
	"time"

	"github.com/shuttlehub/club-system/models"
)

// Strategy parameterizes session initialization and post-match progression
// per game type. The set is closed: adding a game type means adding an
// implementation here, not another switch arm at call sites.
type Strategy interface {
	Name() string

	// Initialize lays out the courts, waiting queue and any mode-specific
	// structures for a fresh roster.
	Initialize(s *models.Session, now time.Time) error

	// Progress decides the court's next state after its match completed and
	// returns the follow-up match started on it, if any.
	Progress(s *models.Session, court *models.Court, completed models.Match, now time.Time) (*models.Match, error)
}

// ForGameType resolves the strategy for a configured game type.
func ForGameType(gt models.GameType) (Strategy, error) {
	switch gt {
	case models.GameTypePartnershipRotation:
		return partnershipRotation{}, nil
	case models.GameTypeTournamentSingle:
		return tournamentSingle{}, nil
	case models.GameTypeRoundRobin:
		return roundRobin{}, nil
	case models.GameTypePegSystem:
		return pegSystem{}, nil
	default:
		return nil, ErrUnknownGameType
	}
}

// Initialize builds the initial court assignments and waiting queue for the
// session's configured game type and marks the session live.
func Initialize(snapshot *models.Session, now time.Time) (*models.Session, error) {
	if snapshot.Config.CourtCount < 1 {
		return nil, ErrInvalidCourtCount
	}
	strategy, err := ForGameType(snapshot.Config.GameType)
	if err != nil {
		return nil, err
	}

	s := snapshot.Clone()
	s.Courts = make([]models.Court, s.Config.CourtCount)
	for i := range s.Courts {
		s.Courts[i] = models.Court{Number: i + 1, Status: models.CourtAvailable}
	}
	s.WaitingQueue = nil
	s.NextUpQueue = nil
	s.Matches = nil
	s.Bracket = nil
	s.UpcomingMatches = nil
	s.CourtQueues = nil
	for i := range s.Players {
		s.Players[i].SessionSkillRating = SessionRatingMidpoint
		s.Players[i].IsEliminated = false
	}

	if err := strategy.Initialize(s, now); err != nil {
		return nil, err
	}
	s.Status = models.SessionLive
	refreshNextUp(s)
	return s, nil
}

// activeRoster returns the ids of eligible players in roster order.
func activeRoster(s *models.Session) []string {
	ids := make([]string, 0, len(s.Players))
	for i := range s.Players {
		if s.Players[i].Eligible() {
			ids = append(ids, s.Players[i].ID)
		}
	}
	return ids
}

// partnershipRotation is the default club night mode: courts fill greedily,
// winners stay on, losers rotate through the waiting queue.
type partnershipRotation struct{}

func (partnershipRotation) Name() string { return "PartnershipRotation" }

func (partnershipRotation) Initialize(s *models.Session, now time.Time) error {
	ids := activeRoster(s)
	byID := indexPlayers(s.Players)

	for i := range s.Courts {
		if len(ids) < 4 {
			break
		}
		four := [4]string{ids[0], ids[1], ids[2], ids[3]}
		ids = ids[4:]
		team1, team2 := SelectTeams(four, byID, s.Config.SkillBalancing)
		startMatchOnCourt(&s.Courts[i], newMatch(team1, team2, s.Courts[i].Number, now))
	}
	s.WaitingQueue = ids
	return nil
}

// Progress keeps the winners on court. With at least two players waiting the
// next two join and all four are re-paired; otherwise the court frees up and
// everyone rejoins the queue.
func (partnershipRotation) Progress(s *models.Session, court *models.Court, completed models.Match, now time.Time) (*models.Match, error) {
	winners, _ := completed.WinnerTeam()
	losers, _ := completed.LoserTeam()

	eligible := eligibleWaiting(s)
	if len(eligible) < 2 {
		freeCourt(court)
		enqueueEligible(s, winners[0], winners[1], losers[0], losers[1])
		return nil, nil
	}

	incoming := [2]string{eligible[0], eligible[1]}
	s.WaitingQueue = removeFromQueue(s.WaitingQueue, incoming[0], incoming[1])

	four := [4]string{winners[0], winners[1], incoming[0], incoming[1]}
	byID := indexPlayers(s.Players)
	team1, team2 := SelectTeams(four, byID, s.Config.SkillBalancing)
	startMatchOnCourt(court, newMatch(team1, team2, court.Number, now))
	enqueueEligible(s, losers[0], losers[1])
	return court.CurrentMatch, nil
}
