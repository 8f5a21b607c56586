package rotation

import (
	"time"

	"github.com/shuttlehub/club-system/models"
)

// bracketSizes are the supported tournament entry counts, largest first.
var bracketSizes = []int{64, 32, 16, 8, 4}

// tournamentSingle runs a single-elimination doubles bracket. The roster is
// trimmed down to the largest bracket size that fits; winners advance,
// losers are out for the evening.
type tournamentSingle struct{}

func (tournamentSingle) Name() string { return "SingleElimination" }

func (tournamentSingle) Initialize(s *models.Session, now time.Time) error {
	ids := activeRoster(s)

	size := 0
	for _, candidate := range bracketSizes {
		if candidate <= len(ids) {
			size = candidate
			break
		}
	}
	if size == 0 {
		return ErrNotEnoughPlayers
	}

	entrants := ids[:size]
	// Players beyond the bracket cut wait out round one.
	s.WaitingQueue = append([]string(nil), ids[size:]...)

	byID := indexPlayers(s.Players)
	teams := make([]models.Team, 0, size/2)
	for i := 0; i < size; i += 4 {
		four := [4]string{entrants[i], entrants[i+1], entrants[i+2], entrants[i+3]}
		t1, t2 := SelectTeams(four, byID, s.Config.SkillBalancing)
		teams = append(teams, t1, t2)
	}

	numFirstRound := len(teams) / 2
	rounds := 0
	for n := numFirstRound; n >= 1; n /= 2 {
		rounds++
	}

	bracket := &models.Bracket{Size: size, Rounds: rounds}
	for r := 1; r <= rounds; r++ {
		matchesInRound := numFirstRound >> (r - 1)
		for m := 1; m <= matchesInRound; m++ {
			slot := models.BracketSlot{UID: models.SlotUID(r, m), Round: r, OrderInRound: m}
			if r == 1 {
				t1 := teams[2*(m-1)]
				t2 := teams[2*m-1]
				slot.Team1 = &t1
				slot.Team2 = &t2
			}
			bracket.Slots = append(bracket.Slots, slot)
		}
	}
	s.Bracket = bracket

	for i := range s.Courts {
		slot := bracket.NextStartable()
		if slot == nil {
			break
		}
		startBracketSlot(&s.Courts[i], slot, now)
	}
	return nil
}

// Progress records the slot result, eliminates the losing pair, advances the
// winners one round and backfills the freed court with the next ready slot.
func (tournamentSingle) Progress(s *models.Session, court *models.Court, completed models.Match, now time.Time) (*models.Match, error) {
	if s.Bracket == nil || completed.BracketUID == nil {
		return nil, ErrBracketNotBuilt
	}
	slot := s.Bracket.Slot(*completed.BracketUID)
	if slot == nil {
		return nil, ErrBracketNotBuilt
	}

	winners, _ := completed.WinnerTeam()
	losers, _ := completed.LoserTeam()
	slot.WinnerTeam = &winners

	byID := indexPlayers(s.Players)
	for _, id := range losers {
		if p := byID[id]; p != nil {
			p.IsEliminated = true
		}
	}

	next, pos := s.Bracket.NextSlot(slot)
	if next == nil {
		s.Bracket.Champion = &winners
	} else if pos == 1 {
		next.Team1 = &winners
	} else {
		next.Team2 = &winners
	}

	freeCourt(court)
	if ready := s.Bracket.NextStartable(); ready != nil {
		startBracketSlot(court, ready, now)
		return court.CurrentMatch, nil
	}
	return nil, nil
}

func startBracketSlot(court *models.Court, slot *models.BracketSlot, now time.Time) {
	m := newMatch(*slot.Team1, *slot.Team2, court.Number, now)
	uid := slot.UID
	m.BracketUID = &uid
	slot.MatchID = &m.ID
	startMatchOnCourt(court, m)
}
