package rotation

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/shuttlehub/club-system/models"
)

const (
	partnerRepeatPenalty  = 10
	opponentRepeatPenalty = 1
)

// The three ways to split four players (by index) into two unordered teams.
var teamSplits = [3][2][2]int{
	{{0, 1}, {2, 3}},
	{{0, 2}, {1, 3}},
	{{0, 3}, {1, 2}},
}

type pairingHistory struct {
	with    mapset.Set[string]
	against mapset.Set[string]
	rating  int
}

// SelectTeams splits exactly four players into the two teams with the fewest
// pairing conflicts. Re-partnering weighs far heavier than a repeat matchup,
// so stale partnerships are broken up first. Ties resolve to the first
// enumerated split; with balance set, tied splits prefer the smaller rating
// gap between teams.
func SelectTeams(ids [4]string, byID map[string]*models.Player, balance bool) (models.Team, models.Team) {
	hist := make([]pairingHistory, 4)
	for i, id := range ids {
		h := pairingHistory{
			with:    mapset.NewThreadUnsafeSet[string](),
			against: mapset.NewThreadUnsafeSet[string](),
		}
		if p := byID[id]; p != nil {
			h.with.Append(p.PlayedWith...)
			h.against.Append(p.PlayedAgainst...)
			h.rating = p.SessionSkillRating
		}
		hist[i] = h
	}

	best := 0
	bestScore := -1
	bestGap := 0
	for si, split := range teamSplits {
		score := conflictScore(ids, hist, split)
		gap := ratingGap(hist, split)
		if bestScore < 0 || score < bestScore || (balance && score == bestScore && gap < bestGap) {
			best = si
			bestScore = score
			bestGap = gap
		}
	}

	chosen := teamSplits[best]
	team1 := models.Team{ids[chosen[0][0]], ids[chosen[0][1]]}
	team2 := models.Team{ids[chosen[1][0]], ids[chosen[1][1]]}
	return team1, team2
}

// conflictScore charges 10 per team whose members have partnered before and
// 1 per cross-team pair that has already met.
func conflictScore(ids [4]string, hist []pairingHistory, split [2][2]int) int {
	score := 0
	for _, team := range split {
		if hist[team[0]].with.Contains(ids[team[1]]) || hist[team[1]].with.Contains(ids[team[0]]) {
			score += partnerRepeatPenalty
		}
	}
	for _, a := range split[0] {
		for _, b := range split[1] {
			if hist[a].against.Contains(ids[b]) || hist[b].against.Contains(ids[a]) {
				score += opponentRepeatPenalty
			}
		}
	}
	return score
}

func ratingGap(hist []pairingHistory, split [2][2]int) int {
	t1 := hist[split[0][0]].rating + hist[split[0][1]].rating
	t2 := hist[split[1][0]].rating + hist[split[1][1]].rating
	if t1 > t2 {
		return t1 - t2
	}
	return t2 - t1
}
