package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shuttlehub/club-system/models"
)

func pairingRoster(players ...models.Player) map[string]*models.Player {
	byID := make(map[string]*models.Player, len(players))
	for i := range players {
		byID[players[i].ID] = &players[i]
	}
	return byID
}

func sameTeam(t1, t2 models.Team, a, b string) bool {
	for _, team := range []models.Team{t1, t2} {
		if team.Contains(a) && team.Contains(b) {
			return true
		}
	}
	return false
}

func TestSelectTeamsNoHistoryPicksFirstSplit(t *testing.T) {
	byID := pairingRoster(
		models.Player{ID: "a"}, models.Player{ID: "b"},
		models.Player{ID: "c"}, models.Player{ID: "d"},
	)
	team1, team2 := SelectTeams([4]string{"a", "b", "c", "d"}, byID, false)
	assert.Equal(t, models.Team{"a", "b"}, team1)
	assert.Equal(t, models.Team{"c", "d"}, team2)
}

func TestSelectTeamsAvoidsRepeatPartnership(t *testing.T) {
	// a and b already partnered; the (a,b) vs (c,d) split costs 10 and must
	// lose to a split that only repeats matchups.
	byID := pairingRoster(
		models.Player{ID: "a", PlayedWith: []string{"b"}},
		models.Player{ID: "b", PlayedWith: []string{"a"}},
		models.Player{ID: "c"},
		models.Player{ID: "d"},
	)
	team1, team2 := SelectTeams([4]string{"a", "b", "c", "d"}, byID, false)
	assert.False(t, sameTeam(team1, team2, "a", "b"), "repeat partnership was not avoided")
}

func TestSelectTeamsPartnerRepeatOutweighsOpponentRepeats(t *testing.T) {
	// Every cross pair of the second split has already met (4 points of
	// opponent conflict), still cheaper than one repeat partnership (10).
	byID := pairingRoster(
		models.Player{ID: "a", PlayedWith: []string{"b"}, PlayedAgainst: []string{"b", "d"}},
		models.Player{ID: "b", PlayedWith: []string{"a"}, PlayedAgainst: []string{"a", "c"}},
		models.Player{ID: "c", PlayedAgainst: []string{"b", "d"}},
		models.Player{ID: "d", PlayedAgainst: []string{"a", "c"}},
	)
	team1, team2 := SelectTeams([4]string{"a", "b", "c", "d"}, byID, false)
	assert.False(t, sameTeam(team1, team2, "a", "b"))
}

func TestSelectTeamsTieBreakIsFirstEnumerated(t *testing.T) {
	// All three splits carry an identical partner repeat, so the first split
	// in enumeration order wins deterministically.
	byID := pairingRoster(
		models.Player{ID: "a", PlayedWith: []string{"b", "c", "d"}},
		models.Player{ID: "b", PlayedWith: []string{"a", "c", "d"}},
		models.Player{ID: "c", PlayedWith: []string{"a", "b", "d"}},
		models.Player{ID: "d", PlayedWith: []string{"a", "b", "c"}},
	)
	team1, team2 := SelectTeams([4]string{"a", "b", "c", "d"}, byID, false)
	assert.Equal(t, models.Team{"a", "b"}, team1)
	assert.Equal(t, models.Team{"c", "d"}, team2)
}

func TestSelectTeamsBalancePrefersSmallerRatingGap(t *testing.T) {
	// No pairing history, so all splits score zero. With balancing on, the
	// split pairing 600+400 against 550+450 (gap 0) beats pairing the two
	// strongest together.
	byID := pairingRoster(
		models.Player{ID: "a", SessionSkillRating: 600},
		models.Player{ID: "b", SessionSkillRating: 550},
		models.Player{ID: "c", SessionSkillRating: 450},
		models.Player{ID: "d", SessionSkillRating: 400},
	)
	team1, team2 := SelectTeams([4]string{"a", "b", "c", "d"}, byID, true)
	assert.False(t, sameTeam(team1, team2, "a", "b"), "balance should split the two strongest")

	sum := func(team models.Team) int {
		return byID[team[0]].SessionSkillRating + byID[team[1]].SessionSkillRating
	}
	assert.Equal(t, sum(team1), sum(team2))
}

func TestSelectTeamsBalanceNeverOverridesConflictScore(t *testing.T) {
	// The perfectly balanced split repeats a partnership; the conflict score
	// still dominates the rating gap.
	byID := pairingRoster(
		models.Player{ID: "a", SessionSkillRating: 600, PlayedWith: []string{"d"}},
		models.Player{ID: "b", SessionSkillRating: 550},
		models.Player{ID: "c", SessionSkillRating: 450},
		models.Player{ID: "d", SessionSkillRating: 400, PlayedWith: []string{"a"}},
	)
	team1, team2 := SelectTeams([4]string{"a", "b", "c", "d"}, byID, true)
	assert.False(t, sameTeam(team1, team2, "a", "d"))
}
