package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuttlehub/club-system/models"
)

func ratedPlayers(ratings ...int) []models.Player {
	players := make([]models.Player, len(ratings))
	for i, r := range ratings {
		players[i] = models.Player{
			ID:                 string(rune('a' + i)),
			SessionSkillRating: r,
			IsActive:           true,
		}
	}
	return players
}

func completedMatch(winnerIdx int, scores [2]int) models.Match {
	return models.Match{
		Teams:           [2]models.Team{{"a", "b"}, {"c", "d"}},
		Scores:          scores,
		WinnerTeamIndex: &winnerIdx,
		Status:          models.MatchCompleted,
	}
}

func TestApplyMatchResultFullPreset(t *testing.T) {
	players := ratedPlayers(500, 500, 500, 500)
	ApplyMatchResult(players, completedMatch(0, [2]int{21, 15}), FullDelta)

	for _, i := range []int{0, 1} {
		assert.Equal(t, 525, players[i].SessionSkillRating)
		assert.Equal(t, 1, players[i].Wins)
		assert.Equal(t, 21, players[i].PointsFor)
		assert.Equal(t, 15, players[i].PointsAgainst)
	}
	for _, i := range []int{2, 3} {
		assert.Equal(t, 480, players[i].SessionSkillRating)
		assert.Equal(t, 1, players[i].Losses)
		assert.Equal(t, 15, players[i].PointsFor)
		assert.Equal(t, 21, players[i].PointsAgainst)
	}
}

func TestApplyMatchResultLightweightPreset(t *testing.T) {
	players := ratedPlayers(500, 500, 500, 500)
	ApplyMatchResult(players, completedMatch(1, [2]int{10, 21}), LightweightDelta)

	assert.Equal(t, 495, players[0].SessionSkillRating)
	assert.Equal(t, 495, players[1].SessionSkillRating)
	assert.Equal(t, 510, players[2].SessionSkillRating)
	assert.Equal(t, 510, players[3].SessionSkillRating)
}

func TestApplyMatchResultClampsAtCeiling(t *testing.T) {
	players := ratedPlayers(990, 990, 500, 500)
	ApplyMatchResult(players, completedMatch(0, [2]int{21, 15}), FullDelta)
	assert.Equal(t, RatingCeiling, players[0].SessionSkillRating)
	assert.Equal(t, RatingCeiling, players[1].SessionSkillRating)
}

func TestApplyMatchResultClampsAtPresetFloor(t *testing.T) {
	players := ratedPlayers(500, 500, 405, 405)
	ApplyMatchResult(players, completedMatch(0, [2]int{21, 15}), FullDelta)
	assert.Equal(t, 400, players[2].SessionSkillRating)
	assert.Equal(t, 400, players[3].SessionSkillRating)

	players = ratedPlayers(500, 500, 3, 3)
	ApplyMatchResult(players, completedMatch(0, [2]int{21, 15}), LightweightDelta)
	assert.Equal(t, 0, players[2].SessionSkillRating)
	assert.Equal(t, 0, players[3].SessionSkillRating)
}

func TestApplyMatchResultRecordsHistory(t *testing.T) {
	players := ratedPlayers(500, 500, 500, 500)
	ApplyMatchResult(players, completedMatch(0, [2]int{21, 15}), LightweightDelta)

	assert.Equal(t, []string{"b"}, players[0].PlayedWith)
	assert.ElementsMatch(t, []string{"c", "d"}, players[0].PlayedAgainst)
	assert.Equal(t, []string{"d"}, players[2].PlayedWith)
	assert.ElementsMatch(t, []string{"a", "b"}, players[2].PlayedAgainst)

	// Replaying the same matchup must not duplicate history entries.
	ApplyMatchResult(players, completedMatch(0, [2]int{21, 18}), LightweightDelta)
	assert.Equal(t, []string{"b"}, players[0].PlayedWith)
	assert.Len(t, players[0].PlayedAgainst, 2)
}

func TestApplyMatchResultIgnoresMatchWithoutWinner(t *testing.T) {
	players := ratedPlayers(500, 500, 500, 500)
	m := completedMatch(0, [2]int{21, 15})
	m.WinnerTeamIndex = nil
	ApplyMatchResult(players, m, FullDelta)
	for i := range players {
		assert.Equal(t, 500, players[i].SessionSkillRating)
		assert.Zero(t, players[i].GamesPlayed())
	}
}

func TestRankingsOrderingAndIdempotence(t *testing.T) {
	players := []models.Player{
		{ID: "a", Name: "A", Wins: 2, Losses: 0, PointsFor: 42, PointsAgainst: 30},
		{ID: "b", Name: "B", Wins: 1, Losses: 1, PointsFor: 40, PointsAgainst: 36},
		{ID: "c", Name: "C", Wins: 1, Losses: 1, PointsFor: 38, PointsAgainst: 34},
		{ID: "d", Name: "D", Wins: 0, Losses: 2, PointsFor: 20, PointsAgainst: 42},
		{ID: "e", Name: "E"}, // never played, excluded
	}

	first := Rankings(players)
	require.Len(t, first, 4)
	assert.Equal(t, "a", first[0].PlayerID)
	// b and c tie on win rate and point diff (+4), b leads on points for.
	assert.Equal(t, "b", first[1].PlayerID)
	assert.Equal(t, "c", first[2].PlayerID)
	assert.Equal(t, "d", first[3].PlayerID)
	for i, row := range first {
		assert.Equal(t, i+1, row.Rank)
	}

	second := Rankings(players)
	assert.Equal(t, first, second, "rankings must be a pure derivation")
}

func TestResetSessionStats(t *testing.T) {
	players := []models.Player{{
		ID: "a", Wins: 3, Losses: 1, PointsFor: 80, PointsAgainst: 60,
		PlayedWith: []string{"b"}, PlayedAgainst: []string{"c"},
		SkillRating: 640, SessionSkillRating: 570,
	}}
	ResetSessionStats(players)

	p := players[0]
	assert.Zero(t, p.Wins)
	assert.Zero(t, p.Losses)
	assert.Zero(t, p.PointsFor)
	assert.Zero(t, p.PointsAgainst)
	assert.Empty(t, p.PlayedWith)
	assert.Empty(t, p.PlayedAgainst)
	assert.Equal(t, SessionRatingMidpoint, p.SessionSkillRating)
	assert.Equal(t, 640, p.SkillRating, "historical rating must survive a session reset")
}

func TestResetHistoricalRatings(t *testing.T) {
	players := []models.Player{
		{ID: "a", SkillRating: 640, SessionSkillRating: 570},
		{ID: "b", SkillRating: 310, SessionSkillRating: 480},
	}
	ResetHistoricalRatings(players)
	assert.Equal(t, SessionRatingMidpoint, players[0].SkillRating)
	assert.Equal(t, SessionRatingMidpoint, players[1].SkillRating)
	assert.Equal(t, 570, players[0].SessionSkillRating)
}
