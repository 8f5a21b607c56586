package rotation

import (
	"sort"

	"github.com/shuttlehub/club-system/models"
)

const (
	RatingCeiling         = 1000
	RatingFloor           = 0
	SessionRatingMidpoint = 500
)

// RatingDelta holds the per-match rating adjustment. Two magnitudes exist in
// club practice; both are kept as presets rather than hardcoding one.
type RatingDelta struct {
	Win   int
	Loss  int
	Floor int
}

var (
	LightweightDelta = RatingDelta{Win: 10, Loss: 5, Floor: 0}
	FullDelta        = RatingDelta{Win: 25, Loss: 20, Floor: 400}
)

// DeltaForPreset maps a session config preset to its delta. Unknown presets
// fall back to lightweight.
func DeltaForPreset(preset models.RatingPreset) RatingDelta {
	if preset == models.RatingPresetFull {
		return FullDelta
	}
	return LightweightDelta
}

func clampRating(r, floor int) int {
	if r > RatingCeiling {
		return RatingCeiling
	}
	if r < floor {
		return floor
	}
	return r
}

// ApplyMatchResult folds a completed match into the roster: win/loss counts,
// point totals, session rating and partner/opponent history for the four
// involved players. All other players are untouched. The match must carry a
// declared winner.
func ApplyMatchResult(players []models.Player, m models.Match, delta RatingDelta) {
	winners, ok := m.WinnerTeam()
	if !ok {
		return
	}
	losers, _ := m.LoserTeam()
	winScore := m.Scores[*m.WinnerTeamIndex]
	loseScore := m.Scores[1-*m.WinnerTeamIndex]

	byID := indexPlayers(players)

	for i, id := range winners {
		p := byID[id]
		if p == nil {
			continue
		}
		p.Wins++
		p.PointsFor += winScore
		p.PointsAgainst += loseScore
		p.SessionSkillRating = clampRating(p.SessionSkillRating+delta.Win, RatingFloor)
		p.PlayedWith = appendUnique(p.PlayedWith, winners[1-i])
		p.PlayedAgainst = appendUnique(p.PlayedAgainst, losers[0], losers[1])
	}
	for i, id := range losers {
		p := byID[id]
		if p == nil {
			continue
		}
		p.Losses++
		p.PointsFor += loseScore
		p.PointsAgainst += winScore
		p.SessionSkillRating = clampRating(p.SessionSkillRating-delta.Loss, delta.Floor)
		p.PlayedWith = appendUnique(p.PlayedWith, losers[1-i])
		p.PlayedAgainst = appendUnique(p.PlayedAgainst, winners[0], winners[1])
	}
}

// Rankings derives the session standings: players with at least one completed
// match, ordered by win rate, then point differential, then points for.
// The computation is pure; calling it twice yields the same list.
func Rankings(players []models.Player) []models.Ranking {
	rows := make([]models.Ranking, 0, len(players))
	for i := range players {
		p := &players[i]
		if p.GamesPlayed() == 0 {
			continue
		}
		rows = append(rows, models.Ranking{
			PlayerID:           p.ID,
			Name:               p.Name,
			Wins:               p.Wins,
			Losses:             p.Losses,
			WinRate:            float64(p.Wins) / float64(p.GamesPlayed()),
			PointsFor:          p.PointsFor,
			PointsAgainst:      p.PointsAgainst,
			PointDiff:          p.PointsFor - p.PointsAgainst,
			SessionSkillRating: p.SessionSkillRating,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WinRate != rows[j].WinRate {
			return rows[i].WinRate > rows[j].WinRate
		}
		if rows[i].PointDiff != rows[j].PointDiff {
			return rows[i].PointDiff > rows[j].PointDiff
		}
		return rows[i].PointsFor > rows[j].PointsFor
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// ResetSessionStats zeroes the per-session counters and history and returns
// the session rating to the midpoint. Historical ratings are untouched.
func ResetSessionStats(players []models.Player) {
	for i := range players {
		p := &players[i]
		p.Wins = 0
		p.Losses = 0
		p.PointsFor = 0
		p.PointsAgainst = 0
		p.PlayedWith = nil
		p.PlayedAgainst = nil
		p.SessionSkillRating = SessionRatingMidpoint
	}
}

// ResetHistoricalRatings returns every player's cross-session rating to the
// midpoint. Irreversible; the boundary requires explicit confirmation.
func ResetHistoricalRatings(players []models.Player) {
	for i := range players {
		players[i].SkillRating = SessionRatingMidpoint
	}
}
