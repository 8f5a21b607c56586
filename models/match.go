package models

import "time"

type MatchStatus string

const (
	MatchUpcoming   MatchStatus = "upcoming"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
)

// Team is an ordered pair of player ids.
type Team [2]string

// Contains reports whether the team includes the given player id.
func (t Team) Contains(playerID string) bool {
	return t[0] == playerID || t[1] == playerID
}

// Match records one contest between two teams of two. Once completed it is
// appended to the session history and never mutated again.
type Match struct {
	ID              string      `json:"match_id"`
	Teams           [2]Team     `json:"teams"`
	Scores          [2]int      `json:"scores"`
	WinnerTeamIndex *int        `json:"winner_team_index,omitempty"`
	CourtNumber     int         `json:"court_number"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         *time.Time  `json:"end_time,omitempty"`
	DurationSeconds int         `json:"duration_seconds,omitempty"`
	Status          MatchStatus `json:"status"`

	// BracketUID links the match to its bracket slot in tournament mode.
	BracketUID *string `json:"bracket_uid,omitempty"`
}

// PlayerIDs returns the four involved player ids, team A first.
func (m *Match) PlayerIDs() [4]string {
	return [4]string{m.Teams[0][0], m.Teams[0][1], m.Teams[1][0], m.Teams[1][1]}
}

// WinnerTeam returns the winning team, or false if no winner is declared.
func (m *Match) WinnerTeam() (Team, bool) {
	if m.WinnerTeamIndex == nil {
		return Team{}, false
	}
	return m.Teams[*m.WinnerTeamIndex], true
}

// LoserTeam returns the losing team, or false if no winner is declared.
func (m *Match) LoserTeam() (Team, bool) {
	if m.WinnerTeamIndex == nil {
		return Team{}, false
	}
	return m.Teams[1-*m.WinnerTeamIndex], true
}
