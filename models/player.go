package models

// Player is one participant of a session. Stats and history accumulate over
// the session; SkillRating carries over between sessions while
// SessionSkillRating is reset to the neutral midpoint on session start.
type Player struct {
	ID                 string   `json:"player_id"`
	Name               string   `json:"name"`
	Wins               int      `json:"wins"`
	Losses             int      `json:"losses"`
	PointsFor          int      `json:"points_for"`
	PointsAgainst      int      `json:"points_against"`
	PlayedWith         []string `json:"played_with"`
	PlayedAgainst      []string `json:"played_against"`
	SkillRating        int      `json:"skill_rating"`
	SessionSkillRating int      `json:"session_skill_rating"`
	IsActive           bool     `json:"is_active"`
	IsPaused           bool     `json:"is_paused"`
	IsEliminated       bool     `json:"is_eliminated,omitempty"`
}

// Eligible reports whether the player may be pulled into rotation.
func (p *Player) Eligible() bool {
	return p.IsActive && !p.IsPaused && !p.IsEliminated
}

// GamesPlayed is the number of completed matches this session.
func (p *Player) GamesPlayed() int {
	return p.Wins + p.Losses
}
