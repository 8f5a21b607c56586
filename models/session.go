package models

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionLive      SessionStatus = "live"
	SessionCompleted SessionStatus = "completed"
)

type GameType string

const (
	GameTypePartnershipRotation GameType = "partnership_rotation"
	GameTypeTournamentSingle    GameType = "tournament_single"
	GameTypeRoundRobin          GameType = "round_robin"
	GameTypePegSystem           GameType = "peg_system"
)

type PegMode string

const (
	PegBalancedTeams    PegMode = "balanced_teams"
	PegSkillBasedCourts PegMode = "skill_based_courts"
)

// RatingPreset selects the rating delta magnitudes applied on completion.
type RatingPreset string

const (
	RatingPresetLightweight RatingPreset = "lightweight" // +10 / -5, floor 0
	RatingPresetFull        RatingPreset = "full"        // +25 / -20, floor 400
)

type SessionConfig struct {
	GameType       GameType     `json:"game_type"`
	CourtCount     int          `json:"court_count"`
	ScoringSystem  string       `json:"scoring_system"`
	SkillBalancing bool         `json:"skill_balancing"`
	PegMode        PegMode      `json:"peg_mode,omitempty"`
	RatingPreset   RatingPreset `json:"rating_preset,omitempty"`
}

// Session is the aggregate root the rotation engine operates on. It is read
// and written as a whole document; operations take a snapshot and return a
// new value.
type Session struct {
	ID       string        `json:"session_id"`
	Date     time.Time     `json:"date"`
	Location string        `json:"location"`
	Config   SessionConfig `json:"config"`
	Status   SessionStatus `json:"status"`

	Players      []Player `json:"player_data"`
	Courts       []Court  `json:"courts_data"`
	Matches      []Match  `json:"matches"`
	WaitingQueue []string `json:"waiting_queue"`
	NextUpQueue  []string `json:"next_up_queue"`

	// Bracket is present for tournament mode only.
	Bracket *Bracket `json:"tournament_bracket,omitempty"`
	// UpcomingMatches is the pre-enumerated match queue for round robin mode.
	UpcomingMatches []Match `json:"upcoming_matches,omitempty"`
	// CourtQueues holds per-court entry lists for peg mode.
	CourtQueues map[int][]string `json:"court_queues,omitempty"`

	// Version is the optimistic-concurrency counter maintained by the
	// persistence layer, not part of the document body.
	Version int `json:"-"`
}

func (s *Session) IsLive() bool {
	return s.Status == SessionLive
}

// Player returns a pointer into the roster for the given id, or nil.
func (s *Session) Player(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// Court returns a pointer to the court with the given number, or nil.
func (s *Session) Court(number int) *Court {
	for i := range s.Courts {
		if s.Courts[i].Number == number {
			return &s.Courts[i]
		}
	}
	return nil
}

// OnAnyCourt reports whether the player id is currently assigned to a court.
func (s *Session) OnAnyCourt(playerID string) bool {
	for i := range s.Courts {
		if s.Courts[i].HasPlayer(playerID) {
			return true
		}
	}
	return false
}

// InWaitingQueue reports whether the player id is queued.
func (s *Session) InWaitingQueue(playerID string) bool {
	for _, id := range s.WaitingQueue {
		if id == playerID {
			return true
		}
	}
	return false
}

// Clone deep-copies the session so operations can compute a new value
// without aliasing the loaded snapshot.
func (s *Session) Clone() *Session {
	out := *s

	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.PlayedWith = append([]string(nil), p.PlayedWith...)
		p.PlayedAgainst = append([]string(nil), p.PlayedAgainst...)
		out.Players[i] = p
	}

	out.Courts = make([]Court, len(s.Courts))
	for i, c := range s.Courts {
		c.Players = append([]string(nil), c.Players...)
		if c.CurrentMatch != nil {
			m := *c.CurrentMatch
			c.CurrentMatch = &m
		}
		out.Courts[i] = c
	}

	out.Matches = append([]Match(nil), s.Matches...)
	out.WaitingQueue = append([]string(nil), s.WaitingQueue...)
	out.NextUpQueue = append([]string(nil), s.NextUpQueue...)
	out.UpcomingMatches = append([]Match(nil), s.UpcomingMatches...)

	if s.Bracket != nil {
		b := *s.Bracket
		b.Slots = append([]BracketSlot(nil), s.Bracket.Slots...)
		out.Bracket = &b
	}
	if s.CourtQueues != nil {
		out.CourtQueues = make(map[int][]string, len(s.CourtQueues))
		for k, v := range s.CourtQueues {
			out.CourtQueues[k] = append([]string(nil), v...)
		}
	}
	return &out
}

// Ranking is one row of the derived session standings.
type Ranking struct {
	Rank               int     `json:"rank"`
	PlayerID           string  `json:"player_id"`
	Name               string  `json:"name"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	WinRate            float64 `json:"win_rate"`
	PointsFor          int     `json:"points_for"`
	PointsAgainst      int     `json:"points_against"`
	PointDiff          int     `json:"point_diff"`
	SessionSkillRating int     `json:"session_skill_rating"`
}
