package models

type CourtStatus string

const (
	CourtAvailable   CourtStatus = "available"
	CourtInProgress  CourtStatus = "in_progress"
	CourtPaused      CourtStatus = "paused"
	CourtMaintenance CourtStatus = "maintenance"
)

// Court is a numbered play surface. Players is either empty or exactly four
// ids: positions 0-1 are team A, 2-3 are team B.
type Court struct {
	Number       int         `json:"court_number"`
	Players      []string    `json:"players"`
	Status       CourtStatus `json:"status"`
	IsActive     bool        `json:"is_active"`
	CurrentMatch *Match      `json:"current_match,omitempty"`
}

// Open reports whether the court can take a new match.
func (c *Court) Open() bool {
	return c.Status == CourtAvailable && len(c.Players) == 0
}

// HasPlayer reports whether the given player id is on this court.
func (c *Court) HasPlayer(playerID string) bool {
	for _, id := range c.Players {
		if id == playerID {
			return true
		}
	}
	return false
}
