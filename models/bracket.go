package models

import "fmt"

// BracketSlot is one position in a single-elimination bracket. Slots are
// addressed by a UID of the form "R<round>M<order>". Teams are filled in as
// earlier rounds resolve; MatchID is set once the slot's match has started.
type BracketSlot struct {
	UID          string  `json:"uid"`
	Round        int     `json:"round"`
	OrderInRound int     `json:"order_in_round"`
	Team1        *Team   `json:"team1,omitempty"`
	Team2        *Team   `json:"team2,omitempty"`
	MatchID      *string `json:"match_id,omitempty"`
	WinnerTeam   *Team   `json:"winner_team,omitempty"`
}

// Startable reports whether both teams are known and the match has not
// started yet.
func (s *BracketSlot) Startable() bool {
	return s.Team1 != nil && s.Team2 != nil && s.MatchID == nil
}

// Bracket is the single-elimination structure for tournament mode.
type Bracket struct {
	Size     int           `json:"size"` // entrant player count, power of two
	Rounds   int           `json:"rounds"`
	Slots    []BracketSlot `json:"slots"`
	Champion *Team         `json:"champion,omitempty"`
}

// SlotUID builds the canonical slot identifier for a round and order.
func SlotUID(round, order int) string {
	return fmt.Sprintf("R%dM%d", round, order)
}

// Slot returns the slot with the given UID, or nil.
func (b *Bracket) Slot(uid string) *BracketSlot {
	for i := range b.Slots {
		if b.Slots[i].UID == uid {
			return &b.Slots[i]
		}
	}
	return nil
}

// NextSlot returns the slot the winner of the given slot advances to, plus
// which team position (1 or 2) it fills. Returns nil for the final.
func (b *Bracket) NextSlot(s *BracketSlot) (*BracketSlot, int) {
	if s.Round >= b.Rounds {
		return nil, 0
	}
	next := b.Slot(SlotUID(s.Round+1, (s.OrderInRound+1)/2))
	if next == nil {
		return nil, 0
	}
	if s.OrderInRound%2 == 1 {
		return next, 1
	}
	return next, 2
}

// NextStartable returns the first slot in bracket order whose teams are both
// known and whose match has not started, or nil.
func (b *Bracket) NextStartable() *BracketSlot {
	for i := range b.Slots {
		if b.Slots[i].Startable() {
			return &b.Slots[i]
		}
	}
	return nil
}
