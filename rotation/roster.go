package rotation

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/shuttlehub/club-system/models"
)

// indexPlayers builds an id keyed view over the roster slice. The pointers
// alias the slice so mutations land on the session copy being built.
func indexPlayers(players []models.Player) map[string]*models.Player {
	byID := make(map[string]*models.Player, len(players))
	for i := range players {
		byID[players[i].ID] = &players[i]
	}
	return byID
}

// eligibleWaiting filters the waiting queue down to players that can be
// pulled onto a court, preserving queue order.
func eligibleWaiting(s *models.Session) []string {
	out := make([]string, 0, len(s.WaitingQueue))
	for _, id := range s.WaitingQueue {
		if p := s.Player(id); p != nil && p.Eligible() {
			out = append(out, id)
		}
	}
	return out
}

// removeFromQueue drops the given ids from the queue, keeping order.
func removeFromQueue(queue []string, ids ...string) []string {
	drop := mapset.NewThreadUnsafeSet(ids...)
	out := queue[:0]
	for _, id := range queue {
		if !drop.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// appendUnique appends ids not already present, preserving existing order.
func appendUnique(list []string, ids ...string) []string {
	seen := mapset.NewThreadUnsafeSet(list...)
	for _, id := range ids {
		if seen.Add(id) {
			list = append(list, id)
		}
	}
	return list
}

const nextUpSize = 4

// refreshNextUp recomputes the read-only preview of the waiting queue.
func refreshNextUp(s *models.Session) {
	n := len(s.WaitingQueue)
	if n > nextUpSize {
		n = nextUpSize
	}
	s.NextUpQueue = append([]string(nil), s.WaitingQueue[:n]...)
}
