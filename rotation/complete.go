package rotation

import (
	"time"

	"github.com/shuttlehub/club-system/models"
)

// CompletionResult carries the new session value, the immutable completed
// match and the follow-up match started on the same court, if any.
type CompletionResult struct {
	Session   *models.Session
	Completed models.Match
	Next      *models.Match
}

// CompleteMatch finalizes the match on the given court: validates the input,
// appends the completed record to history, applies the rating engine to the
// four involved players and lets the game-type strategy decide the court's
// next state. The input snapshot is never mutated; on error no new value is
// produced.
func CompleteMatch(snapshot *models.Session, courtNumber int, scores [2]int, winnerTeamIndex int, now time.Time) (*CompletionResult, error) {
	if scores[0] < 0 || scores[1] < 0 {
		return nil, ErrNegativeScore
	}
	if winnerTeamIndex != 0 && winnerTeamIndex != 1 {
		return nil, ErrInvalidWinnerIndex
	}

	s := snapshot.Clone()
	court := s.Court(courtNumber)
	if court == nil {
		return nil, ErrCourtNotFound
	}
	if court.CurrentMatch == nil || len(court.Players) != 4 {
		return nil, ErrNoActiveMatch
	}

	strategy, err := ForGameType(s.Config.GameType)
	if err != nil {
		return nil, err
	}

	completed := *court.CurrentMatch
	completed.Scores = scores
	winner := winnerTeamIndex
	completed.WinnerTeamIndex = &winner
	end := now
	completed.EndTime = &end
	completed.DurationSeconds = int(now.Sub(completed.StartTime).Seconds())
	completed.Status = models.MatchCompleted
	s.Matches = append(s.Matches, completed)

	ApplyMatchResult(s.Players, completed, DeltaForPreset(s.Config.RatingPreset))

	next, err := strategy.Progress(s, court, completed, now)
	if err != nil {
		return nil, err
	}

	refreshNextUp(s)
	return &CompletionResult{Session: s, Completed: completed, Next: next}, nil
}
