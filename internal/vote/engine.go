// Package vote implements the tri-state vote transition rules.
package vote

import (
	"fmt"

	"github.com/iudanet/qaforum/internal/models"
)

// Transition результат применения голоса: новое состояние и изменение счётчика
type Transition struct {
	Next  models.VoteState
	Delta int
}

// ComputeTransition returns the next vote state and the delta to apply to the
// vote counter when the user requests an up or down vote.
//
// Повторный голос в том же направлении снимает голос (toggle off),
// смена направления даёт дельту ±2.
func ComputeTransition(current, requested models.VoteState) Transition {
	switch requested {
	case models.VoteUp:
		switch current {
		case models.VoteUp:
			return Transition{Next: models.VoteNone, Delta: -1}
		case models.VoteDown:
			return Transition{Next: models.VoteUp, Delta: 2}
		default:
			return Transition{Next: models.VoteUp, Delta: 1}
		}
	case models.VoteDown:
		switch current {
		case models.VoteDown:
			return Transition{Next: models.VoteNone, Delta: 1}
		case models.VoteUp:
			return Transition{Next: models.VoteDown, Delta: -2}
		default:
			return Transition{Next: models.VoteDown, Delta: -1}
		}
	default:
		// None не является допустимым запросом - состояние не меняется
		return Transition{Next: current, Delta: 0}
	}
}

// Apply returns a copy of v with the transition for requested applied
func Apply(v models.Votable, requested models.VoteState) (models.Votable, error) {
	if !requested.IsDirection() {
		return v, fmt.Errorf("invalid vote direction %q", requested)
	}

	t := ComputeTransition(v.UserVote, requested)
	v.UserVote = t.Next
	v.VoteCount += t.Delta
	return v, nil
}
