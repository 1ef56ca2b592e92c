package vote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/qaforum/internal/models"
)

func TestComputeTransition(t *testing.T) {
	tests := []struct {
		name      string
		current   models.VoteState
		requested models.VoteState
		want      Transition
	}{
		{"none + up", models.VoteNone, models.VoteUp, Transition{Next: models.VoteUp, Delta: 1}},
		{"none + down", models.VoteNone, models.VoteDown, Transition{Next: models.VoteDown, Delta: -1}},
		{"none + none", models.VoteNone, models.VoteNone, Transition{Next: models.VoteNone, Delta: 0}},
		{"up + up toggles off", models.VoteUp, models.VoteUp, Transition{Next: models.VoteNone, Delta: -1}},
		{"up + down flips", models.VoteUp, models.VoteDown, Transition{Next: models.VoteDown, Delta: -2}},
		{"up + none", models.VoteUp, models.VoteNone, Transition{Next: models.VoteUp, Delta: 0}},
		{"down + down toggles off", models.VoteDown, models.VoteDown, Transition{Next: models.VoteNone, Delta: 1}},
		{"down + up flips", models.VoteDown, models.VoteUp, Transition{Next: models.VoteUp, Delta: 2}},
		{"down + none", models.VoteDown, models.VoteNone, Transition{Next: models.VoteDown, Delta: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTransition(tt.current, tt.requested))
		})
	}
}

func TestComputeTransition_RepeatTogglesOff(t *testing.T) {
	for _, dir := range []models.VoteState{models.VoteUp, models.VoteDown} {
		first := ComputeTransition(models.VoteNone, dir)
		second := ComputeTransition(first.Next, dir)

		assert.Equal(t, dir, first.Next)
		assert.Equal(t, models.VoteNone, second.Next)
		// два клика подряд не накапливают голос
		assert.Equal(t, 0, first.Delta+second.Delta)
	}
}

func TestApply(t *testing.T) {
	v := models.Votable{ID: "q1", Kind: models.KindQuestion, VoteCount: 5, UserVote: models.VoteNone}

	up, err := Apply(v, models.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 6, up.VoteCount)
	assert.Equal(t, models.VoteUp, up.UserVote)

	flipped, err := Apply(up, models.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, 4, flipped.VoteCount)
	assert.Equal(t, models.VoteDown, flipped.UserVote)

	// исходное значение не меняется
	assert.Equal(t, 5, v.VoteCount)

	_, err = Apply(v, models.VoteNone)
	assert.Error(t, err)
}
