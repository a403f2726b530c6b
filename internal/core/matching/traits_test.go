package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

func TestTraitScore(t *testing.T) {
	tests := []struct {
		name   string
		mine   map[string]string
		theirs map[string]string
		want   float64
	}{
		{
			name:   "all_match",
			mine:   map[string]string{"daily_rhythm": "morning", "lifestyle": "social"},
			theirs: map[string]string{"daily_rhythm": "morning", "lifestyle": "social"},
			want:   10,
		},
		{
			name:   "half_match",
			mine:   map[string]string{"daily_rhythm": "morning", "lifestyle": "social"},
			theirs: map[string]string{"daily_rhythm": "morning", "lifestyle": "chill"},
			want:   5,
		},
		{
			name:   "key_missing_on_other_side",
			mine:   map[string]string{"daily_rhythm": "morning", "room_vibe": "cozy", "study_habits": "library"},
			theirs: map[string]string{"daily_rhythm": "morning"},
			want:   10.0 / 3,
		},
		{
			name:   "extra_keys_score_too",
			mine:   map[string]string{"pets": "cat"},
			theirs: map[string]string{"pets": "cat"},
			want:   10,
		},
		{
			name:   "values_are_case_sensitive",
			mine:   map[string]string{"lifestyle": "Social"},
			theirs: map[string]string{"lifestyle": "social"},
			want:   0,
		},
		{
			name:   "mine_empty",
			mine:   nil,
			theirs: map[string]string{"lifestyle": "social"},
			want:   0,
		},
		{
			name:   "theirs_empty",
			mine:   map[string]string{"lifestyle": "social"},
			theirs: map[string]string{},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TraitScore(domain.NewTraits(tt.mine), domain.NewTraits(tt.theirs))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTraitScoreIsDirectional(t *testing.T) {
	mine := domain.NewTraits(map[string]string{"lifestyle": "social"})
	theirs := domain.NewTraits(map[string]string{"lifestyle": "social", "room_vibe": "cozy"})

	assert.Equal(t, 10.0, TraitScore(mine, theirs))
	assert.Equal(t, 5.0, TraitScore(theirs, mine))
}

func TestTraitScoreWithAdjacency(t *testing.T) {
	mine := domain.NewTraits(map[string]string{"daily_rhythm": "morning", "lifestyle": "social"})
	theirs := domain.NewTraits(map[string]string{"daily_rhythm": "morning", "lifestyle": "chill"})

	assert.Equal(t, 5.0, TraitScoreWithAdjacency(mine, theirs, 0))
	assert.Equal(t, 7.5, TraitScoreWithAdjacency(mine, theirs, 0.5))
	assert.Equal(t, 10.0, TraitScoreWithAdjacency(mine, theirs, 1))

	unrelated := domain.NewTraits(map[string]string{"daily_rhythm": "morning", "lifestyle": "party"})
	assert.Equal(t, 5.0, TraitScoreWithAdjacency(mine, unrelated, 1))
}
