package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

func boolPtr(b bool) *bool { return &b }

func TestLogisticsScore(t *testing.T) {
	room := domain.Logistics{RoomType: "double", Floor: "2", HasWindow: boolPtr(true)}

	tests := []struct {
		name  string
		prefs domain.Logistics
		room  domain.Logistics
		want  float64
	}{
		{name: "all_match", prefs: room, room: room, want: 10},
		{
			name:  "two_match",
			prefs: domain.Logistics{RoomType: "double", Floor: "3", HasWindow: boolPtr(true)},
			room:  room,
			want:  20.0 / 3,
		},
		{
			name:  "window_false_matches_false",
			prefs: domain.Logistics{HasWindow: boolPtr(false)},
			room:  domain.Logistics{HasWindow: boolPtr(false)},
			want:  10.0 / 3,
		},
		{name: "no_preferences", prefs: domain.Logistics{}, room: room, want: 0},
		{name: "room_missing_attributes", prefs: room, room: domain.Logistics{}, want: 0},
		{name: "both_missing", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LogisticsScore(tt.prefs, tt.room), 1e-9)
		})
	}
}
