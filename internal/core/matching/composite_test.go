package matching

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

func testUser() domain.Profile {
	return domain.Profile{
		ID:  "ana@example.com",
		DOB: "1990-05-17", // life path 5
		Traits: domain.NewTraits(map[string]string{
			"daily_rhythm": "morning",
			"lifestyle":    "social",
		}),
		RoomPreferences: domain.Logistics{RoomType: "single", Floor: "2", HasWindow: boolPtr(true)},
	}
}

func testOccupant(id, dob string, traits map[string]string) domain.Occupant {
	return domain.Occupant{ID: id, Name: id, DOB: dob, Traits: domain.NewTraits(traits)}
}

func halfMatchRoom(id string, capacity int) domain.Room {
	return domain.Room{
		ID:       id,
		Capacity: capacity,
		Occupants: []domain.Occupant{
			testOccupant("ben", "2000-01-01", map[string]string{"daily_rhythm": "morning", "lifestyle": "chill"}),
		},
		Logistics: domain.Logistics{RoomType: "single", Floor: "3", HasWindow: boolPtr(true)},
	}
}

func TestCompositeRoomScore(t *testing.T) {
	score := CompositeRoomScore(testUser(), halfMatchRoom("101", 3))

	assert.InDelta(t, 5.0, score.Roommate, 1e-9)
	assert.InDelta(t, 20.0/3, score.Logistics, 1e-9)
	assert.InDelta(t, 0.0, score.Numerology, 1e-9) // 5 against 4 is a challenge
	assert.InDelta(t, 4.8333333, score.Total, 1e-6)
	assert.Equal(t, 48.33, score.Display)
}

func TestCompositeRoomScoreEmptyRoom(t *testing.T) {
	room := domain.Room{ID: "empty", Capacity: 2}

	score := CompositeRoomScore(testUser(), room)

	assert.Equal(t, emptyRoomCompatibility, score.Roommate)
	assert.Equal(t, 0.0, score.Logistics)
	assert.Equal(t, noNumerologyData, score.Numerology)
	assert.Equal(t, 35.0, score.Display)
}

func TestCompositeRoomScoreNumerologySkipsMissingDOB(t *testing.T) {
	tests := []struct {
		name       string
		secondDOB  string
		numerology float64
		display    float64
	}{
		// only ben counts, 5 against 4 scores 0
		{name: "missing_dob_is_skipped", secondDOB: "", numerology: 0, display: 65.83},
		// 5 against 5 scores 5, mean of 0 and 5
		{name: "known_dob_counts", secondDOB: "1990-05-17", numerology: 2.5, display: 68.33},
		// a dob without digits has life path 0 and scores the unknown fallback
		{name: "unparseable_dob_counts_as_unknown", secondDOB: "n/a", numerology: 0.5, display: 66.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := halfMatchRoom("102", 4)
			room.Occupants = append(room.Occupants,
				testOccupant("cleo", tt.secondDOB, map[string]string{"daily_rhythm": "morning", "lifestyle": "social"}))

			score := CompositeRoomScore(testUser(), room)

			assert.InDelta(t, 7.5, score.Roommate, 1e-9)
			assert.InDelta(t, tt.numerology, score.Numerology, 1e-9)
			assert.Equal(t, tt.display, score.Display)
		})
	}
}

func TestCompositeRoomScoreWithoutUserDOB(t *testing.T) {
	user := testUser()
	user.DOB = ""

	score := CompositeRoomScore(user, halfMatchRoom("103", 2))

	assert.Equal(t, affinityUnknown, score.Numerology)
}

func TestCompositeProfileScore(t *testing.T) {
	other := domain.Profile{
		ID:              "ben@example.com",
		DOB:             "2000-01-01",
		Traits:          domain.NewTraits(map[string]string{"daily_rhythm": "morning", "lifestyle": "chill"}),
		RoomPreferences: domain.Logistics{RoomType: "single", Floor: "2", HasWindow: boolPtr(true)},
	}

	score := CompositeProfileScore(testUser(), other)

	assert.Equal(t, 5.0, score.Roommate)
	assert.Equal(t, 10.0, score.Logistics)
	assert.Equal(t, 0.0, score.Numerology)
	assert.Equal(t, 55.0, score.Display)
}

func TestScoreJSON(t *testing.T) {
	data, err := json.Marshal(Score{Roommate: 5, Logistics: 10, Numerology: 3, Total: 5.8, Display: 58})
	require.NoError(t, err)
	assert.JSONEq(t, `{"compatibility":5,"logistics":10,"numerology":3,"total":5.8,"score":58}`, string(data))
}

func TestDisplayScore(t *testing.T) {
	assert.Equal(t, 48.33, displayScore(4.833333))
	assert.Equal(t, 100.0, displayScore(10))
	assert.Equal(t, -10.0, displayScore(noRoomTotal))
}
