package matching

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

func rankingRooms() []domain.Room {
	full := halfMatchRoom("full", 1)
	return []domain.Room{
		{ID: "empty-a", Capacity: 2},
		full,
		halfMatchRoom("best", 3),
		{ID: "empty-b", Capacity: 1},
	}
}

func TestRankRooms(t *testing.T) {
	ranked := RankRooms(testUser(), rankingRooms())

	require.Len(t, ranked, 3)

	ids := []string{ranked[0].RoomID, ranked[1].RoomID, ranked[2].RoomID}
	// equal scores keep input order
	assert.Equal(t, []string{"best", "empty-a", "empty-b"}, ids)

	assert.Equal(t, 48.33, ranked[0].Score)
	assert.Equal(t, 35.0, ranked[1].Score)
	assert.Equal(t, 35.0, ranked[2].Score)

	best := ranked[0]
	assert.Equal(t, "Room best", best.DisplayName)
	assert.Equal(t, "1 / 3 occupants", best.OccupancyLabel)
	assert.Equal(t, "#A78BFA", best.AvatarColor)
	assert.Equal(t, "ben", best.Room.Occupants[0].ID)
}

func TestRankRoomsExcludesFullRooms(t *testing.T) {
	overfull := halfMatchRoom("overfull", 0)

	ranked := RankRooms(testUser(), []domain.Room{halfMatchRoom("full", 1), overfull})

	assert.Empty(t, ranked)
	assert.NotNil(t, ranked)
}

func TestRankRoomsPairRoomBoundary(t *testing.T) {
	taken := halfMatchRoom("taken", 2)
	taken.Occupants = append(taken.Occupants, domain.Occupant{ID: "cat"})

	ranked := RankRooms(testUser(), []domain.Room{taken, halfMatchRoom("one-free", 2)})

	require.Len(t, ranked, 1)
	assert.Equal(t, "one-free", ranked[0].RoomID)
}

func TestRankRoomsIsDeterministic(t *testing.T) {
	first := RankRooms(testUser(), rankingRooms())
	second := RankRooms(testUser(), rankingRooms())

	assert.Equal(t, first, second)
}

func TestRankedRoomJSON(t *testing.T) {
	ranked := RankRooms(testUser(), []domain.Room{{ID: "7", Capacity: 2}})
	require.Len(t, ranked, 1)

	data, err := json.Marshal(ranked[0])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.Equal(t, "7", payload["id"])
	assert.Equal(t, "Room 7", payload["name"])
	assert.Equal(t, "0 / 2 occupants", payload["vibe"])
	assert.Equal(t, "#A78BFA", payload["avatar_color"])
	assert.Equal(t, 35.0, payload["score"])
	assert.Equal(t, "7", payload["room_data"].(map[string]any)["room_id"])
}

func TestEngineLogsRoomScores(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	engine := NewEngine(Options{}, zap.New(core))

	engine.Rank(testUser(), rankingRooms())

	entries := observed.FilterMessage("room score").All()
	require.Len(t, entries, 3)
	assert.Equal(t, "empty-a", entries[0].ContextMap()["room_id"])
	assert.Equal(t, 5.0, entries[0].ContextMap()["compatibility"])
}

func TestEnginePartialCredit(t *testing.T) {
	room := halfMatchRoom("101", 3)

	exactScore := NewEngine(Options{}, nil).Score(testUser(), room)
	partial := NewEngine(Options{PartialCredit: 0.5}, nil).Score(testUser(), room)
	clamped := NewEngine(Options{PartialCredit: 7}, nil).Score(testUser(), room)

	assert.Equal(t, 5.0, exactScore.Roommate)
	assert.Equal(t, 7.5, partial.Roommate)
	assert.Equal(t, 10.0, clamped.Roommate)
}
