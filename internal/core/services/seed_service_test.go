package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/services"
	"github.com/matchmyvibe/roommate-service/test/mocks"
)

const roomsJSON = `[
  {"room_id": "101", "capacity": 2, "type": "double", "floor": 1, "has_window": true,
   "occupants": [{"name": "Mia", "dob": "2001-02-03", "traits": {"lifestyle": "chill"}}]},
  {"room_id": "102", "occupants": []}
]`

const personasJSON = `[
  {"id": "leo", "name": "Leo", "dob": "1999-09-09", "traits": {"lifestyle": "social"}, "room_id": "102", "likes": ["ana@example.com", "leo"]},
  {"id": "zoe", "name": "Zoe", "room_id": "102", "likes": ["ana@example.com"]},
  {"name": "Kai", "room_id": "999"}
]`

func TestSeedRooms(t *testing.T) {
	store := mocks.NewMockStore()
	svc := services.NewSeedService(store, store, nil)

	rooms, err := services.DecodeRooms(strings.NewReader(roomsJSON))
	require.NoError(t, err)

	n, err := svc.SeedRooms(context.Background(), rooms)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	room, ok := store.Room("101")
	require.True(t, ok)
	assert.Equal(t, "double", room.RoomType)
	require.Len(t, room.Occupants, 1)
	assert.NotEmpty(t, room.Occupants[0].ID)

	room, ok = store.Room("102")
	require.True(t, ok)
	assert.Equal(t, 1, room.Capacity)
}

func TestSeedRooms_MissingID(t *testing.T) {
	store := mocks.NewMockStore()
	svc := services.NewSeedService(store, store, nil)

	n, err := svc.SeedRooms(context.Background(), []domain.Room{{ID: "101", Capacity: 1}, {Capacity: 2}})
	assert.Error(t, err)
	assert.Equal(t, 1, n)
}

func TestSeedPersonas(t *testing.T) {
	store := mocks.NewMockStore()
	svc := services.NewSeedService(store, store, nil)

	rooms, err := services.DecodeRooms(strings.NewReader(roomsJSON))
	require.NoError(t, err)
	_, err = svc.SeedRooms(context.Background(), rooms)
	require.NoError(t, err)

	personas, err := services.DecodePersonas(strings.NewReader(personasJSON))
	require.NoError(t, err)

	report, err := svc.SeedPersonas(context.Background(), personas)
	require.NoError(t, err)

	assert.Equal(t, services.PersonaReport{Seated: 1, Skipped: 2, Swipes: 2}, report)

	room, _ := store.Room("102")
	require.Len(t, room.Occupants, 1)
	assert.Equal(t, "leo", room.Occupants[0].ID)

	swipes, err := store.GetSwipes(context.Background(), "leo")
	require.NoError(t, err)
	assert.Equal(t, []string{"ana@example.com"}, swipes.Liked)
}

func TestDecodePersonas_Invalid(t *testing.T) {
	_, err := services.DecodePersonas(strings.NewReader(`{"id": "not-a-list"}`))
	assert.Error(t, err)
}
