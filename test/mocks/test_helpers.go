package mocks

import (
	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

// NewTestProfile builds a profile with the given traits.
func NewTestProfile(id, dob string, traits map[string]string) domain.Profile {
	return domain.Profile{
		ID:     id,
		Name:   id,
		DOB:    dob,
		Traits: domain.NewTraits(traits),
	}
}

// NewTestRoom builds a room seating the given profiles.
func NewTestRoom(id string, capacity int, occupants ...domain.Profile) domain.Room {
	room := domain.Room{ID: id, Capacity: capacity}
	for _, p := range occupants {
		room.Occupants = append(room.Occupants, p.AsOccupant())
	}
	return room
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
