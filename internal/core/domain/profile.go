package domain

import "time"

type Profile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DOB             string    `json:"dob"`
	Traits          Traits    `json:"traits"`
	RoomPreferences Logistics `json:"room_preferences"`
	AssignedRoom    *string   `json:"assigned_room"`
	PasswordHash    string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

// AsOccupant is the snapshot embedded into a room once the profile moves in.
func (p Profile) AsOccupant() Occupant {
	return Occupant{
		ID:     p.ID,
		Name:   p.Name,
		Traits: p.Traits,
		DOB:    p.DOB,
	}
}

// Persona is a synthetic profile loaded by the seeder. Personas have no
// account, so a mutual like with one is never assigned a room.
type Persona struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	DOB    string   `json:"dob"`
	Traits Traits   `json:"traits"`
	RoomID string   `json:"room_id,omitempty"`
	Likes  []string `json:"likes,omitempty"`
}

func (p Persona) AsOccupant() Occupant {
	return Occupant{
		ID:     p.ID,
		Name:   p.Name,
		Traits: p.Traits,
		DOB:    p.DOB,
	}
}
