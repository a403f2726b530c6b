package domain

import (
	"encoding/json"
	"fmt"
)

// Floor accepts both numbers and strings on input.
type Floor string

func (f *Floor) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Floor(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("floor must be a string or a number: %w", err)
	}
	*f = Floor(n.String())
	return nil
}

// Logistics describes a room, or what a profile wants from one.
// Zero values mean the attribute is missing.
type Logistics struct {
	RoomType  string `json:"room_type,omitempty"`
	Floor     Floor  `json:"floor,omitempty"`
	HasWindow *bool  `json:"has_window,omitempty"`
}

type Occupant struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Traits Traits `json:"traits"`
	DOB    string `json:"dob,omitempty"`
}

type Room struct {
	ID        string     `json:"room_id"`
	Capacity  int        `json:"capacity"`
	Occupants []Occupant `json:"occupants"`
	Logistics
}

// UnmarshalJSON accepts "type" as an alias of "room_type" and defaults a
// missing capacity to 1.
func (r *Room) UnmarshalJSON(data []byte) error {
	type plain Room
	aux := struct {
		*plain
		Capacity *int   `json:"capacity"`
		Type     string `json:"type"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Capacity = 1
	if aux.Capacity != nil {
		r.Capacity = *aux.Capacity
	}
	if r.RoomType == "" {
		r.RoomType = aux.Type
	}
	return nil
}

// Full reports whether the room has no free seat left.
func (r Room) Full() bool {
	return len(r.Occupants) >= r.Capacity
}

// FreeSeats never goes below zero.
func (r Room) FreeSeats() int {
	if free := r.Capacity - len(r.Occupants); free > 0 {
		return free
	}
	return 0
}

func (r Room) DisplayName() string {
	return "Room " + r.ID
}

func (r Room) OccupancyLabel() string {
	return fmt.Sprintf("%d / %d occupants", len(r.Occupants), r.Capacity)
}

func (r Room) HasOccupant(id string) bool {
	for _, o := range r.Occupants {
		if o.ID == id {
			return true
		}
	}
	return false
}

// WithoutOccupants returns a copy of the room without the given occupants.
// The receiver is left untouched.
func (r Room) WithoutOccupants(ids ...string) Room {
	kept := make([]Occupant, 0, len(r.Occupants))
	for _, o := range r.Occupants {
		if !contains(ids, o.ID) {
			kept = append(kept, o)
		}
	}
	r.Occupants = kept
	return r
}
