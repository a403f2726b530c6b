package matching

import (
	"math"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

const (
	roommateWeight   = 0.7
	logisticsWeight  = 0.2
	numerologyWeight = 0.1

	// emptyRoomCompatibility is the roommate score of a room nobody lives in yet.
	emptyRoomCompatibility = 5.0
	// noNumerologyData is used when no occupant has a date of birth. It is not
	// the same as affinityUnknown.
	noNumerologyData = 0.0
)

// Score breaks a composite score into its parts. Roommate, Logistics and Total
// are on a 0 to 10 scale, Numerology on 0 to 5 and Display on 0 to 100.
type Score struct {
	Roommate   float64 `json:"compatibility"`
	Logistics  float64 `json:"logistics"`
	Numerology float64 `json:"numerology"`
	Total      float64 `json:"total"`
	Display    float64 `json:"score"`
}

// CompositeRoomScore scores how well user fits room.
func CompositeRoomScore(user domain.Profile, room domain.Room) Score {
	return exact.Score(user, room)
}

// CompositeProfileScore scores two profiles as if other were the only
// occupant of a room shaped like the preferences of other.
func CompositeProfileScore(user, other domain.Profile) Score {
	return exact.ProfileScore(user, other)
}

func (e *Engine) Score(user domain.Profile, room domain.Room) Score {
	s := Score{
		Roommate:   e.roommateCompatibility(user.Traits, room.Occupants),
		Logistics:  LogisticsScore(user.RoomPreferences, room.Logistics),
		Numerology: numerology(user.DOB, room.Occupants),
	}
	s.Total = roommateWeight*s.Roommate + logisticsWeight*s.Logistics + numerologyWeight*s.Numerology
	s.Display = displayScore(s.Total)
	return s
}

func (e *Engine) ProfileScore(user, other domain.Profile) Score {
	return e.Score(user, domain.Room{
		ID:        other.ID,
		Capacity:  2,
		Occupants: []domain.Occupant{other.AsOccupant()},
		Logistics: other.RoomPreferences,
	})
}

func (e *Engine) roommateCompatibility(traits domain.Traits, occupants []domain.Occupant) float64 {
	if len(occupants) == 0 {
		return emptyRoomCompatibility
	}
	var total float64
	for _, o := range occupants {
		total += e.traitScore(traits, o.Traits)
	}
	return total / float64(len(occupants))
}

func numerology(dob string, occupants []domain.Occupant) float64 {
	userPath := LifePathNumber(dob)

	var total float64
	counted := 0
	for _, o := range occupants {
		if o.DOB == "" {
			continue
		}
		total += NumerologyAffinity(userPath, LifePathNumber(o.DOB))
		counted++
	}
	if counted == 0 {
		return noNumerologyData
	}
	return total / float64(counted)
}

// displayScore scales a 0 to 10 total to 0 to 100 with two decimals.
func displayScore(total float64) float64 {
	return math.Round(total*10*100) / 100
}
