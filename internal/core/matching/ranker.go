package matching

import (
	"sort"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

const roomAvatarColor = "#A78BFA"

// RankedRoom is a swipe card. JSON names follow the frontend payload.
type RankedRoom struct {
	RoomID         string      `json:"id"`
	DisplayName    string      `json:"name"`
	OccupancyLabel string      `json:"vibe"`
	AvatarColor    string      `json:"avatar_color"`
	Room           domain.Room `json:"room_data"`
	Score          float64     `json:"score"`
}

// RankRooms orders the rooms with a free seat by display score, best first.
// Equal scores keep their input order.
func RankRooms(user domain.Profile, rooms []domain.Room) []RankedRoom {
	return exact.Rank(user, rooms)
}

func (e *Engine) Rank(user domain.Profile, rooms []domain.Room) []RankedRoom {
	ranked := make([]RankedRoom, 0, len(rooms))
	for _, room := range rooms {
		if room.Full() {
			continue
		}

		score := e.Score(user, room)
		e.logScore(room.ID, score)

		ranked = append(ranked, RankedRoom{
			RoomID:         room.ID,
			DisplayName:    room.DisplayName(),
			OccupancyLabel: room.OccupancyLabel(),
			AvatarColor:    roomAvatarColor,
			Room:           room,
			Score:          score.Display,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
