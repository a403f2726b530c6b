package matching

import (
	"math"
	"strconv"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

// noRoomTotal is the starting best total. Any scored room beats it.
const noRoomTotal = -1.0

// Assignment is the outcome of AssignBestRoom. When Found is false RoomID is
// empty and Score holds the scaled sentinel.
type Assignment struct {
	RoomID string  `json:"room_id,omitempty"`
	Score  float64 `json:"score"`
	Found  bool    `json:"found"`

	total float64
}

// Percent renders the score with one decimal and a percent sign.
func (a Assignment) Percent() string {
	return strconv.FormatFloat(math.Round(a.total*10*10)/10, 'f', 1, 64) + "%"
}

// AssignBestRoom returns the room with a free seat that scores highest for
// user. The first room reaching the best total wins.
func AssignBestRoom(user domain.Profile, rooms []domain.Room) Assignment {
	return exact.Assign(user, rooms)
}

func (e *Engine) Assign(user domain.Profile, rooms []domain.Room) Assignment {
	best := Assignment{Score: displayScore(noRoomTotal), total: noRoomTotal}
	for _, room := range rooms {
		if room.Full() {
			continue
		}

		score := e.Score(user, room)
		e.logScore(room.ID, score)

		if score.Total > best.total {
			best = Assignment{
				RoomID: room.ID,
				Score:  score.Display,
				Found:  true,
				total:  score.Total,
			}
		}
	}
	return best
}
