package matching

import "github.com/matchmyvibe/roommate-service/internal/core/domain"

// LogisticsScore counts how many of room type, floor and window the room
// shares with prefs, on a 0 to 10 scale. An attribute missing on either side
// never matches.
func LogisticsScore(prefs, room domain.Logistics) float64 {
	matches := 0
	if prefs.RoomType != "" && prefs.RoomType == room.RoomType {
		matches++
	}
	if prefs.Floor != "" && prefs.Floor == room.Floor {
		matches++
	}
	if prefs.HasWindow != nil && room.HasWindow != nil && *prefs.HasWindow == *room.HasWindow {
		matches++
	}
	return float64(matches*10) / 3
}
