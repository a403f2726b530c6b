package domain

type Direction string

const (
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
)

func (d Direction) Valid() bool {
	return d == DirectionRight || d == DirectionLeft
}

// SwipeRecord keeps the targets a user liked and disliked in swipe order.
// A target is never in both lists.
type SwipeRecord struct {
	Liked    []string `json:"liked"`
	Disliked []string `json:"disliked"`
}

// Add records target under direction. It returns false when the target was
// already swiped in either direction; the first swipe wins.
func (s *SwipeRecord) Add(target string, direction Direction) bool {
	if s.Seen(target) {
		return false
	}
	switch direction {
	case DirectionRight:
		s.Liked = append(s.Liked, target)
	case DirectionLeft:
		s.Disliked = append(s.Disliked, target)
	default:
		return false
	}
	return true
}

func (s SwipeRecord) Likes(target string) bool {
	return contains(s.Liked, target)
}

func (s SwipeRecord) Seen(target string) bool {
	return contains(s.Liked, target) || contains(s.Disliked, target)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
