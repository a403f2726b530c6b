package matching

import "github.com/matchmyvibe/roommate-service/internal/core/domain"

// acceptableMatches lists adjacent trait values that earn partial credit when
// the engine is configured for it.
var acceptableMatches = map[domain.TraitKey]map[string][]string{
	domain.TraitDailyRhythm: {
		"morning": {"night"},
		"night":   {"morning"},
	},
	domain.TraitLifestyle: {
		"social": {"chill"},
		"chill":  {"social"},
	},
	domain.TraitRoomVibe: {
		"cozy":    {"minimal"},
		"minimal": {"cozy"},
	},
}

// TraitScore is the share of keys in mine that theirs holds with exactly the
// same value, on a 0 to 10 scale. Either side empty scores 0.
func TraitScore(mine, theirs domain.Traits) float64 {
	return TraitScoreWithAdjacency(mine, theirs, 0)
}

// TraitScoreWithAdjacency is TraitScore where an acceptable adjacent value
// adds credit (0 to 1) instead of nothing.
func TraitScoreWithAdjacency(mine, theirs domain.Traits, credit float64) float64 {
	if mine.Empty() || theirs.Empty() {
		return 0
	}

	var matches float64
	for key, value := range mine.Flat() {
		other, ok := theirs.Get(key)
		switch {
		case !ok:
		case other == value:
			matches++
		case credit > 0 && acceptable(key, value, other):
			matches += credit
		}
	}
	return matches / float64(mine.Len()) * 10
}

func acceptable(key, value, other string) bool {
	for _, candidate := range acceptableMatches[domain.TraitKey(key)][value] {
		if candidate == other {
			return true
		}
	}
	return false
}
