package domain

import "encoding/json"

type TraitKey string

const (
	TraitDailyRhythm   TraitKey = "daily_rhythm"
	TraitLifestyle     TraitKey = "lifestyle"
	TraitStudyHabits   TraitKey = "study_habits"
	TraitRoomVibe      TraitKey = "room_vibe"
	TraitConflictStyle TraitKey = "conflict_style"
)

// TraitKeys is the vocabulary collected by the onboarding agent.
var TraitKeys = []TraitKey{
	TraitDailyRhythm,
	TraitLifestyle,
	TraitStudyHabits,
	TraitRoomVibe,
	TraitConflictStyle,
}

func (k TraitKey) IsKnown() bool {
	switch k {
	case TraitDailyRhythm, TraitLifestyle, TraitStudyHabits, TraitRoomVibe, TraitConflictStyle:
		return true
	}
	return false
}

// Traits holds personality traits keyed by the fixed vocabulary. Keys outside
// the vocabulary are kept in Extra and are scored like any other key.
// The JSON form is a flat object.
type Traits struct {
	Known map[TraitKey]string
	Extra map[string]string
}

func NewTraits(values map[string]string) Traits {
	var t Traits
	for key, value := range values {
		t.Set(key, value)
	}
	return t
}

// Set stores value under key, replacing any previous value.
func (t *Traits) Set(key, value string) {
	if k := TraitKey(key); k.IsKnown() {
		if t.Known == nil {
			t.Known = make(map[TraitKey]string)
		}
		t.Known[k] = value
		return
	}
	if t.Extra == nil {
		t.Extra = make(map[string]string)
	}
	t.Extra[key] = value
}

func (t Traits) Get(key string) (string, bool) {
	if k := TraitKey(key); k.IsKnown() {
		v, ok := t.Known[k]
		return v, ok
	}
	v, ok := t.Extra[key]
	return v, ok
}

func (t Traits) Len() int {
	return len(t.Known) + len(t.Extra)
}

func (t Traits) Empty() bool {
	return t.Len() == 0
}

// Flat returns every trait in a single map.
func (t Traits) Flat() map[string]string {
	flat := make(map[string]string, t.Len())
	for k, v := range t.Known {
		flat[string(k)] = v
	}
	for k, v := range t.Extra {
		flat[k] = v
	}
	return flat
}

// Merge applies every key of other on top of t.
func (t *Traits) Merge(other Traits) {
	for k, v := range other.Flat() {
		t.Set(k, v)
	}
}

func (t Traits) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Flat())
}

func (t *Traits) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = NewTraits(raw)
	return nil
}
