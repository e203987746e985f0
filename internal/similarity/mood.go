package similarity

import (
	"fmt"
	"sort"
	"strings"
)

// MoodProfile is the (energy, valence) target of a named mood.
type MoodProfile struct {
	Name    string
	Energy  float64
	Valence float64
}

var moodProfiles = map[string]MoodProfile{
	"happy":     {Name: "happy", Energy: 0.8, Valence: 0.9},
	"sad":       {Name: "sad", Energy: 0.3, Valence: 0.2},
	"energetic": {Name: "energetic", Energy: 0.9, Valence: 0.7},
	"chill":     {Name: "chill", Energy: 0.4, Valence: 0.5},
}

// LookupMood resolves a mood name, ignoring case and surrounding whitespace.
func LookupMood(name string) (MoodProfile, error) {
	p, ok := moodProfiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return MoodProfile{}, fmt.Errorf("%w: %q (want one of %s)", ErrInvalidMood, name, strings.Join(MoodNames(), ", "))
	}
	return p, nil
}

// Moods returns every registered profile sorted by name.
func Moods() []MoodProfile {
	out := make([]MoodProfile, 0, len(moodProfiles))
	for _, p := range moodProfiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MoodNames returns the registered mood names sorted.
func MoodNames() []string {
	moods := Moods()
	names := make([]string, len(moods))
	for i, m := range moods {
		names[i] = m.Name
	}
	return names
}
