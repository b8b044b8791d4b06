package history

import (
	"sort"
	"time"
)

// Record is the one-per-item aggregate derived from possibly many watch
// events. Exactly one record exists per unique media key per run, and
// LastWatched is always the maximum over contributing events.
type Record struct {
	Key         string
	Title       string
	Kind        Kind
	GUID        string
	LastWatched time.Time
	Users       []string
	Ratings     []float64
}

func (r *Record) addUser(name string) {
	if name == "" {
		return
	}
	for _, existing := range r.Users {
		if existing == name {
			return
		}
	}
	r.Users = append(r.Users, name)
}

// SortedByLastWatched returns the records ordered oldest-watched first, the
// order in which the engine processes them.
func SortedByLastWatched(records map[string]*Record) []*Record {
	out := make([]*Record, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastWatched.Equal(out[j].LastWatched) {
			return out[i].Key < out[j].Key
		}
		return out[i].LastWatched.Before(out[j].LastWatched)
	})
	return out
}
