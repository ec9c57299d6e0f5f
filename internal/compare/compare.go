// Package compare holds the session-scoped comparison set: a bounded set of
// car ids carried in a cookie, never persisted to the database.
package compare

import (
	"strconv"
	"strings"
)

// Cap is the hard limit on how many cars a session may compare at once.
const Cap = 4

type Set struct {
	ids []int64
}

// Parse decodes the cookie form ("1,5,9"). Junk and duplicate entries are
// dropped; anything beyond Cap is ignored.
func Parse(s string) Set {
	var set Set
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id < 1 {
			continue
		}
		set.Add(id)
	}
	return set
}

// Encode renders the set back into its cookie form.
func (s Set) Encode() string {
	parts := make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func (s Set) Contains(id int64) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Add inserts id, keeping insertion order. Adding a present id is a success
// no-op; adding a fifth distinct id is refused and leaves the set unchanged.
func (s *Set) Add(id int64) bool {
	if s.Contains(id) {
		return true
	}
	if len(s.ids) >= Cap {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove drops id if present; removing an absent id is a silent no-op.
func (s *Set) Remove(id int64) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// Keep retains only the ids present in alive, in the set's own order. Used to
// prune ids whose cars have been deleted since they were added.
func (s *Set) Keep(alive map[int64]bool) {
	kept := s.ids[:0]
	for _, v := range s.ids {
		if alive[v] {
			kept = append(kept, v)
		}
	}
	s.ids = kept
}

func (s Set) IDs() []int64 { return append([]int64(nil), s.ids...) }

func (s Set) Len() int { return len(s.ids) }

func (s Set) Full() bool { return len(s.ids) >= Cap }
