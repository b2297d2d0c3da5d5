package entity

import (
	"sort"
	"strings"
)

// SeatSet is a deduplicated set of seat identifiers ("A1", "B12", ...).
// It is the in-memory form of the show ledger field and of the seats
// column on bookings.
type SeatSet map[string]struct{}

// ParseSeatSet parses a comma-joined seat string. Blank fragments and
// surrounding whitespace are dropped, so "A1, ,A2," parses to {A1 A2}.
func ParseSeatSet(s string) SeatSet {
	set := make(SeatSet)
	for _, part := range strings.Split(s, ",") {
		if seat := strings.TrimSpace(part); seat != "" {
			set[seat] = struct{}{}
		}
	}
	return set
}

// NewSeatSet builds a set from individual seat IDs, trimming and
// deduplicating as it goes.
func NewSeatSet(seats []string) SeatSet {
	set := make(SeatSet)
	for _, part := range seats {
		if seat := strings.TrimSpace(part); seat != "" {
			set[seat] = struct{}{}
		}
	}
	return set
}

func (s SeatSet) Len() int { return len(s) }

func (s SeatSet) Contains(seat string) bool {
	_, ok := s[seat]
	return ok
}

// List returns the seats in sorted order.
func (s SeatSet) List() []string {
	seats := make([]string, 0, len(s))
	for seat := range s {
		seats = append(seats, seat)
	}
	sort.Strings(seats)
	return seats
}

// Join renders the canonical stored form: sorted, comma-joined.
func (s SeatSet) Join() string {
	return strings.Join(s.List(), ",")
}

// Union returns a new set containing seats from both sets.
func (s SeatSet) Union(other SeatSet) SeatSet {
	out := make(SeatSet, len(s)+len(other))
	for seat := range s {
		out[seat] = struct{}{}
	}
	for seat := range other {
		out[seat] = struct{}{}
	}
	return out
}

// Intersect returns the seats present in both sets.
func (s SeatSet) Intersect(other SeatSet) SeatSet {
	out := make(SeatSet)
	for seat := range s {
		if _, ok := other[seat]; ok {
			out[seat] = struct{}{}
		}
	}
	return out
}
