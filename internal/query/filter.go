// Package query filters, sorts and paginates catalog entries. Every function
// here is pure: inputs are never mutated and no I/O is performed.
package query

import (
	"slices"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
)

// FilterSpec describes the active filter. A nil pointer or empty slice means
// no constraint on that axis. All set constraints are ANDed together.
type FilterSpec struct {
	// MinPlayers keeps entries whose maximum player count reaches it.
	MinPlayers *int
	// MaxPlayers keeps entries whose minimum player count does not exceed it.
	MaxPlayers *int

	MinPlayTime   *int
	MaxPlayTime   *int
	MinComplexity *float64
	MaxComplexity *float64
	MinRating     *float64
	MinAge        *int

	// Categories, Mechanics and Designers each match when the entry carries
	// at least one of the listed values.
	Categories []string
	Mechanics  []string
	Designers  []string
}

// IsZero reports whether the spec has no constraints.
func (s FilterSpec) IsZero() bool {
	return s.MinPlayers == nil && s.MaxPlayers == nil &&
		s.MinPlayTime == nil && s.MaxPlayTime == nil &&
		s.MinComplexity == nil && s.MaxComplexity == nil &&
		s.MinRating == nil && s.MinAge == nil &&
		len(s.Categories) == 0 && len(s.Mechanics) == 0 && len(s.Designers) == 0
}

// Clear removes every constraint.
func (s *FilterSpec) Clear() {
	*s = FilterSpec{}
}

// Matches reports whether e satisfies every constraint in s.
func (s FilterSpec) Matches(e bgg.CatalogEntry) bool {
	// Player bounds are a range-overlap test, not an exact match.
	if s.MinPlayers != nil && e.MaxPlayers < *s.MinPlayers {
		return false
	}
	if s.MaxPlayers != nil && e.MinPlayers > *s.MaxPlayers {
		return false
	}
	if s.MinPlayTime != nil && e.PlayingTimeMinutes < *s.MinPlayTime {
		return false
	}
	if s.MaxPlayTime != nil && e.PlayingTimeMinutes > *s.MaxPlayTime {
		return false
	}
	if s.MinComplexity != nil && e.ComplexityWeight < *s.MinComplexity {
		return false
	}
	if s.MaxComplexity != nil && e.ComplexityWeight > *s.MaxComplexity {
		return false
	}
	if s.MinRating != nil && e.AverageRating < *s.MinRating {
		return false
	}
	if s.MinAge != nil && e.MinAge < *s.MinAge {
		return false
	}
	return anyOf(s.Categories, e.Categories) &&
		anyOf(s.Mechanics, e.Mechanics) &&
		anyOf(s.Designers, e.Designers)
}

// anyOf is true when want is empty or shares at least one value with have.
func anyOf(want, have []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}

// Filter returns the entries matching s, in input order.
func Filter(entries []bgg.CatalogEntry, s FilterSpec) []bgg.CatalogEntry {
	out := make([]bgg.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if s.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Int returns a pointer to v, for building a FilterSpec.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for building a FilterSpec.
func Float(v float64) *float64 { return &v }
