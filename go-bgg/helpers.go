package bgg

import (
	"math"
	"strconv"
	"strings"
)

// notRanked is the sentinel BGG reports for games without a rank.
const notRanked = "Not Ranked"

// parseIntOr parses s as a base-10 integer, returning def when s is empty or
// not an integer.
func parseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// parseFloatOr parses s as a finite float, returning def otherwise.
func parseFloatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// positiveOr returns n when it is at least 1, def otherwise.
// BGG reports missing player counts as "0".
func positiveOr(n, def int) int {
	if n < 1 {
		return def
	}
	return n
}

// nonNegative clamps n to zero.
func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// clampFloat limits f to [lo, hi].
func clampFloat(f, lo, hi float64) float64 {
	return math.Min(math.Max(f, lo), hi)
}

// extractBoardGameRank returns the board game rank from a list of XML ranks.
// Returns 0 if not ranked, unparsable or not found.
func extractBoardGameRank(ranks []xmlRank) int {
	for _, rank := range ranks {
		if rank.Name == "boardgame" {
			if rank.Value == notRanked {
				return 0
			}
			return nonNegative(parseIntOr(rank.Value, 0))
		}
	}
	return 0
}

// resolveName returns the primary name, falling back to the first name in
// source order, or "" when there are no names at all.
func resolveName(names []xmlNameElem) string {
	for _, name := range names {
		if name.Type == "primary" {
			return name.Value
		}
	}
	if len(names) > 0 {
		return names[0].Value
	}
	return ""
}
