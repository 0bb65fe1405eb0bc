// Package bgg provides a client and response normalizer for the BoardGameGeek XML API.
package bgg

// CatalogEntry is the canonical representation of one board game.
type CatalogEntry struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	YearPublished      int      `json:"year_published"` // 0 = unknown
	ThumbnailURL       string   `json:"thumbnail_url"`
	ImageURL           string   `json:"image_url"`
	MinPlayers         int      `json:"min_players"`
	MaxPlayers         int      `json:"max_players"`
	PlayingTimeMinutes int      `json:"playing_time"`
	MinPlayTimeMinutes int      `json:"min_play_time"`
	MaxPlayTimeMinutes int      `json:"max_play_time"`
	MinAge             int      `json:"min_age"`
	Description        string   `json:"description"` // raw, may contain markup
	AverageRating      float64  `json:"average_rating"`
	NumRatings         int      `json:"num_ratings"`
	ComplexityWeight   float64  `json:"complexity_weight"`
	Rank               int      `json:"rank"` // 0 = Not Ranked
	Categories         []string `json:"categories"`
	Mechanics          []string `json:"mechanics"`
	Designers          []string `json:"designers"`
	Publishers         []string `json:"publishers"`
}

// Ranked reports whether the entry has a real catalog rank.
func (e CatalogEntry) Ranked() bool {
	return e.Rank > 0
}

// SearchSummary is a lightweight name search hit, used to harvest ids.
type SearchSummary struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	YearPublished int    `json:"year_published"`
}

// TrendingSummary represents a game in the hot list.
type TrendingSummary struct {
	ID            int    `json:"id"`
	Rank          int    `json:"rank"`
	Name          string `json:"name"`
	ThumbnailURL  string `json:"thumbnail_url"`
	YearPublished int    `json:"year_published"`
	HasYear       bool   `json:"has_year"`
}
