package bgg

// MaxSearchResults caps the number of search hits returned by ParseSearchResults.
const MaxSearchResults = 50

// Default player counts used when the API omits them.
const (
	DefaultMinPlayers = 1
	DefaultMaxPlayers = 4
)

// Normalizer turns raw API documents into catalog records.
type Normalizer struct {
	decoder MarkupDecoder
}

// NewNormalizer creates a Normalizer using d, or XMLDecoder when d is nil.
func NewNormalizer(d MarkupDecoder) *Normalizer {
	if d == nil {
		d = XMLDecoder{}
	}
	return &Normalizer{decoder: d}
}

var defaultNormalizer = NewNormalizer(nil)

// ParseEntry parses the first item of a thing document using the default decoder.
func ParseEntry(raw []byte) (CatalogEntry, error) {
	return defaultNormalizer.ParseEntry(raw)
}

// ParseEntries parses every item of a thing document using the default decoder.
func ParseEntries(raw []byte) ([]CatalogEntry, error) {
	return defaultNormalizer.ParseEntries(raw)
}

// ParseSearchResults parses a search document using the default decoder.
func ParseSearchResults(raw []byte) ([]SearchSummary, error) {
	return defaultNormalizer.ParseSearchResults(raw)
}

// ParseTrending parses a hot list document using the default decoder.
func ParseTrending(raw []byte) ([]TrendingSummary, error) {
	return defaultNormalizer.ParseTrending(raw)
}
