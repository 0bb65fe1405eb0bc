package bgg

import (
	"context"
	"net/url"
	"strings"
)

// Search searches for board games by name.
// A blank query returns no results without issuing a request.
func (a *API) Search(ctx context.Context, query string) ([]SearchSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchSummary{}, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("type", "boardgame")

	body, err := a.fetcher.FetchRaw(ctx, "/search", q)
	if err != nil {
		return nil, err
	}
	return a.normalizer.ParseSearchResults(body)
}

// SearchIDs runs Search and returns at most limit ids in result order.
func (a *API) SearchIDs(ctx context.Context, query string, limit int) ([]int, error) {
	results, err := a.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	ids := make([]int, 0, len(results))
	for _, r := range results {
		if r.ID > 0 {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

// ParseSearchResults parses a search document, keeping at most
// MaxSearchResults hits in source order.
func (n *Normalizer) ParseSearchResults(raw []byte) ([]SearchSummary, error) {
	doc, err := parseXML[xmlItems](n.decoder, raw, "failed to parse search response")
	if err != nil {
		return nil, err
	}

	items := doc.Items
	if len(items) > MaxSearchResults {
		items = items[:MaxSearchResults]
	}

	results := make([]SearchSummary, 0, len(items))
	for _, item := range items {
		year := 0
		if item.YearValue != nil {
			year = parseIntOr(item.YearValue.Value, 0)
		}
		results = append(results, SearchSummary{
			ID:            parseIntOr(item.ID, 0),
			Name:          resolveName(item.Names),
			YearPublished: year,
		})
	}
	return results, nil
}
