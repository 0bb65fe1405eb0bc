package bgg

import (
	"context"
	"net/url"
)

// Hot retrieves the current hot board games list.
func (a *API) Hot(ctx context.Context) ([]TrendingSummary, error) {
	q := url.Values{}
	q.Set("type", "boardgame")

	body, err := a.fetcher.FetchRaw(ctx, "/hot", q)
	if err != nil {
		return nil, err
	}
	return a.normalizer.ParseTrending(body)
}

// ParseTrending parses a hot list document.
func (n *Normalizer) ParseTrending(raw []byte) ([]TrendingSummary, error) {
	doc, err := parseXML[xmlHot](n.decoder, raw, "failed to parse hot games response")
	if err != nil {
		return nil, err
	}

	games := make([]TrendingSummary, 0, len(doc.Items))
	for _, item := range doc.Items {
		g := TrendingSummary{
			ID:           parseIntOr(item.ID, 0),
			Rank:         parseIntOr(item.Rank, 0),
			Name:         item.Name.Value,
			ThumbnailURL: item.Thumbnail.Value,
		}
		if item.YearValue != nil {
			g.YearPublished = parseIntOr(item.YearValue.Value, 0)
			g.HasYear = true
		}
		games = append(games, g)
	}
	return games, nil
}
