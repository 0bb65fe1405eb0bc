package bgg

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// MaxThingIDs is the number of ids the thing endpoint accepts per request.
const MaxThingIDs = 20

// thingFetchConcurrency bounds parallel chunk requests in Things.
const thingFetchConcurrency = 2

// Thing retrieves detailed information about a single game.
func (a *API) Thing(ctx context.Context, id int) (CatalogEntry, error) {
	if id <= 0 {
		return CatalogEntry{}, newNotFoundError(id)
	}
	body, err := a.fetcher.FetchRaw(ctx, "/thing", thingQuery([]int{id}))
	if err != nil {
		return CatalogEntry{}, err
	}
	entry, err := a.normalizer.ParseEntry(body)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return CatalogEntry{}, newNotFoundError(id)
		}
		return CatalogEntry{}, err
	}
	return entry, nil
}

// Things retrieves detailed information about multiple games.
// An empty id list returns immediately without a request. Larger lists are
// split into chunks of MaxThingIDs; the result keeps chunk order.
func (a *API) Things(ctx context.Context, ids []int) ([]CatalogEntry, error) {
	if len(ids) == 0 {
		return []CatalogEntry{}, nil
	}

	chunks := chunkIDs(ids, MaxThingIDs)
	results := make([][]CatalogEntry, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(thingFetchConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			body, err := a.fetcher.FetchRaw(gctx, "/thing", thingQuery(chunk))
			if err != nil {
				return err
			}
			entries, err := a.normalizer.ParseEntries(body)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]CatalogEntry, 0, len(ids))
	for _, r := range results {
		entries = append(entries, r...)
	}
	return entries, nil
}

func thingQuery(ids []int) url.Values {
	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = strconv.Itoa(id)
	}
	q := url.Values{}
	q.Set("id", strings.Join(idStrs, ","))
	q.Set("stats", "1")
	return q
}

func chunkIDs(ids []int, size int) [][]int {
	var chunks [][]int
	for len(ids) > size {
		chunks = append(chunks, ids[:size:size])
		ids = ids[size:]
	}
	return append(chunks, ids)
}

// ParseEntry parses the first item of a thing document.
func (n *Normalizer) ParseEntry(raw []byte) (CatalogEntry, error) {
	doc, err := parseXML[xmlThing](n.decoder, raw, "failed to parse thing response")
	if err != nil {
		return CatalogEntry{}, err
	}
	if len(doc.Items) == 0 {
		return CatalogEntry{}, newNotFoundError(0)
	}
	return convertXMLToEntry(doc.Items[0]), nil
}

// ParseEntries parses every item of a thing document, in source order.
func (n *Normalizer) ParseEntries(raw []byte) ([]CatalogEntry, error) {
	doc, err := parseXML[xmlThing](n.decoder, raw, "failed to parse thing response")
	if err != nil {
		return nil, err
	}
	entries := make([]CatalogEntry, 0, len(doc.Items))
	for _, item := range doc.Items {
		entries = append(entries, convertXMLToEntry(item))
	}
	return entries, nil
}

// convertXMLToEntry converts an XML thing item to a CatalogEntry.
func convertXMLToEntry(item xmlThingItem) CatalogEntry {
	ratings := item.Statistics.Ratings
	minPlayers := positiveOr(parseIntOr(item.MinPlayers.Value, DefaultMinPlayers), DefaultMinPlayers)
	// A missing or inverted maximum never yields a range below the minimum.
	maxPlayers := max(minPlayers, positiveOr(parseIntOr(item.MaxPlayers.Value, 0), max(minPlayers, DefaultMaxPlayers)))
	entry := CatalogEntry{
		ID:                 parseIntOr(item.ID, 0),
		Name:               resolveName(item.Names),
		YearPublished:      parseIntOr(item.YearValue.Value, 0),
		ThumbnailURL:       strings.TrimSpace(item.Thumbnail),
		ImageURL:           strings.TrimSpace(item.Image),
		MinPlayers:         minPlayers,
		MaxPlayers:         maxPlayers,
		PlayingTimeMinutes: nonNegative(parseIntOr(item.PlayingTime.Value, 0)),
		MinPlayTimeMinutes: nonNegative(parseIntOr(item.MinPlayTime.Value, 0)),
		MaxPlayTimeMinutes: nonNegative(parseIntOr(item.MaxPlayTime.Value, 0)),
		MinAge:             nonNegative(parseIntOr(item.MinAge.Value, 0)),
		Description:        item.Description,
		AverageRating:      clampFloat(parseFloatOr(ratings.Average.Value, 0), 0, 10),
		NumRatings:         nonNegative(parseIntOr(ratings.UsersRated.Value, 0)),
		ComplexityWeight:   clampFloat(parseFloatOr(ratings.AverageWeight.Value, 0), 0, 5),
		Rank:               extractBoardGameRank(ratings.Ranks.Ranks),
		Categories:         []string{},
		Mechanics:          []string{},
		Designers:          []string{},
		Publishers:         []string{},
	}

	for _, link := range item.Links {
		switch link.Type {
		case "boardgamecategory":
			entry.Categories = append(entry.Categories, link.Value)
		case "boardgamemechanic":
			entry.Mechanics = append(entry.Mechanics, link.Value)
		case "boardgamedesigner":
			entry.Designers = append(entry.Designers, link.Value)
		case "boardgamepublisher":
			entry.Publishers = append(entry.Publishers, link.Value)
		}
	}

	return entry
}
