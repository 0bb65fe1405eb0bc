// Command bgg-probe checks BGG API connectivity from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	bgg "github.com/hiroaqii/bgg-shelf/go-bgg"
)

func main() {
	token := os.Getenv("BGG_TOKEN")
	useProxy := os.Getenv("BGG_PROXY") == "1"
	if token == "" && !useProxy {
		fmt.Println("Error: BGG_TOKEN environment variable is not set")
		fmt.Println("Usage: BGG_TOKEN=your-token go run . <search-query>")
		fmt.Println("       BGG_PROXY=1 go run . <search-query>")
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Println("Error: search query is required")
		fmt.Println("Usage: BGG_TOKEN=your-token go run . <search-query>")
		os.Exit(1)
	}

	query := os.Args[1]

	var fetcher bgg.Fetcher = bgg.NewClient(bgg.Config{Token: token})
	if useProxy {
		fetcher = bgg.NewProxyClient(bgg.ProxyConfig{Token: token})
	}
	api := bgg.NewAPI(fetcher, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Println("=== Testing Search API ===")
	fmt.Printf("Searching for '%s'...\n", query)

	results, err := api.Search(ctx, query)
	if err != nil {
		fmt.Printf("Error searching games: %s\n", bgg.Describe(err))
		os.Exit(1)
	}

	fmt.Printf("Found %d results:\n\n", len(results))
	ids := make([]int, 0, 5)
	for i, game := range results {
		if i >= 10 {
			fmt.Printf("... and %d more results\n", len(results)-10)
			break
		}
		fmt.Printf("  [%d] %s (%d)\n", game.ID, game.Name, game.YearPublished)
		if len(ids) < cap(ids) {
			ids = append(ids, game.ID)
		}
	}

	if len(ids) == 0 {
		fmt.Println("\n=== Test Complete ===")
		return
	}

	fmt.Println("\n=== Testing Thing API ===")
	fmt.Printf("Getting details for %v...\n", ids)

	entries, err := api.Things(ctx, ids)
	if err != nil {
		fmt.Printf("Error getting games: %s\n", bgg.Describe(err))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, e := range entries {
		e.Description = ""
		if err := enc.Encode(e); err != nil {
			fmt.Printf("Error encoding entry: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("\n=== Test Complete ===")
}
