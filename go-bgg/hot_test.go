package bgg

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestHot(t *testing.T) {
	testData, err := os.ReadFile("testdata/hot_response.xml")
	if err != nil {
		t.Fatalf("failed to read test data: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request path
		if r.URL.Path != "/hot" {
			t.Errorf("expected path '/hot', got '%s'", r.URL.Path)
		}

		// Verify query parameters
		typeParam := r.URL.Query().Get("type")
		if typeParam != "boardgame" {
			t.Errorf("expected type 'boardgame', got '%s'", typeParam)
		}

		w.WriteHeader(http.StatusOK)
		w.Write(testData)
	}))
	defer server.Close()

	api := createTestAPI(t, server)

	games, err := api.Hot(context.Background())
	if err != nil {
		t.Fatalf("Hot failed: %v", err)
	}

	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}

	// Verify first game
	if games[0].ID != 224517 {
		t.Errorf("expected ID 224517, got %d", games[0].ID)
	}
	if games[0].Rank != 1 {
		t.Errorf("expected Rank 1, got %d", games[0].Rank)
	}
	if games[0].Name != "Brass: Birmingham" {
		t.Errorf("expected name 'Brass: Birmingham', got '%s'", games[0].Name)
	}
	if games[0].YearPublished != 2018 || !games[0].HasYear {
		t.Errorf("expected year 2018, got %d (has=%v)", games[0].YearPublished, games[0].HasYear)
	}
	if games[0].ThumbnailURL == "" {
		t.Error("expected non-empty ThumbnailURL")
	}

	// Year is optional in the hot list
	if games[2].HasYear || games[2].YearPublished != 0 {
		t.Errorf("expected no year for third game, got %d (has=%v)", games[2].YearPublished, games[2].HasYear)
	}
	if games[2].Rank != 3 {
		t.Errorf("expected Rank 3, got %d", games[2].Rank)
	}
}

func TestTrendingSummary_JSON(t *testing.T) {
	testData, err := os.ReadFile("testdata/hot_response.xml")
	if err != nil {
		t.Fatalf("failed to read test data: %v", err)
	}

	games, err := ParseTrending(testData)
	if err != nil {
		t.Fatalf("ParseTrending failed: %v", err)
	}

	data, err := json.Marshal(games[0])
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	for _, field := range []string{"id", "rank", "name", "thumbnail_url", "year_published"} {
		if _, ok := parsed[field]; !ok {
			t.Errorf("expected JSON field %q", field)
		}
	}
}

func TestHot_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	api := createTestAPI(t, server)

	_, err := api.Hot(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !IsTransport(err) {
		t.Errorf("expected transport failure, got %T", err)
	}
}
