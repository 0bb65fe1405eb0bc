package bgg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
)

func TestProxyClient_FallsThrough(t *testing.T) {
	var firstCalls, secondCalls atomic.Int32
	var gotTarget string

	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstCalls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer first.Close()

	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondCalls.Add(1)
		gotTarget = r.URL.Query().Get("url")
		w.Write([]byte("<items></items>"))
	}))
	defer second.Close()

	client := NewProxyClient(ProxyConfig{
		Endpoints: []string{first.URL + "/?url=", second.URL + "/?url="},
		BaseURL:   "https://boardgamegeek.com/xmlapi2",
	})

	body, err := client.FetchRaw(context.Background(), "/thing", url.Values{"id": {"13,822"}, "stats": {"1"}})
	if err != nil {
		t.Fatalf("FetchRaw() error = %v", err)
	}
	if string(body) != "<items></items>" {
		t.Errorf("body = %q", string(body))
	}
	if firstCalls.Load() != 1 || secondCalls.Load() != 1 {
		t.Errorf("calls = %d/%d, want 1/1", firstCalls.Load(), secondCalls.Load())
	}

	want := "https://boardgamegeek.com/xmlapi2/thing?id=13%2C822&stats=1"
	if gotTarget != want {
		t.Errorf("forwarded target = %q, want %q", gotTarget, want)
	}
}

func TestProxyClient_FirstEndpointWins(t *testing.T) {
	var secondCalls atomic.Int32

	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<items></items>"))
	}))
	defer first.Close()

	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondCalls.Add(1)
	}))
	defer second.Close()

	client := NewProxyClient(ProxyConfig{Endpoints: []string{first.URL + "/?url=", second.URL + "/?url="}})

	if _, err := client.FetchRaw(context.Background(), "/hot", nil); err != nil {
		t.Fatalf("FetchRaw() error = %v", err)
	}
	if secondCalls.Load() != 0 {
		t.Errorf("second endpoint should not be tried, got %d calls", secondCalls.Load())
	}
}

func TestProxyClient_AllFail(t *testing.T) {
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer first.Close()

	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer second.Close()

	secondEndpoint := second.URL + "/?url="
	client := NewProxyClient(ProxyConfig{Endpoints: []string{first.URL + "/?url=", secondEndpoint}})

	_, err := client.FetchRaw(context.Background(), "/hot", nil)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
	if netErr.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", netErr.Attempts)
	}
	if netErr.Endpoint != secondEndpoint {
		t.Errorf("Endpoint = %q, want %q", netErr.Endpoint, secondEndpoint)
	}
	if netErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want last failure %d", netErr.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestProxyClient_NoEndpoints(t *testing.T) {
	client := NewProxyClient(ProxyConfig{Endpoints: []string{}})

	_, err := client.FetchRaw(context.Background(), "/hot", nil)
	if !IsTransport(err) {
		t.Errorf("expected transport failure, got %T: %v", err, err)
	}
}

func TestProxyClient_NoTokenRequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("expected no Authorization header, got %q", auth)
		}
		w.Write([]byte("<items></items>"))
	}))
	defer server.Close()

	client := NewProxyClient(ProxyConfig{Endpoints: []string{server.URL + "/?url="}})

	if _, err := client.FetchRaw(context.Background(), "/hot", nil); err != nil {
		t.Fatalf("FetchRaw() error = %v", err)
	}
}

func TestProxyClient_TokenForwardingIsOptIn(t *testing.T) {
	tests := []struct {
		name    string
		forward bool
		want    string
	}{
		{"withheld by default", false, ""},
		{"forwarded when enabled", true, "Bearer secret-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				w.Write([]byte("<items></items>"))
			}))
			defer server.Close()

			client := NewProxyClient(ProxyConfig{
				Endpoints:    []string{server.URL + "/?url="},
				Token:        " secret-token ",
				ForwardToken: tt.forward,
			})
			if _, err := client.FetchRaw(context.Background(), "/hot", nil); err != nil {
				t.Fatalf("FetchRaw() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Authorization = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProxyClient_DefaultEndpoints(t *testing.T) {
	client := NewProxyClient(ProxyConfig{})
	if len(client.endpoints) != len(DefaultProxyEndpoints) {
		t.Fatalf("endpoints = %v, want defaults", client.endpoints)
	}
}
