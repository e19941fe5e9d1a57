package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestChatSendsHistoryAndTicker(t *testing.T) {
	var got ChatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ChatResponse{
			Response: "Looking good.",
			Ticker:   "AAPL",
			Signal:   "BUY",
		})
	})

	resp, err := client.Chat(context.Background(), ChatRequest{
		Query:  "Should I buy AAPL?",
		Ticker: "AAPL",
		ChatHistory: []HistoryTurn{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Response != "Looking good." || resp.Signal != "BUY" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got.Query != "Should I buy AAPL?" || got.Ticker != "AAPL" {
		t.Fatalf("request body not forwarded: %+v", got)
	}
	if len(got.ChatHistory) != 2 || got.ChatHistory[1].Content != "hello" {
		t.Fatalf("chat history not forwarded: %+v", got.ChatHistory)
	}
}

func TestErrorDetailSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"detail": "No price data found for ticker ZZZZ",
		})
	})

	_, err := client.LatestPrice(context.Background(), "ZZZZ")
	if err == nil {
		t.Fatalf("expected error for 404")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Detail != "No price data found for ticker ZZZZ" {
		t.Fatalf("detail = %q", apiErr.Detail)
	}
}

func TestErrorWithoutJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.Health(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", apiErr.StatusCode)
	}
}

func TestDashboardOverviewParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "5" || q.Get("signal_filter") != "BUY" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(OverviewResponse{
			Count: 1,
			Analyses: []AnalysisSummary{
				{Ticker: "AAPL", Signal: "BUY", Confidence: 0.67},
			},
			SignalDistribution: map[string]int{"BUY": 1},
		})
	})

	out, err := client.DashboardOverview(context.Background(), 5, "BUY")
	if err != nil {
		t.Fatalf("DashboardOverview: %v", err)
	}
	if out.Count != 1 || out.Analyses[0].Ticker != "AAPL" {
		t.Fatalf("unexpected overview: %+v", out)
	}
}

func TestInvalidTickerRejectedLocally(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if _, err := client.News(context.Background(), "not-a-ticker", 5, 7); err == nil {
		t.Fatalf("expected validation error")
	}
	if called {
		t.Fatalf("invalid ticker should not reach the backend")
	}
}

func TestNewsQueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/news/TSLA" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("limit") != "3" || q.Get("days") != "7" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]NewsArticle{
			{ID: 1, Ticker: "TSLA", Title: "Tesla news", URL: "https://example.com"},
		})
	})

	articles, err := client.News(context.Background(), "tsla", 3, 7)
	if err != nil {
		t.Fatalf("News: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Tesla news" {
		t.Fatalf("unexpected articles: %+v", articles)
	}
}

func TestPriceRangeQueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prices/MSFT/range" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("start_date") != "2026-01-05" || q.Get("end_date") != "2026-02-06" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(PriceRange{
			Ticker:     "MSFT",
			StartDate:  "2026-01-05",
			EndDate:    "2026-02-06",
			DataPoints: 2,
			Summary:    RangeSummary{HighestClose: 420.5, LowestClose: 401.1},
			Prices: []PriceBar{
				{Date: "2026-01-05", Close: 401.1},
				{Date: "2026-02-06", Close: 420.5},
			},
		})
	})

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)
	rng, err := client.PriceRange(context.Background(), "msft", start, end)
	if err != nil {
		t.Fatalf("PriceRange: %v", err)
	}
	if rng.DataPoints != 2 || rng.Summary.HighestClose != 420.5 {
		t.Fatalf("unexpected range: %+v", rng)
	}
	if len(rng.Prices) != 2 || rng.Prices[1].Date != "2026-02-06" {
		t.Fatalf("unexpected bars: %+v", rng.Prices)
	}
}
