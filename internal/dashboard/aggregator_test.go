package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/tickermind/tickermind/internal/api"
)

type fakeBackend struct {
	mu sync.Mutex

	overviewFn   func(limit int, filter string) (*api.OverviewResponse, error)
	priceErr     map[string]error
	priceStarted chan string   // receives the ticker when a price fetch begins
	priceRelease chan struct{} // when non-nil, price fetches wait on it
	newsErr      error
	newsTickers  []string
}

func (f *fakeBackend) DashboardOverview(ctx context.Context, limit int, filter string) (*api.OverviewResponse, error) {
	return f.overviewFn(limit, filter)
}

func (f *fakeBackend) LatestPrice(ctx context.Context, ticker string) (*api.LatestPrice, error) {
	f.mu.Lock()
	started := f.priceStarted
	release := f.priceRelease
	err := f.priceErr[ticker]
	f.mu.Unlock()
	if started != nil {
		started <- ticker
	}
	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	return &api.LatestPrice{Ticker: ticker, Price: 100, ChangePercent: 1.5}, nil
}

func (f *fakeBackend) News(ctx context.Context, ticker string, limit, days int) ([]api.NewsArticle, error) {
	f.mu.Lock()
	f.newsTickers = append(f.newsTickers, ticker)
	err := f.newsErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return []api.NewsArticle{{Ticker: ticker, Title: ticker + " headline"}}, nil
}

func overviewOf(tickers ...string) *api.OverviewResponse {
	out := &api.OverviewResponse{Count: len(tickers)}
	for _, t := range tickers {
		out.Analyses = append(out.Analyses, api.AnalysisSummary{
			Ticker: t, Signal: "BUY", Confidence: 0.6,
		})
	}
	return out
}

func TestRefreshToleratesPartialPriceFailure(t *testing.T) {
	backend := &fakeBackend{
		overviewFn: func(limit int, filter string) (*api.OverviewResponse, error) {
			return overviewOf("A", "B", "C"), nil
		},
		priceErr: map[string]error{"B": errors.New("price backend down")},
	}
	agg := NewAggregator(backend, 5, 7)

	snap, err := agg.Refresh(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snap.Prices["A"] == nil || snap.Prices["C"] == nil {
		t.Fatalf("expected prices for A and C, got %v", snap.Prices)
	}
	if _, ok := snap.Prices["B"]; ok {
		t.Fatalf("price for B should be absent")
	}
	if len(snap.News) != 1 || snap.News[0].Ticker != "A" {
		t.Fatalf("news should cover the first ticker, got %+v", snap.News)
	}
}

func TestRefreshFailsWhenOverviewFails(t *testing.T) {
	backend := &fakeBackend{
		overviewFn: func(limit int, filter string) (*api.OverviewResponse, error) {
			return nil, errors.New("boom")
		},
	}
	agg := NewAggregator(backend, 5, 7)

	if _, err := agg.Refresh(context.Background(), 10, ""); err == nil {
		t.Fatalf("expected refresh failure on overview error")
	}
	if agg.Snapshot() != nil {
		t.Fatalf("failed refresh must not publish a snapshot")
	}
}

func TestRefreshNewsFailureIsEmptyNotFatal(t *testing.T) {
	backend := &fakeBackend{
		overviewFn: func(limit int, filter string) (*api.OverviewResponse, error) {
			return overviewOf("A"), nil
		},
		newsErr: errors.New("news backend down"),
	}
	agg := NewAggregator(backend, 5, 7)

	snap, err := agg.Refresh(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(snap.News) != 0 {
		t.Fatalf("news should be empty on failure, got %+v", snap.News)
	}
	if snap.Prices["A"] == nil {
		t.Fatalf("price for A missing")
	}
}

func TestRefreshEmptyOverviewSkipsFanOut(t *testing.T) {
	backend := &fakeBackend{
		overviewFn: func(limit int, filter string) (*api.OverviewResponse, error) {
			return &api.OverviewResponse{Count: 0}, nil
		},
	}
	agg := NewAggregator(backend, 5, 7)

	snap, err := agg.Refresh(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(snap.Analyses) != 0 || len(snap.Prices) != 0 || len(snap.News) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
	if len(backend.newsTickers) != 0 {
		t.Fatalf("news must not be fetched for an empty overview")
	}
}

func TestSupersededRefreshDoesNotPublish(t *testing.T) {
	release := make(chan struct{})
	started := make(chan string, 1)
	backend := &fakeBackend{
		overviewFn: func(limit int, filter string) (*api.OverviewResponse, error) {
			if filter == "BUY" {
				return overviewOf("OLD"), nil
			}
			return overviewOf("NEW"), nil
		},
	}
	agg := NewAggregator(backend, 5, 7)

	// First refresh blocks inside its price fan-out.
	backend.mu.Lock()
	backend.priceStarted = started
	backend.priceRelease = release
	backend.mu.Unlock()
	firstDone := make(chan error, 1)
	go func() {
		_, err := agg.Refresh(context.Background(), 10, "BUY")
		firstDone <- err
	}()
	<-started // price fetch for OLD is in flight

	// Second refresh (filter change) runs to completion unblocked.
	backend.mu.Lock()
	backend.priceStarted = nil
	backend.priceRelease = nil
	backend.mu.Unlock()
	snap, err := agg.Refresh(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	if snap.Analyses[0].Ticker != "NEW" {
		t.Fatalf("second refresh snapshot = %+v", snap.Analyses)
	}

	// Let the first refresh finish; it must be suppressed.
	close(release)
	if err := <-firstDone; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("first refresh error = %v, want ErrSuperseded", err)
	}
	if got := agg.Snapshot().Analyses[0].Ticker; got != "NEW" {
		t.Fatalf("published snapshot overwritten by stale refresh: %s", got)
	}
}

func TestComputeStats(t *testing.T) {
	analyses := []api.AnalysisSummary{
		{Ticker: "A", Signal: "BUY", Confidence: 0.5},
		{Ticker: "B", Signal: "BUY", Confidence: 0.7},
		{Ticker: "C", Signal: "SELL", Confidence: 0.6},
		{Ticker: "D", Signal: "HOLD", Confidence: 0.6},
	}
	stats := ComputeStats(analyses)

	if got := stats.AverageConfidence.StringFixed(2); got != "0.60" {
		t.Fatalf("average confidence = %s, want 0.60", got)
	}
	if got := stats.SignalShare["BUY"].StringFixed(1); got != "50.0" {
		t.Fatalf("BUY share = %s, want 50.0", got)
	}
	if got := stats.SignalShare["SELL"].StringFixed(1); got != "25.0" {
		t.Fatalf("SELL share = %s, want 25.0", got)
	}

	empty := ComputeStats(nil)
	if !empty.AverageConfidence.IsZero() || len(empty.SignalShare) != 0 {
		t.Fatalf("empty stats not zero: %+v", empty)
	}
}

// Guard against goroutine leaks in repeated refreshes: every fan-out must
// settle before publish.
func TestRepeatedRefreshes(t *testing.T) {
	n := 0
	backend := &fakeBackend{
		overviewFn: func(limit int, filter string) (*api.OverviewResponse, error) {
			n++
			return overviewOf(fmt.Sprintf("T%d", n)), nil
		},
	}
	agg := NewAggregator(backend, 5, 7)

	for i := 0; i < 5; i++ {
		if _, err := agg.Refresh(context.Background(), 10, ""); err != nil {
			t.Fatalf("refresh %d: %v", i, err)
		}
	}
	if got := agg.Snapshot().Analyses[0].Ticker; got != "T5" {
		t.Fatalf("latest snapshot = %s, want T5", got)
	}
}
