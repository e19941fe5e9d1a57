// Package api wraps the TickerMind backend REST API. Each method performs
// exactly one request/response round trip and propagates failures to the
// caller unchanged.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tickermind/tickermind/internal/format"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx response from the backend. Detail carries the
// "detail" field of the JSON error body when one was present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Client talks to the backend. Construct it with New and inject it into the
// components that need it; there is no package-level instance.
type Client struct {
	http *resty.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// New creates a backend client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	http := resty.New()
	http.SetBaseURL(baseURL)
	http.SetTimeout(DefaultTimeout)
	http.SetHeader("Content-Type", "application/json")
	http.SetHeader("Accept", "application/json")

	c := &Client{http: http}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// decode unmarshals a 2xx body into out, or converts the response into an
// *APIError for any other status.
func decode(resp *resty.Response, out any) error {
	if resp.IsError() {
		detail := resp.String()
		var body struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Detail != "" {
			detail = body.Detail
		}
		return &APIError{StatusCode: resp.StatusCode(), Detail: detail}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	return decode(resp, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	return decode(resp, out)
}

func validateTicker(ticker string) (string, error) {
	ticker = format.NormalizeTicker(ticker)
	if !format.IsValidTicker(ticker) {
		return "", fmt.Errorf("invalid ticker symbol: %q", ticker)
	}
	return ticker, nil
}

// Chat sends one conversational turn to POST /chat.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.post(ctx, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Suggestions fetches the categorized example queries for the chat shell.
func (c *Client) Suggestions(ctx context.Context) (*SuggestionsResponse, error) {
	var out SuggestionsResponse
	if err := c.get(ctx, "/chat/suggestions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardOverview fetches the latest analyses across tickers, optionally
// filtered by signal category.
func (c *Client) DashboardOverview(ctx context.Context, limit int, signalFilter string) (*OverviewResponse, error) {
	params := map[string]string{"limit": strconv.Itoa(limit)}
	if signalFilter != "" {
		params["signal_filter"] = signalFilter
	}
	var out OverviewResponse
	if err := c.get(ctx, "/analysis/dashboard/overview", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TickerAnalysis fetches the full latest analysis for one ticker.
func (c *Client) TickerAnalysis(ctx context.Context, ticker string) (*Analysis, error) {
	ticker, err := validateTicker(ticker)
	if err != nil {
		return nil, err
	}
	var out Analysis
	if err := c.get(ctx, "/analysis/"+ticker, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalysisHistory fetches up to days of past analyses for a ticker.
func (c *Client) AnalysisHistory(ctx context.Context, ticker string, days int) (*AnalysisHistory, error) {
	ticker, err := validateTicker(ticker)
	if err != nil {
		return nil, err
	}
	var out AnalysisHistory
	err = c.get(ctx, "/analysis/"+ticker+"/history",
		map[string]string{"days": strconv.Itoa(days)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TickerSummary fetches the condensed recommendation view for a ticker.
func (c *Client) TickerSummary(ctx context.Context, ticker string) (*TickerSummary, error) {
	ticker, err := validateTicker(ticker)
	if err != nil {
		return nil, err
	}
	var out TickerSummary
	if err := c.get(ctx, "/analysis/"+ticker+"/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestPrice fetches the most recent close with change info.
func (c *Client) LatestPrice(ctx context.Context, ticker string) (*LatestPrice, error) {
	ticker, err := validateTicker(ticker)
	if err != nil {
		return nil, err
	}
	var out LatestPrice
	if err := c.get(ctx, "/prices/"+ticker+"/latest", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PriceHistory fetches up to days of daily bars, oldest first.
func (c *Client) PriceHistory(ctx context.Context, ticker string, days int) ([]PriceBar, error) {
	ticker, err := validateTicker(ticker)
	if err != nil {
		return nil, err
	}
	var out []PriceBar
	err = c.get(ctx, "/prices/"+ticker,
		map[string]string{"days": strconv.Itoa(days)}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PriceRange fetches bars plus summary statistics for a date range.
func (c *Client) PriceRange(ctx context.Context, ticker string, start, end time.Time) (*PriceRange, error) {
	ticker, err := validateTicker(ticker)
	if err != nil {
		return nil, err
	}
	var out PriceRange
	err = c.get(ctx, "/prices/"+ticker+"/range", map[string]string{
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AvailableTickers lists every ticker the backend has price data for.
func (c *Client) AvailableTickers(ctx context.Context) ([]string, error) {
	var out struct {
		Tickers []string `json:"tickers"`
	}
	if err := c.get(ctx, "/prices/tickers/available", nil, &out); err != nil {
		return nil, err
	}
	return out.Tickers, nil
}

// News fetches recent articles for a ticker.
func (c *Client) News(ctx context.Context, ticker string, limit, days int) ([]NewsArticle, error) {
	ticker, err := validateTicker(ticker)
	if err != nil {
		return nil, err
	}
	var out []NewsArticle
	err = c.get(ctx, "/news/"+ticker, map[string]string{
		"limit": strconv.Itoa(limit),
		"days":  strconv.Itoa(days),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NewsSources fetches the per-source article breakdown for a ticker.
func (c *Client) NewsSources(ctx context.Context, ticker string) (*NewsSources, error) {
	ticker, err := validateTicker(ticker)
	if err != nil {
		return nil, err
	}
	var out NewsSources
	if err := c.get(ctx, "/news/"+ticker+"/sources", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchNews searches article titles and bodies by keyword.
func (c *Client) SearchNews(ctx context.Context, query string, limit int) (*NewsSearchResult, error) {
	var out NewsSearchResult
	err := c.get(ctx, "/news/search/", map[string]string{
		"q":     query,
		"limit": strconv.Itoa(limit),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Ingest triggers a background ingestion job for one ticker.
func (c *Client) Ingest(ctx context.Context, ticker string) (*IngestionStatus, error) {
	ticker, err := validateTicker(ticker)
	if err != nil {
		return nil, err
	}
	var out IngestionStatus
	if err := c.post(ctx, "/ingest/"+ticker, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IngestBatch triggers ingestion for up to ten tickers at once.
func (c *Client) IngestBatch(ctx context.Context, tickers []string) error {
	validated := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t, err := validateTicker(t)
		if err != nil {
			return err
		}
		validated = append(validated, t)
	}
	return c.post(ctx, "/ingest/batch", validated, nil)
}

// Health checks the API process.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DatabaseHealth checks the backing database.
func (c *Client) DatabaseHealth(ctx context.Context) (*DatabaseHealth, error) {
	var out DatabaseHealth
	if err := c.get(ctx, "/health/db", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
