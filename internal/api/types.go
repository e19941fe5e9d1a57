package api

// Request and response shapes for the backend REST API. Field names follow
// the backend's JSON contract exactly; optional fields are pointers so a
// missing value survives the round trip as nil.

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Query       string        `json:"query"`
	Ticker      string        `json:"ticker,omitempty"`
	ChatHistory []HistoryTurn `json:"chat_history,omitempty"`
	Structured  bool          `json:"structured"`
}

// HistoryTurn is one prior conversation turn sent back as context.
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Source is a news reference cited by a chat answer.
type Source struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Source      string  `json:"source"`
	PublishedAt string  `json:"published_at"`
	Similarity  float64 `json:"similarity"`
}

// ChatResponse is the answer to POST /chat.
type ChatResponse struct {
	Response         string   `json:"response"`
	Ticker           string   `json:"ticker,omitempty"`
	Signal           string   `json:"signal,omitempty"`
	Confidence       *float64 `json:"confidence,omitempty"`
	Sources          []Source `json:"sources"`
	ContextRetrieved bool     `json:"context_retrieved"`
	Timestamp        string   `json:"timestamp"`
	Intent           string   `json:"intent,omitempty"`
	Handler          string   `json:"handler,omitempty"`
}

// SuggestionsResponse is GET /chat/suggestions.
type SuggestionsResponse struct {
	Categories map[string][]string `json:"categories"`
}

// AnalysisSummary is one row of the dashboard overview.
type AnalysisSummary struct {
	Ticker     string   `json:"ticker"`
	Date       string   `json:"date"`
	Signal     string   `json:"signal"`
	Confidence float64  `json:"confidence"`
	TopReason  string   `json:"top_reason"`
	RSI        *float64 `json:"rsi"`
}

// OverviewResponse is GET /analysis/dashboard/overview.
type OverviewResponse struct {
	Count              int               `json:"count"`
	SignalDistribution map[string]int    `json:"signal_distribution"`
	Analyses           []AnalysisSummary `json:"analyses"`
	Timestamp          string            `json:"timestamp"`
	Message            string            `json:"message,omitempty"`
}

// Analysis is the full per-ticker analysis from GET /analysis/{ticker}.
type Analysis struct {
	Ticker     string         `json:"ticker"`
	Date       string         `json:"date"`
	Signal     string         `json:"signal"`
	Confidence float64        `json:"confidence"`
	Reasons    []string       `json:"reasons"`
	RSI        *float64       `json:"rsi"`
	MACDValue  *float64       `json:"macd_value"`
	MACDSignal *float64       `json:"macd_signal"`
	SMA20      *float64       `json:"sma_20"`
	SMA50      *float64       `json:"sma_50"`
	Indicators map[string]any `json:"indicators"`
}

// AnalysisHistory is GET /analysis/{ticker}/history.
type AnalysisHistory struct {
	Ticker     string     `json:"ticker"`
	DataPoints int        `json:"data_points"`
	History    []Analysis `json:"history"`
}

// KeyIndicators is the condensed indicator block in a ticker summary.
type KeyIndicators struct {
	RSI               *float64 `json:"rsi"`
	RSIInterpretation string   `json:"rsi_interpretation,omitempty"`
	PriceVsSMA20      string   `json:"price_vs_sma20,omitempty"`
}

// TickerSummary is GET /analysis/{ticker}/summary.
type TickerSummary struct {
	Ticker         string        `json:"ticker"`
	Date           string        `json:"date"`
	Signal         string        `json:"signal"`
	Confidence     float64       `json:"confidence"`
	Recommendation string        `json:"recommendation"`
	KeyReasons     []string      `json:"key_reasons"`
	KeyIndicators  KeyIndicators `json:"key_indicators"`
	Disclaimer     string        `json:"disclaimer"`
}

// LatestPrice is GET /prices/{ticker}/latest.
type LatestPrice struct {
	Ticker        string  `json:"ticker"`
	Date          string  `json:"date"`
	Price         float64 `json:"price"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// PriceBar is one daily OHLCV record.
type PriceBar struct {
	Ticker string  `json:"ticker,omitempty"`
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// RangeSummary carries the aggregate statistics of a price range.
type RangeSummary struct {
	HighestClose  float64 `json:"highest_close"`
	LowestClose   float64 `json:"lowest_close"`
	AverageClose  float64 `json:"average_close"`
	TotalVolume   int64   `json:"total_volume"`
	AverageVolume int64   `json:"average_volume"`
}

// PriceRange is GET /prices/{ticker}/range.
type PriceRange struct {
	Ticker     string       `json:"ticker"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	DataPoints int          `json:"data_points"`
	Summary    RangeSummary `json:"summary"`
	Prices     []PriceBar   `json:"prices"`
}

// NewsArticle is one row of GET /news/{ticker}.
type NewsArticle struct {
	ID          int64  `json:"id"`
	Ticker      string `json:"ticker"`
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// NewsSources is GET /news/{ticker}/sources.
type NewsSources struct {
	Ticker        string           `json:"ticker"`
	TotalArticles int              `json:"total_articles"`
	Sources       []map[string]any `json:"sources"`
}

// NewsSearchResult is GET /news/search/.
type NewsSearchResult struct {
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Results []NewsArticle `json:"results"`
}

// IngestionStatus is the response of POST /ingest/{ticker}.
type IngestionStatus struct {
	Success           bool     `json:"success"`
	Ticker            string   `json:"ticker"`
	NewsArticlesAdded int      `json:"news_articles_added"`
	PriceRecordsAdded int      `json:"price_records_added"`
	Errors            []string `json:"errors"`
	Message           string   `json:"message,omitempty"`
}

// Health is GET /health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// DatabaseHealth is GET /health/db.
type DatabaseHealth struct {
	Status    string         `json:"status"`
	Database  string         `json:"database"`
	PGVector  string         `json:"pgvector"`
	Timestamp string         `json:"timestamp"`
	Stats     map[string]int `json:"stats"`
}
