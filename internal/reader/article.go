// Package reader fetches a news article page and extracts a readable
// title/body view for the terminal.
package reader

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Article is the extracted readable view of one news page.
type Article struct {
	Title       string
	Content     string
	URL         string
	Source      string
	PublishedAt time.Time
}

// Reader downloads and extracts articles.
type Reader struct {
	client *resty.Client
}

// New creates a Reader with the given request timeout.
func New(timeout time.Duration) *Reader {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "TickerMind/1.0")
	return &Reader{client: client}
}

// Fetch downloads an article page and extracts its content.
func (r *Reader) Fetch(ctx context.Context, articleURL string) (*Article, error) {
	if strings.TrimSpace(articleURL) == "" {
		return nil, fmt.Errorf("article URL cannot be empty")
	}

	resp, err := r.client.R().SetContext(ctx).Get(articleURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP error %d when fetching article", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return Extract(doc, articleURL), nil
}

// Extract pulls title, body, source, and publish date out of a parsed page.
func Extract(doc *goquery.Document, pageURL string) *Article {
	title := ""
	for _, selector := range []string{"h1", "title", ".headline", ".article-title", ".entry-title"} {
		if t := strings.TrimSpace(doc.Find(selector).First().Text()); t != "" {
			title = t
			break
		}
	}

	content := ""
	contentSelectors := []string{
		".article-content", ".entry-content", ".post-content",
		".content", "article p", ".article-body", ".story-body",
	}
	for _, selector := range contentSelectors {
		if c := strings.TrimSpace(doc.Find(selector).Text()); c != "" {
			content = c
			break
		}
	}

	source := ""
	if meta := doc.Find("meta[property='og:site_name']"); meta.Length() > 0 {
		source, _ = meta.Attr("content")
	}
	if source == "" {
		if u, err := url.Parse(pageURL); err == nil {
			source = u.Host
		}
	}

	publishedAt := time.Time{}
	if meta := doc.Find("meta[property='article:published_time']"); meta.Length() > 0 {
		if dateStr, ok := meta.Attr("content"); ok {
			if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
				publishedAt = t
			}
		}
	}

	return &Article{
		Title:       title,
		Content:     content,
		URL:         pageURL,
		Source:      source,
		PublishedAt: publishedAt,
	}
}
