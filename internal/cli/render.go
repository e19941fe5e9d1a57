package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tickermind/tickermind/internal/api"
	"github.com/tickermind/tickermind/internal/chat"
	"github.com/tickermind/tickermind/internal/dashboard"
	"github.com/tickermind/tickermind/internal/format"
	"github.com/tickermind/tickermind/internal/reader"
)

const wrapWidth = 76

var decimalHundred = decimal.NewFromInt(100)

// wrapText word-wraps text with an indent prefix on every line.
func wrapText(text, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	line := indent + words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > wrapWidth {
			b.WriteString(line + "\n")
			line = indent + w
		} else {
			line += " " + w
		}
	}
	b.WriteString(line)
	return b.String()
}

// renderMessage prints one conversation message as a terminal bubble.
func renderMessage(m chat.Message) string {
	var b strings.Builder
	switch m.Role {
	case chat.RoleUser:
		b.WriteString(userStyle.Render("You") + dimStyle.Render("  "+format.Timestamp(m.Timestamp)) + "\n")
		b.WriteString(wrapText(m.Content, "  ") + "\n")
	case chat.RoleError:
		b.WriteString(errorStyle.Render("Error") + "\n")
		b.WriteString(wrapText(m.Content, "  ") + "\n")
	case chat.RoleAssistant:
		header := headerStyle.Render("TickerMind")
		if m.Ticker != "" {
			header += dimStyle.Render("  [" + m.Ticker + "]")
		}
		header += dimStyle.Render("  " + format.Timestamp(m.Timestamp))
		b.WriteString(header + "\n")
		b.WriteString(assistantStyle.Render(wrapText(m.Content, "  ")) + "\n")
		if m.Signal != "" {
			line := "  " + signalStyle(m.Signal)
			if m.Confidence != nil {
				line += dimStyle.Render("  confidence " + format.Confidence(*m.Confidence) +
					" (" + format.ConfidenceTier(*m.Confidence) + ")")
			}
			b.WriteString(line + "\n")
		}
		if len(m.Sources) > 0 {
			b.WriteString(dimStyle.Render("  Sources:") + "\n")
			for _, src := range m.Sources {
				b.WriteString(sourceStyle.Render("   • "+src.Title) +
					dimStyle.Render(" ("+src.Source+")") + "\n")
			}
		}
	}
	return b.String()
}

// renderSnapshot prints the dashboard table plus news for the lead ticker.
func renderSnapshot(snap *dashboard.Snapshot) string {
	var b strings.Builder

	title := "Market Dashboard"
	if snap.SignalFilter != "" {
		title += " / " + snap.SignalFilter
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	if len(snap.Analyses) == 0 {
		b.WriteString(dimStyle.Render("No analyses available. Run an ingestion and analysis job first.") + "\n")
		return b.String()
	}

	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-7s %-14s %6s %10s %9s  %s",
		"TICKER", "SIGNAL", "CONF", "PRICE", "CHANGE", "TOP REASON")) + "\n")

	for _, a := range snap.Analyses {
		price := "N/A"
		change := dimStyle.Render("     N/A")
		if p, ok := snap.Prices[a.Ticker]; ok && p != nil {
			price = fmt.Sprintf("$%.2f", p.Price)
			change = changeStyle(p.ChangePercent)
		}
		reason := a.TopReason
		if len(reason) > 34 {
			reason = reason[:31] + "..."
		}
		b.WriteString(fmt.Sprintf("%-7s %-25s %6s %10s %9s  %s\n",
			a.Ticker,
			signalStyle(a.Signal),
			format.Confidence(a.Confidence),
			price,
			change,
			dimStyle.Render(reason)))
	}

	stats := dashboard.ComputeStats(snap.Analyses)
	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("%d tickers, average confidence %s%%",
		len(snap.Analyses), stats.AverageConfidence.Mul(decimalHundred).StringFixed(1))) + "\n")
	if len(stats.SignalShare) > 0 {
		parts := make([]string, 0, len(stats.SignalShare))
		for _, s := range format.KnownSignals() {
			if share, ok := stats.SignalShare[string(s)]; ok {
				parts = append(parts, fmt.Sprintf("%s %s%%", format.AttrsFor(s).Label, share.StringFixed(1)))
			}
		}
		b.WriteString(dimStyle.Render("Distribution: "+strings.Join(parts, ", ")) + "\n")
	}

	if len(snap.News) > 0 {
		b.WriteString("\n" + headerStyle.Render("Latest news for "+snap.Analyses[0].Ticker) + "\n")
		b.WriteString(renderNewsList(snap.News))
	}

	b.WriteString(dimStyle.Render("\nAs of "+snap.FetchedAt.Format("2006-01-02 15:04:05")) + "\n")
	return b.String()
}

// renderNewsList prints a compact news listing.
func renderNewsList(articles []api.NewsArticle) string {
	if len(articles) == 0 {
		return dimStyle.Render("No recent news.") + "\n"
	}
	now := time.Now()
	var b strings.Builder
	for _, a := range articles {
		age := ""
		if t, err := format.ParseTimestamp(a.PublishedAt); err == nil {
			age = format.RelativeTime(t, now)
		}
		b.WriteString("  • " + a.Title + "\n")
		b.WriteString(dimStyle.Render("    "+a.Source+"  "+age+"  "+a.URL) + "\n")
	}
	return b.String()
}

// renderAnalysis prints the full indicator view for one ticker.
func renderAnalysis(a *api.Analysis) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.Ticker+" analysis, "+a.Date) + "\n\n")
	b.WriteString("  " + signalStyle(a.Signal) +
		dimStyle.Render("  confidence "+format.Confidence(a.Confidence)) + "\n\n")

	if len(a.Reasons) > 0 {
		b.WriteString(headerStyle.Render("Reasons") + "\n")
		for _, r := range a.Reasons {
			b.WriteString("  • " + r + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render("Indicators") + "\n")
	b.WriteString(indicatorLine("RSI", a.RSI))
	b.WriteString(indicatorLine("MACD", a.MACDValue))
	b.WriteString(indicatorLine("MACD signal", a.MACDSignal))
	b.WriteString(indicatorLine("SMA 20", a.SMA20))
	b.WriteString(indicatorLine("SMA 50", a.SMA50))
	return b.String()
}

func indicatorLine(name string, v *float64) string {
	if v == nil {
		return fmt.Sprintf("  %-12s %s\n", name, dimStyle.Render("N/A"))
	}
	return fmt.Sprintf("  %-12s %.2f\n", name, *v)
}

// renderSummary prints the condensed recommendation view.
func renderSummary(s *api.TickerSummary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Ticker+", "+s.Date) + "\n\n")
	b.WriteString("  " + signalStyle(s.Signal) +
		dimStyle.Render("  confidence "+format.Confidence(s.Confidence)) + "\n")
	b.WriteString(wrapText(s.Recommendation, "  ") + "\n")
	if len(s.KeyReasons) > 0 {
		b.WriteString("\n" + headerStyle.Render("Key reasons") + "\n")
		for _, r := range s.KeyReasons {
			b.WriteString("  • " + r + "\n")
		}
	}
	if s.KeyIndicators.RSI != nil {
		b.WriteString(fmt.Sprintf("\n  RSI %.1f (%s)", *s.KeyIndicators.RSI, s.KeyIndicators.RSIInterpretation))
		if s.KeyIndicators.PriceVsSMA20 != "" {
			b.WriteString(dimStyle.Render(", price " + strings.ToLower(s.KeyIndicators.PriceVsSMA20) + " SMA20"))
		}
		b.WriteString("\n")
	}
	if s.Disclaimer != "" {
		b.WriteString("\n" + dimStyle.Render(wrapText(s.Disclaimer, "")) + "\n")
	}
	return b.String()
}

// renderLatestPrice prints one quote line.
func renderLatestPrice(p *api.LatestPrice) string {
	return fmt.Sprintf("%s  $%.2f  %s  %s\n",
		headerStyle.Render(p.Ticker),
		p.Price,
		changeStyle(p.ChangePercent),
		dimStyle.Render(fmt.Sprintf("vol %s  (%s)", format.Number(float64(p.Volume)), p.Date)))
}

// renderPriceHistory prints daily bars oldest-first.
func renderPriceHistory(ticker string, bars []api.PriceBar) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(ticker+" price history") + "\n\n")
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-12s %9s %9s %9s %9s %10s",
		"DATE", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME")) + "\n")
	for _, bar := range bars {
		b.WriteString(fmt.Sprintf("%-12s %9.2f %9.2f %9.2f %9.2f %10s\n",
			bar.Date, bar.Open, bar.High, bar.Low, bar.Close,
			format.Number(float64(bar.Volume))))
	}
	return b.String()
}

// renderPriceRange prints range summary statistics above the daily bars.
func renderPriceRange(r *api.PriceRange) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s to %s", r.Ticker, r.StartDate, r.EndDate)) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d trading days", r.DataPoints)) + "\n\n")
	b.WriteString(fmt.Sprintf("  %-16s $%.2f\n", "Highest close", r.Summary.HighestClose))
	b.WriteString(fmt.Sprintf("  %-16s $%.2f\n", "Lowest close", r.Summary.LowestClose))
	b.WriteString(fmt.Sprintf("  %-16s $%.2f\n", "Average close", r.Summary.AverageClose))
	b.WriteString(fmt.Sprintf("  %-16s %s\n", "Average volume", format.Number(float64(r.Summary.AverageVolume))))
	b.WriteString(fmt.Sprintf("  %-16s %s\n\n", "Total volume", format.Number(float64(r.Summary.TotalVolume))))
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-12s %9s %9s %9s %9s %10s",
		"DATE", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME")) + "\n")
	for _, bar := range r.Prices {
		b.WriteString(fmt.Sprintf("%-12s %9.2f %9.2f %9.2f %9.2f %10s\n",
			bar.Date, bar.Open, bar.High, bar.Low, bar.Close,
			format.Number(float64(bar.Volume))))
	}
	return b.String()
}

// renderArticle prints an extracted news page.
func renderArticle(a *reader.Article) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.Title) + "\n")
	meta := a.Source
	if !a.PublishedAt.IsZero() {
		meta += "  " + format.Date(a.PublishedAt)
	}
	b.WriteString(dimStyle.Render(meta) + "\n\n")
	if a.Content == "" {
		b.WriteString(dimStyle.Render("Could not extract article text; open the URL directly.") + "\n")
	} else {
		b.WriteString(wrapText(a.Content, "") + "\n")
	}
	b.WriteString("\n" + dimStyle.Render(a.URL) + "\n")
	return b.String()
}
