// Package format provides pure display-formatting helpers for prices,
// percentages, large numbers, and dates. No state, no I/O.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// IsValidTicker reports whether s is a valid ticker symbol:
// one to five uppercase ASCII letters, nothing else.
func IsValidTicker(s string) bool {
	return tickerPattern.MatchString(s)
}

// NormalizeTicker trims whitespace and uppercases a user-supplied symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Percent formats a percentage value with an explicit sign and two
// decimals: Percent(-3.456) == "-3.46%", Percent(0) == "+0.00%".
func Percent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// Price formats a dollar price as $X.XX, or "N/A" when the value is absent.
func Price(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *p)
}

// Number formats a large value with B/M/K suffixes, two decimals:
// Number(2500000) == "2.50M".
func Number(n float64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", n/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", n/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", n/1e3)
	default:
		return fmt.Sprintf("%.2f", n)
	}
}

// Confidence formats a 0..1 confidence value as a one-decimal percentage.
func Confidence(c float64) string {
	return fmt.Sprintf("%.1f%%", c*100)
}

// ConfidenceTier maps a 0..1 confidence value to a coarse label.
func ConfidenceTier(c float64) string {
	switch {
	case c >= 0.75:
		return "High"
	case c >= 0.5:
		return "Medium"
	default:
		return "Low"
	}
}

// Date formats a timestamp as YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}

// Timestamp formats a timestamp for message headers.
func Timestamp(t time.Time) string {
	return t.Format("15:04:05")
}

// RelativeTime renders how long ago t was, for news listings.
func RelativeTime(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "yesterday"
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// ParseTimestamp parses the timestamp formats the backend emits.
func ParseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", s)
}
