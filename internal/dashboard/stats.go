package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/tickermind/tickermind/internal/api"
)

// Stats are client-side aggregates over one snapshot's analyses, computed
// in decimal to keep the displayed percentages exact.
type Stats struct {
	AverageConfidence decimal.Decimal
	SignalShare       map[string]decimal.Decimal // signal -> percent of rows
}

// ComputeStats aggregates the analyses of a snapshot. An empty input yields
// zero stats.
func ComputeStats(analyses []api.AnalysisSummary) Stats {
	stats := Stats{SignalShare: make(map[string]decimal.Decimal)}
	if len(analyses) == 0 {
		return stats
	}

	total := decimal.NewFromInt(int64(len(analyses)))
	hundred := decimal.NewFromInt(100)

	sum := decimal.Zero
	counts := make(map[string]int64)
	for _, a := range analyses {
		sum = sum.Add(decimal.NewFromFloat(a.Confidence))
		counts[a.Signal]++
	}

	stats.AverageConfidence = sum.Div(total).Round(4)
	for signal, n := range counts {
		share := decimal.NewFromInt(n).Mul(hundred).Div(total)
		stats.SignalShare[signal] = share.Round(1)
	}
	return stats
}
