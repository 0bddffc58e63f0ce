package insights

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"FinBoard/internal/domain/models"
)

// tradingDaysPerYear annualizes daily return dispersion.
const tradingDaysPerYear = 252

// VolatilityRanking computes annualized volatility per symbol over the
// windowed frame, tags each with its source group, and sorts descending.
// No smoothing and no outlier rejection; a symbol with too few rows yields
// NaN, which propagates visibly instead of being coerced to zero.
func VolatilityRanking(f *models.Frame, primary, secondary []string) []models.VolatilityEntry {
	out := make([]models.VolatilityEntry, 0, len(primary)+len(secondary))
	for _, s := range primary {
		out = append(out, entryFor(f, s, models.GroupPrimary))
	}
	for _, s := range secondary {
		out = append(out, entryFor(f, s, models.GroupSecondary))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := float64(out[i].AnnualizedPct), float64(out[j].AnnualizedPct)
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		if math.IsNaN(a) {
			return false
		}
		return a > b
	})
	return out
}

func entryFor(f *models.Frame, symbol, group string) models.VolatilityEntry {
	series, _ := f.Column(symbol)
	return models.VolatilityEntry{
		Symbol:        symbol,
		Group:         group,
		AnnualizedPct: models.JSONFloat(AnnualizedVolatility(series)),
	}
}

// AnnualizedVolatility is the sample standard deviation of the
// percentage-change series, scaled by sqrt(252) and expressed in percent.
// A single return carries no dispersion estimate of its own, so a two-row
// window falls back to the lone return's magnitude: defined when the rows
// differ, NaN when they don't.
func AnnualizedVolatility(series []float64) float64 {
	rets := PctChange(series)
	switch {
	case len(rets) >= 2:
		return stat.StdDev(rets, nil) * math.Sqrt(tradingDaysPerYear) * 100
	case len(rets) == 1 && rets[0] != 0:
		return math.Abs(rets[0]) * math.Sqrt(tradingDaysPerYear) * 100
	default:
		return math.NaN()
	}
}

// PctChange returns the simple-return series. NaN observations and zero
// denominators drop the affected return rather than producing NaN noise.
func PctChange(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	out := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1], series[i]
		if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
			continue
		}
		out = append(out, cur/prev-1)
	}
	return out
}
