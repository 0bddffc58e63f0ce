package insights

import (
	"fmt"

	"FinBoard/internal/domain/models"
)

// RelativePerformance rebases one symbol and the equal-weight mean of a
// basket to 100 at the first row of the window. The anchor is the current
// window's first row, so changing the window re-anchors both indexes.
func RelativePerformance(f *models.Frame, symbol string, basket []string) (models.PerformanceIndex, error) {
	series, ok := f.Column(symbol)
	if !ok {
		return models.PerformanceIndex{}, fmt.Errorf("missing column %s", symbol)
	}

	normalized := make([][]float64, 0, len(basket))
	for _, s := range basket {
		v, ok := f.Column(s)
		if !ok {
			return models.PerformanceIndex{}, fmt.Errorf("missing column %s", s)
		}
		normalized = append(normalized, Rebase100(v))
	}

	mean := make([]float64, f.Len())
	for i := range mean {
		sum := 0.0
		for _, v := range normalized {
			sum += v[i]
		}
		mean[i] = sum / float64(len(normalized))
	}

	return models.PerformanceIndex{
		Symbol: symbol,
		Dates:  f.Dates(),
		Single: models.ToJSONFloats(Rebase100(series)),
		Basket: models.ToJSONFloats(mean),
	}, nil
}

// Rebase100 rescales a series so its first value equals exactly 100.
// A zero or NaN anchor propagates Inf/NaN through the whole output.
func Rebase100(series []float64) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}
	base := series[0]
	for i, v := range series {
		out[i] = v / base * 100
	}
	return out
}
