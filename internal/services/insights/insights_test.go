package insights

import (
	"math"
	"testing"
	"time"

	"FinBoard/internal/domain/models"
)

func frameWith(t *testing.T, cols map[string][]float64, n int) *models.Frame {
	t.Helper()
	dates := make([]time.Time, n)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i)
	}
	f := models.NewFrame(dates)
	for name, v := range cols {
		if err := f.SetColumn(name, v); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func TestAnnualizedVolatilityKnownSeries(t *testing.T) {
	// returns: +10%, -10% -> sample std of {0.1, -0.1} = 0.1414...
	got := AnnualizedVolatility([]float64{100, 110, 99})
	want := math.Sqrt(0.02) * math.Sqrt(252) * 100
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestAnnualizedVolatilityShortWindows(t *testing.T) {
	if v := AnnualizedVolatility([]float64{100}); !math.IsNaN(v) {
		t.Fatalf("single row must yield NaN, got %v", v)
	}
	if v := AnnualizedVolatility(nil); !math.IsNaN(v) {
		t.Fatalf("empty series must yield NaN, got %v", v)
	}
	if v := AnnualizedVolatility([]float64{100, 100}); !math.IsNaN(v) {
		t.Fatalf("two equal rows must yield NaN, got %v", v)
	}
	if v := AnnualizedVolatility([]float64{100, 110}); math.IsNaN(v) {
		t.Fatalf("two differing rows must be defined")
	}
}

func TestVolatilityRankingGroupsAndOrder(t *testing.T) {
	f := frameWith(t, map[string][]float64{
		"NVDA": {100, 150, 90},
		"KO":   {50, 51, 50.5},
	}, 3)

	entries := VolatilityRanking(f, []string{"NVDA"}, []string{"KO"})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Symbol != "NVDA" || entries[0].Group != models.GroupPrimary {
		t.Fatalf("most volatile first: %v", entries)
	}
	if entries[1].Group != models.GroupSecondary {
		t.Fatalf("group tag wrong: %v", entries[1])
	}
}

func TestVolatilityRankingNaNLast(t *testing.T) {
	f := frameWith(t, map[string][]float64{
		"NVDA": {100, 150, 90},
	}, 3)

	// KO column missing entirely -> NaN volatility, sorted last, no panic
	entries := VolatilityRanking(f, []string{"NVDA"}, []string{"KO"})
	if entries[0].Symbol != "NVDA" {
		t.Fatalf("defined entries sort before NaN: %v", entries)
	}
	if !math.IsNaN(float64(entries[1].AnnualizedPct)) {
		t.Fatalf("missing column should carry NaN, got %v", entries[1])
	}
}

func TestCorrelationOLSExactFit(t *testing.T) {
	f := frameWith(t, map[string][]float64{
		"x": {1, 2, 3, 4},
		"y": {3, 5, 7, 9}, // y = 2x + 1
	}, 4)

	view, err := Correlation(f, "x", "y")
	if err != nil {
		t.Fatalf("correlation: %v", err)
	}
	if math.Abs(float64(view.Slope)-2) > 1e-12 {
		t.Fatalf("slope: %v", view.Slope)
	}
	if math.Abs(float64(view.Intercept)-1) > 1e-12 {
		t.Fatalf("intercept: %v", view.Intercept)
	}
	if math.Abs(float64(view.R)-1) > 1e-12 {
		t.Fatalf("r: %v", view.R)
	}
}

func TestCorrelationMissingColumn(t *testing.T) {
	f := frameWith(t, map[string][]float64{"x": {1, 2}}, 2)
	if _, err := Correlation(f, "x", "y"); err == nil {
		t.Fatalf("expected error for missing column")
	}
}

func TestRebase100(t *testing.T) {
	out := Rebase100([]float64{50, 75, 100})
	if out[0] != 100.0 {
		t.Fatalf("first value must be exactly 100, got %v", out[0])
	}
	if out[1] != 150.0 || out[2] != 200.0 {
		t.Fatalf("rebased values wrong: %v", out)
	}
}

func TestRelativePerformanceAnchorsToWindow(t *testing.T) {
	f := frameWith(t, map[string][]float64{
		"NVDA": {100, 200, 400},
		"KO":   {50, 50, 50},
		"JPM":  {10, 20, 30},
	}, 3)

	idx, err := RelativePerformance(f, "NVDA", []string{"KO", "JPM"})
	if err != nil {
		t.Fatalf("performance: %v", err)
	}
	if float64(idx.Single[0]) != 100.0 || float64(idx.Basket[0]) != 100.0 {
		t.Fatalf("both indices anchor at 100: %v %v", idx.Single[0], idx.Basket[0])
	}
	if float64(idx.Single[2]) != 400.0 {
		t.Fatalf("single index: %v", idx.Single)
	}
	// basket row 2: mean(100, 300) = 200
	if float64(idx.Basket[2]) != 200.0 {
		t.Fatalf("basket index: %v", idx.Basket)
	}

	// re-windowing to the last two rows moves the anchor
	idx2, err := RelativePerformance(f.Tail(2), "NVDA", []string{"KO", "JPM"})
	if err != nil {
		t.Fatalf("performance: %v", err)
	}
	if float64(idx2.Single[0]) != 100.0 || float64(idx2.Single[1]) != 200.0 {
		t.Fatalf("window re-anchor wrong: %v", idx2.Single)
	}
}
