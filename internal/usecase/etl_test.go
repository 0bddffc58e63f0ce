package usecase

import (
	"errors"
	"math"
	"testing"
	"time"

	"FinBoard/internal/domain/models"
	"FinBoard/pkg/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Market.Primary = []string{"NVDA", "TSLA"}
	cfg.Market.Secondary = []string{"KO", "JPM"}
	cfg.Market.Macro = []string{"^TNX", "MXN=X", "EURUSD=X"}
	cfg.Market.Renames = map[string]string{
		"^TNX":     models.ColTreasury10Y,
		"MXN=X":    models.ColUSDMXN,
		"EURUSD=X": models.ColEURUSD,
	}
	invert := true
	cfg.Market.InvertEURUSD = &invert
	cfg.Market.Synthetic.Seed = 42
	cfg.Market.Synthetic.Start = 10.5
	cfg.Market.Synthetic.End = 11.25
	cfg.Market.Synthetic.NoiseSD = 0.05
	cfg.Market.LookbackDays = 730
	cfg.Cache.SnapshotTTL = time.Hour
	return cfg
}

func days(n int) []time.Time {
	out := make([]time.Time, n)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = base.AddDate(0, 0, i)
	}
	return out
}

func rawFixture(n int) *models.RawTable {
	nan := math.NaN()
	closes := map[string][]float64{
		"NVDA":     {100, 110, nan, 130, 140},
		"TSLA":     {200, nan, 220, 230, 240},
		"KO":       {50, 51, 52, 53, 54},
		"JPM":      {150, 151, 152, 153, 154},
		"^TNX":     {4.2, 4.3, 4.4, 4.5, 4.6},
		"MXN=X":    {19.5, 19.8, 20.1, 20.4, 21.0},
		"EURUSD=X": {1.10, 1.12, 1.11, 1.09, 1.08},
	}
	for k, v := range closes {
		closes[k] = v[:n]
	}
	return &models.RawTable{
		Dates:  days(n),
		Fields: map[string]map[string][]float64{models.FieldClose: closes},
	}
}

func TestTransformFillInvariant(t *testing.T) {
	p := NewPipeline(testConfig())
	frame, err := p.Transform(rawFixture(5))
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	for _, name := range frame.Names() {
		v, _ := frame.Column(name)
		for i, x := range v {
			if math.IsNaN(x) {
				t.Fatalf("column %s row %d is NaN after fill", name, i)
			}
		}
	}

	// leading gap resolved backward, interior gap forward
	nvda, _ := frame.Column("NVDA")
	if nvda[2] != 110 {
		t.Fatalf("interior gap should forward-fill: %v", nvda)
	}
	tsla, _ := frame.Column("TSLA")
	if tsla[1] != 200 {
		t.Fatalf("interior gap should forward-fill: %v", tsla)
	}
}

func TestTransformInverseFX(t *testing.T) {
	p := NewPipeline(testConfig())
	frame, err := p.Transform(rawFixture(5))
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	src, _ := frame.Column(models.ColEURUSD)
	inv, _ := frame.Column(models.ColUSDEUR)
	for i := range src {
		want := 1 / src[i]
		if math.Abs(inv[i]-want) > 1e-12 {
			t.Fatalf("row %d: inverse %v want %v", i, inv[i], want)
		}
	}
}

func TestTransformSyntheticDeterministic(t *testing.T) {
	p := NewPipeline(testConfig())

	a, err := p.Transform(rawFixture(5))
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	b, err := p.Transform(rawFixture(5))
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	ca, _ := a.Column(models.ColCetes28)
	cb, _ := b.Column(models.ColCetes28)
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("row %d: %v != %v, synthetic series must be bit-identical", i, ca[i], cb[i])
		}
	}

	// ramp anchored at the configured bounds, noise within a tight band
	cfg := testConfig().Market.Synthetic
	for i, v := range ca {
		trend := cfg.Start + (cfg.End-cfg.Start)*float64(i)/float64(len(ca)-1)
		if math.Abs(v-trend) > 6*cfg.NoiseSD {
			t.Fatalf("row %d: %v strays too far from trend %v", i, v, trend)
		}
	}

	// a different index length produces a different ramp
	c, err := p.Transform(rawFixture(3))
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	cc, _ := c.Column(models.ColCetes28)
	if len(cc) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(cc))
	}
}

func TestTransformEmptyRaw(t *testing.T) {
	p := NewPipeline(testConfig())
	_, err := p.Transform(&models.RawTable{})
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestTransformAdjCloseFallback(t *testing.T) {
	raw := rawFixture(5)
	raw.Fields[models.FieldAdjClose] = raw.Fields[models.FieldClose]
	delete(raw.Fields, models.FieldClose)

	p := NewPipeline(testConfig())
	frame, err := p.Transform(raw)
	if err != nil {
		t.Fatalf("transform with adjclose fallback: %v", err)
	}
	if !frame.Has("NVDA") {
		t.Fatalf("expected NVDA from adjclose field")
	}
}

func TestTransformMissingMacroColumn(t *testing.T) {
	raw := rawFixture(5)
	delete(raw.Fields[models.FieldClose], "MXN=X")

	p := NewPipeline(testConfig())
	_, err := p.Transform(raw)
	var terr *TransformError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransformError, got %v", err)
	}
}

func TestTransformAllNaNColumn(t *testing.T) {
	raw := rawFixture(5)
	nan := math.NaN()
	raw.Fields[models.FieldClose]["NVDA"] = []float64{nan, nan, nan, nan, nan}

	p := NewPipeline(testConfig())
	_, err := p.Transform(raw)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable for all-NaN column, got %v", err)
	}
}

func TestTransformInvertDisabled(t *testing.T) {
	cfg := testConfig()
	invert := false
	cfg.Market.InvertEURUSD = &invert

	p := NewPipeline(cfg)
	frame, err := p.Transform(rawFixture(5))
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	src, _ := frame.Column(models.ColEURUSD)
	out, _ := frame.Column(models.ColUSDEUR)
	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("row %d: expected pass-through, got %v want %v", i, out[i], src[i])
		}
	}
}
