package usecase

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"FinBoard/internal/domain/models"
	"FinBoard/pkg/config"
)

// Pipeline turns raw fetcher output into the dashboard's table: close-field
// selection, semantic renames for the macro columns, derived columns, and
// gap filling. Fail-fast: the first structural failure aborts the run and
// no partial frame escapes.
type Pipeline struct {
	cfg *config.Config
}

func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Transform normalizes and enriches a raw table.
func (p *Pipeline) Transform(raw *models.RawTable) (*models.Frame, error) {
	if raw.Empty() {
		return nil, fmt.Errorf("empty fetch result: %w", ErrDataUnavailable)
	}

	closes, err := normalizeCloses(raw)
	if err != nil {
		return nil, err
	}

	frame := models.NewFrame(raw.Dates)
	for _, symbol := range orderedSymbols(p.cfg, closes) {
		if v, ok := closes[symbol]; ok {
			if err := frame.SetColumn(symbol, v); err != nil {
				return nil, &TransformError{Stage: "assemble", Err: err}
			}
		}
	}

	for from, to := range p.cfg.Market.Renames {
		frame.Rename(from, to)
	}
	for _, want := range p.cfg.Market.Renames {
		if !frame.Has(want) {
			return nil, transformErrorf("rename", "missing macro column %s", want)
		}
	}

	if err := p.deriveInverseFX(frame); err != nil {
		return nil, err
	}
	if err := frame.SetColumn(models.ColCetes28, p.syntheticShortRate(frame.Len())); err != nil {
		return nil, &TransformError{Stage: "synthetic", Err: err}
	}

	frame.FillGaps()

	for _, name := range frame.Names() {
		if frame.AllNaN(name) {
			return nil, fmt.Errorf("column %s has no data: %w", name, ErrDataUnavailable)
		}
	}
	return frame, nil
}

// normalizeCloses isolates the two possible raw-table shapes at one
// boundary: two-level tables contribute their close field, falling back to
// the adjusted close; flat tables pass through as-is.
func normalizeCloses(raw *models.RawTable) (map[string][]float64, error) {
	if len(raw.Fields) > 0 {
		if v, ok := raw.Fields[models.FieldClose]; ok && len(v) > 0 {
			return v, nil
		}
		if v, ok := raw.Fields[models.FieldAdjClose]; ok && len(v) > 0 {
			return v, nil
		}
		return nil, fmt.Errorf("no close field in raw table: %w", ErrDataUnavailable)
	}
	return raw.Flat, nil
}

// deriveInverseFX adds the reciprocal FX quote. The upstream quotes
// EURUSD=X as USD per EUR; the inverse yields EUR per USD. Division by
// zero produces Inf, which flows through like any other value.
func (p *Pipeline) deriveInverseFX(frame *models.Frame) error {
	src, ok := frame.Column(models.ColEURUSD)
	if !ok {
		return transformErrorf("derive", "missing source column %s", models.ColEURUSD)
	}
	out := make([]float64, len(src))
	if p.cfg.Market.InvertEURUSD != nil && !*p.cfg.Market.InvertEURUSD {
		copy(out, src)
	} else {
		for i, v := range src {
			out[i] = 1 / v
		}
	}
	if err := frame.SetColumn(models.ColUSDEUR, out); err != nil {
		return &TransformError{Stage: "derive", Err: err}
	}
	return nil
}

// syntheticShortRate builds the short-term-rate series that has no live
// source: a linear ramp between the configured bounds plus seeded normal
// noise. Same seed and same length always yield the same values, so tests
// can assert exact equality.
func (p *Pipeline) syntheticShortRate(n int) []float64 {
	s := p.cfg.Market.Synthetic
	noise := distuv.Normal{
		Mu:    0,
		Sigma: s.NoiseSD,
		Src:   rand.NewPCG(s.Seed, s.Seed),
	}

	out := make([]float64, n)
	if n == 0 {
		return out
	}
	step := 0.0
	if n > 1 {
		step = (s.End - s.Start) / float64(n-1)
	}
	for i := range out {
		out[i] = s.Start + step*float64(i) + noise.Rand()
	}
	return out
}

// orderedSymbols keeps the configured fetch order; symbols the fetch
// returned that the config does not know come last.
func orderedSymbols(cfg *config.Config, closes map[string][]float64) []string {
	out := make([]string, 0, len(closes))
	seen := make(map[string]bool, len(closes))
	for _, s := range cfg.AllSymbols() {
		if _, ok := closes[s]; ok {
			out = append(out, s)
			seen[s] = true
		}
	}
	for s := range closes {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}
