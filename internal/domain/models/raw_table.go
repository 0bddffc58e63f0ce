package models

import "time"

// Raw field names as delivered by the chart API. The ETL stage prefers the
// close field and falls back to the adjusted close.
const (
	FieldClose    = "close"
	FieldAdjClose = "adjclose"
)

// RawTable is the untransformed fetcher output. A table carries either a
// two-level column structure (field kind x symbol) in Fields or a flat
// symbol->values structure in Flat; shape detection happens once in the
// ETL normalize step. Missing observations are NaN.
type RawTable struct {
	Dates  []time.Time
	Fields map[string]map[string][]float64
	Flat   map[string][]float64
}

// Empty reports whether the table carries no rows or no columns at all.
func (t *RawTable) Empty() bool {
	if t == nil || len(t.Dates) == 0 {
		return true
	}
	return len(t.Fields) == 0 && len(t.Flat) == 0
}
