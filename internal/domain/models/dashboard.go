package models

import (
	"math"
	"strconv"
	"time"
)

// Semantic column names produced by the ETL rename/derive stage.
const (
	ColTreasury10Y = "US_Treasury_10Y"
	ColUSDMXN      = "USD_MXN"
	ColEURUSD      = "EUR_USD_Exchange"
	ColUSDEUR      = "USD_EUR"
	ColCetes28     = "CETES_28"
)

// Alert severities in rule order.
const (
	SeverityCritical = "critical"
	SeverityAlert    = "alert"
	SeverityNotice   = "notice"
)

// Symbol groups for the volatility ranking.
const (
	GroupPrimary   = "big_tech"
	GroupSecondary = "traditional"
)

// JSONFloat marshals NaN and infinities as null so non-finite derived
// values reach the presentation layer instead of breaking encoding.
type JSONFloat float64

func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// Thresholds are the caller-supplied alert limits for one evaluation.
type Thresholds struct {
	USDMXNCeiling   float64 `json:"usd_mxn_ceiling"`
	TreasuryCeiling float64 `json:"treasury_ceiling"`
	USDEURFloor     float64 `json:"usd_eur_floor"`
}

// Alert is one triggered threshold rule.
type Alert struct {
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Value    JSONFloat `json:"value"`
}

// KPI is a headline value with its delta against the previous row.
type KPI struct {
	Name  string    `json:"name"`
	Value JSONFloat `json:"value"`
	Delta JSONFloat `json:"delta"`
}

// VolatilityEntry is one symbol's annualized volatility tagged with its group.
type VolatilityEntry struct {
	Symbol        string    `json:"symbol"`
	Group         string    `json:"group"`
	AnnualizedPct JSONFloat `json:"annualized_pct"`
}

// CorrelationView exposes two raw series plus a descriptive OLS fit.
type CorrelationView struct {
	XName     string      `json:"x_name"`
	YName     string      `json:"y_name"`
	X         []JSONFloat `json:"x"`
	Y         []JSONFloat `json:"y"`
	Slope     JSONFloat   `json:"slope"`
	Intercept JSONFloat   `json:"intercept"`
	R         JSONFloat   `json:"r"`
}

// PerformanceIndex compares one symbol against the equal-weight basket,
// both rebased to 100 at the first row of the window.
type PerformanceIndex struct {
	Symbol string      `json:"symbol"`
	Dates  []time.Time `json:"dates"`
	Single []JSONFloat `json:"single"`
	Basket []JSONFloat `json:"basket"`
}

// SeriesPayload is a windowed slice of the table for selected columns.
type SeriesPayload struct {
	Dates   []time.Time            `json:"dates"`
	Columns map[string][]JSONFloat `json:"columns"`
}

// DashboardSnapshot is the full per-interaction result.
type DashboardSnapshot struct {
	Window      int               `json:"window"`
	AsOf        time.Time         `json:"as_of"`
	KPIs        []KPI             `json:"kpis"`
	Alerts      []Alert           `json:"alerts"`
	Volatility  []VolatilityEntry `json:"volatility"`
	Correlation CorrelationView   `json:"correlation"`
	Performance PerformanceIndex  `json:"performance"`
	Macro       SeriesPayload     `json:"macro"`
}

// ToJSONFloats converts a raw series for response encoding.
func ToJSONFloats(v []float64) []JSONFloat {
	out := make([]JSONFloat, len(v))
	for i, x := range v {
		out[i] = JSONFloat(x)
	}
	return out
}
