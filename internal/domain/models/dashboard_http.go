package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type DashboardRequest struct {
	Window      int     `query:"window" json:"window" default:"365" validate:"gte=2,lte=700"`
	Symbol      string  `query:"symbol" json:"symbol" default:"NVDA"`
	FXCeiling   float64 `query:"fx_ceiling" json:"fx_ceiling" default:"20.5" validate:"gt=0"`
	RateCeiling float64 `query:"rate_ceiling" json:"rate_ceiling" default:"4.5" validate:"gt=0"`
	EURFloor    float64 `query:"eur_floor" json:"eur_floor" default:"0.9" validate:"gt=0"`
}

// Thresholds maps the request limits onto the evaluator's config.
func (r *DashboardRequest) Thresholds() Thresholds {
	return Thresholds{
		USDMXNCeiling:   r.FXCeiling,
		TreasuryCeiling: r.RateCeiling,
		USDEURFloor:     r.EURFloor,
	}
}

type SeriesRequest struct {
	Symbols string `query:"symbols" json:"symbols"`
	Window  int    `query:"window" json:"window" default:"365" validate:"gte=2,lte=700"`
}

type InsightRequest struct {
	Window int    `query:"window" json:"window" default:"365" validate:"gte=2,lte=700"`
	Symbol string `query:"symbol" json:"symbol" default:"NVDA"`
}
