package usecase

import (
	"context"
	"fmt"
	"time"

	"FinBoard/internal/domain/models"
	domrepo "FinBoard/internal/domain/repository"
	icache "FinBoard/internal/service/cache"
	"FinBoard/internal/services/insights"
	"FinBoard/pkg/config"
	xlogger "FinBoard/pkg/logger"
	"FinBoard/pkg/util"
)

// Dashboard runs the full per-interaction pass: load the transformed table
// (memoized), window it, then evaluate alerts, KPIs and the three insight
// computations. One pass per request; concurrent misses may fetch
// concurrently, which is tolerated.
type Dashboard struct {
	cfg       *config.Config
	source    domrepo.SeriesSource
	pipeline  *Pipeline
	snapshots *icache.SnapshotCache
	metrics   domrepo.Metrics
	log       *xlogger.Logger

	now func() time.Time
}

func NewDashboard(
	cfg *config.Config,
	source domrepo.SeriesSource,
	pipeline *Pipeline,
	snapshots *icache.SnapshotCache,
	metrics domrepo.Metrics,
	log *xlogger.Logger,
) *Dashboard {
	return &Dashboard{
		cfg:       cfg,
		source:    source,
		pipeline:  pipeline,
		snapshots: snapshots,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// kpiColumns are the headline macro values, in display order.
var kpiColumns = []struct {
	name   string
	column string
}{
	{"USD / MXN", models.ColUSDMXN},
	{"USD / EUR", models.ColUSDEUR},
	{"CETES 28D", models.ColCetes28},
	{"US 10Y", models.ColTreasury10Y},
}

// Snapshot produces the full dashboard state for one interaction.
func (d *Dashboard) Snapshot(ctx context.Context, req *models.DashboardRequest) (*models.DashboardSnapshot, error) {
	frame, err := d.loadFrame(ctx)
	if err != nil {
		return nil, err
	}

	win := frame.Tail(req.Window)
	last, prev := win.LastRow(), win.PrevRow()

	alerts := EvaluateAlerts(last, req.Thresholds())
	for _, a := range alerts {
		d.metrics.RecordAlert(a.Severity)
	}

	kpis := make([]models.KPI, 0, len(kpiColumns))
	for _, k := range kpiColumns {
		v := last[k.column]
		kpis = append(kpis, models.KPI{
			Name:  k.name,
			Value: models.JSONFloat(v),
			Delta: models.JSONFloat(v - prev[k.column]),
		})
		d.metrics.RecordLastValue(k.column, v)
	}

	corr, err := insights.Correlation(win, models.ColTreasury10Y, models.ColUSDEUR)
	if err != nil {
		return nil, &TransformError{Stage: "correlation", Err: err}
	}
	perf, err := insights.RelativePerformance(win, req.Symbol, d.cfg.Market.Secondary)
	if err != nil {
		return nil, &TransformError{Stage: "performance", Err: err}
	}

	return &models.DashboardSnapshot{
		Window:      win.Len(),
		AsOf:        win.Dates()[win.Len()-1],
		KPIs:        kpis,
		Alerts:      alerts,
		Volatility:  insights.VolatilityRanking(win, d.cfg.Market.Primary, d.cfg.Market.Secondary),
		Correlation: corr,
		Performance: perf,
		Macro:       seriesPayload(win, []string{models.ColUSDMXN, models.ColUSDEUR, models.ColCetes28, models.ColTreasury10Y}),
	}, nil
}

// Series returns the windowed table for selected symbols. An empty
// selection is an informational no-op, not an error.
func (d *Dashboard) Series(ctx context.Context, symbols []string, window int) (*models.SeriesPayload, error) {
	if len(symbols) == 0 {
		return &models.SeriesPayload{Columns: map[string][]models.JSONFloat{}}, nil
	}
	frame, err := d.loadFrame(ctx)
	if err != nil {
		return nil, err
	}
	win := frame.Tail(window)
	payload := seriesPayload(win, symbols)
	return &payload, nil
}

// Alerts evaluates thresholds against the latest windowed row only.
func (d *Dashboard) Alerts(ctx context.Context, window int, th models.Thresholds) ([]models.Alert, error) {
	frame, err := d.loadFrame(ctx)
	if err != nil {
		return nil, err
	}
	win := frame.Tail(window)
	alerts := EvaluateAlerts(win.LastRow(), th)
	for _, a := range alerts {
		d.metrics.RecordAlert(a.Severity)
	}
	return alerts, nil
}

// Volatility computes the per-symbol ranking over the window.
func (d *Dashboard) Volatility(ctx context.Context, window int) ([]models.VolatilityEntry, error) {
	frame, err := d.loadFrame(ctx)
	if err != nil {
		return nil, err
	}
	win := frame.Tail(window)
	return insights.VolatilityRanking(win, d.cfg.Market.Primary, d.cfg.Market.Secondary), nil
}

// Correlation exposes the treasury-vs-USD/EUR view over the window.
func (d *Dashboard) Correlation(ctx context.Context, window int) (models.CorrelationView, error) {
	frame, err := d.loadFrame(ctx)
	if err != nil {
		return models.CorrelationView{}, err
	}
	win := frame.Tail(window)
	view, err := insights.Correlation(win, models.ColTreasury10Y, models.ColUSDEUR)
	if err != nil {
		return models.CorrelationView{}, &TransformError{Stage: "correlation", Err: err}
	}
	return view, nil
}

// Performance compares one symbol against the secondary basket.
func (d *Dashboard) Performance(ctx context.Context, window int, symbol string) (models.PerformanceIndex, error) {
	frame, err := d.loadFrame(ctx)
	if err != nil {
		return models.PerformanceIndex{}, err
	}
	win := frame.Tail(window)
	idx, err := insights.RelativePerformance(win, symbol, d.cfg.Market.Secondary)
	if err != nil {
		return models.PerformanceIndex{}, &TransformError{Stage: "performance", Err: err}
	}
	return idx, nil
}

// Refresh clears the snapshot cache so the next load re-fetches.
func (d *Dashboard) Refresh() {
	d.snapshots.Clear()
	d.log.Info("snapshot cache cleared")
}

// loadFrame returns the memoized transformed table, fetching and
// transforming on a miss.
func (d *Dashboard) loadFrame(ctx context.Context) (*models.Frame, error) {
	start, end := d.dateRange()
	key := d.cacheKey(start, end)

	if frame, ok := d.snapshots.Get(key); ok {
		d.metrics.RecordCacheHit(true)
		return frame, nil
	}
	d.metrics.RecordCacheHit(false)

	symbols := d.cfg.AllSymbols()
	began := time.Now()
	raw, err := d.source.DailyCloses(ctx, symbols, start, end)
	if err != nil {
		d.metrics.RecordFetchError("transport")
		d.log.Error("series fetch failed", xlogger.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	for _, s := range symbols {
		d.metrics.RecordFetch(s)
	}

	frame, err := d.pipeline.Transform(raw)
	if err != nil {
		d.metrics.RecordFetchError("transform")
		d.log.Error("etl transform failed", xlogger.Error(err))
		return nil, err
	}
	d.metrics.RecordPipelineDuration(time.Since(began).Seconds())

	d.snapshots.Set(key, frame)
	d.log.Info("frame rebuilt",
		xlogger.Int("rows", frame.Len()),
		xlogger.Int("columns", len(frame.Names())),
		xlogger.String("range", util.DayKey(start)+".."+util.DayKey(end)),
	)
	return frame, nil
}

func (d *Dashboard) dateRange() (time.Time, time.Time) {
	end := util.TruncateDay(d.now())
	start := end.AddDate(0, 0, -d.cfg.Market.LookbackDays)
	return start, end
}

// cacheKey identifies one (universe, date range) combination. Day-granular,
// so within a calendar day repeated interactions share the entry until the
// TTL or an explicit refresh invalidates it.
func (d *Dashboard) cacheKey(start, end time.Time) string {
	return fmt.Sprintf("frame:%d:%s:%s", len(d.cfg.AllSymbols()), util.DayKey(start), util.DayKey(end))
}

func seriesPayload(f *models.Frame, columns []string) models.SeriesPayload {
	out := models.SeriesPayload{
		Dates:   f.Dates(),
		Columns: make(map[string][]models.JSONFloat, len(columns)),
	}
	for _, name := range columns {
		if v, ok := f.Column(name); ok {
			out.Columns[name] = models.ToJSONFloats(v)
		}
	}
	return out
}
