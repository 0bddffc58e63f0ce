package marketdata

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"FinBoard/internal/domain/models"
	drepo "FinBoard/internal/domain/repository"
	"FinBoard/internal/service/ratelimit"
	xhttp "FinBoard/pkg/http"
	xlogger "FinBoard/pkg/logger"
	"FinBoard/pkg/util"
)

// Client implements a SeriesSource backed by a Yahoo-style chart API.
// One GET per symbol; per-symbol results are merged onto the union of
// their daily indices, with NaN where a symbol has no observation.
type Client struct {
	baseURL    string
	http       *xhttp.Client
	limiter    *ratelimit.Limiter
	ratePerSec float64
	burst      float64
	log        *xlogger.Logger
}

// New creates a chart API client.
func New(baseURL string, timeout time.Duration, limiter *ratelimit.Limiter, ratePerSec, burst float64, log *xlogger.Logger) drepo.SeriesSource {
	return &Client{
		baseURL:    baseURL,
		http:       xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter:    limiter,
		ratePerSec: ratePerSec,
		burst:      burst,
		log:        log,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type symbolSeries struct {
	close    map[time.Time]float64
	adjClose map[time.Time]float64
}

// DailyCloses fetches daily close and adjusted-close values for all symbols.
// Any transport or payload error is terminal for the invocation.
func (c *Client) DailyCloses(ctx context.Context, symbols []string, start, end time.Time) (*models.RawTable, error) {
	perSymbol := make(map[string]*symbolSeries, len(symbols))
	daySet := make(map[time.Time]struct{})

	for _, symbol := range symbols {
		if err := c.waitAllow(ctx); err != nil {
			return nil, err
		}
		ss, err := c.fetchSymbol(ctx, symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", symbol, err)
		}
		perSymbol[symbol] = ss
		for d := range ss.close {
			daySet[d] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(daySet))
	for d := range daySet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	table := &models.RawTable{
		Dates: dates,
		Fields: map[string]map[string][]float64{
			models.FieldClose:    make(map[string][]float64, len(symbols)),
			models.FieldAdjClose: make(map[string][]float64, len(symbols)),
		},
	}
	for symbol, ss := range perSymbol {
		table.Fields[models.FieldClose][symbol] = alignSeries(dates, ss.close)
		table.Fields[models.FieldAdjClose][symbol] = alignSeries(dates, ss.adjClose)
	}
	return table, nil
}

func (c *Client) fetchSymbol(ctx context.Context, symbol string, start, end time.Time) (*symbolSeries, error) {
	var cr chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v8/finance/chart/" + symbol,
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(start.Unix(), 10)},
			"period2":  {strconv.FormatInt(end.Unix(), 10)},
			"interval": {"1d"},
			"events":   {"div,splits"},
		},
		Headers: map[string]string{
			"Accept": "application/json",
		},
	}, &cr)
	if err != nil {
		return nil, err
	}

	if cr.Chart.Error != nil {
		return nil, fmt.Errorf("chart api: %s: %s", cr.Chart.Error.Code, cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart api: empty result")
	}

	res := cr.Chart.Result[0]
	ss := &symbolSeries{
		close:    make(map[time.Time]float64, len(res.Timestamp)),
		adjClose: make(map[time.Time]float64, len(res.Timestamp)),
	}

	var closes, adjs []*float64
	if len(res.Indicators.Quote) > 0 {
		closes = res.Indicators.Quote[0].Close
	}
	if len(res.Indicators.AdjClose) > 0 {
		adjs = res.Indicators.AdjClose[0].AdjClose
	}

	for i, ts := range res.Timestamp {
		day := util.TruncateDay(time.Unix(ts, 0))
		ss.close[day] = deref(closes, i)
		ss.adjClose[day] = deref(adjs, i)
	}

	c.log.Debug("fetched symbol",
		xlogger.String("symbol", symbol),
		xlogger.Int("points", len(res.Timestamp)),
	)
	return ss, nil
}

// waitAllow blocks until the token bucket grants a slot or the context ends.
func (c *Client) waitAllow(ctx context.Context) error {
	for !c.limiter.Allow("chart", c.burst, c.ratePerSec) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
	return nil
}

func alignSeries(dates []time.Time, points map[time.Time]float64) []float64 {
	out := make([]float64, len(dates))
	for i, d := range dates {
		if v, ok := points[d]; ok {
			out[i] = v
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func deref(v []*float64, i int) float64 {
	if i >= len(v) || v[i] == nil {
		return math.NaN()
	}
	return *v[i]
}
