package marketdata

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"FinBoard/internal/domain/models"
	"FinBoard/internal/service/ratelimit"
	xlogger "FinBoard/pkg/logger"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func chartBody(ts []int64, closes []string, adjs []string) string {
	join := func(xs []string) string {
		out := ""
		for i, x := range xs {
			if i > 0 {
				out += ","
			}
			out += x
		}
		return out
	}
	tss := ""
	for i, x := range ts {
		if i > 0 {
			tss += ","
		}
		tss += fmt.Sprintf("%d", x)
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"close":[%s]}],"adjclose":[{"adjclose":[%s]}]}}],"error":null}}`,
		tss, join(closes), join(adjs))
}

func TestDailyClosesParsesAndAligns(t *testing.T) {
	day1 := time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v8/finance/chart/AAA":
			fmt.Fprint(w, chartBody([]int64{day1.Unix(), day2.Unix()}, []string{"10", "11"}, []string{"9.5", "10.5"}))
		case "/v8/finance/chart/BBB":
			// BBB misses day2 and carries a null close on day1's slot
			fmt.Fprint(w, chartBody([]int64{day1.Unix()}, []string{"null"}, []string{"20"}))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := New(srv.URL, 5*time.Second, ratelimit.New(), 100, 100, testLogger(t))
	raw, err := src.DailyCloses(context.Background(), []string{"AAA", "BBB"}, day1.Add(-time.Hour), day2.Add(time.Hour))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if len(raw.Dates) != 2 {
		t.Fatalf("expected 2 days, got %d", len(raw.Dates))
	}
	closes := raw.Fields[models.FieldClose]
	if got := closes["AAA"]; got[0] != 10 || got[1] != 11 {
		t.Fatalf("AAA closes: %v", got)
	}
	bbb := closes["BBB"]
	if !math.IsNaN(bbb[0]) || !math.IsNaN(bbb[1]) {
		t.Fatalf("BBB should be NaN for null and missing slots: %v", bbb)
	}
	if got := raw.Fields[models.FieldAdjClose]["BBB"]; got[0] != 20 {
		t.Fatalf("BBB adjclose: %v", got)
	}
}

func TestDailyClosesChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	src := New(srv.URL, 5*time.Second, ratelimit.New(), 100, 100, testLogger(t))
	if _, err := src.DailyCloses(context.Background(), []string{"AAA"}, time.Now().Add(-time.Hour), time.Now()); err == nil {
		t.Fatalf("expected error from chart error payload")
	}
}
