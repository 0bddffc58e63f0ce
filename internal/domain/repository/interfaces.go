package repository

import (
	"context"
	"time"

	"FinBoard/internal/domain/models"
)

// SeriesSource fetches daily closing values for a set of symbols over a
// date range. An empty result or a transport error is terminal for the
// current invocation; no retries are attempted here.
type SeriesSource interface {
	DailyCloses(ctx context.Context, symbols []string, start, end time.Time) (*models.RawTable, error)
}

// Metrics records operational metrics for the pipeline.
type Metrics interface {
	RecordFetch(symbol string)
	RecordFetchError(kind string)
	RecordPipelineDuration(seconds float64)
	RecordCacheHit(hit bool)
	RecordAlert(severity string)
	RecordLastValue(column string, value float64)
}
