package usecase

import (
	"fmt"

	"FinBoard/internal/domain/models"
)

// EvaluateAlerts checks the latest row against the configured thresholds.
// A pure function of the row and the limits: rule order is fixed (domestic
// FX ceiling, long-rate ceiling, foreign FX floor) and the output preserves
// it, so callers must not re-sort. Each rule fires at most once.
func EvaluateAlerts(last map[string]float64, th models.Thresholds) []models.Alert {
	alerts := make([]models.Alert, 0, 3)

	if v := last[models.ColUSDMXN]; v > th.USDMXNCeiling {
		alerts = append(alerts, models.Alert{
			Severity: models.SeverityCritical,
			Message:  fmt.Sprintf("USD/MXN above ceiling %.2f (current: %.2f)", th.USDMXNCeiling, v),
			Value:    models.JSONFloat(v),
		})
	}
	if v := last[models.ColTreasury10Y]; v > th.TreasuryCeiling {
		alerts = append(alerts, models.Alert{
			Severity: models.SeverityAlert,
			Message:  fmt.Sprintf("US 10Y treasury yield above %.2f%% (current: %.2f%%)", th.TreasuryCeiling, v),
			Value:    models.JSONFloat(v),
		})
	}
	if v := last[models.ColUSDEUR]; v < th.USDEURFloor {
		alerts = append(alerts, models.Alert{
			Severity: models.SeverityNotice,
			Message:  fmt.Sprintf("dollar weakening against the euro (current: %.2f EUR)", v),
			Value:    models.JSONFloat(v),
		})
	}

	return alerts
}
