package usecase

import (
	"testing"

	"FinBoard/internal/domain/models"
)

func TestEvaluateAlertsAllTriggered(t *testing.T) {
	last := map[string]float64{
		models.ColUSDMXN:      21.0,
		models.ColTreasury10Y: 5.0,
		models.ColUSDEUR:      0.85,
	}
	th := models.Thresholds{
		USDMXNCeiling:   20.5,
		TreasuryCeiling: 4.5,
		USDEURFloor:     0.90,
	}

	alerts := EvaluateAlerts(last, th)
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}
	wantOrder := []string{models.SeverityCritical, models.SeverityAlert, models.SeverityNotice}
	for i, a := range alerts {
		if a.Severity != wantOrder[i] {
			t.Fatalf("alert %d severity %s want %s", i, a.Severity, wantOrder[i])
		}
	}
	if float64(alerts[0].Value) != 21.0 {
		t.Fatalf("first alert carries the triggering value, got %v", alerts[0].Value)
	}
}

func TestEvaluateAlertsNoneTriggered(t *testing.T) {
	last := map[string]float64{
		models.ColUSDMXN:      19.0,
		models.ColTreasury10Y: 4.0,
		models.ColUSDEUR:      0.95,
	}
	th := models.Thresholds{
		USDMXNCeiling:   20.5,
		TreasuryCeiling: 4.5,
		USDEURFloor:     0.90,
	}

	if alerts := EvaluateAlerts(last, th); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %v", alerts)
	}
}

func TestEvaluateAlertsBoundaryNotInclusive(t *testing.T) {
	last := map[string]float64{
		models.ColUSDMXN:      20.5,
		models.ColTreasury10Y: 4.5,
		models.ColUSDEUR:      0.90,
	}
	th := models.Thresholds{
		USDMXNCeiling:   20.5,
		TreasuryCeiling: 4.5,
		USDEURFloor:     0.90,
	}

	if alerts := EvaluateAlerts(last, th); len(alerts) != 0 {
		t.Fatalf("equality must not fire any rule, got %v", alerts)
	}
}

func TestEvaluateAlertsSingleRule(t *testing.T) {
	last := map[string]float64{
		models.ColUSDMXN:      19.0,
		models.ColTreasury10Y: 4.8,
		models.ColUSDEUR:      0.95,
	}
	th := models.Thresholds{
		USDMXNCeiling:   20.5,
		TreasuryCeiling: 4.5,
		USDEURFloor:     0.90,
	}

	alerts := EvaluateAlerts(last, th)
	if len(alerts) != 1 || alerts[0].Severity != models.SeverityAlert {
		t.Fatalf("expected single long-rate alert, got %v", alerts)
	}
}
