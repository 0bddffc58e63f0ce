package insights

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"FinBoard/internal/domain/models"
)

// Correlation exposes two raw columns plus an ordinary-least-squares
// trendline over them. The fit is descriptive only; nothing downstream
// consumes it.
func Correlation(f *models.Frame, xName, yName string) (models.CorrelationView, error) {
	x, ok := f.Column(xName)
	if !ok {
		return models.CorrelationView{}, fmt.Errorf("missing column %s", xName)
	}
	y, ok := f.Column(yName)
	if !ok {
		return models.CorrelationView{}, fmt.Errorf("missing column %s", yName)
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	r := stat.Correlation(x, y, nil)

	return models.CorrelationView{
		XName:     xName,
		YName:     yName,
		X:         models.ToJSONFloats(x),
		Y:         models.ToJSONFloats(y),
		Slope:     models.JSONFloat(slope),
		Intercept: models.JSONFloat(intercept),
		R:         models.JSONFloat(r),
	}, nil
}
