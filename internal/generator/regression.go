package generator

import (
	"math"
	"math/rand/v2"
	"time"

	"portfolio-backend/internal/models"
)

const (
	// XStep is how far x advances per prediction
	XStep = 0.1
	// XMax is the bound after which x wraps back to 0
	XMax = 10.0
)

// RegressionTarget is the noiseless function the fake model is fitting
func RegressionTarget(x float64) float64 {
	return 2*math.Sin(x) + 0.5*x
}

// Prediction generates the observed and predicted values at x
func Prediction(rng *rand.Rand, x float64, now time.Time) models.Prediction {
	y := RegressionTarget(x)
	uncertainty := Round(math.Abs(Gauss(rng, 0.1, 0.05)), 4)

	return models.Prediction{
		X:           Round(x, 4),
		YTrue:       Round(y+Gauss(rng, 0, 0.2), 4),
		YPred:       Round(y+Gauss(rng, 0, 0.1), 4),
		Uncertainty: uncertainty,
		Confidence:  Round(1-uncertainty, 4),
		Timestamp:   now,
	}
}

// NextX advances x by one step, wrapping to 0 past XMax
func NextX(x float64) float64 {
	x = Round(x+XStep, 4)
	if x > XMax {
		return 0
	}
	return x
}
