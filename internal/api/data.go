package api

import (
	"net/http"
	"time"

	"portfolio-backend/internal/generator"
	"portfolio-backend/internal/models"
)

const samplePoints = 50

// SampleDataset is a batch of regression predictions over evenly spaced x
type SampleDataset struct {
	Name           string              `json:"name"`
	Target         string              `json:"target"`
	Points         []models.Prediction `json:"points"`
	MeanConfidence float64             `json:"mean_confidence"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// RealtimeSnapshot is one reading of every live generator at once
type RealtimeSnapshot struct {
	Timestamp  time.Time              `json:"timestamp"`
	Metrics    models.MetricsSnapshot `json:"metrics"`
	Training   models.TrainingEpoch   `json:"training"`
	Prediction models.Prediction      `json:"prediction"`
	Pipeline   models.StageMetrics    `json:"pipeline"`
}

func (s *Server) handleSampleData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sampleDataset(s.opts.Now))
}

func (s *Server) handleRealtimeSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, realtimeSnapshot(s.opts.Now, s.opts.TrainingEpochs))
}

func sampleDataset(clock func() time.Time) SampleDataset {
	rng := generator.NewRand()
	now := timeOf(clock)

	step := generator.XMax / samplePoints
	points := make([]models.Prediction, 0, samplePoints)
	var confidence float64
	for i := 0; i < samplePoints; i++ {
		p := generator.Prediction(rng, generator.Round(float64(i)*step, 2), now)
		confidence += p.Confidence
		points = append(points, p)
	}

	return SampleDataset{
		Name:           "noisy_sine_regression",
		Target:         "2*sin(x) + 0.5*x",
		Points:         points,
		MeanConfidence: generator.Round(confidence/samplePoints, 4),
		GeneratedAt:    now,
	}
}

func realtimeSnapshot(clock func() time.Time, epochs int) RealtimeSnapshot {
	rng := generator.NewRand()
	now := timeOf(clock)
	if epochs <= 0 {
		epochs = 50
	}

	x := generator.Round(generator.Uniform(rng, 0, generator.XMax), 1)
	return RealtimeSnapshot{
		Timestamp:  now,
		Metrics:    generator.Metrics(rng, now),
		Training:   generator.TrainingEpoch(rng, generator.IntBetween(rng, 1, epochs), epochs),
		Prediction: generator.Prediction(rng, x, now),
		Pipeline:   generator.StageMetrics(rng),
	}
}

func timeOf(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock()
}
