package generator

import (
	"math/rand/v2"
	"time"

	"portfolio-backend/internal/models"
)

// Metrics samples one system metrics snapshot; every field is drawn independently
func Metrics(rng *rand.Rand, now time.Time) models.MetricsSnapshot {
	return models.MetricsSnapshot{
		Timestamp:  now,
		CPU:        Round(Uniform(rng, 10, 90), 2),
		Memory:     Round(Uniform(rng, 30, 85), 2),
		GPU:        Round(Uniform(rng, 0, 100), 2),
		DiskIO:     Round(Uniform(rng, 0, 500), 2),
		NetworkIn:  Round(Uniform(rng, 0, 1000), 2),
		NetworkOut: Round(Uniform(rng, 0, 1000), 2),
		LatencyMs:  Round(Uniform(rng, 5, 200), 2),
		ErrorRate:  Round(Uniform(rng, 0, 5), 3),
	}
}
