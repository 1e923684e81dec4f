package generator

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"portfolio-backend/internal/models"
)

// TickSeconds is the simulated time covered by one progress tick
const TickSeconds = 0.1

// DefaultStages is the fixed, ordered stage list of every pipeline run
var DefaultStages = []models.Stage{
	{ID: "extract", Name: "Extract from sources", MinDuration: 2, MaxDuration: 4},
	{ID: "validate", Name: "Schema validation", MinDuration: 1, MaxDuration: 2},
	{ID: "transform", Name: "Transform & clean", MinDuration: 3, MaxDuration: 5},
	{ID: "aggregate", Name: "Aggregate features", MinDuration: 2, MaxDuration: 3},
	{ID: "load", Name: "Load to warehouse", MinDuration: 1.5, MaxDuration: 3},
}

// RunID returns a short random identifier for a pipeline run, e.g. "run_3f2a9c1d"
func RunID() string {
	return "run_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// TotalRows samples the size of the dataset a run pretends to move
func TotalRows(rng *rand.Rand) int {
	return IntBetween(rng, 100_000, 1_000_000)
}

// StageDuration samples how long a stage runs, in seconds
func StageDuration(rng *rand.Rand, stage models.Stage) float64 {
	return Uniform(rng, stage.MinDuration, stage.MaxDuration)
}

// ProgressSteps converts a sampled duration into a tick count; never less than one
func ProgressSteps(duration float64) int {
	steps := int(duration / TickSeconds)
	if steps < 1 {
		return 1
	}
	return steps
}

// StageProgress is the percentage reported by tick i (0-based) of steps.
// The last tick is exactly 100.
func StageProgress(i, steps int) float64 {
	return Round(float64(i+1)/float64(steps)*100, 1)
}

// StageMetrics samples the throughput snapshot attached to a progress tick
func StageMetrics(rng *rand.Rand) models.StageMetrics {
	return models.StageMetrics{
		RowsProcessed:    IntBetween(rng, 10_000, 100_000),
		RowsFailed:       IntBetween(rng, 0, 50),
		BytesTransferred: IntBetween(rng, 1_000_000, 50_000_000),
		CPUUsage:         Round(Uniform(rng, 20, 95), 1),
		MemoryUsage:      Round(Uniform(rng, 30, 85), 1),
		Throughput:       Round(Uniform(rng, 5_000, 25_000), 1),
	}
}
