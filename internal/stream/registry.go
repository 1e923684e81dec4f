package stream

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"portfolio-backend/internal/generator"
)

// Feed names as they appear in /stream/{feed}
const (
	FeedMetrics     = "metrics"
	FeedTraining    = "training"
	FeedPredictions = "predictions"
	FeedPipeline    = "pipeline"
	FeedMatrix      = "matrix"
	FeedHack        = "hack"
	Feed3D          = "3d"
)

type factory func(rng *rand.Rand, opts Options) Driver

var factories = map[string]factory{
	FeedMetrics: func(rng *rand.Rand, opts Options) Driver {
		return &MetricsDriver{rng: rng, opts: opts}
	},
	FeedTraining: func(rng *rand.Rand, opts Options) Driver {
		return &TrainingDriver{rng: rng, opts: opts}
	},
	FeedPredictions: func(rng *rand.Rand, opts Options) Driver {
		return &PredictionDriver{rng: rng, opts: opts}
	},
	FeedPipeline: func(rng *rand.Rand, opts Options) Driver {
		return &PipelineDriver{rng: rng, opts: opts, stages: generator.DefaultStages}
	},
	FeedMatrix: func(rng *rand.Rand, opts Options) Driver {
		return &MatrixDriver{rng: rng, opts: opts}
	},
	FeedHack: func(rng *rand.Rand, opts Options) Driver {
		return &HackDriver{rng: rng, opts: opts}
	},
	Feed3D: func(rng *rand.Rand, opts Options) Driver {
		return &CloudDriver{rng: rng, opts: opts}
	},
}

// Feeds lists every known feed name, sorted
func Feeds() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a fresh driver for feed. rng must not be shared with another driver;
// pass nil to get a newly seeded source.
func New(feed string, opts Options, rng *rand.Rand) (Driver, error) {
	f, ok := factories[strings.ToLower(feed)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeed, feed)
	}
	if rng == nil {
		rng = generator.NewRand()
	}
	return f(rng, opts), nil
}
