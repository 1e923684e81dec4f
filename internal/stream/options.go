package stream

import "time"

// Options tunes every driver. Zero durations disable pacing, which tests rely on.
type Options struct {
	MetricsPacing    Pacing
	PredictionPacing Pacing
	MatrixPacing     Pacing
	CloudPacing      Pacing
	HackPacing       Pacing

	TrainingEpochs       int
	TrainingInterval     time.Duration
	TrainingRestartPause time.Duration

	PipelineTick         time.Duration
	PipelineRestartPause time.Duration

	// MaxRuns bounds the training and pipeline feeds; 0 restarts forever
	MaxRuns int

	Now func() time.Time
}

// DefaultOptions returns the production cadence of every feed
func DefaultOptions() Options {
	return Options{
		MetricsPacing:    Pacing{Min: 500 * time.Millisecond, Max: time.Second},
		PredictionPacing: Pacing{Min: 100 * time.Millisecond, Max: 200 * time.Millisecond},
		MatrixPacing:     Pacing{Min: 100 * time.Millisecond, Max: 200 * time.Millisecond},
		CloudPacing:      Pacing{Min: 100 * time.Millisecond, Max: 200 * time.Millisecond},
		HackPacing:       Pacing{Min: 300 * time.Millisecond, Max: 2 * time.Second},

		TrainingEpochs:       50,
		TrainingInterval:     500 * time.Millisecond,
		TrainingRestartPause: 3 * time.Second,

		PipelineTick:         100 * time.Millisecond,
		PipelineRestartPause: 5 * time.Second,

		Now: func() time.Time { return time.Now().UTC() },
	}
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now().UTC()
	}
	return o.Now()
}
