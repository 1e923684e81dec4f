package stream

import (
	"context"
	"math/rand/v2"

	"portfolio-backend/internal/generator"
	"portfolio-backend/internal/models"
)

// MetricsDriver emits system metrics snapshots forever
type MetricsDriver struct {
	rng  *rand.Rand
	opts Options
}

func (d *MetricsDriver) Run(ctx context.Context, sink Sink) error {
	return forever(ctx, sink, d.rng, d.opts.MetricsPacing, func() any {
		return generator.Metrics(d.rng, d.opts.now())
	})
}

// PredictionDriver walks x across the regression curve, wrapping at the bound
type PredictionDriver struct {
	rng  *rand.Rand
	opts Options
	x    float64
}

func (d *PredictionDriver) Run(ctx context.Context, sink Sink) error {
	return forever(ctx, sink, d.rng, d.opts.PredictionPacing, func() any {
		p := generator.Prediction(d.rng, d.x, d.opts.now())
		d.x = generator.NextX(d.x)
		return p
	})
}

// MatrixDriver emits matrix rain columns forever
type MatrixDriver struct {
	rng  *rand.Rand
	opts Options
}

func (d *MatrixDriver) Run(ctx context.Context, sink Sink) error {
	return forever(ctx, sink, d.rng, d.opts.MatrixPacing, func() any {
		return generator.MatrixLine(d.rng)
	})
}

// HackDriver cycles through the scripted intrusion messages with a random delay per message
type HackDriver struct {
	rng  *rand.Rand
	opts Options
	step int
}

func (d *HackDriver) Run(ctx context.Context, sink Sink) error {
	return forever(ctx, sink, d.rng, d.opts.HackPacing, func() any {
		msg := generator.HackMessage(d.step)
		d.step = (d.step + 1) % generator.HackSequenceLength()
		return msg
	})
}

// CloudDriver animates the 3D spiral
type CloudDriver struct {
	rng  *rand.Rand
	opts Options
	t    float64
}

func (d *CloudDriver) Run(ctx context.Context, sink Sink) error {
	return forever(ctx, sink, d.rng, d.opts.CloudPacing, func() any {
		frame := generator.PointCloud(d.t, generator.CloudPoints)
		d.t += generator.CloudTimeStep
		return frame
	})
}

// TrainingDriver replays a training run epoch by epoch.
// After the last epoch it emits a completion record, pauses, and starts again at epoch 1.
type TrainingDriver struct {
	rng   *rand.Rand
	opts  Options
	epoch int
}

func (d *TrainingDriver) Run(ctx context.Context, sink Sink) error {
	total := d.opts.TrainingEpochs
	if total <= 0 {
		total = 1
	}

	for run := 0; d.opts.MaxRuns == 0 || run < d.opts.MaxRuns; run++ {
		if run > 0 {
			if err := Sleep(ctx, d.opts.TrainingRestartPause); err != nil {
				return err
			}
		}

		var last models.TrainingEpoch
		for d.epoch = 1; d.epoch <= total; d.epoch++ {
			last = generator.TrainingEpoch(d.rng, d.epoch, total)
			if err := sink.Send(ctx, last); err != nil {
				return err
			}
			if err := Sleep(ctx, d.opts.TrainingInterval); err != nil {
				return err
			}
		}

		if err := sink.Send(ctx, generator.TrainingSummary(last)); err != nil {
			return err
		}
	}
	return nil
}

// PipelineDriver simulates ETL runs over the fixed stage list.
// Each run gets a fresh run id and row count; runs repeat after a pause.
type PipelineDriver struct {
	rng    *rand.Rand
	opts   Options
	stages []models.Stage
}

func (d *PipelineDriver) Run(ctx context.Context, sink Sink) error {
	for run := 0; d.opts.MaxRuns == 0 || run < d.opts.MaxRuns; run++ {
		if run > 0 {
			if err := Sleep(ctx, d.opts.PipelineRestartPause); err != nil {
				return err
			}
		}
		if err := d.runOnce(ctx, sink); err != nil {
			return err
		}
	}
	return nil
}

func (d *PipelineDriver) runOnce(ctx context.Context, sink Sink) error {
	runID := generator.RunID()
	totalRows := generator.TotalRows(d.rng)
	started := d.opts.now()

	if err := sink.Send(ctx, models.PipelineEvent{
		Type:      models.PipelineEventStart,
		RunID:     runID,
		Message:   "Pipeline run started",
		TotalRows: totalRows,
		Stages:    d.stages,
		Timestamp: started,
	}); err != nil {
		return err
	}

	for _, stage := range d.stages {
		if err := d.runStage(ctx, sink, runID, stage); err != nil {
			return err
		}
	}

	return sink.Send(ctx, models.PipelineEvent{
		Type:      models.PipelineEventComplete,
		RunID:     runID,
		Status:    models.StageStatusCompleted,
		Message:   "Pipeline run completed successfully",
		TotalRows: totalRows,
		Timestamp: d.opts.now(),
	})
}

func (d *PipelineDriver) runStage(ctx context.Context, sink Sink, runID string, stage models.Stage) error {
	if err := sink.Send(ctx, models.PipelineEvent{
		Type:      models.PipelineEventLog,
		RunID:     runID,
		Stage:     stage.ID,
		StageName: stage.Name,
		Status:    models.StageStatusRunning,
		Level:     "info",
		Message:   "Starting " + stage.Name + "...",
		Timestamp: d.opts.now(),
	}); err != nil {
		return err
	}

	steps := generator.ProgressSteps(generator.StageDuration(d.rng, stage))
	for i := 0; i < steps; i++ {
		metrics := generator.StageMetrics(d.rng)
		if err := sink.Send(ctx, models.PipelineEvent{
			Type:      models.PipelineEventProgress,
			RunID:     runID,
			Stage:     stage.ID,
			StageName: stage.Name,
			Status:    models.StageStatusRunning,
			Progress:  generator.StageProgress(i, steps),
			Metrics:   &metrics,
			Timestamp: d.opts.now(),
		}); err != nil {
			return err
		}
		if err := Sleep(ctx, d.opts.PipelineTick); err != nil {
			return err
		}
	}

	return sink.Send(ctx, models.PipelineEvent{
		Type:      models.PipelineEventLog,
		RunID:     runID,
		Stage:     stage.ID,
		StageName: stage.Name,
		Status:    models.StageStatusCompleted,
		Level:     "success",
		Message:   stage.Name + " completed",
		Timestamp: d.opts.now(),
	})
}
