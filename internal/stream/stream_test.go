package stream

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/generator"
	"portfolio-backend/internal/models"
)

// unpaced returns options with every delay disabled
func unpaced() Options {
	return Options{
		TrainingEpochs: 12,
		MaxRuns:        1,
		Now:            func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

type recorder struct {
	mu      sync.Mutex
	records []any
	limit   int
	onLimit func()
	err     error
}

func (r *recorder) Send(_ context.Context, record any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	if r.limit > 0 && len(r.records) == r.limit && r.onLimit != nil {
		r.onLimit()
	}
	return nil
}

func (r *recorder) all() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.records...)
}

func TestNewUnknownFeed(t *testing.T) {
	_, err := New("weather", DefaultOptions(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFeed)
}

func TestFeedsListsEveryDriver(t *testing.T) {
	assert.Equal(t, []string{"3d", "hack", "matrix", "metrics", "pipeline", "predictions", "training"}, Feeds())
	for _, feed := range Feeds() {
		d, err := New(feed, DefaultOptions(), nil)
		require.NoError(t, err)
		require.NotNil(t, d)
	}
}

func TestPipelineRunFollowsStageOrder(t *testing.T) {
	d, err := New(FeedPipeline, unpaced(), generator.NewSeededRand(11))
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, d.Run(context.Background(), rec))

	events := rec.all()
	require.NotEmpty(t, events)

	start := events[0].(models.PipelineEvent)
	assert.Equal(t, models.PipelineEventStart, start.Type)
	assert.NotEmpty(t, start.RunID)
	assert.Positive(t, start.TotalRows)

	end := events[len(events)-1].(models.PipelineEvent)
	assert.Equal(t, models.PipelineEventComplete, end.Type)
	assert.Equal(t, start.RunID, end.RunID)

	var order []string
	lastProgress := map[string]float64{}
	for _, raw := range events[1 : len(events)-1] {
		ev := raw.(models.PipelineEvent)
		require.Equal(t, start.RunID, ev.RunID)
		switch ev.Type {
		case models.PipelineEventLog:
			if ev.Status == models.StageStatusRunning {
				order = append(order, ev.Stage)
			} else {
				assert.Equal(t, 100.0, lastProgress[ev.Stage], "stage %s must finish at 100", ev.Stage)
			}
		case models.PipelineEventProgress:
			require.NotNil(t, ev.Metrics)
			require.GreaterOrEqual(t, ev.Progress, lastProgress[ev.Stage])
			lastProgress[ev.Stage] = ev.Progress
		default:
			t.Fatalf("unexpected event type %q", ev.Type)
		}
	}

	want := make([]string, 0, len(generator.DefaultStages))
	for _, s := range generator.DefaultStages {
		want = append(want, s.ID)
	}
	assert.Equal(t, want, order)
}

func TestPipelineRestartsWithFreshRun(t *testing.T) {
	opts := unpaced()
	opts.MaxRuns = 2
	d, err := New(FeedPipeline, opts, generator.NewSeededRand(5))
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, d.Run(context.Background(), rec))

	var starts []models.PipelineEvent
	for _, raw := range rec.all() {
		if ev := raw.(models.PipelineEvent); ev.Type == models.PipelineEventStart {
			starts = append(starts, ev)
		}
	}
	require.Len(t, starts, 2)
	assert.NotEqual(t, starts[0].RunID, starts[1].RunID)
}

func TestTrainingRestartsAtEpochOne(t *testing.T) {
	opts := unpaced()
	opts.MaxRuns = 2
	d, err := New(FeedTraining, opts, generator.NewSeededRand(2))
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, d.Run(context.Background(), rec))

	records := rec.all()
	require.Len(t, records, 2*(12+1))

	for run := 0; run < 2; run++ {
		base := run * 13
		for i := 0; i < 12; i++ {
			ep := records[base+i].(models.TrainingEpoch)
			assert.Equal(t, i+1, ep.Epoch)
			assert.Equal(t, generator.LearningRate(ep.Epoch), ep.LearningRate)
		}
		done := records[base+12].(models.TrainingComplete)
		assert.Equal(t, models.TrainingTypeComplete, done.Type)
		assert.Equal(t, 12, done.TotalEpochs)
	}
}

func TestMetricsSessionStopsAfterDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, err := NewSession(FeedMetrics, unpaced())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, session.State())

	rec := &recorder{limit: 3, onLimit: cancel}
	state := session.Run(ctx, rec)

	assert.Equal(t, StateCancelled, state)
	assert.Equal(t, StateCancelled, session.State())
	assert.Len(t, rec.all(), 3)
	assert.EqualValues(t, 3, session.Frames())
}

func TestSinkFailureEndsDriver(t *testing.T) {
	broken := errors.New("write: broken pipe")
	calls := 0
	sink := SinkFunc(func(context.Context, any) error {
		calls++
		if calls == 2 {
			return broken
		}
		return nil
	})

	d, err := New(FeedPredictions, unpaced(), nil)
	require.NoError(t, err)

	err = d.Run(context.Background(), sink)
	assert.ErrorIs(t, err, broken)
	assert.Equal(t, 2, calls)

	session, err := NewSession(FeedHack, unpaced())
	require.NoError(t, err)
	calls = 0
	assert.Equal(t, StateCancelled, session.Run(context.Background(), sink))
	assert.EqualValues(t, 1, session.Frames())
}

func TestNewSessionNormalisesFeedName(t *testing.T) {
	session, err := NewSession("Metrics", unpaced())
	require.NoError(t, err)
	assert.Equal(t, FeedMetrics, session.Feed)
}

func TestSessionRunsOnlyOnce(t *testing.T) {
	session, err := NewSession(FeedTraining, unpaced())
	require.NoError(t, err)

	rec := &recorder{}
	assert.Equal(t, StateCompleted, session.Run(context.Background(), rec))
	n := len(rec.all())

	assert.Equal(t, StateCompleted, session.Run(context.Background(), rec))
	assert.Len(t, rec.all(), n)
}

func TestPredictionXAdvances(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d, err := New(FeedPredictions, unpaced(), generator.NewSeededRand(1))
	require.NoError(t, err)

	rec := &recorder{limit: 102, onLimit: cancel}
	assert.ErrorIs(t, d.Run(ctx, rec), context.Canceled)

	records := rec.all()
	assert.Equal(t, 0.0, records[0].(models.Prediction).X)
	assert.Equal(t, 10.0, records[100].(models.Prediction).X)
	assert.Equal(t, 0.0, records[101].(models.Prediction).X)
}

func TestPacingNextWithinRange(t *testing.T) {
	rng := generator.NewSeededRand(4)
	p := Pacing{Min: 300 * time.Millisecond, Max: 2 * time.Second}
	for i := 0; i < 100; i++ {
		d := p.Next(rng)
		require.GreaterOrEqual(t, d, p.Min)
		require.LessOrEqual(t, d, p.Max)
	}
	assert.Equal(t, time.Second, Fixed(time.Second).Next(rng))
}

func TestSleepHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "cancelled", StateCancelled.String())
}
