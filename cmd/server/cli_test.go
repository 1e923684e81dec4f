package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/stream"
	"portfolio-backend/pkg/config"
)

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// frames splits SSE output into the JSON payload of each frame
func frames(t *testing.T, out string) []string {
	t.Helper()
	var payloads []string
	for _, frame := range strings.Split(strings.TrimSuffix(out, "\n\n"), "\n\n") {
		require.True(t, strings.HasPrefix(frame, "data: "), frame)
		payload := strings.TrimPrefix(frame, "data: ")
		require.True(t, json.Valid([]byte(payload)), payload)
		payloads = append(payloads, payload)
	}
	return payloads
}

func TestVersionPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", stdout)
}

func TestStreamWritesRequestedFrames(t *testing.T) {
	stdout, _, err := executeCLI(t, "stream", "matrix", "--count", "3")
	require.NoError(t, err)

	payloads := frames(t, stdout)
	require.Len(t, payloads, 3)
	for _, payload := range payloads {
		var line models.MatrixLine
		require.NoError(t, json.Unmarshal([]byte(payload), &line))
		assert.Equal(t, "matrix", line.Type)
	}
}

func TestStreamSeedIsReproducible(t *testing.T) {
	first, _, err := executeCLI(t, "stream", "matrix", "-n", "2", "--seed", "42")
	require.NoError(t, err)
	second, _, err := executeCLI(t, "stream", "matrix", "-n", "2", "--seed", "42")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStreamTrainingHonoursEpochFlag(t *testing.T) {
	t.Setenv("TRAINING_EPOCHS", "7")

	stdout, _, err := executeCLI(t, "--training-epochs", "2", "stream", "training", "-n", "3")
	require.NoError(t, err)

	payloads := frames(t, stdout)
	require.Len(t, payloads, 3)

	var epoch models.TrainingEpoch
	require.NoError(t, json.Unmarshal([]byte(payloads[1]), &epoch))
	assert.Equal(t, 2, epoch.Epoch)
	assert.Equal(t, 2, epoch.TotalEpochs)

	var done models.TrainingComplete
	require.NoError(t, json.Unmarshal([]byte(payloads[2]), &done))
	assert.Equal(t, models.TrainingTypeComplete, done.Type)
}

func TestStreamUnknownFeed(t *testing.T) {
	_, _, err := executeCLI(t, "stream", "weather", "-n", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, stream.ErrUnknownFeed)
}

func TestStreamRequiresFeed(t *testing.T) {
	_, _, err := executeCLI(t, "stream")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestInvalidConfigurationIsRejected(t *testing.T) {
	t.Setenv("TRAINING_EPOCHS", "0")

	_, _, err := executeCLI(t, "stream", "metrics", "-n", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "training epochs must be positive")
}

func TestStreamOptionsFromConfig(t *testing.T) {
	opts := streamOptions(&config.Config{
		TrainingEpochs:       10,
		TrainingRestartPause: time.Second,
		PipelineRestartPause: 2 * time.Second,
	})

	assert.Equal(t, 10, opts.TrainingEpochs)
	assert.Equal(t, time.Second, opts.TrainingRestartPause)
	assert.Equal(t, 2*time.Second, opts.PipelineRestartPause)
	assert.Equal(t, stream.DefaultOptions().MetricsPacing, opts.MetricsPacing)
	assert.Zero(t, opts.MaxRuns)
}
