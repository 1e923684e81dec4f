package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/stream"
)

func newServer(t *testing.T, feed string, opts stream.Options) (*httptest.Server, <-chan stream.State) {
	t.Helper()
	states := make(chan stream.State, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := stream.NewSession(feed, opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		state, _ := Serve(w, r, session)
		states <- state
	}))
	t.Cleanup(srv.Close)
	return srv, states
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestServeBoundedTrainingRun(t *testing.T) {
	srv, states := newServer(t, stream.FeedTraining, stream.Options{TrainingEpochs: 3, MaxRuns: 1})
	conn := dial(t, srv)
	defer conn.Close()

	for i := 1; i <= 3; i++ {
		var ep models.TrainingEpoch
		require.NoError(t, conn.ReadJSON(&ep))
		assert.Equal(t, i, ep.Epoch)
	}
	var done models.TrainingComplete
	require.NoError(t, conn.ReadJSON(&done))
	assert.Equal(t, models.TrainingTypeComplete, done.Type)

	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))

	select {
	case state := <-states:
		assert.Equal(t, stream.StateCompleted, state)
	case <-time.After(5 * time.Second):
		t.Fatal("handler did not finish")
	}
}

func TestServeStopsWhenClientLeaves(t *testing.T) {
	opts := stream.Options{MetricsPacing: stream.Fixed(10 * time.Millisecond)}
	srv, states := newServer(t, stream.FeedMetrics, opts)
	conn := dial(t, srv)

	for i := 0; i < 3; i++ {
		var snap models.MetricsSnapshot
		require.NoError(t, conn.ReadJSON(&snap))
	}
	require.NoError(t, conn.Close())

	select {
	case state := <-states:
		assert.Equal(t, stream.StateCancelled, state)
	case <-time.After(5 * time.Second):
		t.Fatal("driver kept running after the client left")
	}
}
