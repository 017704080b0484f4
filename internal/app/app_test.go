package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vizvolt/internal/config"
	httpserver "vizvolt/internal/http"
	"vizvolt/internal/http/handlers"
	"vizvolt/internal/models"
	"vizvolt/internal/poller"
)

type failingFetcher struct {
	mu    sync.Mutex
	calls int
}

func (f *failingFetcher) FetchDevices(ctx context.Context) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil, errors.New("upstream timeout")
}

func (f *failingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type nopStore struct{}

func (nopStore) Insert(ctx context.Context, reading models.DeviceReading) error { return nil }
func (nopStore) Close() error                                                   { return nil }

// The liveness probe keeps answering 200 while every poll tick fails.
func TestHealthRespondsWhileTicksFail(t *testing.T) {
	logger := zap.NewNop()

	fetcher := &failingFetcher{}
	connect := func(ctx context.Context) (poller.Store, error) { return nopStore{}, nil }
	ingest := poller.New(fetcher, connect, 10*time.Millisecond, logger)

	routes := httpserver.Routes{
		Health: handlers.NewHealthHandler(config.ServiceName),
	}
	server := httpserver.NewServer("127.0.0.1:0", httpserver.NewRouter(routes), logger)

	a := &App{
		server: server,
		poller: ingest,
		logger: logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	waitFor(t, time.Second, func() bool { return server.Addr() != nil })
	waitFor(t, time.Second, func() bool { return fetcher.callCount() >= 2 })

	probe := func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/", server.Addr()))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, map[string]string{
			"status":  "ok",
			"service": "vizvolt-ingestion",
		}, body)
	}

	before := fetcher.callCount()
	probe()
	waitFor(t, time.Second, func() bool { return fetcher.callCount() > before })
	probe()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func waitFor(t *testing.T, timeout time.Duration, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}
