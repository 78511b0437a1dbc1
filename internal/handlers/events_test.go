// internal/handlers/events_test.go
package handlers_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/handlers"
)

func readLine(t *testing.T, lines <-chan string) string {
	t.Helper()
	select {
	case line, ok := <-lines:
		require.True(t, ok, "event stream closed")
		return line
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event stream")
		return ""
	}
}

func TestEventHub_StreamsChanges(t *testing.T) {
	store := newSQLiteStore(t)
	mux, hub := newRouter(t, store, nil, nil, true)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	assert.Equal(t, ": connected", readLine(t, lines))
	assert.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	_, err = store.AddBatch(context.Background(), "Lote Julho", "2025-07-31")
	require.NoError(t, err)

	var line string
	for line == "" {
		line = readLine(t, lines)
	}
	assert.Equal(t, "event: changed", line)

	data := readLine(t, lines)
	require.True(t, strings.HasPrefix(data, "data: "), data)

	var ev handlers.ChangeEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(data, "data: ")), &ev))
	assert.Equal(t, "changed", ev.Type)
	assert.Equal(t, domain.ModeOffline, ev.Mode)
	assert.Equal(t, 1, ev.Batches)
	assert.Equal(t, 0, ev.Engines)

	cancel()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestEventHub_CloseEndsStreams(t *testing.T) {
	mux, hub := newRouter(t, newSQLiteStore(t), nil, nil, true)

	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/api/v1/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
	hub.Close()

	// the handler returns once its channel is closed
	_, err = reader.ReadString('\n')
	require.NoError(t, err)
	_, err = reader.ReadString('\n')
	assert.Error(t, err)
	assert.Equal(t, 0, hub.Clients())

	w := do(t, mux, "GET", "/api/v1/events", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_EventsOptional(t *testing.T) {
	mux, _ := newRouter(t, newSQLiteStore(t), nil, nil, false)

	w := do(t, mux, "GET", "/api/v1/events", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
