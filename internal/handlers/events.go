// internal/handlers/events.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/ports"
)

const (
	clientBuffer      = 16
	heartbeatInterval = 30 * time.Second
)

// ChangeEvent is pushed to every event stream client after a mutation.
type ChangeEvent struct {
	Type    string      `json:"type"`
	Mode    domain.Mode `json:"mode"`
	Batches int         `json:"batches"`
	Engines int         `json:"engines"`
	At      time.Time   `json:"at"`
}

// EventHub fans store change notifications out to Server-Sent Events clients.
// A client whose buffer is full is disconnected.
type EventHub struct {
	store       ports.Store
	logger      *slog.Logger
	unsubscribe func()

	mu      sync.Mutex
	clients map[chan ChangeEvent]struct{}
	closed  bool
}

// NewEventHub subscribes to store. Close releases the subscription.
func NewEventHub(store ports.Store, logger *slog.Logger) *EventHub {
	h := &EventHub{
		store:   store,
		logger:  logger.With(slog.String("handler", "events")),
		clients: make(map[chan ChangeEvent]struct{}),
	}
	h.unsubscribe = store.Subscribe(h.broadcast)
	return h
}

func (h *EventHub) broadcast() {
	status := h.store.Status()
	ev := ChangeEvent{
		Type:    "changed",
		Mode:    status.Mode,
		Batches: status.Batches,
		Engines: status.Engines,
		At:      time.Now().UTC(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
			delete(h.clients, ch)
			close(ch)
			h.logger.Warn("dropped slow event client")
		}
	}
}

func (h *EventHub) register() (chan ChangeEvent, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	ch := make(chan ChangeEvent, clientBuffer)
	h.clients[ch] = struct{}{}
	return ch, true
}

func (h *EventHub) unregister(ch chan ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

// Clients returns the number of connected clients.
func (h *EventHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close unsubscribes from the store and ends every stream.
func (h *EventHub) Close() {
	h.unsubscribe()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

// ServeHTTP handles GET /api/v1/events
func (h *EventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rc := http.NewResponseController(w)
	// streams outlive the server write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	ch, ok := h.register()
	if !ok {
		http.Error(w, "event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer h.unregister(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	fmt.Fprint(w, ": connected\n\n")
	if err := rc.Flush(); err != nil {
		h.logger.WarnContext(ctx, "event stream not flushable", slog.String("error", err.Error()))
		return
	}

	h.logger.DebugContext(ctx, "event client connected")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
		case ev, open := <-ch:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
