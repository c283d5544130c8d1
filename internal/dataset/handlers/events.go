package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"playlist-server/internal/dataset"

	"github.com/gorilla/websocket"
)

const (
	eventsWriteWait  = 10 * time.Second
	eventsPingPeriod = 30 * time.Second
)

// EventsHandler streams dataset changes to editor clients over a websocket
type EventsHandler struct {
	service  *dataset.Service
	upgrader websocket.Upgrader
}

// NewEventsHandler accepts connections from allowedOrigin only. An empty
// origin allows any.
func NewEventsHandler(service *dataset.Service, allowedOrigin string) *EventsHandler {
	return &EventsHandler{
		service: service,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "dataset_events", "remote_addr", r.RemoteAddr)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		logger.Debug("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	changes, unsubscribe := h.service.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Clients only listen; reading detects the close frame
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	logger.Debug("Editor subscribed to dataset changes")

	if err := h.write(conn, dataset.Change{Operation: "snapshot", Version: h.service.Version()}); err != nil {
		return
	}

	ping := time.NewTicker(eventsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Editor unsubscribed")
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if err := h.write(conn, change); err != nil {
				logger.Debug("Failed to send change", "error", err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventsWriteWait)); err != nil {
				return
			}
		}
	}
}

func (h *EventsHandler) write(conn *websocket.Conn, change dataset.Change) error {
	if err := conn.SetWriteDeadline(time.Now().Add(eventsWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(change)
}
