package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dtroode/fileshare-server/internal/logger"
	"github.com/dtroode/fileshare-server/internal/model"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 30 * time.Second

// EventStream handles GET /auth/events, the server-sent-events channel
// announcing uploads to connected clients. A client only receives events
// published while its connection is open; on connect it should re-list
// the registry to reconcile.
type EventStream struct {
	broadcaster model.Broadcaster
	logger      *logger.Logger
}

// NewEventStream creates a new EventStream handler.
func NewEventStream(broadcaster model.Broadcaster, logger *logger.Logger) *EventStream {
	return &EventStream{broadcaster: broadcaster, logger: logger}
}

// Stream subscribes the client to upload events and relays them until the
// client disconnects or the broadcaster shuts down. The subscriber is
// always released on return.
func (h *EventStream) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, unsubscribe := h.broadcaster.Subscribe()
	defer unsubscribe()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("Event handler: failed to encode event",
					"error", err.Error())
				continue
			}
			fmt.Fprintf(w, "event: fileUploaded\ndata: %s\n\n", data)
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
