package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/providers"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/offline"
)

// SSEHandler streams alert events and connectivity changes to the
// dashboard over Server-Sent Events.
type SSEHandler struct {
	eventBus providers.EventBus
	monitor  *offline.Monitor
	logger   zerolog.Logger
}

// NewSSEHandler creates a new SSE handler. eventBus may be nil when
// Redis is unavailable; the alert stream then reports an error.
func NewSSEHandler(eventBus providers.EventBus, monitor *offline.Monitor, logger zerolog.Logger) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		monitor:  monitor,
		logger:   logger.With().Str("component", "sse").Logger(),
	}
}

// StreamAlerts handles GET /api/stream/alerts
func (h *SSEHandler) StreamAlerts(w http.ResponseWriter, r *http.Request) {
	if h.eventBus == nil {
		respondWithError(w, http.StatusServiceUnavailable, "alert streaming is not available")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	setSSEHeaders(w)

	eventChan, err := h.eventBus.Subscribe(r.Context(), providers.AlertsChannel)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to subscribe to alerts channel")
		respondWithError(w, http.StatusInternalServerError, "failed to subscribe to alerts")
		return
	}

	sendEvent(w, "connected", map[string]interface{}{
		"channel":   providers.AlertsChannel,
		"timestamp": time.Now(),
	})
	flusher.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug().Msg("alert stream client disconnected")
			return
		case <-ticker.C:
			sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// StreamNetworkStatus handles GET /api/stream/network
func (h *SSEHandler) StreamNetworkStatus(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	setSSEHeaders(w)

	// The monitor calls the listener synchronously, so bridge into a
	// channel the select loop can drain.
	statusChan := make(chan entities.NetworkStatus, 10)
	unsubscribe := h.monitor.Subscribe(func(status entities.NetworkStatus) {
		select {
		case statusChan <- status:
		default:
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug().Msg("network stream client disconnected")
			return
		case <-ticker.C:
			sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case status := <-statusChan:
			sendEvent(w, "network_status", status)
			flusher.Flush()
		}
	}
}

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, payload)
}
