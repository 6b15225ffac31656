package tracing

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/sirupsen/logrus"
)

// WebSocketHandler streams live exchanges over a websocket
type WebSocketHandler struct {
	service  *Service
	logger   *logrus.Logger
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(service *Service, logger *logrus.Logger) *WebSocketHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &WebSocketHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP streams exchanges to one client. The query string narrows the
// feed with the same parameters as the exchange listing (method, path,
// status, since, until); limit replays that many recent matching exchanges,
// oldest first, before live ones.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query(), 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Debug("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	subID, exchanges := h.service.Subscribe()
	defer h.service.Unsubscribe(subID)

	log := h.logger.WithFields(logrus.Fields{
		"subscriber": subID,
		"method":     filter.Method,
		"path":       filter.PathTemplate,
	})
	log.Debug("Exchange feed subscriber connected")

	// Exchanges recorded during the replay also arrive live; replayed IDs are skipped
	replayed := make(map[string]bool)
	if filter.Limit > 0 {
		backlog := h.service.Exchanges(filter)
		for i := len(backlog) - 1; i >= 0; i-- {
			if err := h.send(conn, backlog[i]); err != nil {
				log.WithError(err).Debug("Failed to replay exchange")
				return
			}
			replayed[backlog[i].ID] = true
		}
	}

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Reads only detect the client going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case exchange, ok := <-exchanges:
			if !ok {
				return
			}
			if !Matches(exchange, filter) || replayed[exchange.ID] {
				continue
			}
			if err := h.send(conn, exchange); err != nil {
				log.WithError(err).Debug("Failed to send exchange")
				return
			}

		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			log.Debug("Exchange feed subscriber disconnected")
			return
		}
	}
}

func (h *WebSocketHandler) send(conn *websocket.Conn, exchange *models.Exchange) error {
	data, err := json.Marshal(exchange)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to marshal exchange")
		return nil
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
