package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

// WebSocket message types for the widget event protocol
const (
	// Client -> Server messages
	MsgTypePing = "ping"

	// Server -> Client messages
	MsgTypeConnected  = "connected"
	MsgTypePong       = "pong"
	MsgTypeToast      = "toast"
	MsgTypeToastClear = "toast:clear"
	MsgTypeState      = "state:changed"
	MsgTypeSnapshots  = "snapshots:changed"
)

// WSMessage is the envelope for all hub traffic
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Hub fans server-side events out to every connected widget: toast
// notifications and change pings that tell open tabs to refetch. Multiple
// tabs of the same widget share one diagram on the server, so each tab
// needs to hear about changes the others make.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex // per-conn write lock
}

// NewHub creates an event hub with no connected clients.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until the
// client goes away. The read loop only services pings; all data flows
// server to client.
func (h *Hub) HandleWebSocket(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	writeMu := h.register(ws)
	defer h.unregister(ws)

	fmt.Println("[WebSocket] Widget connected")

	h.send(ws, writeMu, WSMessage{Type: MsgTypeConnected, Timestamp: time.Now().UnixMilli()})

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				fmt.Printf("[WebSocket] Connection error: %v\n", err)
			}
			break
		}

		if msg.Type == MsgTypePing {
			h.send(ws, writeMu, WSMessage{Type: MsgTypePong, Timestamp: time.Now().UnixMilli()})
		}
	}

	fmt.Println("[WebSocket] Widget disconnected")
	return nil
}

func (h *Hub) register(ws *websocket.Conn) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeMu := &sync.Mutex{}
	h.clients[ws] = writeMu
	return writeMu
}

func (h *Hub) unregister(ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, ws)
}

// ClientCount returns the number of connected widgets.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends an event to every connected client. Clients whose write
// fails are dropped; their read loop will notice and clean up.
func (h *Hub) Broadcast(msgType string, payload interface{}) {
	var raw json.RawMessage
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("[WebSocket] Dropping broadcast, payload encode failed: %v\n", err)
			return
		}
		raw = encoded
	}

	msg := WSMessage{Type: msgType, Payload: raw, Timestamp: time.Now().UnixMilli()}

	h.mu.Lock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for ws, writeMu := range h.clients {
		conns[ws] = writeMu
	}
	h.mu.Unlock()

	for ws, writeMu := range conns {
		if err := h.send(ws, writeMu, msg); err != nil {
			h.unregister(ws)
			ws.Close()
		}
	}
}

// BroadcastToast forwards a toast change to the widgets. A nil toast means
// the current toast cleared.
func (h *Hub) BroadcastToast(toast *models.Toast) {
	if toast == nil {
		h.Broadcast(MsgTypeToastClear, nil)
		return
	}
	h.Broadcast(MsgTypeToast, toast)
}

// BroadcastStateChanged tells open tabs the shared diagram state moved.
func (h *Hub) BroadcastStateChanged() {
	h.Broadcast(MsgTypeState, nil)
}

func (h *Hub) send(ws *websocket.Conn, writeMu *sync.Mutex, msg WSMessage) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	return ws.WriteJSON(msg)
}
