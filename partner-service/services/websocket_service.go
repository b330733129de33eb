package services

import (
	"log"
	"net/http"
	"sync"
	"time"

	"elevatia-backend/shared/config"
	"elevatia-backend/shared/database/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RequestEvent is the wire message pushed to review dashboards when a path
// request is submitted or moves through the workflow.
type RequestEvent struct {
	Type      string                     `json:"type"` // request_submitted | request_transitioned
	Request   *models.PartnerPathRequest `json:"request"`
	Timestamp time.Time                  `json:"timestamp"`
}

// ClientConnection represents a connected review dashboard
type ClientConnection struct {
	SubjectID  string
	Connection *websocket.Conn
}

// RequestNotifier pushes path-request workflow events to connected
// dashboards over WebSocket. All methods are safe on a nil notifier, so
// handlers never need to care whether live updates are enabled.
type RequestNotifier struct {
	clients    map[string]*websocket.Conn // subjectID -> connection
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
	register   chan *ClientConnection
	unregister chan *ClientConnection
	broadcast  chan *RequestEvent
}

// NewRequestNotifier builds the notifier and starts its event loop.
func NewRequestNotifier() *RequestNotifier {
	n := &RequestNotifier{
		clients: make(map[string]*websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == config.GetConfig().FrontendURL {
					return true
				}
				log.Printf("🚫 WebSocket connection rejected from origin: %s", origin)
				return false
			},
		},
		register:   make(chan *ClientConnection, 100),
		unregister: make(chan *ClientConnection, 100),
		broadcast:  make(chan *RequestEvent, 1000),
	}
	go n.run()
	return n
}

func (n *RequestNotifier) run() {
	for {
		select {
		case client := <-n.register:
			n.registerClient(client)

		case client := <-n.unregister:
			n.unregisterClient(client)

		case event := <-n.broadcast:
			n.broadcastEvent(event)
		}
	}
}

func (n *RequestNotifier) registerClient(client *ClientConnection) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	// One connection per subject
	if existingConn, exists := n.clients[client.SubjectID]; exists {
		existingConn.Close()
	}

	n.clients[client.SubjectID] = client.Connection
	log.Printf("🔌 WebSocket client connected: %s (Total: %d)", client.SubjectID, len(n.clients))
}

func (n *RequestNotifier) unregisterClient(client *ClientConnection) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if _, exists := n.clients[client.SubjectID]; exists {
		delete(n.clients, client.SubjectID)
		client.Connection.Close()
		log.Printf("🔌 WebSocket client disconnected: %s (Total: %d)", client.SubjectID, len(n.clients))
	}
}

func (n *RequestNotifier) broadcastEvent(event *RequestEvent) {
	n.mutex.RLock()
	defer n.mutex.RUnlock()

	for subjectID, conn := range n.clients {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("❌ Failed to send event to %s: %v", subjectID, err)
			go func(sid string, connection *websocket.Conn) {
				n.unregister <- &ClientConnection{SubjectID: sid, Connection: connection}
			}(subjectID, conn)
		}
	}
}

// NotifyRequestSubmitted queues a submission event for broadcast.
func (n *RequestNotifier) NotifyRequestSubmitted(request *models.PartnerPathRequest) {
	n.queue(&RequestEvent{
		Type:      "request_submitted",
		Request:   request,
		Timestamp: time.Now(),
	})
}

// NotifyRequestTransitioned queues a workflow-transition event for broadcast.
func (n *RequestNotifier) NotifyRequestTransitioned(request *models.PartnerPathRequest) {
	n.queue(&RequestEvent{
		Type:      "request_transitioned",
		Request:   request,
		Timestamp: time.Now(),
	})
}

func (n *RequestNotifier) queue(event *RequestEvent) {
	if n == nil {
		return
	}
	select {
	case n.broadcast <- event:
	default:
		log.Printf("⚠️ Broadcast queue full, dropping event: %s", event.Type)
	}
}

// HandleConnection upgrades the HTTP connection and keeps it registered
// until the peer goes away. The caller has already authenticated the
// subject.
func (n *RequestNotifier) HandleConnection(c *gin.Context, subjectID string) {
	conn, err := n.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Failed to upgrade WebSocket: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &ClientConnection{
		SubjectID:  subjectID,
		Connection: conn,
	}

	n.register <- client
	defer func() {
		n.unregister <- client
	}()

	// Drain the connection; clients only listen but may send pings.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ WebSocket error for %s: %v", subjectID, err)
			}
			break
		}
	}
}

// ConnectionCount returns the number of active dashboard connections.
func (n *RequestNotifier) ConnectionCount() int {
	n.mutex.RLock()
	defer n.mutex.RUnlock()
	return len(n.clients)
}
