package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	RoleStaff    = "staff"
	RoleCustomer = "customer"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a WebSocket client
type Client struct {
	Email string
	Role  string
	Conn  *websocket.Conn
	Send  chan []byte
	Hub   *Hub
}

// Hub maintains the set of active clients and pushes booking updates to them
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client %s (%s) connected", client.Email, client.Role)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Client %s (%s) disconnected", client.Email, client.Role)
		}
	}
}

// broadcast sends message to every client matching want. Clients whose
// buffer is full are dropped.
func (h *Hub) broadcast(message []byte, want func(*Client) bool) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	sent := 0
	for client := range h.clients {
		if !want(client) {
			continue
		}
		select {
		case client.Send <- message:
			sent++
		default:
			log.Printf("Warning: dropping client %s (channel full)", client.Email)
			close(client.Send)
			delete(h.clients, client)
		}
	}
	return sent
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// WebSocket message types
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Notify pushes a booking event to staff and to the booking's owner.
func (h *Hub) Notify(_ context.Context, e BookingEvent) error {
	data, err := json.Marshal(WebSocketMessage{Type: string(e.Type), Data: e})
	if err != nil {
		return err
	}

	n := h.broadcast(data, func(c *Client) bool {
		return c.Role == RoleStaff || c.Email == e.UserEmail
	})
	log.Printf("[WS→] %s for booking %s sent to %d client(s)", e.Type, e.BookingID, n)
	return nil
}

// HandleWebSocket upgrades the request and registers the connection with the hub
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, email, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		Email: email,
		Role:  role,
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Hub:   hub,
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump only watches for close and pong frames; clients do not send commands.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
