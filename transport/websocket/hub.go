package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Outbound queue per connection; a client that falls this far behind
	// is evicted rather than allowed to stall the room.
	sendQueueSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced by the CORS layer in front of the
		// upgrade endpoint.
		return true
	},
}

// Client is one WebSocket connection plus the session data attached to it
// once the connection creates or joins a room. Session fields are written
// only from the hub loop.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string

	userID   string
	username string
	roomCode string
}

// frame is one inbound text frame awaiting dispatch.
type frame struct {
	client *Client
	data   []byte
}

// broadcastRequest is an externally triggered room broadcast (REST/MCP
// surfaces), funneled through the hub loop like everything else.
type broadcastRequest struct {
	roomCode string
	message  interface{}
}

// Hub owns the connection registry and the room-membership index, and
// dispatches every inbound event. All registry and index mutation happens
// on the single Run loop, so handlers for the same room are never
// interleaved: two racing PRESS_BUZZER frames are dispatched one after the
// other, and only the first can observe an unclaimed buzzer.
type Hub struct {
	dispatcher *Dispatcher

	// Registered connections and the room code → members index. The
	// index replaces a linear scan of all connections per broadcast.
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	inbound    chan frame
	broadcast  chan broadcastRequest

	clientCount atomic.Int64
}

// NewHub creates a hub dispatching events through the given dispatcher.
func NewHub(d *Dispatcher) *Hub {
	h := &Hub{
		dispatcher: d,
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan frame),
		broadcast:  make(chan broadcastRequest),
	}
	d.hub = h
	return h
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case f := <-h.inbound:
			h.dispatcher.Dispatch(f.client, f.data)

		case req := <-h.broadcast:
			h.broadcastToRoom(req.roomCode, req.message)
		}
	}
}

// ServeWS upgrades the request and registers the new connection. The
// connection has no session until it creates or joins a room.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		id:   uuid.NewString(),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastToRoom delivers a message to every member connection of a room.
// Safe to call from any goroutine; delivery happens on the hub loop after
// the triggering mutation has committed.
func (h *Hub) BroadcastToRoom(roomCode string, message interface{}) {
	h.broadcast <- broadcastRequest{roomCode: roomCode, message: message}
}

// ClientCount returns the number of registered connections.
func (h *Hub) ClientCount() int {
	return int(h.clientCount.Load())
}

// registerClient adds a connection to the registry.
func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
	h.clientCount.Store(int64(len(h.clients)))
	log.Printf("Client %s connected (total: %d)", client.id, len(h.clients))
}

// unregisterClient removes a connection, runs the departure path for its
// room (if any), and notifies survivors.
func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	if client.roomCode != "" {
		h.dispatcher.HandleDisconnect(client)
	}

	h.detachFromRoom(client)
	delete(h.clients, client)
	close(client.send)
	h.clientCount.Store(int64(len(h.clients)))
	log.Printf("Client %s disconnected (total: %d)", client.id, len(h.clients))
}

// attachToRoom points the client's session at a room and indexes the
// connection for broadcasts. A client switching rooms leaves the old index
// entry behind it. Hub loop only.
func (h *Hub) attachToRoom(client *Client, userID, username, roomCode string) {
	h.detachFromRoom(client)

	client.userID = userID
	client.username = username
	client.roomCode = roomCode

	if h.rooms[roomCode] == nil {
		h.rooms[roomCode] = make(map[*Client]bool)
	}
	h.rooms[roomCode][client] = true
}

// detachFromRoom drops the client from the room index. Hub loop only.
func (h *Hub) detachFromRoom(client *Client) {
	if client.roomCode == "" {
		return
	}
	if members, ok := h.rooms[client.roomCode]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, client.roomCode)
		}
	}
}

// broadcastToRoom marshals once and fans out to every open member. A
// member whose queue is full is skipped; the ping/pong cycle will reap it
// if it is actually gone. Hub loop only.
func (h *Hub) broadcastToRoom(roomCode string, message interface{}) {
	members, ok := h.rooms[roomCode]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast for room %s: %v", roomCode, err)
		return
	}

	for client := range members {
		select {
		case client.send <- data:
		default:
			log.Printf("Client %s send queue full, dropping broadcast", client.id)
		}
	}
}

// sendTo queues a message for a single connection. Hub loop only.
func (h *Hub) sendTo(client *Client, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal reply for client %s: %v", client.id, err)
		return
	}
	select {
	case client.send <- data:
	default:
		log.Printf("Client %s send queue full, dropping reply", client.id)
	}
}

// readPump pumps frames from the WebSocket connection into the hub loop.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		c.hub.inbound <- frame{client: c, data: message}
	}
}

// writePump pumps queued messages to the WebSocket connection and keeps it
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
