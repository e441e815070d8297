package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"connectme/internal/store"
	"connectme/internal/upload"
	"connectme/internal/utils"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// message types for websocket contract
type WSMessage map[string]interface{}

// Client represents a websocket connection
type Client struct {
	id   string
	conn *websocket.Conn
	send chan WSMessage
	quit chan struct{}
	once sync.Once
}

func (c *Client) stop() {
	c.once.Do(func() { close(c.quit) })
}

// Hub maintains active clients and broadcasts
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	// broadcast channel for safe message dispatch
	broadcast chan outbound
}

// outbound pairs a message with the clients connected when it was broadcast
type outbound struct {
	msg WSMessage
	to  []*Client
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan outbound, 64),
	}
}

func (h *Hub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) RemoveClient(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()
	if ok {
		c.stop()
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues msg for every client connected right now. Clients that
// join later never receive it.
func (h *Hub) Broadcast(msg WSMessage) {
	h.mu.RLock()
	to := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		to = append(to, c)
	}
	h.mu.RUnlock()

	select {
	case h.broadcast <- outbound{msg: msg, to: to}:
	default:
		// drop if broadcast channel is full to avoid blocking
		log.Printf("WebSocket: broadcast queue full, dropping %v", msg["type"])
	}
}

// Watch forwards every store event to connected clients.
func (h *Hub) Watch(st *store.Store) {
	forward := func(ev store.Event) {
		msg := WSMessage{"type": ev.Type}
		if ev.PostID != 0 {
			msg["post_id"] = ev.PostID
		}
		if ev.Post != nil {
			msg["post"] = ev.Post
		}
		if ev.Comment != nil {
			msg["comment"] = ev.Comment
		}
		if ev.User != nil {
			msg["user"] = ev.User
		}
		h.Broadcast(msg)
	}
	for _, t := range []string{store.EventPostCreated, store.EventPostReaction, store.EventCommentCreated, store.EventFollow} {
		st.On(t, forward)
	}
}

// UploadListener forwards session upload progress to connected clients.
func (h *Hub) UploadListener(eventType string, up *upload.Upload) {
	msg := WSMessage{"type": eventType, "upload_id": up.ID}
	if ref, ok := up.Result(); ok {
		msg["image"] = ref
	}
	h.Broadcast(msg)
}

// Run listens on broadcast channel and dispatches messages to clients safely.
func (h *Hub) Run() {
	for out := range h.broadcast {
		for _, c := range out.to {
			select {
			case c.send <- out.msg:
			case <-c.quit:
			default:
				// drop if client's send buffer is full
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS handles websocket connections
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	client := &Client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan WSMessage, 16),
		quit: make(chan struct{}),
	}
	// the snapshot and the registration happen between two store events, so
	// every change is either in INIT or delivered afterwards, never both
	var snap *store.State
	h.session.Store().Sync(func(s *store.State) {
		snap = s
		h.hub.AddClient(client)
	})
	log.Printf("WebSocket: client %s connected", client.id)

	initMsg := WSMessage{
		"type":         "init",
		"client_id":    client.id,
		"current_user": snap.CurrentUser(),
		"users":        snap.Users,
		"posts":        snap.Posts,
		"session":      h.session.View(),
	}
	if err := client.conn.WriteJSON(initMsg); err != nil {
		h.hub.RemoveClient(client.id)
		conn.Close()
		return
	}

	go h.writerLoop(client)
	h.readerLoop(client)
}

func (h *Handler) writerLoop(c *Client) {
	ticker := time.NewTicker(25 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.quit:
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) readerLoop(c *Client) {
	defer func() {
		// on disconnect
		h.hub.RemoveClient(c.id)
		log.Printf("WebSocket: client %s disconnected", c.id)
	}()

	// Set up ping/pong handlers
	c.conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		t, _ := msg["type"].(string)
		switch t {
		case "search":
			query, _ := msg["query"].(string)
			h.reply(c, WSMessage{
				"type":    "search_results",
				"query":   query,
				"results": h.repos.Posts.Search(query),
			})
		case "user":
			id, ok := utils.ParseID(msg["user_id"])
			if !ok {
				h.reply(c, WSMessage{"type": "error", "message": "Invalid user id"})
				continue
			}
			h.reply(c, WSMessage{"type": "user", "user": h.repos.Users.GetByID(id)})
		default:
			h.reply(c, WSMessage{"type": "error", "message": "Unknown message type"})
		}
	}
}

// reply sends msg to one client only
func (h *Handler) reply(c *Client, msg WSMessage) {
	select {
	case c.send <- msg:
	case <-c.quit:
	}
}
