package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"mouthwash/internal/platform/logger"
)

const (
	// writeWait bounds a single websocket write
	writeWait = 10 * time.Second

	// pongWait is how long a subscriber may go silent before we drop it
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize caps inbound frames; subscribers only listen
	maxMessageSize = 512

	// sendBuffer is the per-client outbound queue
	sendBuffer = 64

	// broadcastBuffer absorbs ingest bursts before events are dropped
	broadcastBuffer = 256
)

// envelope is one fan-out payload routed to a session's subscribers
type envelope struct {
	session string
	data    []byte
}

// Hub routes events to websocket subscribers keyed by session id.
// All state is owned by the Run loop; callers talk to it over channels
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
	closing    chan string

	sessions map[string]map[*Client]bool

	log logger.Logger
}

// NewHub constructs a Hub; call Run to start routing
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, broadcastBuffer),
		closing:    make(chan string, 16),
		sessions:   make(map[string]map[*Client]bool),
		log:        *logger.Named("live-hub"),
	}
}

// Run drains the hub channels until ctx ends; subscribers are closed on exit
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			for sid, subs := range h.sessions {
				for c := range subs {
					close(c.send)
				}
				delete(h.sessions, sid)
			}
			return ctx.Err()

		case c := <-h.register:
			subs := h.sessions[c.session]
			if subs == nil {
				subs = make(map[*Client]bool)
				h.sessions[c.session] = subs
			}
			subs[c] = true
			h.log.Debug().Str("session_id", c.session).Int("subscribers", len(subs)).Msg("live: subscriber joined")

		case c := <-h.unregister:
			if subs, ok := h.sessions[c.session]; ok && subs[c] {
				delete(subs, c)
				close(c.send)
				if len(subs) == 0 {
					delete(h.sessions, c.session)
				}
				h.log.Debug().Str("session_id", c.session).Int("subscribers", len(subs)).Msg("live: subscriber left")
			}

		case env := <-h.broadcast:
			for c := range h.sessions[env.session] {
				select {
				case c.send <- env.data:
				default:
					// a subscriber that cannot keep up is dropped
					delete(h.sessions[env.session], c)
					close(c.send)
				}
			}

		case sid := <-h.closing:
			for c := range h.sessions[sid] {
				close(c.send)
			}
			delete(h.sessions, sid)
		}
	}
}

// Broadcast fans v out to the session's subscribers as JSON. Delivery is
// best effort: if the hub queue is full the event is dropped with a warning
func (h *Hub) Broadcast(sessionID string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Warn().Err(err).Str("session_id", sessionID).Msg("live: event marshal failed")
		return
	}
	select {
	case h.broadcast <- envelope{session: sessionID, data: data}:
	default:
		h.log.Warn().Str("session_id", sessionID).Msg("live: broadcast queue full; event dropped")
	}
}

// CloseSession disconnects every subscriber of the session. Best effort
// like Broadcast: a stopped hub closes all subscribers on exit anyway
func (h *Hub) CloseSession(sessionID string) {
	select {
	case h.closing <- sessionID:
	default:
		h.log.Warn().Str("session_id", sessionID).Msg("live: close queue full; relying on hub shutdown")
	}
}

// Client is one websocket subscriber
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session string
}

// NewClient wraps an upgraded connection; Start launches its pumps
func NewClient(h *Hub, conn *websocket.Conn, sessionID string) *Client {
	return &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		session: sessionID,
	}
}

// Start registers the client and launches the read and write pumps
func (c *Client) Start() {
	c.hub.register <- c
	go c.writePump()
	go c.readPump()
}

// readPump discards inbound frames; it exists to service control frames
// and to notice the peer going away
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump drains send into the socket and keeps the connection alive
// with pings; it exits when send is closed or a write fails
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
