package server

import (
	"errors"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"arena/internal/net"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev
	},
}

// Connection is one WebSocket client. It implements Peer.
type Connection struct {
	conn *websocket.Conn
	send chan []byte
	mm   *Matchmaking
	id   int64
}

func NewConnection(conn *websocket.Conn, mm *Matchmaking, id int64) *Connection {
	return &Connection{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		mm:   mm,
		id:   id,
	}
}

// SendMessage queues m for the writer. A full buffer drops the message.
func (c *Connection) SendMessage(m net.Message) {
	data, err := net.Encode(m)
	if err != nil {
		log.Printf("Error encoding %s: %v", m.MessageType(), err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full for connection %d, dropping %s", c.id, m.MessageType())
	}
}

// handle dispatches one inbound frame.
func (c *Connection) handle(raw []byte) {
	msg, err := net.Decode(raw)
	if err != nil {
		log.Printf("Connection %d: dropping message: %v", c.id, err)
		return
	}

	switch msg := msg.(type) {
	case net.CreateLobby:
		if _, err := c.mm.CreateLobby(c); err != nil {
			c.sendLobbyError(err)
		}
	case net.JoinLobby:
		if _, err := c.mm.JoinLobby(c, msg.LobbyID); err != nil {
			c.sendLobbyError(err)
		}
	case net.PlayerInput:
		if err := c.mm.HandleInput(c, msg); err != nil {
			log.Printf("Connection %d: input rejected: %v", c.id, err)
		}
	default:
		log.Printf("Connection %d: unexpected %s from client", c.id, msg.MessageType())
	}
}

func (c *Connection) sendLobbyError(err error) {
	var (
		capErr  *CapacityError
		missing *NotFoundError
		full    *FullError
	)
	code := ""
	switch {
	case errors.As(err, &capErr):
		code = CodeCapacity
	case errors.As(err, &missing):
		code = CodeNotFound
	case errors.As(err, &full):
		code = CodeFull
	default:
		log.Printf("Connection %d: lobby request failed: %v", c.id, err)
	}
	c.SendMessage(net.LobbyError{Message: err.Error(), Code: code})
}

func (c *Connection) readPump() {
	defer func() {
		c.mm.Leave(c)
		close(c.send)
		c.conn.Close()
		log.Printf("Connection %d closed", c.id)
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
			return
		}
		c.handle(message)
	}
}

// writePump sends one frame per message.
func (c *Connection) writePump() {
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

// HandleWebSocket upgrades /ws requests and starts the connection pumps.
func HandleWebSocket(mm *Matchmaking) http.HandlerFunc {
	var nextID atomic.Int64
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade error: %v", err)
			return
		}

		id := nextID.Add(1)
		c := NewConnection(conn, mm, id)
		go c.writePump()
		go c.readPump()

		log.Printf("Client %d connected from %s", id, r.RemoteAddr)
	}
}
