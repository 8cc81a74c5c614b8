package client

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"arena/internal/net"
)

// NetClient is the client end of the WebSocket. Lobby events and snapshots
// are handed to the game loop through buffered channels; nothing here blocks
// the caller.
type NetClient struct {
	conn      *websocket.Conn
	send      chan []byte
	snapshots chan net.GameState
	events    chan net.Message
	done      chan struct{}
	closeOnce sync.Once
}

func NewNetClient(addr string) (*NetClient, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, err
	}

	nc := &NetClient{
		conn:      conn,
		send:      make(chan []byte, 256),
		snapshots: make(chan net.GameState, 10),
		events:    make(chan net.Message, 16),
		done:      make(chan struct{}),
	}

	go nc.readPump()
	go nc.writePump()

	return nc, nil
}

// SendMessage queues m. It is skipped when the buffer is full or the
// connection is gone.
func (nc *NetClient) SendMessage(m net.Message) {
	data, err := net.Encode(m)
	if err != nil {
		log.Printf("Encode %s: %v", m.MessageType(), err)
		return
	}
	select {
	case <-nc.done:
	case nc.send <- data:
	default:
	}
}

func (nc *NetClient) CreateLobby() {
	nc.SendMessage(net.CreateLobby{})
}

func (nc *NetClient) JoinLobby(lobbyID string) {
	nc.SendMessage(net.JoinLobby{LobbyID: lobbyID})
}

func (nc *NetClient) SendInput(input net.PlayerInput) {
	nc.SendMessage(input)
}

func (nc *NetClient) readPump() {
	defer nc.Close()

	for {
		_, message, err := nc.conn.ReadMessage()
		if err != nil {
			log.Printf("Read error: %v", err)
			return
		}

		msg, err := net.Decode(message)
		if err != nil {
			log.Printf("Dropping server message: %v", err)
			continue
		}

		switch msg := msg.(type) {
		case net.GameStateMessage:
			pushLatest(nc.snapshots, msg.State)
		default:
			select {
			case nc.events <- msg:
			default:
				log.Printf("Event buffer full, dropping %s", msg.MessageType())
			}
		}
	}
}

// pushLatest enqueues v, evicting the oldest entry when the buffer is full.
func pushLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (nc *NetClient) writePump() {
	defer nc.conn.Close()

	for {
		select {
		case <-nc.done:
			nc.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-nc.send:
			if err := nc.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		}
	}
}

// Snapshots returns every snapshot received since the last call, in receipt
// order.
func (nc *NetClient) Snapshots() []net.GameState {
	var out []net.GameState
	for {
		select {
		case s := <-nc.snapshots:
			out = append(out, s)
		default:
			return out
		}
	}
}

// Event returns the next lobby event, or nil.
func (nc *NetClient) Event() net.Message {
	select {
	case ev := <-nc.events:
		return ev
	default:
		return nil
	}
}

func (nc *NetClient) Close() {
	nc.closeOnce.Do(func() {
		close(nc.done)
	})
}
