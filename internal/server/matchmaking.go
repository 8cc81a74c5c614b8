package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"arena/internal/game"
	"arena/internal/net"
)

// Peer is one connected participant. SendMessage must not block.
type Peer interface {
	SendMessage(m net.Message)
}

type LobbyState string

// A lobby is created with its creator already seated and removed once the
// last participant leaves, so LobbyEmpty is never reported for a listed lobby.
const (
	LobbyEmpty            LobbyState = "empty"
	LobbyWaitingForSecond LobbyState = "waiting_for_second"
	LobbyActive           LobbyState = "active"
	LobbyClosed           LobbyState = "closed"
)

type Lobby struct {
	ID    string
	State LobbyState
	peers [2]Peer
	room  *game.Room
}

func (l *Lobby) occupants() int {
	n := 0
	for _, p := range l.peers {
		if p != nil {
			n++
		}
	}
	return n
}

func (l *Lobby) slotOf(p Peer) (game.Slot, bool) {
	for _, s := range game.Slots {
		if l.peers[s] == p {
			return s, true
		}
	}
	return 0, false
}

func (l *Lobby) broadcast(m net.Message) {
	for _, p := range l.peers {
		if p != nil {
			p.SendMessage(m)
		}
	}
}

// Matchmaking owns every lobby and its room. All lobby and room state is
// guarded by mu; the tick loop and connection handlers both go through it.
type Matchmaking struct {
	cfg            game.Config
	lobbies        map[string]*Lobby
	members        map[Peer]*Lobby
	broadcastEvery uint64

	newID   func() (string, error)
	newSeed func() int64

	mu sync.Mutex
}

func NewMatchmaking(cfg game.Config) *Matchmaking {
	return &Matchmaking{
		cfg:            cfg,
		lobbies:        make(map[string]*Lobby),
		members:        make(map[Peer]*Lobby),
		broadcastEvery: uint64(cfg.BroadcastEvery()),
		newID:          generateLobbyID,
		newSeed:        generateSeed,
	}
}

// CreateLobby opens a lobby with p in slot-A and replies lobby_created.
func (m *Matchmaking) CreateLobby(p Peer) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.members[p]; ok {
		return "", &CapacityError{LobbyID: l.ID}
	}

	id, err := m.uniqueIDUnlocked()
	if err != nil {
		return "", err
	}
	l := &Lobby{
		ID:    id,
		State: LobbyWaitingForSecond,
		room:  game.NewRoom(id, m.cfg, m.newSeed()),
	}
	m.lobbies[id] = l

	m.seatUnlocked(l, game.SlotA, p)
	log.Printf("Lobby %s created, waiting for second player", id)

	p.SendMessage(net.LobbyCreated{LobbyID: id, PlayerID: game.SlotA.WireID()})
	p.SendMessage(l.room.GetSnap())
	return id, nil
}

// JoinLobby seats p in the free slot of lobby id. Filling the second slot
// starts the game and sends game_start to both participants.
func (m *Matchmaking) JoinLobby(p Peer, id string) (game.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.members[p]; ok {
		return 0, &CapacityError{LobbyID: l.ID}
	}
	l, ok := m.lobbies[id]
	if !ok || l.State == LobbyClosed {
		return 0, &NotFoundError{LobbyID: id}
	}
	if l.occupants() >= 2 {
		return 0, &FullError{LobbyID: id}
	}

	// Normally slot-B; slot-A only when the creator has left.
	slot := game.SlotB
	if l.peers[game.SlotA] == nil {
		slot = game.SlotA
	}
	m.seatUnlocked(l, slot, p)
	p.SendMessage(net.LobbyJoined{LobbyID: id, PlayerID: slot.WireID()})

	if err := l.room.Start(); err != nil {
		// Both slots are filled here, so this only fails on a bad tuning.
		log.Printf("Lobby %s: start failed: %v", id, err)
		return slot, nil
	}
	l.State = LobbyActive
	log.Printf("Lobby %s is full, starting game", id)
	l.broadcast(net.GameStart{})
	l.broadcast(l.room.GetSnap())
	return slot, nil
}

func (m *Matchmaking) seatUnlocked(l *Lobby, slot game.Slot, p Peer) {
	l.peers[slot] = p
	l.room.AddPlayer(slot)
	m.members[p] = l
}

func (m *Matchmaking) uniqueIDUnlocked() (string, error) {
	for i := 0; i < 100; i++ {
		id, err := m.newID()
		if err != nil {
			return "", fmt.Errorf("generate lobby id: %w", err)
		}
		if _, exists := m.lobbies[id]; !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate lobby id: no free id after 100 attempts")
}

// Leave frees p's slot. A lobby left with nobody is closed and dropped; a
// lobby left with one participant waits for a new second player.
func (m *Matchmaking) Leave(p Peer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.members[p]
	if !ok {
		return
	}
	delete(m.members, p)

	slot, ok := l.slotOf(p)
	if !ok {
		return
	}
	l.peers[slot] = nil
	l.room.RemovePlayer(slot)

	if l.occupants() == 0 {
		l.State = LobbyClosed
		delete(m.lobbies, l.ID)
		log.Printf("Lobby %s closed", l.ID)
		return
	}
	l.State = LobbyWaitingForSecond
	log.Printf("Lobby %s: %s left, waiting for a new player", l.ID, slot.WireID())
}

// HandleInput feeds a player_input into the room of p. The simulated player
// is always the sender's own; a mismatching playerID is rejected.
func (m *Matchmaking) HandleInput(p Peer, in net.PlayerInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.members[p]
	if !ok {
		return fmt.Errorf("input from a participant outside any lobby")
	}
	slot, _ := l.slotOf(p)
	if in.PlayerID != "" && in.PlayerID != slot.WireID() {
		return fmt.Errorf("lobby %s: %s sent input for %s", l.ID, slot.WireID(), in.PlayerID)
	}
	if l.State != LobbyActive {
		return nil
	}

	var dx, dz float64
	if in.Direction != nil {
		dx, dz = in.Direction.X, in.Direction.Z
	}
	return l.room.QueueInput(slot, game.Action(in.Action), dx, dz)
}

// Tick advances every active lobby by dt and broadcasts a snapshot every
// broadcastEvery ticks.
func (m *Matchmaking) Tick(dt float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.lobbies {
		if l.State != LobbyActive {
			continue
		}
		l.room.ProcessTick(dt)
		if l.room.Tick%m.broadcastEvery == 0 {
			l.broadcast(l.room.GetSnap())
		}
	}
}

// Run drives Tick at the configured rate until ctx is cancelled.
func (m *Matchmaking) Run(ctx context.Context) {
	d := m.cfg.TickDuration()
	ticker := time.NewTicker(d)
	defer ticker.Stop()

	dt := d.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick(dt)
		}
	}
}

// LobbyInfo is a read-only view of a lobby.
type LobbyInfo struct {
	ID        string
	State     LobbyState
	Occupants int
	Tick      uint64
}

func (m *Matchmaking) Lookup(id string) (LobbyInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lobbies[id]
	if !ok {
		return LobbyInfo{}, false
	}
	return LobbyInfo{ID: l.ID, State: l.State, Occupants: l.occupants(), Tick: l.room.Tick}, true
}

// LobbyOf returns the id of the lobby p sits in.
func (m *Matchmaking) LobbyOf(p Peer) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.members[p]
	if !ok {
		return "", false
	}
	return l.ID, true
}
