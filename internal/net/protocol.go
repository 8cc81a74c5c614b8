package net

// Message types.
const (
	TypeCreateLobby  = "create_lobby"
	TypeJoinLobby    = "join_lobby"
	TypeLobbyCreated = "lobby_created"
	TypeLobbyJoined  = "lobby_joined"
	TypeLobbyError   = "lobby_error"
	TypeGameStart    = "game_start"
	TypePlayerInput  = "player_input"
	TypeGameState    = "game_state"
)

// Input actions.
const (
	ActionMove    = "move"
	ActionJump    = "jump"
	ActionCollect = "collect"
)

// Message is one variant of the wire protocol. Encode adds the "type" field.
type Message interface {
	MessageType() string
}

// Client → Server messages

type CreateLobby struct{}

type JoinLobby struct {
	LobbyID string `json:"lobbyID"`
}

type Direction struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// PlayerInput carries one intent. A move without direction means stop.
type PlayerInput struct {
	Action    string     `json:"action"`
	PlayerID  string     `json:"playerID,omitempty"`
	Direction *Direction `json:"direction,omitempty"`
}

// Server → Client messages

type LobbyCreated struct {
	LobbyID  string `json:"lobbyID"`
	PlayerID string `json:"playerID,omitempty"`
}

type LobbyJoined struct {
	LobbyID  string `json:"lobbyID"`
	PlayerID string `json:"playerID"`
}

type LobbyError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type GameStart struct{}

type GameStateMessage struct {
	State GameState `json:"state"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type PlayerState struct {
	Position Vec3 `json:"position"`
	Velocity Vec3 `json:"velocity"`
	Grounded bool `json:"grounded"`
	CanJump  bool `json:"canJump"`
}

type PlatformState struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	HalfExtents *Vec3   `json:"halfExtents,omitempty"`
}

// CubeState is one pickup of the current batch. Collected cubes stay listed
// until the batch is replaced so the batch size stays intact on the wire.
type CubeState struct {
	ID        *int    `json:"id,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Collected bool    `json:"collected,omitempty"`
}

// GameState is the authoritative snapshot. Tick increases monotonically per
// lobby; zero means the sender does not number its snapshots.
type GameState struct {
	Tick          uint64          `json:"tick,omitempty"`
	Player1       PlayerState     `json:"player1"`
	Player2       PlayerState     `json:"player2"`
	Player1Health int             `json:"player1Health"`
	Player2Health int             `json:"player2Health"`
	Player1Cubes  int             `json:"player1Cubes"`
	Player2Cubes  int             `json:"player2Cubes"`
	Platforms     []PlatformState `json:"platforms"`
	Cubes         []CubeState     `json:"cubes"`
}

func (CreateLobby) MessageType() string      { return TypeCreateLobby }
func (JoinLobby) MessageType() string        { return TypeJoinLobby }
func (PlayerInput) MessageType() string      { return TypePlayerInput }
func (LobbyCreated) MessageType() string     { return TypeLobbyCreated }
func (LobbyJoined) MessageType() string      { return TypeLobbyJoined }
func (LobbyError) MessageType() string       { return TypeLobbyError }
func (GameStart) MessageType() string        { return TypeGameStart }
func (GameStateMessage) MessageType() string { return TypeGameState }
