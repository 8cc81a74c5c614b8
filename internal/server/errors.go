package server

import "fmt"

// Codes sent in lobby_error so clients can branch without parsing text.
const (
	CodeCapacity = "capacity"
	CodeNotFound = "not_found"
	CodeFull     = "full"
)

// CapacityError: the requester already sits in a lobby.
type CapacityError struct {
	LobbyID string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("already in lobby %s", e.LobbyID)
}

// NotFoundError: no lobby with that id.
type NotFoundError struct {
	LobbyID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("lobby %s does not exist", e.LobbyID)
}

// FullError: both slots of the lobby are taken.
type FullError struct {
	LobbyID string
}

func (e *FullError) Error() string {
	return fmt.Sprintf("lobby %s is full", e.LobbyID)
}
