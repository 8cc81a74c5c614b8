package net

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MalformedMessageError reports an inbound message that is not valid JSON,
// lacks a required field, or has an unknown type. Such messages are logged
// and dropped.
type MalformedMessageError struct {
	Type   string
	Reason string
	Err    error
}

func (e *MalformedMessageError) Error() string {
	msg := "malformed message"
	if e.Type != "" {
		msg += " " + strconv.Quote(e.Type)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedMessageError) Unwrap() error { return e.Err }

func malformed(t, reason string, err error) *MalformedMessageError {
	return &MalformedMessageError{Type: t, Reason: reason, Err: err}
}

// Encode serializes m with its "type" discriminator.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("encode: nil message")
	}
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.MessageType(), err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.MessageType(), err)
	}
	fields["type"] = json.RawMessage(strconv.Quote(m.MessageType()))
	return json.Marshal(fields)
}

type baseMessage struct {
	Type string `json:"type"`
}

// Decode parses and validates one inbound message. Errors are always
// *MalformedMessageError.
func Decode(b []byte) (Message, error) {
	if len(b) == 0 {
		return nil, malformed("", "empty message", nil)
	}
	var base baseMessage
	if err := json.Unmarshal(b, &base); err != nil {
		return nil, malformed("", "invalid envelope", err)
	}
	if base.Type == "" {
		return nil, malformed("", "missing type", nil)
	}

	switch base.Type {
	case TypeCreateLobby:
		return CreateLobby{}, nil
	case TypeGameStart:
		return GameStart{}, nil
	case TypeJoinLobby:
		var m JoinLobby
		if err := decodeBody(b, base.Type, &m); err != nil {
			return nil, err
		}
		m.LobbyID = strings.TrimSpace(m.LobbyID)
		if m.LobbyID == "" {
			return nil, malformed(base.Type, "missing lobbyID", nil)
		}
		return m, nil
	case TypePlayerInput:
		var m PlayerInput
		if err := decodeBody(b, base.Type, &m); err != nil {
			return nil, err
		}
		if err := m.validate(); err != nil {
			return nil, err
		}
		return m, nil
	case TypeLobbyCreated:
		var m LobbyCreated
		if err := decodeBody(b, base.Type, &m); err != nil {
			return nil, err
		}
		if m.LobbyID == "" {
			return nil, malformed(base.Type, "missing lobbyID", nil)
		}
		return m, nil
	case TypeLobbyJoined:
		var m LobbyJoined
		if err := decodeBody(b, base.Type, &m); err != nil {
			return nil, err
		}
		if m.LobbyID == "" || m.PlayerID == "" {
			return nil, malformed(base.Type, "missing lobbyID or playerID", nil)
		}
		return m, nil
	case TypeLobbyError:
		var m LobbyError
		if err := decodeBody(b, base.Type, &m); err != nil {
			return nil, err
		}
		return m, nil
	case TypeGameState:
		var raw struct {
			State *GameState `json:"state"`
		}
		if err := decodeBody(b, base.Type, &raw); err != nil {
			return nil, err
		}
		if raw.State == nil {
			return nil, malformed(base.Type, "missing state", nil)
		}
		return GameStateMessage{State: *raw.State}, nil
	}
	return nil, malformed(base.Type, "unknown message type", nil)
}

func decodeBody(b []byte, t string, v any) error {
	if err := json.Unmarshal(b, v); err != nil {
		return malformed(t, "invalid payload", err)
	}
	return nil
}

func (m PlayerInput) validate() error {
	switch m.Action {
	case ActionMove, ActionJump, ActionCollect:
	case "":
		return malformed(TypePlayerInput, "missing action", nil)
	default:
		return malformed(TypePlayerInput, "unknown action "+strconv.Quote(m.Action), nil)
	}
	return nil
}
