package game

import "fmt"

// Slot is one of the two participant positions in a lobby.
type Slot int

const (
	SlotA Slot = iota
	SlotB
)

// Slots lists both slots in iteration order.
var Slots = [2]Slot{SlotA, SlotB}

// WireID is the player id used on the wire ("player1" / "player2").
func (s Slot) WireID() string {
	switch s {
	case SlotA:
		return "player1"
	case SlotB:
		return "player2"
	}
	return ""
}

func (s Slot) Other() Slot {
	if s == SlotA {
		return SlotB
	}
	return SlotA
}

func (s Slot) Valid() bool {
	return s == SlotA || s == SlotB
}

func (s Slot) String() string {
	switch s {
	case SlotA:
		return "slot-A"
	case SlotB:
		return "slot-B"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// SlotFromWireID maps "player1"/"player2" back to a slot.
func SlotFromWireID(id string) (Slot, bool) {
	switch id {
	case "player1":
		return SlotA, true
	case "player2":
		return SlotB, true
	}
	return 0, false
}

// Player is the simulated avatar of one slot. Position is the centre of the
// footprint at foot level.
type Player struct {
	ID               Slot
	Position         Vec3
	Velocity         Vec3
	Grounded         bool
	CanJump          bool
	Health           int
	PickupsCollected int
}

// NewPlayer places a player at spawn, standing and able to jump.
func NewPlayer(slot Slot, spawn Vec3, cfg Config) Player {
	if spawn.Y < cfg.GroundLevel {
		spawn.Y = cfg.GroundLevel
	}
	return Player{
		ID:       slot,
		Position: spawn,
		Grounded: spawn.Y == cfg.GroundLevel,
		CanJump:  true,
		Health:   cfg.StartingHealth,
	}
}

// Platform is a static axis-aligned box centred at Position.
type Platform struct {
	Position    Vec3
	HalfExtents Vec3
}

// Top is the y of the platform's upper face.
func (p Platform) Top() float64 {
	return p.Position.Y + p.HalfExtents.Y
}

func (p Platform) Box() Box {
	return BoxAround(p.Position, p.HalfExtents)
}

// Pickup is a collectible cube centred at Position.
type Pickup struct {
	ID        int
	Position  Vec3
	Collected bool
}
