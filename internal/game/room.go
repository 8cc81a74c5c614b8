package game

import (
	"fmt"
	"log"
	"math/rand"
)

// Action is a player intent carried by player_input.
type Action string

const (
	ActionMove    Action = "move"
	ActionJump    Action = "jump"
	ActionCollect Action = "collect"
)

// Room is the authoritative simulation of one lobby. It is not safe for
// concurrent use; the owner serializes every call.
type Room struct {
	ID     string
	World  *World
	Engine *Engine
	Tick   uint64

	cfg      Config
	rng      *rand.Rand
	occupied [2]bool
	started  bool

	// Direction persists until the next move; a jump request is consumed by
	// the next tick whether or not the player can jump.
	directions [2]Vec3
	jumpQueued [2]bool
	nextPickup int
}

func NewRoom(id string, cfg Config, seed int64) *Room {
	return &Room{
		ID:     id,
		World:  NewWorld(),
		Engine: NewEngine(cfg),
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// AddPlayer spawns a fresh player in slot.
func (r *Room) AddPlayer(slot Slot) {
	r.occupied[slot] = true
	r.directions[slot] = Vec3{}
	r.jumpQueued[slot] = false
	r.World.SetPlayer(slot, NewPlayer(slot, SpawnPoint(slot, r.cfg), r.cfg))
}

// RemovePlayer frees slot and pauses the simulation.
func (r *Room) RemovePlayer(slot Slot) {
	r.occupied[slot] = false
	r.directions[slot] = Vec3{}
	r.jumpQueued[slot] = false
	r.started = false
}

func (r *Room) Occupied(slot Slot) bool {
	return r.occupied[slot]
}

func (r *Room) Started() bool {
	return r.started
}

// Start begins simulation once both slots are filled. The platform layout is
// generated on the first start only; pickups are generated whenever the
// current batch has nothing left to collect.
func (r *Room) Start() error {
	if !r.occupied[SlotA] || !r.occupied[SlotB] {
		return fmt.Errorf("room %s: cannot start with an empty slot", r.ID)
	}
	if len(r.World.Platforms()) == 0 && r.cfg.PlatformCount > 0 {
		if err := r.World.ReplacePlatforms(GeneratePlatforms(r.rng, r.cfg), r.cfg.MinPlatformBatch); err != nil {
			return err
		}
	}
	if len(r.World.ActivePickups()) == 0 {
		if err := r.respawnPickups(); err != nil {
			return err
		}
	}
	r.started = true
	return nil
}

func (r *Room) respawnPickups() error {
	batch := GeneratePickups(r.rng, r.cfg, r.World.Platforms(), r.nextPickup)
	if err := r.World.ReplacePickups(batch, r.cfg.MinPickupBatch); err != nil {
		return err
	}
	r.nextPickup += len(batch)
	return nil
}

// QueueInput records an intent for slot. Move replaces the held direction,
// jump requests one jump on the next tick. Collect needs no bookkeeping: the
// overlap test runs for every player on every tick.
func (r *Room) QueueInput(slot Slot, action Action, dirX, dirZ float64) error {
	if !slot.Valid() || !r.occupied[slot] {
		return fmt.Errorf("room %s: %v is not occupied", r.ID, slot)
	}
	switch action {
	case ActionMove:
		r.directions[slot] = NormalizeDirection(dirX, dirZ)
	case ActionJump:
		r.jumpQueued[slot] = true
	case ActionCollect:
	default:
		return fmt.Errorf("room %s: unknown action %q", r.ID, action)
	}
	return nil
}

// ProcessTick advances both players by dt and runs the pickup overlap test.
// It does nothing until the room has started.
func (r *Room) ProcessTick(dt float64) {
	if !r.started {
		return
	}
	for _, slot := range Slots {
		if !r.occupied[slot] {
			continue
		}
		in := Input{Direction: r.directions[slot], Jump: r.jumpQueued[slot]}
		r.jumpQueued[slot] = false

		p := r.Engine.Step(r.World.Player(slot), in, dt, r.World)
		if got := r.Engine.Collect(&p, r.World); len(got) > 0 {
			log.Printf("Room %s: %s collected %d pickup(s), total %d", r.ID, slot.WireID(), len(got), p.PickupsCollected)
		}
		r.World.SetPlayer(slot, p)
	}

	if len(r.World.ActivePickups()) == 0 && r.cfg.PickupBatchSize > 0 {
		if err := r.respawnPickups(); err != nil {
			log.Printf("Room %s: pickup respawn failed: %v", r.ID, err)
		}
	}
	r.Tick++
}
