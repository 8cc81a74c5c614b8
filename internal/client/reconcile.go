package client

import (
	"errors"
	"fmt"

	"arena/internal/game"
	"arena/internal/net"
)

// Reconciler keeps the client's view of the world: the own player is
// predicted locally every frame and overwritten by each authoritative
// snapshot; the other player is taken from snapshots verbatim.
//
// A Reconciler belongs to the game loop and is not safe for concurrent use.
type Reconciler struct {
	self   game.Slot
	engine *game.Engine
	world  *game.World
	cfg    game.Config

	// CorrectionWindow spreads the visual jump of a correction over this
	// many seconds. Zero snaps immediately. Keep it below the snapshot
	// interval so the view converges before the next snapshot.
	CorrectionWindow float64

	offset     game.Vec3
	offsetLeft float64
	lastTick   uint64
	hasState   bool
}

func NewReconciler(self game.Slot, cfg game.Config) *Reconciler {
	r := &Reconciler{
		self:   self,
		engine: game.NewEngine(cfg),
		world:  game.NewWorld(),
		cfg:    cfg,
	}
	for _, s := range game.Slots {
		r.world.SetPlayer(s, game.NewPlayer(s, game.SpawnPoint(s, cfg), cfg))
	}
	return r
}

func (r *Reconciler) Self() game.Slot {
	return r.self
}

// SetSelf switches the locally controlled slot, e.g. once lobby_joined
// reports the assigned player id. It marks a new lobby, so snapshot
// ordering starts over.
func (r *Reconciler) SetSelf(slot game.Slot) {
	r.self = slot
	r.offset = game.Vec3{}
	r.offsetLeft = 0
	r.lastTick = 0
	r.hasState = false
}

func (r *Reconciler) World() *game.World {
	return r.world
}

// Predict advances the own player through the engine and returns it. It
// never waits for the server. The render offset decays by the same dt.
func (r *Reconciler) Predict(in game.Input, dt float64) game.Player {
	p := r.engine.Step(r.world.Player(r.self), in, dt, r.world)
	r.world.SetPlayer(r.self, p)
	r.decay(dt)
	return p
}

func (r *Reconciler) decay(dt float64) {
	if r.offsetLeft <= 0 {
		r.offset = game.Vec3{}
		return
	}
	if dt >= r.offsetLeft {
		r.offset = game.Vec3{}
		r.offsetLeft = 0
		return
	}
	r.offset = r.offset.Scale(1 - dt/r.offsetLeft)
	r.offsetLeft -= dt
}

// ErrOutOfOrder reports a snapshot older than one already applied.
var ErrOutOfOrder = errors.New("snapshot out of order")

// ApplySnapshot merges an authoritative snapshot. Players are always applied.
// A platform or pickup batch below the minimum size keeps the previous batch
// and the *game.StaleBatchError is returned. Numbered snapshots older than the
// last applied one are dropped with ErrOutOfOrder.
func (r *Reconciler) ApplySnapshot(st net.GameState) error {
	if st.Tick != 0 {
		if r.hasState && st.Tick <= r.lastTick {
			return fmt.Errorf("%w: tick %d after %d", ErrOutOfOrder, st.Tick, r.lastTick)
		}
		r.lastTick = st.Tick
	}
	r.hasState = true

	other := r.self.Other()
	r.world.SetPlayer(other, game.PlayerFromSnapshot(st, other))

	predicted := r.world.Player(r.self)
	auth := game.PlayerFromSnapshot(st, r.self)
	r.world.SetPlayer(r.self, auth)
	if r.CorrectionWindow > 0 {
		r.offset = r.offset.Add(predicted.Position.Sub(auth.Position))
		r.offsetLeft = r.CorrectionWindow
	} else {
		r.offset = game.Vec3{}
		r.offsetLeft = 0
	}

	var errs []error
	if err := r.world.ReplacePlatforms(game.PlatformsFromWire(st.Platforms, r.cfg), r.cfg.MinPlatformBatch); err != nil {
		errs = append(errs, err)
	}
	if err := r.world.ReplacePickups(game.PickupsFromWire(st.Cubes), r.cfg.MinPickupBatch); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// View returns the player of slot as it should be drawn. Only the own player
// carries a correction offset.
func (r *Reconciler) View(slot game.Slot) game.Player {
	p := r.world.Player(slot)
	if slot == r.self {
		p.Position = p.Position.Add(r.offset)
	}
	return p
}
