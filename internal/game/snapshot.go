package game

import "arena/internal/net"

func toWireVec(v Vec3) net.Vec3 {
	return net.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func fromWireVec(v net.Vec3) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// GetSnap builds the game_state snapshot of the room.
func (r *Room) GetSnap() net.GameStateMessage {
	return net.GameStateMessage{State: BuildGameState(r.Tick, r.World)}
}

// BuildGameState converts a world into its wire snapshot. The whole pickup
// batch is listed, collected entries flagged.
func BuildGameState(tick uint64, w *World) net.GameState {
	p1 := w.Player(SlotA)
	p2 := w.Player(SlotB)

	platforms := w.Platforms()
	pickups := w.Pickups()

	st := net.GameState{
		Tick:          tick,
		Player1:       PlayerToWire(p1),
		Player2:       PlayerToWire(p2),
		Player1Health: p1.Health,
		Player2Health: p2.Health,
		Player1Cubes:  p1.PickupsCollected,
		Player2Cubes:  p2.PickupsCollected,
		Platforms:     make([]net.PlatformState, 0, len(platforms)),
		Cubes:         make([]net.CubeState, 0, len(pickups)),
	}
	for _, pl := range platforms {
		half := toWireVec(pl.HalfExtents)
		st.Platforms = append(st.Platforms, net.PlatformState{
			X: pl.Position.X, Y: pl.Position.Y, Z: pl.Position.Z,
			HalfExtents: &half,
		})
	}
	for _, pk := range pickups {
		id := pk.ID
		st.Cubes = append(st.Cubes, net.CubeState{
			ID: &id, X: pk.Position.X, Y: pk.Position.Y, Z: pk.Position.Z,
			Collected: pk.Collected,
		})
	}
	return st
}

func PlayerToWire(p Player) net.PlayerState {
	return net.PlayerState{
		Position: toWireVec(p.Position),
		Velocity: toWireVec(p.Velocity),
		Grounded: p.Grounded,
		CanJump:  p.CanJump,
	}
}

// PlayerFromSnapshot extracts slot's player from an authoritative snapshot.
func PlayerFromSnapshot(st net.GameState, slot Slot) Player {
	ps, health, cubes := st.Player1, st.Player1Health, st.Player1Cubes
	if slot == SlotB {
		ps, health, cubes = st.Player2, st.Player2Health, st.Player2Cubes
	}
	return Player{
		ID:               slot,
		Position:         fromWireVec(ps.Position),
		Velocity:         fromWireVec(ps.Velocity),
		Grounded:         ps.Grounded,
		CanJump:          ps.CanJump,
		Health:           health,
		PickupsCollected: cubes,
	}
}

// PlatformsFromWire rebuilds a platform batch. Platforms sent without
// half extents take the configured default.
func PlatformsFromWire(in []net.PlatformState, cfg Config) []Platform {
	out := make([]Platform, 0, len(in))
	for _, ps := range in {
		half := cfg.PlatformHalfExtents
		if ps.HalfExtents != nil {
			half = fromWireVec(*ps.HalfExtents)
		}
		out = append(out, Platform{Position: Vec3{X: ps.X, Y: ps.Y, Z: ps.Z}, HalfExtents: half})
	}
	return out
}

// PickupsFromWire rebuilds a pickup batch. Cubes sent without an id are
// numbered by their position in the batch.
func PickupsFromWire(in []net.CubeState) []Pickup {
	out := make([]Pickup, 0, len(in))
	for i, c := range in {
		id := i
		if c.ID != nil {
			id = *c.ID
		}
		out = append(out, Pickup{ID: id, Position: Vec3{X: c.X, Y: c.Y, Z: c.Z}, Collected: c.Collected})
	}
	return out
}
