package game

// Input is one tick of player intent. Direction uses X and Z only.
type Input struct {
	Direction Vec3
	Jump      bool
}

// NormalizeDirection clamps each axis to {-1, 0, 1} by sign and renormalizes,
// so diagonal movement is no faster than axial movement.
func NormalizeDirection(x, z float64) Vec3 {
	return Vec3{X: sign(x), Z: sign(z)}.Normalize()
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Engine integrates player motion against a world. Step is pure: the same
// player, input, dt and platform layout always produce the same result.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Step advances p by dt seconds.
func (e *Engine) Step(p Player, in Input, dt float64, w *World) Player {
	cfg := e.cfg
	if dt < 0 {
		dt = 0
	}

	dir := NormalizeDirection(in.Direction.X, in.Direction.Z)
	p.Velocity.X = dir.X * cfg.MoveSpeed
	p.Velocity.Z = dir.Z * cfg.MoveSpeed

	p.Velocity.Y -= cfg.Gravity * dt

	p.Position = p.Position.Add(p.Velocity.Scale(dt))
	p.Position = ClampToArena(p.Position, cfg)

	landed := false
	if p.Velocity.Y < 0 {
		platforms := w.Platforms()
		if i := FindLandingPlatform(PlayerBox(p.Position, cfg), platforms); i >= 0 {
			top := platforms[i].Top()
			if top < cfg.GroundLevel {
				top = cfg.GroundLevel
			}
			landOn(&p, top)
			landed = true
		}
	}
	if !landed {
		if p.Position.Y <= cfg.GroundLevel {
			landOn(&p, cfg.GroundLevel)
		} else {
			p.Grounded = false
		}
	}

	if in.Jump && p.CanJump {
		p.Velocity.Y = cfg.JumpSpeed
		p.CanJump = false
	}
	return p
}

// Collect marks every active pickup overlapping p as collected and credits p.
// It is the authoritative overlap test; clients never call it. The pickups
// collected by this call are returned.
func (e *Engine) Collect(p *Player, w *World) []Pickup {
	cur := w.pickups.Load()
	box := PlayerBox(p.Position, e.cfg)

	var hits []int
	for i, pk := range *cur {
		if pk.Collected {
			continue
		}
		if box.Overlaps(PickupBox(pk, e.cfg)) {
			hits = append(hits, i)
		}
	}
	if len(hits) == 0 {
		return nil
	}

	next := make([]Pickup, len(*cur))
	copy(next, *cur)
	collected := make([]Pickup, 0, len(hits))
	for _, i := range hits {
		next[i].Collected = true
		collected = append(collected, next[i])
	}
	// A batch replaced since Load wins; pickups of the old batch are gone.
	if !w.pickups.CompareAndSwap(cur, &next) {
		return nil
	}
	p.PickupsCollected += len(collected)
	return collected
}
