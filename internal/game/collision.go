package game

// PlayerBox returns the bounding box of a player standing at pos.
func PlayerBox(pos Vec3, cfg Config) Box {
	hw := cfg.PlayerHalfWidth
	return Box{
		Min: Vec3{X: pos.X - hw, Y: pos.Y, Z: pos.Z - hw},
		Max: Vec3{X: pos.X + hw, Y: pos.Y + cfg.PlayerHeight, Z: pos.Z + hw},
	}
}

// PickupBox returns the bounding box of a pickup cube.
func PickupBox(p Pickup, cfg Config) Box {
	s := cfg.PickupHalfSize
	return BoxAround(p.Position, Vec3{X: s, Y: s, Z: s})
}

// FindLandingPlatform returns the index of the first platform, in iteration
// order, that the player box overlaps. It returns -1 when none does.
// Overlapping platform layouts resolve to the earliest entry.
func FindLandingPlatform(box Box, platforms []Platform) int {
	for i, pl := range platforms {
		if box.Overlaps(pl.Box()) {
			return i
		}
	}
	return -1
}

// ClampToArena keeps x and z inside the arena bounds.
func ClampToArena(pos Vec3, cfg Config) Vec3 {
	r := cfg.ArenaHalfSize
	if r <= 0 {
		return pos
	}
	if pos.X < -r {
		pos.X = -r
	} else if pos.X > r {
		pos.X = r
	}
	if pos.Z < -r {
		pos.Z = -r
	} else if pos.Z > r {
		pos.Z = r
	}
	return pos
}

// landOn rests the player on a surface at height y.
func landOn(p *Player, y float64) {
	p.Position.Y = y
	p.Velocity.Y = 0
	p.Grounded = true
	p.CanJump = true
}
