package game

import "math/rand"

const (
	// PlatformReach is the largest horizontal offset between consecutive
	// platforms of the staircase.
	PlatformReach = 4.0
	// FirstPlatformMaxHeight caps the centre height of the lowest platform.
	FirstPlatformMaxHeight = 3.0
	// PlatformSpread bounds where the first platform may appear.
	PlatformSpread = 70.0
)

// SpawnPoints for slot-A and slot-B, on the ground either side of the origin.
var SpawnPoints = [2]Vec3{
	{X: -5, Y: 0, Z: 0},
	{X: 5, Y: 0, Z: 0},
}

// SpawnPoint returns the spawn of slot lifted to the ground level.
func SpawnPoint(slot Slot, cfg Config) Vec3 {
	p := SpawnPoints[slot]
	p.Y = cfg.GroundLevel
	return p
}

// GeneratePlatforms lays out a climbable staircase: each platform sits within
// PlatformReach of the previous one on both horizontal axes and one unit
// higher, starting from a low random first step.
func GeneratePlatforms(rng *rand.Rand, cfg Config) []Platform {
	out := make([]Platform, 0, cfg.PlatformCount)
	spread := PlatformSpread
	if cfg.ArenaHalfSize > 0 && cfg.ArenaHalfSize < spread {
		spread = cfg.ArenaHalfSize
	}
	for i := 0; i < cfg.PlatformCount; i++ {
		var pos Vec3
		if i == 0 {
			pos = Vec3{
				X: randRange(rng, -spread, spread),
				Y: cfg.GroundLevel + rng.Float64()*FirstPlatformMaxHeight,
				Z: randRange(rng, -spread, spread),
			}
		} else {
			prev := out[i-1].Position
			pos = Vec3{
				X: randRange(rng, prev.X-PlatformReach, prev.X+PlatformReach),
				Y: cfg.GroundLevel + float64(i+2),
				Z: randRange(rng, prev.Z-PlatformReach, prev.Z+PlatformReach),
			}
		}
		pos = ClampToArena(pos, cfg)
		out = append(out, Platform{Position: pos, HalfExtents: cfg.PlatformHalfExtents})
	}
	return out
}

// GeneratePickups scatters a batch of cubes. Roughly half rest on platform
// tops, the rest on the ground. Ids continue from firstID.
func GeneratePickups(rng *rand.Rand, cfg Config, platforms []Platform, firstID int) []Pickup {
	out := make([]Pickup, 0, cfg.PickupBatchSize)
	spread := PlatformSpread
	if cfg.ArenaHalfSize > 0 && cfg.ArenaHalfSize < spread {
		spread = cfg.ArenaHalfSize
	}
	for i := 0; i < cfg.PickupBatchSize; i++ {
		var pos Vec3
		if len(platforms) > 0 && rng.Intn(2) == 0 {
			pl := platforms[rng.Intn(len(platforms))]
			pos = Vec3{X: pl.Position.X, Y: pl.Top() + cfg.PickupHalfSize, Z: pl.Position.Z}
		} else {
			pos = Vec3{
				X: randRange(rng, -spread, spread),
				Y: cfg.GroundLevel + cfg.PickupHalfSize,
				Z: randRange(rng, -spread, spread),
			}
		}
		out = append(out, Pickup{ID: firstID + i, Position: pos})
	}
	return out
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
