package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries every physics and pacing constant. The demo variants only
// differed in these numbers, so they live in one record.
type Config struct {
	Gravity     float64 `yaml:"gravity"`
	JumpSpeed   float64 `yaml:"jump_speed"`
	MoveSpeed   float64 `yaml:"move_speed"`
	GroundLevel float64 `yaml:"ground_level"`

	PlayerHalfWidth float64 `yaml:"player_half_width"`
	PlayerHeight    float64 `yaml:"player_height"`

	PlatformHalfExtents Vec3    `yaml:"platform_half_extents"`
	PickupHalfSize      float64 `yaml:"pickup_half_size"`

	PlatformCount    int `yaml:"platform_count"`
	PickupBatchSize  int `yaml:"pickup_batch_size"`
	MinPlatformBatch int `yaml:"min_platform_batch"`
	MinPickupBatch   int `yaml:"min_pickup_batch"`

	// ArenaHalfSize bounds x and z to [-ArenaHalfSize, ArenaHalfSize].
	// Zero leaves the arena unbounded.
	ArenaHalfSize  float64 `yaml:"arena_half_size"`
	StartingHealth int     `yaml:"starting_health"`

	TickRateHz  int `yaml:"tick_rate_hz"`
	BroadcastHz int `yaml:"broadcast_hz"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:     9.81,
		JumpSpeed:   8,
		MoveSpeed:   10,
		GroundLevel: 0,

		PlayerHalfWidth: 1,
		PlayerHeight:    4,

		PlatformHalfExtents: Vec3{X: 5, Y: 0.5, Z: 5},
		PickupHalfSize:      2.5,

		PlatformCount:    10,
		PickupBatchSize:  5,
		MinPlatformBatch: 1,
		MinPickupBatch:   5,

		ArenaHalfSize:  100,
		StartingHealth: 100,

		TickRateHz:  60,
		BroadcastHz: 20,
	}
}

// TickDuration is the wall-clock length of one simulation tick.
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRateHz)
}

// BroadcastEvery is the number of ticks between two snapshots.
func (c Config) BroadcastEvery() int {
	n := c.TickRateHz / c.BroadcastHz
	if n <= 0 {
		n = 1
	}
	return n
}

func (c Config) Validate() error {
	var errs []error
	if c.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("gravity must be > 0, got %v", c.Gravity))
	}
	if c.JumpSpeed <= 0 {
		errs = append(errs, fmt.Errorf("jump_speed must be > 0, got %v", c.JumpSpeed))
	}
	if c.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("move_speed must be >= 0, got %v", c.MoveSpeed))
	}
	if c.PlayerHalfWidth <= 0 || c.PlayerHeight <= 0 {
		errs = append(errs, fmt.Errorf("player size must be > 0"))
	}
	h := c.PlatformHalfExtents
	if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
		errs = append(errs, fmt.Errorf("platform_half_extents must be > 0"))
	}
	if c.PickupHalfSize <= 0 {
		errs = append(errs, fmt.Errorf("pickup_half_size must be > 0"))
	}
	if c.MinPlatformBatch < 0 || c.MinPickupBatch < 0 {
		errs = append(errs, fmt.Errorf("minimum batch sizes must be >= 0"))
	}
	if c.PlatformCount < c.MinPlatformBatch {
		errs = append(errs, fmt.Errorf("platform_count %d below min_platform_batch %d", c.PlatformCount, c.MinPlatformBatch))
	}
	if c.PickupBatchSize < c.MinPickupBatch {
		errs = append(errs, fmt.Errorf("pickup_batch_size %d below min_pickup_batch %d", c.PickupBatchSize, c.MinPickupBatch))
	}
	if c.ArenaHalfSize < 0 {
		errs = append(errs, fmt.Errorf("arena_half_size must be >= 0"))
	}
	if c.StartingHealth < 0 {
		errs = append(errs, fmt.Errorf("starting_health must be >= 0"))
	}
	if c.TickRateHz <= 0 || c.BroadcastHz <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate_hz and broadcast_hz must be > 0"))
	} else if c.BroadcastHz > c.TickRateHz {
		errs = append(errs, fmt.Errorf("broadcast_hz %d exceeds tick_rate_hz %d", c.BroadcastHz, c.TickRateHz))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML tuning file on top of DefaultConfig, so a file only
// needs the keys it changes.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("tuning %s: %w", path, err)
	}
	return c, nil
}
