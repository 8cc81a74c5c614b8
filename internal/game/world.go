package game

import (
	"fmt"
	"sync/atomic"
)

// StaleBatchError is returned when a platform or pickup batch is smaller than
// the minimum viable size. The previous batch stays in place.
type StaleBatchError struct {
	Kind string
	Got  int
	Min  int
}

func (e *StaleBatchError) Error() string {
	return fmt.Sprintf("stale %s batch: got %d, need at least %d", e.Kind, e.Got, e.Min)
}

// World holds the platforms, pickups and the two player slots of a session.
//
// Platform and pickup batches are immutable once stored and are swapped
// through atomic pointers, so a reader always sees one complete batch.
// Callers must not modify the slices returned by Platforms or Pickups.
type World struct {
	platforms atomic.Pointer[[]Platform]
	pickups   atomic.Pointer[[]Pickup]

	players [2]Player
}

func NewWorld() *World {
	w := &World{}
	empty := []Platform{}
	none := []Pickup{}
	w.platforms.Store(&empty)
	w.pickups.Store(&none)
	w.players[SlotA].ID = SlotA
	w.players[SlotB].ID = SlotB
	return w
}

func (w *World) Platforms() []Platform {
	return *w.platforms.Load()
}

// Pickups returns the whole current batch, collected entries included.
func (w *World) Pickups() []Pickup {
	return *w.pickups.Load()
}

// ActivePickups returns the pickups of the current batch not yet collected.
func (w *World) ActivePickups() []Pickup {
	batch := w.Pickups()
	out := make([]Pickup, 0, len(batch))
	for _, p := range batch {
		if !p.Collected {
			out = append(out, p)
		}
	}
	return out
}

// ReplacePlatforms swaps in a new platform layout. Batches smaller than
// minSize are rejected with *StaleBatchError.
func (w *World) ReplacePlatforms(batch []Platform, minSize int) error {
	if len(batch) < minSize {
		return &StaleBatchError{Kind: "platform", Got: len(batch), Min: minSize}
	}
	next := make([]Platform, len(batch))
	copy(next, batch)
	w.platforms.Store(&next)
	return nil
}

// ReplacePickups swaps in a new pickup batch. Batches smaller than minSize are
// rejected with *StaleBatchError.
func (w *World) ReplacePickups(batch []Pickup, minSize int) error {
	if len(batch) < minSize {
		return &StaleBatchError{Kind: "pickup", Got: len(batch), Min: minSize}
	}
	next := make([]Pickup, len(batch))
	copy(next, batch)
	w.pickups.Store(&next)
	return nil
}

func (w *World) Player(slot Slot) Player {
	return w.players[slot]
}

func (w *World) SetPlayer(slot Slot, p Player) {
	p.ID = slot
	w.players[slot] = p
}
