package game

import (
	"errors"
	"sync"
	"testing"
)

func pickupBatch(n, marker int) []Pickup {
	out := make([]Pickup, n)
	for i := range out {
		out[i] = Pickup{ID: marker, Position: Vec3{X: float64(i)}}
	}
	return out
}

func TestReplacePickupsRejectsStaleBatch(t *testing.T) {
	w := NewWorld()
	if err := w.ReplacePickups(pickupBatch(5, 1), 5); err != nil {
		t.Fatalf("ReplacePickups: %v", err)
	}

	err := w.ReplacePickups(pickupBatch(2, 2), 5)
	var stale *StaleBatchError
	if !errors.As(err, &stale) {
		t.Fatalf("err = %v, want *StaleBatchError", err)
	}
	if stale.Kind != "pickup" || stale.Got != 2 || stale.Min != 5 {
		t.Fatalf("unexpected error fields: %+v", stale)
	}

	got := w.Pickups()
	if len(got) != 5 || got[0].ID != 1 {
		t.Fatalf("previous batch not kept: %+v", got)
	}
}

func TestReplacePlatformsRejectsStaleBatch(t *testing.T) {
	w := NewWorld()
	keep := []Platform{{Position: Vec3{Y: 3}, HalfExtents: Vec3{X: 1, Y: 1, Z: 1}}}
	if err := w.ReplacePlatforms(keep, 1); err != nil {
		t.Fatal(err)
	}
	var stale *StaleBatchError
	if err := w.ReplacePlatforms(nil, 1); !errors.As(err, &stale) {
		t.Fatalf("err = %v, want *StaleBatchError", err)
	}
	if got := w.Platforms(); len(got) != 1 || got[0] != keep[0] {
		t.Fatalf("Platforms = %+v, want previous batch", got)
	}
}

func TestReplaceCopiesBatch(t *testing.T) {
	w := NewWorld()
	batch := pickupBatch(5, 1)
	if err := w.ReplacePickups(batch, 0); err != nil {
		t.Fatal(err)
	}
	batch[0].ID = 99
	if w.Pickups()[0].ID != 1 {
		t.Fatalf("world batch aliased the caller's slice")
	}
}

// Readers must only ever see one complete batch, never a mix.
func TestBatchReplacementIsAtomic(t *testing.T) {
	w := NewWorld()
	if err := w.ReplacePickups(pickupBatch(5, 0), 0); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 2000; i++ {
			size := 5
			if i%2 == 0 {
				size = 10
			}
			_ = w.ReplacePickups(pickupBatch(size, i), 5)
		}
		close(stop)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				batch := w.Pickups()
				marker := batch[0].ID
				wantLen := 5
				if marker != 0 && marker%2 == 0 {
					wantLen = 10
				}
				if len(batch) != wantLen {
					select {
					case errs <- "batch length does not match its marker":
					default:
					}
					return
				}
				for _, p := range batch {
					if p.ID != marker {
						select {
						case errs <- "batch mixes entries of two replacements":
						default:
						}
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	select {
	case msg := <-errs:
		t.Fatal(msg)
	default:
	}
}

func TestCollectOnlyTouchesCurrentBatch(t *testing.T) {
	cfg := DefaultConfig()
	e := NewEngine(cfg)
	w := NewWorld()
	if err := w.ReplacePickups([]Pickup{{ID: 1, Position: Vec3{Y: cfg.PickupHalfSize}}}, 0); err != nil {
		t.Fatal(err)
	}
	if err := w.ReplacePickups(pickupBatch(5, 7), 0); err != nil {
		t.Fatal(err)
	}

	p := NewPlayer(SlotA, Vec3{X: 2}, cfg)
	got := e.Collect(&p, w)
	if len(got) != 5 {
		t.Fatalf("collected %d pickups, want 5", len(got))
	}
	for _, pk := range got {
		if pk.ID != 7 {
			t.Fatalf("collected pickup %d from a replaced batch", pk.ID)
		}
	}
	if p.PickupsCollected != 5 || len(w.ActivePickups()) != 0 {
		t.Fatalf("count %d, active %d", p.PickupsCollected, len(w.ActivePickups()))
	}
}

func TestSetPlayerKeepsSlotID(t *testing.T) {
	w := NewWorld()
	w.SetPlayer(SlotB, Player{ID: SlotA, Health: 3})
	if got := w.Player(SlotB); got.ID != SlotB || got.Health != 3 {
		t.Fatalf("Player(SlotB) = %+v", got)
	}
}
