package game

import "testing"

func startedRoom(t *testing.T) *Room {
	t.Helper()
	r := NewRoom("TEST01", DefaultConfig(), 42)
	r.AddPlayer(SlotA)
	r.AddPlayer(SlotB)
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return r
}

func TestRoomStartNeedsBothSlots(t *testing.T) {
	r := NewRoom("TEST01", DefaultConfig(), 1)
	r.AddPlayer(SlotA)
	if err := r.Start(); err == nil {
		t.Fatalf("Start with one player succeeded")
	}
	if r.Started() {
		t.Fatalf("room started with an empty slot")
	}
}

func TestRoomStartGeneratesLayout(t *testing.T) {
	cfg := DefaultConfig()
	r := startedRoom(t)

	if got := len(r.World.Platforms()); got != cfg.PlatformCount {
		t.Fatalf("platforms = %d, want %d", got, cfg.PlatformCount)
	}
	if got := len(r.World.ActivePickups()); got != cfg.PickupBatchSize {
		t.Fatalf("pickups = %d, want %d", got, cfg.PickupBatchSize)
	}
	for _, s := range Slots {
		if p := r.World.Player(s); p.Health != cfg.StartingHealth {
			t.Fatalf("%v health = %d, want %d", s, p.Health, cfg.StartingHealth)
		}
	}
}

func TestRoomTickWaitsForStart(t *testing.T) {
	r := NewRoom("TEST01", DefaultConfig(), 1)
	r.AddPlayer(SlotA)
	r.ProcessTick(1.0 / 60)
	if r.Tick != 0 {
		t.Fatalf("Tick = %d before start", r.Tick)
	}
}

func TestRoomRemovePlayerPauses(t *testing.T) {
	r := startedRoom(t)
	r.ProcessTick(1.0 / 60)
	r.RemovePlayer(SlotB)

	if r.Started() || r.Occupied(SlotB) {
		t.Fatalf("room still running after a player left")
	}
	tick := r.Tick
	r.ProcessTick(1.0 / 60)
	if r.Tick != tick {
		t.Fatalf("paused room advanced")
	}

	// Refilling keeps the platform layout.
	layout := r.World.Platforms()
	r.AddPlayer(SlotB)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	if got := r.World.Platforms(); &got[0] != &layout[0] {
		t.Fatalf("restart regenerated the platforms")
	}
}

func TestRoomQueueInput(t *testing.T) {
	r := NewRoom("TEST01", DefaultConfig(), 1)
	r.AddPlayer(SlotA)

	if err := r.QueueInput(SlotB, ActionMove, 1, 0); err == nil {
		t.Fatalf("input for an empty slot accepted")
	}
	if err := r.QueueInput(SlotA, Action("fly"), 0, 0); err == nil {
		t.Fatalf("unknown action accepted")
	}
	for _, a := range []Action{ActionMove, ActionJump, ActionCollect} {
		if err := r.QueueInput(SlotA, a, 1, 1); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}
}

func TestRoomMoveHoldsUntilReplaced(t *testing.T) {
	r := startedRoom(t)
	if err := r.World.ReplacePlatforms(nil, 0); err != nil {
		t.Fatal(err)
	}
	start := r.World.Player(SlotA).Position

	if err := r.QueueInput(SlotA, ActionMove, 1, 0); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		r.ProcessTick(0.1)
	}
	moved := r.World.Player(SlotA).Position.X - start.X
	if !approx(moved, 10) {
		t.Fatalf("moved %v along x, want 10", moved)
	}
	if r.Tick != 10 {
		t.Fatalf("Tick = %d, want 10", r.Tick)
	}
}

func TestRoomJumpIsConsumedOnce(t *testing.T) {
	cfg := DefaultConfig()
	r := startedRoom(t)
	if err := r.World.ReplacePlatforms(nil, 0); err != nil {
		t.Fatal(err)
	}

	if err := r.QueueInput(SlotB, ActionJump, 0, 0); err != nil {
		t.Fatal(err)
	}
	r.ProcessTick(1.0 / 60)
	if v := r.World.Player(SlotB).Velocity.Y; v != cfg.JumpSpeed {
		t.Fatalf("velocity.y = %v, want %v", v, cfg.JumpSpeed)
	}
	r.ProcessTick(1.0 / 60)
	if v := r.World.Player(SlotB).Velocity.Y; v >= cfg.JumpSpeed {
		t.Fatalf("jump applied twice, velocity.y = %v", v)
	}
}

func TestRoomRespawnsPickupsWhenBatchCollected(t *testing.T) {
	cfg := DefaultConfig()
	r := startedRoom(t)
	if err := r.World.ReplacePlatforms(nil, 0); err != nil {
		t.Fatal(err)
	}

	spawnA := r.World.Player(SlotA).Position
	target := Pickup{ID: 100, Position: Vec3{X: spawnA.X, Y: cfg.GroundLevel + cfg.PickupHalfSize, Z: spawnA.Z}}
	if err := r.World.ReplacePickups([]Pickup{target}, 0); err != nil {
		t.Fatal(err)
	}

	r.ProcessTick(1.0 / 60)

	if got := r.World.Player(SlotA).PickupsCollected; got != 1 {
		t.Fatalf("slot-A collected %d, want 1", got)
	}
	if got := r.World.Player(SlotB).PickupsCollected; got != 0 {
		t.Fatalf("slot-B collected %d, want 0", got)
	}
	fresh := r.World.ActivePickups()
	if len(fresh) != cfg.PickupBatchSize {
		t.Fatalf("respawned %d pickups, want %d", len(fresh), cfg.PickupBatchSize)
	}
	// Start issued ids 0..4, so the next batch continues at 5.
	if fresh[0].ID != cfg.PickupBatchSize {
		t.Fatalf("first respawned id = %d, want %d", fresh[0].ID, cfg.PickupBatchSize)
	}
}

func TestRoomSnapshot(t *testing.T) {
	cfg := DefaultConfig()
	r := startedRoom(t)
	r.ProcessTick(1.0 / 60)

	st := r.GetSnap().State
	if st.Tick != 1 {
		t.Fatalf("tick = %d, want 1", st.Tick)
	}
	if st.Player1Health != cfg.StartingHealth || st.Player2Health != cfg.StartingHealth {
		t.Fatalf("health = %d/%d", st.Player1Health, st.Player2Health)
	}
	if len(st.Platforms) != cfg.PlatformCount {
		t.Fatalf("platforms = %d", len(st.Platforms))
	}
	if len(st.Cubes) != len(r.World.Pickups()) {
		t.Fatalf("cubes = %d, batch = %d", len(st.Cubes), len(r.World.Pickups()))
	}
	for i, c := range st.Cubes {
		if c.ID == nil {
			t.Fatalf("cube without id in snapshot")
		}
		if c.Collected != r.World.Pickups()[i].Collected {
			t.Fatalf("cube %d collected flag = %v", i, c.Collected)
		}
	}

	p1 := PlayerFromSnapshot(st, SlotA)
	if p1.Position != r.World.Player(SlotA).Position {
		t.Fatalf("player1 position %+v, want %+v", p1.Position, r.World.Player(SlotA).Position)
	}
	back := PlatformsFromWire(st.Platforms, cfg)
	for i, pl := range r.World.Platforms() {
		if back[i] != pl {
			t.Fatalf("platform %d = %+v, want %+v", i, back[i], pl)
		}
	}
}

func TestSnapshotKeepsCollectedPickupsFlagged(t *testing.T) {
	cfg := DefaultConfig()
	r := startedRoom(t)
	if err := r.World.ReplacePlatforms(nil, 0); err != nil {
		t.Fatal(err)
	}
	spawnA := r.World.Player(SlotA).Position
	batch := make([]Pickup, cfg.PickupBatchSize)
	for i := range batch {
		batch[i] = Pickup{ID: 20 + i, Position: Vec3{X: 50 + float64(i)*10, Y: cfg.PickupHalfSize, Z: 50}}
	}
	batch[0].Position = Vec3{X: spawnA.X, Y: cfg.GroundLevel + cfg.PickupHalfSize, Z: spawnA.Z}
	if err := r.World.ReplacePickups(batch, cfg.MinPickupBatch); err != nil {
		t.Fatal(err)
	}

	r.ProcessTick(1.0 / 60)

	st := r.GetSnap().State
	if len(st.Cubes) != cfg.PickupBatchSize {
		t.Fatalf("cubes = %d, want the whole batch of %d", len(st.Cubes), cfg.PickupBatchSize)
	}
	if !st.Cubes[0].Collected || *st.Cubes[0].ID != 20 {
		t.Fatalf("cube 0 = %+v, want id 20 collected", st.Cubes[0])
	}
	back := PickupsFromWire(st.Cubes)
	if !back[0].Collected || back[1].Collected {
		t.Fatalf("collected flags lost: %+v", back)
	}
}
