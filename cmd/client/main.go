package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"arena/internal/client"
	"arena/internal/client/render"
	"arena/internal/config"
	"arena/internal/game"
	"arena/internal/net"
)

type Game struct {
	netClient *client.NetClient
	rec       *client.Reconciler
	renderer  *render.Renderer

	lobbyID string
	started bool
	lastDir game.Vec3
	status  string
}

func NewGame(addr string, tuning game.Config, joinID string) (*Game, error) {
	netClient, err := client.NewNetClient(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	rec := client.NewReconciler(game.SlotA, tuning)
	rec.CorrectionWindow = 0.04

	g := &Game{
		netClient: netClient,
		rec:       rec,
		renderer:  render.NewRenderer(tuning),
		status:    "Connecting...",
	}
	if joinID != "" {
		netClient.JoinLobby(joinID)
	} else {
		netClient.CreateLobby()
	}
	return g, nil
}

func (g *Game) Update() error {
	g.handleEvents()

	for _, st := range g.netClient.Snapshots() {
		if err := g.rec.ApplySnapshot(st); err != nil {
			var stale *game.StaleBatchError
			switch {
			case errors.Is(err, client.ErrOutOfOrder):
				// Older than what we already have.
			case errors.As(err, &stale):
				log.Printf("Keeping previous batch: %v", err)
			default:
				log.Printf("Snapshot error: %v", err)
			}
		}
	}

	if g.started {
		g.handleInput()
	}

	// ESC to quit
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.netClient.Close()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) handleEvents() {
	for ev := g.netClient.Event(); ev != nil; ev = g.netClient.Event() {
		switch ev := ev.(type) {
		case net.LobbyCreated:
			g.lobbyID = ev.LobbyID
			g.rec.SetSelf(game.SlotA)
			g.status = fmt.Sprintf("Lobby %s created, waiting for opponent", ev.LobbyID)
			log.Printf("Lobby created: %s", ev.LobbyID)
		case net.LobbyJoined:
			slot, ok := game.SlotFromWireID(ev.PlayerID)
			if !ok {
				log.Printf("Unknown player id %q", ev.PlayerID)
				continue
			}
			g.lobbyID = ev.LobbyID
			g.rec.SetSelf(slot)
			g.status = fmt.Sprintf("Joined lobby %s as %s", ev.LobbyID, ev.PlayerID)
			log.Printf("Joined lobby %s as %s", ev.LobbyID, ev.PlayerID)
		case net.LobbyError:
			g.status = "Lobby error: " + ev.Message
			log.Printf("Lobby error (%s): %s", ev.Code, ev.Message)
		case net.GameStart:
			g.started = true
			g.status = ""
			log.Printf("Game started in lobby %s", g.lobbyID)
		}
	}
}

func (g *Game) handleInput() {
	var x, z float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		z--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		z++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		x--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		x++
	}

	in := game.Input{
		Direction: game.NormalizeDirection(x, z),
		Jump:      inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
	g.rec.Predict(in, 1/float64(ebiten.TPS()))

	playerID := g.rec.Self().WireID()
	if in.Direction != g.lastDir {
		g.lastDir = in.Direction
		g.netClient.SendInput(net.PlayerInput{
			Action:    net.ActionMove,
			PlayerID:  playerID,
			Direction: &net.Direction{X: x, Z: z},
		})
	}
	if in.Jump {
		g.netClient.SendInput(net.PlayerInput{Action: net.ActionJump, PlayerID: playerID})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	f := render.Frame{
		Self:      g.rec.Self(),
		Platforms: g.rec.World().Platforms(),
		Pickups:   g.rec.World().ActivePickups(),
		Status:    g.status,
	}
	for _, s := range game.Slots {
		f.Players[s] = g.rec.View(s)
	}
	g.renderer.Draw(screen, f)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return render.ScreenWidth, render.ScreenHeight
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	addr := flag.String("addr", cfg.ServerAddr, "server WebSocket URL")
	join := flag.String("join", "", "join an existing lobby instead of creating one")
	flag.Parse()

	tuning := game.DefaultConfig()
	if cfg.TuningPath != "" {
		if tuning, err = game.LoadConfig(cfg.TuningPath); err != nil {
			log.Fatalf("Tuning error: %v", err)
		}
	}

	ebiten.SetWindowSize(render.ScreenWidth, render.ScreenHeight)
	ebiten.SetWindowTitle("Arena")

	g, err := NewGame(*addr, tuning, *join)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
