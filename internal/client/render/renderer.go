package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"arena/internal/game"
)

const (
	ScreenWidth   = 900
	ScreenHeight  = 600
	PixelsPerUnit = 6.0
)

var (
	groundColor  = color.RGBA{34, 139, 34, 255}
	boundsColor  = color.RGBA{20, 90, 20, 255}
	pickupColor  = color.RGBA{255, 200, 0, 255}
	shadowColor  = color.RGBA{0, 0, 0, 80}
	playerColors = [2]color.RGBA{{0, 0, 255, 255}, {255, 0, 255, 255}}
)

// Renderer draws a top-down view of the arena centred on the own player.
// Height is shown by shading platforms and by the size of each player.
type Renderer struct {
	cfg game.Config
}

func NewRenderer(cfg game.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Frame is everything drawn in one frame.
type Frame struct {
	Self      game.Slot
	Players   [2]game.Player
	Platforms []game.Platform
	Pickups   []game.Pickup
	Status    string
}

func (r *Renderer) Draw(screen *ebiten.Image, f Frame) {
	screen.Fill(groundColor)

	cam := f.Players[f.Self].Position
	toScreen := func(x, z float64) (float32, float32) {
		sx := ScreenWidth/2 + (x-cam.X)*PixelsPerUnit
		sy := ScreenHeight/2 + (z-cam.Z)*PixelsPerUnit
		return float32(sx), float32(sy)
	}

	if a := r.cfg.ArenaHalfSize; a > 0 {
		x0, y0 := toScreen(-a, -a)
		size := float32(2 * a * PixelsPerUnit)
		vector.StrokeRect(screen, x0, y0, size, size, 3, boundsColor, false)
	}

	for _, pl := range f.Platforms {
		x0, y0 := toScreen(pl.Position.X-pl.HalfExtents.X, pl.Position.Z-pl.HalfExtents.Z)
		w := float32(2 * pl.HalfExtents.X * PixelsPerUnit)
		h := float32(2 * pl.HalfExtents.Z * PixelsPerUnit)
		vector.DrawFilledRect(screen, x0, y0, w, h, platformShade(pl.Top()), false)
	}

	s := float32(r.cfg.PickupHalfSize * PixelsPerUnit)
	for _, pk := range f.Pickups {
		cx, cy := toScreen(pk.Position.X, pk.Position.Z)
		vector.DrawFilledRect(screen, cx-s, cy-s, 2*s, 2*s, pickupColor, false)
	}

	for _, slot := range game.Slots {
		p := f.Players[slot]
		cx, cy := toScreen(p.Position.X, p.Position.Z)
		radius := float32(r.cfg.PlayerHalfWidth * PixelsPerUnit)
		vector.DrawFilledCircle(screen, cx, cy, radius, shadowColor, false)
		// Airborne players are drawn larger.
		lift := float32((p.Position.Y - r.cfg.GroundLevel) * 0.5)
		vector.DrawFilledCircle(screen, cx, cy-lift, radius+lift*0.2, playerColors[slot], false)
	}

	me := f.Players[f.Self]
	other := f.Players[f.Self.Other()]
	hud := fmt.Sprintf("%s  health %d  cubes %d | opponent health %d  cubes %d | pickups left %d",
		f.Self.WireID(), me.Health, me.PickupsCollected, other.Health, other.PickupsCollected, len(f.Pickups))
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
	if f.Status != "" {
		ebitenutil.DebugPrintAt(screen, f.Status, 8, 24)
	}
}

// platformShade darkens with height so stacked steps stay readable.
func platformShade(top float64) color.RGBA {
	shade := 220 - top*12
	if shade < 60 {
		shade = 60
	} else if shade > 255 {
		shade = 255
	}
	return color.RGBA{uint8(shade), 0, 0, 255}
}
