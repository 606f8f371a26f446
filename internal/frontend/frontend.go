// Package frontend is the reference host window for nesgo: an
// ebiten.Game that blits internal/emulator's framebuffer each frame and
// polls the keyboard into controller state. This is the "out of scope"
// presentation layer spec.md §1 explicitly separates from the core — it
// drives the core through internal/emulator's public API only.
//
// Grounded on the teacher's internal/graphics/ebitengine_backend.go: same
// per-pixel RGBA blit into an ebiten.Image and the same key-to-button
// mapping idea, trimmed of the pluggable Backend/Window interface layer
// (this repo has exactly one backend) and its debug-log throttling.
package frontend

import (
	"context"
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"nesgo/internal/controller"
	"nesgo/internal/diag"
	"nesgo/internal/emulator"
)

// Game adapts an *emulator.Emulator to the ebiten.Game interface.
type Game struct {
	emu   *emulator.Emulator
	scale int
	ctx   context.Context

	screen *ebiten.Image
	pixels []byte // reusable RGBA scratch buffer, avoids a per-frame allocation
}

// NewGame constructs a Game driving emu, rendered at the given integer
// scale. ctx is polled each Update so an external shutdown signal (Ctrl-C,
// handled in cmd/nesgo) closes the window cleanly instead of killing the
// process mid-frame.
func NewGame(ctx context.Context, emu *emulator.Emulator, scale int) *Game {
	return &Game{
		emu:    emu,
		scale:  scale,
		ctx:    ctx,
		screen: ebiten.NewImage(256, 240),
		pixels: make([]byte, 256*240*4),
	}
}

// Update advances the emulator by one frame and samples keyboard input.
func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	g.pollInput()
	g.emu.RunFrame()
	return nil
}

// Draw blits the emulator's current framebuffer to screen, scaled to fill
// the window.
func (g *Game) Draw(screen *ebiten.Image) {
	fb := g.emu.Framebuffer()
	for i, p := range fb {
		g.pixels[i*4+0] = byte(p >> 16)
		g.pixels[i*4+1] = byte(p >> 8)
		g.pixels[i*4+2] = byte(p)
		g.pixels[i*4+3] = 0xFF
	}
	g.screen.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.screen, op)
}

// Layout fixes the window to an exact integer multiple of the NES's
// 256x240 frame; nesgo does not support arbitrary window resizing.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 256 * g.scale, 240 * g.scale
}

// pollInput samples the keyboard for both controller ports. Player 1 uses
// arrow keys plus J/K/Enter/Space; player 2 uses WASD plus the numpad,
// following the teacher's default key layout.
func (g *Game) pollInput() {
	g.emu.SetControllerState(1, controller.State{
		Up:     ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:   ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		A:      ebiten.IsKeyPressed(ebiten.KeyJ),
		B:      ebiten.IsKeyPressed(ebiten.KeyK),
		Start:  ebiten.IsKeyPressed(ebiten.KeyEnter),
		Select: ebiten.IsKeyPressed(ebiten.KeySpace),
	})

	g.emu.SetControllerState(2, controller.State{
		Up:     ebiten.IsKeyPressed(ebiten.KeyW),
		Down:   ebiten.IsKeyPressed(ebiten.KeyS),
		Left:   ebiten.IsKeyPressed(ebiten.KeyA),
		Right:  ebiten.IsKeyPressed(ebiten.KeyD),
		A:      ebiten.IsKeyPressed(ebiten.KeyNumpad1),
		B:      ebiten.IsKeyPressed(ebiten.KeyNumpad2),
		Start:  ebiten.IsKeyPressed(ebiten.KeyNumpadEnter),
		Select: ebiten.IsKeyPressed(ebiten.KeyNumpad0),
	})
}

// Run opens the window and blocks until it closes or ctx is canceled.
// The two goroutines — the ebiten run loop and the context watcher — are
// coordinated with errgroup so a cancellation from either side (window
// closed by the user, or Ctrl-C at the process level) unblocks the other
// and Run returns a single error.
func Run(ctx context.Context, emu *emulator.Emulator, scale int) error {
	ebiten.SetWindowSize(256*scale, 240*scale)
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	game := NewGame(ctx, emu, scale)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		err := ebiten.RunGame(game)
		if errors.Is(err, ebiten.Termination) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		diag.Logger.Printf("shutdown requested")
		return nil
	})
	return g.Wait()
}
