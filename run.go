package torchlight

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws an FPS/TPS readout in the top-left corner.
	ShowFPS bool
	// Background, if set, is drawn before the effects every frame. Use it to
	// draw the host content the effects decorate.
	Background func(screen *ebiten.Image)
}

// Run opens a window and drives scene with Ebitengine's game loop. It blocks
// until the window is closed or the scene's update callback returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if scene == nil {
		panic("torchlight: cannot run nil scene")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	scene.SetSurface(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)})
	scene.Start()

	g := &game{scene: scene, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSWidget()
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

type game struct {
	scene *Scene
	cfg   RunConfig
	fps   *fpsWidget
}

func (g *game) Update() error {
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Background != nil {
		g.cfg.Background(screen)
	}
	g.scene.Draw(screen)
	if g.fps != nil {
		var op ebiten.DrawImageOptions
		screen.DrawImage(g.fps.img, &op)
	}
}

func (g *game) Layout(w, h int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// fpsWidget displays the current FPS and TPS, refreshed every ~0.5 seconds.
type fpsWidget struct {
	img        *ebiten.Image
	lastUpdate float64
}

func newFPSWidget() *fpsWidget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsWidget{img: ebiten.NewImage(100, 32), lastUpdate: 0.5}
}

func (w *fpsWidget) update(dt float64) {
	w.lastUpdate += dt
	if w.lastUpdate < 0.5 {
		return
	}
	w.lastUpdate = 0

	w.img.Clear()
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
