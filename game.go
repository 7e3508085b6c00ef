package main

import (
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/svgphysics/assets"
	"github.com/milk9111/svgphysics/common"
	"github.com/milk9111/svgphysics/config"
	"github.com/milk9111/svgphysics/stage"
	"github.com/milk9111/svgphysics/svgphysics"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const fadeSeconds = 0.2

// fade eases the pause overlay's opacity between 0 and 1.
type fade struct {
	tween *gween.Tween
	alpha float32
}

func (f *fade) to(target float32) {
	f.tween = gween.New(f.alpha, target, fadeSeconds, ease.OutQuad)
}

func (f *fade) update(dt float32) {
	if f.tween == nil {
		return
	}
	v, done := f.tween.Update(dt)
	f.alpha = v
	if done {
		f.tween = nil
	}
}

func (f *fade) visible() bool {
	return f.alpha > 0 || f.tween != nil
}

type Game struct {
	stage *stage.Stage
	scene *svgphysics.Scene

	svgPath    string
	configPath string
	opts       svgphysics.Options
	devMode    bool
	watcher    *config.Watcher

	pauseUI *ebitenui.UI
	overlay *ebiten.Image
	fade    fade
	cancels []func()
}

// NewGame loads the document and configuration and starts the first scene.
// When watch is set, edits to either file rebuild the scene.
func NewGame(svgPath, configPath string, opts svgphysics.Options, devMode, watch bool) (*Game, error) {
	g := &Game{
		stage:      stage.New(common.BaseWidth, common.BaseHeight),
		svgPath:    svgPath,
		configPath: configPath,
		opts:       opts,
		devMode:    devMode,
	}
	g.pauseUI = NewPauseUI(g.resume, g.stage.Quit)

	if err := g.load(); err != nil {
		return nil, err
	}
	g.cancels = append(g.cancels, g.stage.OnKeyDown(g.onKey))

	if watch {
		w, err := config.NewWatcher(svgPath, configPath)
		if err != nil {
			log.Printf("Game: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load builds a scene from the current files. The previous scene, if any, is
// destroyed only once the new one exists.
func (g *Game) load() error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		log.Printf("Game: using default config: %v", err)
	}
	if g.devMode {
		cfg.Debug.DevMode = true
	}

	doc, err := assets.LoadDocument(g.svgPath)
	if err != nil {
		return err
	}

	opts := g.opts
	opts.Config = &cfg
	scene, err := svgphysics.New(g.stage, doc, opts)
	if err != nil {
		return err
	}

	g.scene.Destroy()
	g.scene = scene
	g.fade = fade{}
	return nil
}

func (g *Game) onKey(k ebiten.Key) {
	switch k {
	case ebiten.KeyP, ebiten.KeySpace:
		if g.scene.Paused() {
			g.resume()
		} else {
			g.pause()
		}
	case ebiten.KeyEscape:
		g.stage.Quit()
	}
}

func (g *Game) pause() {
	g.scene.Pause()
	g.fade.to(1)
}

func (g *Game) resume() {
	g.scene.Resume()
	g.fade.to(0)
}

func (g *Game) Update() error {
	if err := g.watcher.Err(); err != nil {
		log.Printf("Game: watch error: %v", err)
	}
	if g.watcher.Changed() {
		if err := g.load(); err != nil {
			log.Printf("Game: reload failed: %v", err)
		} else {
			log.Printf("Game: reloaded %s", g.svgPath)
		}
	}

	if err := g.stage.Update(); err != nil {
		g.close()
		return err
	}

	g.fade.update(float32(common.FixedStep))
	if g.scene.Paused() {
		g.pauseUI.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
	if !g.fade.visible() {
		return
	}

	b := screen.Bounds()
	if g.overlay == nil || g.overlay.Bounds() != b {
		if g.overlay != nil {
			g.overlay.Deallocate()
		}
		g.overlay = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.overlay.Clear()
	g.pauseUI.Draw(g.overlay)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(g.fade.alpha)
	screen.DrawImage(g.overlay, op)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.stage.LayoutF(outsideWidth, outsideHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) close() {
	for _, cancel := range g.cancels {
		cancel()
	}
	g.cancels = nil
	g.scene.Destroy()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
