package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/arcade/common"
	"github.com/milk9111/arcade/physics"
	"github.com/milk9111/arcade/prefabs"
	"github.com/milk9111/arcade/script"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	stepSeconds = 1.0 / 60.0
)

type Game struct {
	frames int
	paused bool
	debug  bool

	world  *physics.World
	crates *physics.Group
	balls  *physics.Group

	crateHook *script.CreateHook

	watcher *prefabs.Watcher
	ui      *ebitenui.UI
}

func NewGame(debug bool) (*Game, error) {
	world := physics.NewWorld(physics.WorldConfig{
		GravityY:   600,
		Iterations: 10,
		Bounds:     common.Rect{X: 0, Y: 0, Width: baseWidth, Height: baseHeight},
	})

	g := &Game{
		debug: debug,
		world: world,
	}

	crateSpec, err := prefabs.LoadGroupSpec("crates")
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	ballSpec, err := prefabs.LoadGroupSpec("balls")
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	if crateSpec.OnCreateScript != "" {
		src, err := prefabs.LoadScript(crateSpec.OnCreateScript)
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		hook, err := script.NewCreateHook(crateSpec.OnCreateScript, src)
		if err != nil {
			return nil, err
		}
		g.crateHook = hook
	}

	// Hold back the configured quantity so the initial batch goes
	// through spawnCrates and gets the scripted fan-out too.
	crateCfg := crateSpec.GroupConfig()
	initial := crateCfg.Quantity
	crateCfg.Quantity = 0
	g.crates = physics.NewGroupWith(world, crateCfg)
	g.spawnCrates(initial)

	g.balls = physics.NewGroupWith(world, ballSpec.GroupConfig())
	for _, e := range g.balls.Children() {
		em := e.(physics.Embodied)
		em.Body().SetPositionXY(rand.Float64()*baseWidth, rand.Float64()*baseHeight/3)
	}

	// Hot-reload group defaults while the demo runs. Missing disk
	// prefabs (pure embedded build) just means no watcher.
	if w, err := prefabs.NewWatcher("prefabs/groups", "prefabs/scripts"); err == nil {
		g.watcher = w
	} else {
		log.Printf("game: prefab watcher disabled: %v", err)
	}

	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.spawnCrates(3)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.spawnBall()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.crates.Clear()
		g.balls.Clear()
	}

	g.world.Step(stepSeconds)
	g.frames++
	return nil
}

// spawnCrates creates a batch at the top of the screen and runs the
// scripted create hook for each member.
func (g *Game) spawnCrates(n int) {
	if n <= 0 {
		return
	}
	created := g.crates.CreateMultiple(n)
	for i, e := range created {
		em := e.(physics.Embodied)
		em.Body().SetPositionXY(baseWidth/2+rand.Float64()*80-40, 60)
		if g.crateHook == nil {
			continue
		}
		if err := g.crateHook.Run(em.Body(), i, len(created)); err != nil {
			log.Printf("game: crate create hook: %v", err)
		}
	}
}

// spawnBall recycles a dead pool member before growing the group.
func (g *Game) spawnBall() {
	e := g.balls.GetFirstDead()
	if e == nil {
		e = g.balls.Create()
	}
	if e == nil {
		return
	}
	g.balls.Members().Revive(e)
	b := e.(physics.Embodied).Body()
	b.SetPositionXY(rand.Float64()*baseWidth, 40)
	b.SetVelocity(0, -250)
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadDefaults(name)
		case err := <-g.watcher.Errors:
			log.Printf("game: prefab watcher: %v", err)
		default:
			return
		}
	}
}

// reloadDefaults re-reads both group specs after any prefab change.
// Only future members pick up the new defaults.
func (g *Game) reloadDefaults(name string) {
	log.Printf("game: reloading group defaults after change to %s", name)
	if spec, err := prefabs.LoadGroupSpec("crates"); err == nil {
		g.crates.SetDefaults(spec.Body.Defaults())
	} else {
		log.Printf("game: reload crates: %v", err)
	}
	if spec, err := prefabs.LoadGroupSpec("balls"); err == nil {
		g.balls.SetDefaults(spec.Body.Defaults())
	} else {
		log.Printf("game: reload balls: %v", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawGroup(screen, g.crates)
	g.drawGroup(screen, g.balls)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.2f    bodies: %d    crates: %d    balls: %d/%d alive\nspace: crates  b: ball  c: clear  p: pause",
		ebiten.ActualFPS(),
		g.world.NumBodies(),
		g.crates.Len(),
		g.balls.CountActive(true),
		g.balls.Len(),
	))

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) drawGroup(screen *ebiten.Image, grp *physics.Group) {
	for _, e := range grp.Children() {
		sp, ok := e.(*physics.Sprite)
		if !ok {
			continue
		}
		sp.Draw(screen)
		if g.debug {
			if b := sp.Body(); b != nil {
				w, h := sp.Size()
				pos := b.Position()
				vector.StrokeRect(screen,
					float32(pos.X-w/2), float32(pos.Y-h/2),
					float32(w), float32(h),
					1, debugOutlineColor, false)
			}
		}
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
