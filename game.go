package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"github.com/milk9111/splashfx/ecs/entity"
	"github.com/milk9111/splashfx/ecs/system"
	"github.com/milk9111/splashfx/prefabs"
	"github.com/milk9111/splashfx/sound"
	"github.com/milk9111/splashfx/splash"
)

const (
	baseWidth  = 960
	baseHeight = 540
	sampleRate = 44100
)

var skyColor = color.RGBA{R: 24, G: 28, B: 40, A: 255}

type Options struct {
	Level  string
	Debug  bool
	Seed   uint64
	Script string
	Watch  bool
}

type Game struct {
	frames int
	debug  bool
	paused bool
	quit   bool
	pause  *ebitenui.UI

	world   *ecs.World
	builder *entity.Builder
	scripts *system.ScriptSystem
	splash  *system.SplashSystem
	render  *system.RenderSystem
	output  *sound.EbitenOutput
	watcher *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rnd := splash.NewRandom(seed)

	output := sound.NewEbitenOutput(audio.NewContext(sampleRate))
	builder := entity.NewBuilder(output)

	w := ecs.NewWorld()
	lvl, err := builder.BuildLevel(w, opts.Level)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if opts.Script != "" {
		ecs.ForEach(w, component.ScriptedMotionComponent.Kind(), func(_ ecs.Entity, sm *component.ScriptedMotion) {
			sm.ScriptPath = opts.Script
		})
	}
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, c *component.Camera) {
		if c.Width == 0 || c.Height == 0 {
			c.Width, c.Height = baseWidth, baseHeight
		}
	})

	gravity := lvl.Gravity
	if gravity == 0 {
		gravity = system.DefaultGravity
	}
	physics := system.NewPhysicsSystem(gravity)
	particles := system.NewParticleSystem(rnd)
	sounds := system.NewAudioSystem(output)
	scripts := system.NewScriptSystem()
	splashes := system.NewSplashSystem(physics, particles, sounds, rnd)
	splashes.Debug = opts.Debug

	// Movement, then physics, then overlap detection feeding the splash
	// triggers, then the effects they spawned.
	w.AddSystem(ecs.NewScheduler(
		system.NewInputSystem(),
		scripts,
		system.NewControllerSystem(physics),
		physics,
		system.NewCameraSystem(),
	))
	w.AddSystem(ecs.NewScheduler(
		system.NewZoneSystem(),
		splashes,
		particles,
		sounds,
		system.NewTTLSystem(),
	))

	g := &Game{
		debug:   opts.Debug,
		world:   w,
		builder: builder,
		scripts: scripts,
		splash:  splashes,
		render:  system.NewRenderSystem(),
		output:  output,
	}
	g.render.Debug = opts.Debug
	g.pause = NewPauseUI(g)

	if opts.Watch {
		g.watcher = startWatcher()
	}
	log.Printf("game: level %q loaded with %d entities, seed %d", lvl.Name, len(lvl.Entities), seed)
	return g, nil
}

func startWatcher() *prefabs.Watcher {
	if _, err := os.Stat(prefabs.Dir); err != nil {
		return nil
	}
	dirs := []string{prefabs.Dir}
	if scriptsDir := filepath.Join(prefabs.Dir, "scripts"); dirExists(scriptsDir) {
		dirs = append(dirs, scriptsDir)
	}
	watcher, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("game: watch %s: %v", prefabs.Dir, err)
		return nil
	}
	return watcher
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.setDebug(!g.debug)
	}
	g.reloadChanged()

	if g.paused {
		g.pause.Update()
		return nil
	}
	g.world.Update()
	return nil
}

func (g *Game) setDebug(on bool) {
	g.debug = on
	g.splash.Debug = on
	g.render.Debug = on
}

// reloadAllSplashConfigs re-reads every splash config in use.
func (g *Game) reloadAllSplashConfigs() {
	seen := map[string]bool{}
	var paths []string
	ecs.ForEach(g.world, component.SplashTriggerComponent.Kind(), func(_ ecs.Entity, st *component.SplashTrigger) {
		if st.ConfigPath != "" && !seen[st.ConfigPath] {
			seen[st.ConfigPath] = true
			paths = append(paths, st.ConfigPath)
		}
	})
	for _, path := range paths {
		n, err := g.builder.ReloadSplashConfig(g.world, path)
		if err != nil {
			log.Printf("game: reload %s: %v", path, err)
			continue
		}
		log.Printf("game: reloaded %s on %d triggers", path, n)
	}
}

func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	names, err := g.watcher.Poll()
	if err != nil {
		log.Printf("game: watcher: %v", err)
	}
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".tengo"):
			g.scripts.Reload(name)
			log.Printf("game: reloaded script %s", name)
		case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
			n, err := g.builder.ReloadSplashConfig(g.world, name)
			if err != nil {
				log.Printf("game: reload %s: %v", name, err)
				continue
			}
			if n > 0 {
				log.Printf("game: reloaded splash config %s for %d triggers", name, n)
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	g.render.Draw(g.world, screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Voices: %d    [arrows/WASD move, space jump, F1 debug, Esc pause]", g.frames, ebiten.ActualFPS(), g.output.Active()))
	if g.paused {
		g.pause.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
