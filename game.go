package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
	"github.com/milk9111/rewinder/ecs/entity"
	"github.com/milk9111/rewinder/ecs/input"
	"github.com/milk9111/rewinder/ecs/render"
	"github.com/milk9111/rewinder/ecs/system"
	"github.com/milk9111/rewinder/levels"
	"github.com/milk9111/rewinder/prefabs"
)

const defaultLevel = "proving_grounds.json"

type Config struct {
	Level string
	Debug bool
	Watch bool
	Mute  bool
	Seed  uint64
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	camera    *system.CameraSystem
	poller    *input.Poller
	renderer  *render.Renderer
	watcher   *prefabs.Watcher
	pauseUI   *ebitenui.UI
	cues      *cues

	session uuid.UUID
	player  ecs.Entity
	tick    uint64

	paused bool
	quit   bool
	// dead holds the session open until the death shake has played.
	dead  bool
	dying time.Duration
}

func NewGame(cfg Config) (*Game, error) {
	g := &Game{
		world:    ecs.NewWorld(),
		session:  uuid.New(),
		renderer: render.NewRenderer(cfg.Debug),
	}

	lvl, err := levels.Load(levelFileName(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("game: load level %q: %w", cfg.Level, err)
	}
	if err := entity.LoadLevelToWorld(g.world, lvl); err != nil {
		return nil, fmt.Errorf("game: build level %q: %w", lvl.Name, err)
	}
	for i, meta := range lvl.LayerMeta {
		if meta.Color == "" {
			continue
		}
		c, err := render.ParseHexColor(meta.Color)
		if err != nil {
			return nil, fmt.Errorf("game: layer %q: %w", meta.Name, err)
		}
		g.renderer.SetLayerColor(i, c)
	}

	if _, ok := ecs.First(g.world, component.CameraComponent.Kind()); !ok {
		if _, err := entity.NewCamera(g.world); err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
	}
	player, ok := ecs.First(g.world, component.PlayerTagComponent.Kind())
	if !ok {
		if player, err = entity.NewPlayer(g.world); err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
	}
	g.player = player

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	bindings, err := input.ParseBindings(playerSpec.Bindings)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g.poller = input.NewPoller(bindings)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g.physics = system.NewPhysicsSystem()
	g.physics.Sync(g.world)
	g.camera = system.NewCameraSystem(seed)
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(g.poller),
		system.NewPlayerControllerSystem(g.physics),
		system.NewSpeedBoostSystem(),
		system.NewTeleportSystem(g.physics),
		system.NewRewindSystem(),
		g.physics,
		system.NewPositionRecorderSystem(),
		g.camera,
		system.NewBoundarySystem(),
	)

	if cfg.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("Prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	g.pauseUI = NewPauseUI(g)
	if !cfg.Mute {
		g.cues = newCues()
	}

	log.Printf("Session %s: started level %q seed %d", g.session, lvl.Name, seed)
	return g, nil
}

func levelFileName(name string) string {
	if name == "" {
		return defaultLevel
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}

func (g *Game) Update() error {
	if g.quit {
		log.Printf("Session %s: quit after %d ticks", g.session, g.tick)
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !g.dead {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.reloadPrefabs()

	if g.dead {
		g.camera.Update(g.world)
		g.dying -= common.Dt
		if g.dying <= 0 {
			log.Printf("Session %s: ended after %d ticks", g.session, g.tick)
			return ebiten.Termination
		}
		return nil
	}

	g.scheduler.Update(g.world)
	g.tick++
	g.handleEvents()

	return nil
}

func (g *Game) handleEvents() {
	for _, evt := range g.world.Events().Drain() {
		g.cues.play(evt.Type)
		switch evt.Type {
		case ecs.EventPlayerDied:
			log.Printf("Session %s: player died at tick %d: %+v", g.session, g.tick, evt.Data)
			g.dead = true
			g.dying = common.Dt
			if cam, ok := ecs.First(g.world, component.CameraComponent.Kind()); ok {
				if c, ok := ecs.Get(g.world, cam, component.CameraComponent.Kind()); ok {
					g.dying = max(c.DefaultShakeDuration, common.Dt)
				}
			}
		default:
			log.Printf("Session %s: %s %+v", g.session, evt.Type, evt.Data)
		}
	}
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	names, err := g.watcher.Poll()
	if err != nil {
		log.Printf("Prefabs: watch error: %v", err)
	}
	for _, name := range names {
		switch name {
		case "player.yaml":
			spec, err := prefabs.LoadPlayerSpec()
			if err != nil {
				log.Printf("Prefabs: reload %s: %v", name, err)
				continue
			}
			if err := entity.ApplyPlayerTuning(g.world, g.player, spec); err != nil {
				log.Printf("Prefabs: apply %s: %v", name, err)
				continue
			}
			bindings, err := input.ParseBindings(spec.Bindings)
			if err != nil {
				log.Printf("Prefabs: apply %s: %v", name, err)
				continue
			}
			g.poller.SetBindings(bindings)
			log.Printf("Prefabs: reloaded %s", name)
		case "camera.yaml":
			spec, err := prefabs.LoadCameraSpec()
			if err != nil {
				log.Printf("Prefabs: reload %s: %v", name, err)
				continue
			}
			cam, ok := ecs.First(g.world, component.CameraComponent.Kind())
			if !ok {
				continue
			}
			if err := entity.ApplyCameraTuning(g.world, cam, spec); err != nil {
				log.Printf("Prefabs: apply %s: %v", name, err)
				continue
			}
			log.Printf("Prefabs: reloaded %s", name)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
