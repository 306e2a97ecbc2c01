// Command levelcheck loads a level headless, prints its tile map and drops
// the player for a few seconds to check that the spawn lands on ground
// inside the camera view.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
	"github.com/milk9111/rewinder/ecs/entity"
	"github.com/milk9111/rewinder/ecs/system"
	"github.com/milk9111/rewinder/levels"
)

type idle struct{}

func (idle) Poll() component.Input { return component.Input{} }

func main() {
	levelName := flag.String("level", "proving_grounds.json", "level file in levels/ or on disk")
	settle := flag.Duration("settle", 3*time.Second, "simulated time to let the player fall")
	quiet := flag.Bool("q", false, "do not print the tile map")
	flag.Parse()

	lvl, err := levels.Load(*levelName)
	if err != nil {
		log.Fatal(err)
	}
	if !*quiet {
		fmt.Print(tileMap(lvl))
	}

	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		log.Fatal(err)
	}
	if _, ok := ecs.First(w, component.CameraComponent.Kind()); !ok {
		if _, err := entity.NewCamera(w); err != nil {
			log.Fatal(err)
		}
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		log.Fatalf("level %q has no player entity", lvl.Name)
	}

	physics := system.NewPhysicsSystem()
	physics.Sync(w)
	scheduler := ecs.NewScheduler(
		system.NewInputSystem(idle{}),
		system.NewPlayerControllerSystem(physics),
		physics,
		system.NewBoundarySystem(),
	)

	colliders := len(ecs.Query(w, component.SolidTagComponent.Kind()))
	fmt.Printf("level %q: %dx%d tiles, %d layers, %d colliders\n", lvl.Name, lvl.Width, lvl.Height, len(lvl.Layers), colliders)

	for i := 0; i < int(*settle/common.Dt); i++ {
		scheduler.Update(w)
		for _, evt := range w.Events().Drain() {
			if evt.Type == ecs.EventPlayerDied {
				log.Printf("LevelCheck: player died at tick %d: %+v", i, evt.Data)
				os.Exit(1)
			}
		}
	}

	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	t, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if !p.Grounded {
		log.Printf("LevelCheck: player still airborne at (%.2f, %.2f)", t.X, t.Y)
		os.Exit(1)
	}
	fmt.Printf("player settled at (%.2f, %.2f)\n", t.X, t.Y)
}

// tileMap draws the level with one rune per tile: the first letter of the
// topmost solid layer's name, '.' for empty.
func tileMap(lvl *levels.Level) string {
	var b strings.Builder
	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			r := byte('.')
			for layer := range lvl.Layers {
				if !lvl.Solid(layer, x, y) {
					continue
				}
				r = '#'
				if layer < len(lvl.LayerMeta) && lvl.LayerMeta[layer].Name != "" {
					r = lvl.LayerMeta[layer].Name[0]
				}
			}
			b.WriteByte(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
