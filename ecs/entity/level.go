package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
	"github.com/milk9111/rewinder/levels"
)

// LoadLevelToWorld loads a level into the ECS world: bounds, one static
// collider per merged rectangle of solid tiles, then the level entities.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	tileSize := 1.0

	boundsEntity := ecs.CreateEntity(world)
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Name:   lvl.Name,
		Width:  float64(lvl.Width) * tileSize,
		Height: float64(lvl.Height) * tileSize,
	}); err != nil {
		return fmt.Errorf("level: add bounds: %w", err)
	}

	for layerIdx, layer := range lvl.Layers {
		if layerIdx >= len(lvl.LayerMeta) || !lvl.LayerMeta[layerIdx].Physics {
			continue
		}
		meta := lvl.LayerMeta[layerIdx]
		category, err := collisionCategory(meta.Collision)
		if err != nil {
			return fmt.Errorf("level: layer %q: %w", meta.Name, err)
		}
		if err := addMergedTileColliders(world, layer, lvl.Width, lvl.Height, tileSize, category, layerIdx); err != nil {
			return err
		}
	}

	for _, ent := range lvl.Entities {
		switch strings.ToLower(ent.Type) {
		case "player":
			if _, err := NewPlayerAt(world, ent.X, ent.Y); err != nil {
				return err
			}
		case "camera":
			if _, err := NewCameraAt(world, ent.X, ent.Y); err != nil {
				return err
			}
		default:
			// Unknown entity type; ignore for now.
		}
	}

	return nil
}

func collisionCategory(names []string) (uint32, error) {
	if len(names) == 0 {
		return component.CategoryGround, nil
	}
	var category uint32
	for _, name := range names {
		switch strings.ToLower(name) {
		case "ground":
			category |= component.CategoryGround
		case "obstacle":
			category |= component.CategoryObstacle
		default:
			return 0, fmt.Errorf("unknown collision category %q", name)
		}
	}
	return category, nil
}

// addMergedTileColliders greedily covers solid tiles with as few rectangles
// as possible: widest run first, then as many full rows below as fit.
func addMergedTileColliders(world *ecs.World, layer []int, width, height int, tileSize float64, category uint32, layerIdx int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := index(x, y)
			if idx < 0 || idx >= len(layer) {
				continue
			}
			if visited[idx] || layer[idx] <= 0 {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width; x2++ {
				idx2 := index(x2, y)
				if idx2 >= len(layer) || visited[idx2] || layer[idx2] <= 0 {
					break
				}
				maxW++
			}
			if maxW == 0 {
				continue
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					idx2 := index(x2, y2)
					if idx2 >= len(layer) || visited[idx2] || layer[idx2] <= 0 {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					idx2 := index(xx, yy)
					if idx2 >= 0 && idx2 < len(visited) {
						visited[idx2] = true
					}
				}
			}

			if err := addSolid(world, float64(x)*tileSize, float64(y)*tileSize, float64(maxW)*tileSize, float64(maxH)*tileSize, category, layerIdx); err != nil {
				return err
			}
		}
	}

	return nil
}

func addSolid(world *ecs.World, x, y, width, height float64, category uint32, layerIdx int) error {
	e := ecs.CreateEntity(world)
	if err := ecs.Add(world, e, component.SolidTagComponent.Kind(), &component.SolidTag{Layer: layerIdx}); err != nil {
		return fmt.Errorf("level: add solid tag: %w", err)
	}
	if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
		X:      x,
		Y:      y,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return fmt.Errorf("level: add solid transform: %w", err)
	}
	if err := ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    width,
		Height:   height,
		Friction: 0.9,
		Static:   true,
	}); err != nil {
		return fmt.Errorf("level: add solid body: %w", err)
	}
	if err := ecs.Add(world, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: category}); err != nil {
		return fmt.Errorf("level: add solid collision layer: %w", err)
	}
	return nil
}
