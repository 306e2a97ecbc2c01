package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

// GroundQuery answers whether a ground check circle overlaps ground.
type GroundQuery interface {
	Grounded(center cp.Vector, check component.GroundCheck) bool
}

// ObstacleCaster finds the first obstacle along a segment.
type ObstacleCaster interface {
	CastObstacle(from, to cp.Vector) (cp.Vector, bool)
}

type PhysicsSystem struct {
	space    *cp.Space
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset drops every body so a new level can be synced from scratch.
func (ps *PhysicsSystem) Reset() {
	ps.space = newSpace()
	ps.entities = make(map[ecs.Entity]*bodyInfo)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.Sync(w)

	pinned := ps.pinFrozenBodies(w)
	ps.space.Step(common.Dt.Seconds())
	for body, pos := range pinned {
		body.SetPosition(pos)
		body.SetVelocityVector(cp.Vector{})
	}

	ps.syncTransforms(w)
}

// Sync creates bodies for new physics entities and removes the ones whose
// entity is gone. Systems that run before physics on the first tick need the
// bodies to exist, so the game calls it once after loading a level.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps.space == nil {
		ps.Reset()
	}

	ps.cleanupEntities(w)

	for _, e := range ecs.Query(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
			continue
		}

		layer := component.CollisionLayer{}
		if l, ok := ecs.Get(w, e, component.CollisionLayerComponent.Kind()); ok {
			layer = *l
		}

		info := ps.createBodyInfo(*transform, *bodyComp, layer)
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody, layer component.CollisionLayer) *bodyInfo {
	width := bodyComp.Width
	height := bodyComp.Height
	if width <= 0 || height <= 0 {
		width = 1
		height = 1
	}

	filter := shapeFilter(layer)

	if bodyComp.Static {
		bb := cp.BB{L: transform.X, B: transform.Y, R: transform.X + width, T: transform.Y + height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetFilter(filter)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	// Infinite moment keeps the actor upright.
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetFilter(filter)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	return &bodyInfo{body: body, shape: shape}
}

func shapeFilter(layer component.CollisionLayer) cp.ShapeFilter {
	category := uint(layer.Category)
	if category == 0 {
		category = uint(component.CategoryGround)
	}
	mask := cp.ALL_CATEGORIES
	if layer.Mask != 0 {
		mask = uint(layer.Mask)
	}
	return cp.NewShapeFilter(cp.NO_GROUP, category, mask)
}

// pinFrozenBodies remembers where actors without control are so the step
// cannot move them. Rewind playback owns their position.
func (ps *PhysicsSystem) pinFrozenBodies(w *ecs.World) map[*cp.Body]cp.Vector {
	pinned := make(map[*cp.Body]cp.Vector)
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, player *component.Player, bodyComp *component.PhysicsBody) {
		if player.ControlEnabled || bodyComp.Body == nil || bodyComp.Static {
			return
		}
		bodyComp.Body.SetVelocityVector(cp.Vector{})
		pinned[bodyComp.Body] = bodyComp.Body.Position()
	})
	return pinned
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

// Grounded reports whether the ground check circle of an actor centered at
// center overlaps any shape in the ground category.
func (ps *PhysicsSystem) Grounded(center cp.Vector, check component.GroundCheck) bool {
	if ps == nil || ps.space == nil {
		return false
	}
	radius := check.Radius
	if radius <= 0 {
		radius = 0.2
	}
	point := center.Add(cp.Vector{X: check.OffsetX, Y: check.OffsetY})
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(component.CategoryGround))
	info := ps.space.PointQueryNearest(point, radius, filter)
	return info != nil && info.Shape != nil
}

// CastObstacle returns the first point on the segment from -> to that hits a
// shape in the obstacle category.
func (ps *PhysicsSystem) CastObstacle(from, to cp.Vector) (cp.Vector, bool) {
	if ps == nil || ps.space == nil {
		return to, false
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(component.CategoryObstacle))
	info := ps.space.SegmentQueryFirst(from, to, 0, filter)
	if info.Shape == nil {
		return to, false
	}
	return info.Point, true
}

// placeBody moves an actor, keeping its Transform and body in agreement.
func placeBody(transform *component.Transform, bodyComp *component.PhysicsBody, pos cp.Vector, stop bool) {
	transform.X = pos.X
	transform.Y = pos.Y
	if bodyComp == nil || bodyComp.Body == nil {
		return
	}
	bodyComp.Body.SetPosition(pos)
	if stop {
		bodyComp.Body.SetVelocityVector(cp.Vector{})
	}
}
