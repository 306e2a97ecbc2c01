package common

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Viewport maps between world space (y down), the camera's normalized
// viewport ((0,0) bottom-left, (1,1) top-right of the visible area) and
// screen pixels.
type Viewport struct {
	Left, Top     float64
	Width, Height float64

	screenW float64
	screenH float64

	proj mgl64.Mat4
	inv  mgl64.Mat4
}

// NewViewport builds a viewport for a view whose top-left corner is at
// (left, top) in world units and spans width x height world units, drawn onto
// a screen of screenW x screenH pixels.
func NewViewport(left, top, width, height, screenW, screenH float64) Viewport {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	proj := mgl64.Ortho2D(left, left+width, top+height, top)
	return Viewport{
		Left:    left,
		Top:     top,
		Width:   width,
		Height:  height,
		screenW: screenW,
		screenH: screenH,
		proj:    proj,
		inv:     proj.Inv(),
	}
}

// WorldToViewport projects a world point into normalized viewport space.
func (v Viewport) WorldToViewport(p cp.Vector) mgl64.Vec2 {
	ndc := v.proj.Mul4x1(mgl64.Vec4{p.X, p.Y, 0, 1})
	return mgl64.Vec2{(ndc.X() + 1) / 2, (ndc.Y() + 1) / 2}
}

// ViewportToWorld is the inverse of WorldToViewport.
func (v Viewport) ViewportToWorld(vp mgl64.Vec2) cp.Vector {
	world := v.inv.Mul4x1(mgl64.Vec4{vp.X()*2 - 1, vp.Y()*2 - 1, 0, 1})
	return cp.Vector{X: world.X(), Y: world.Y()}
}

// ScreenToWorld converts a screen pixel position (origin top-left) to world
// space.
func (v Viewport) ScreenToWorld(sx, sy float64) cp.Vector {
	if v.screenW <= 0 || v.screenH <= 0 {
		return cp.Vector{X: v.Left + sx, Y: v.Top + sy}
	}
	return v.ViewportToWorld(mgl64.Vec2{sx / v.screenW, 1 - sy/v.screenH})
}

// WorldToScreen converts a world position to screen pixels.
func (v Viewport) WorldToScreen(p cp.Vector) (float64, float64) {
	vp := v.WorldToViewport(p)
	return vp.X() * v.screenW, (1 - vp.Y()) * v.screenH
}

// Scale returns screen pixels per world unit on each axis.
func (v Viewport) Scale() (float64, float64) {
	return v.screenW / v.Width, v.screenH / v.Height
}

// Outside reports whether a viewport point lies on or beyond the visible
// area's edge.
func Outside(vp mgl64.Vec2) bool {
	return vp.X() <= 0 || vp.X() >= 1 || vp.Y() <= 0 || vp.Y() >= 1
}
