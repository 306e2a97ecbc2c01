package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
	"github.com/milk9111/rewinder/ecs/system"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	background   = color.RGBA{R: 0x1b, G: 0x1b, B: 0x24, A: 0xff}
	defaultSolid = colornames.Slategray
	playerColor  = colornames.Gold
	boostColor   = colornames.Orangered
	rewindColor  = colornames.Mediumpurple
	trailColor   = color.NRGBA{R: 0x9c, G: 0x7c, B: 0xff, A: 0x90}
	rangeColor   = color.NRGBA{R: 0x80, G: 0xd0, B: 0xff, A: 0x60}
	groundColor  = colornames.Limegreen
	airColor     = colornames.Red
)

// Renderer draws the world with flat shapes: level solids colored by layer,
// the player, the ability HUD and, in debug mode, the rewind trail and
// teleport helpers.
type Renderer struct {
	Debug bool

	face        text.Face
	layerColors map[int]color.Color
}

func NewRenderer(debug bool) *Renderer {
	return &Renderer{
		Debug:       debug,
		face:        text.NewGoXFace(basicfont.Face7x13),
		layerColors: make(map[int]color.Color),
	}
}

// SetLayerColor overrides the fill of solids from a level layer.
func (r *Renderer) SetLayerColor(layer int, c color.Color) {
	r.layerColors[layer] = c
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	screen.Fill(background)

	view, ok := system.CameraViewport(w)
	if !ok {
		return
	}

	r.drawSolids(w, screen, view)

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if r.Debug {
		r.drawDebug(w, screen, view, player)
	}
	r.drawPlayer(w, screen, view, player)
	r.drawHUD(w, screen, player)
}

func (r *Renderer) drawSolids(w *ecs.World, screen *ebiten.Image, view common.Viewport) {
	ecs.ForEach3(w,
		component.SolidTagComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, tag *component.SolidTag, t *component.Transform, body *component.PhysicsBody) {
			fill, ok := r.layerColors[tag.Layer]
			if !ok {
				fill = defaultSolid
			}
			x, y := view.WorldToScreen(cp.Vector{X: t.X, Y: t.Y})
			sx, sy := view.Scale()
			vector.FillRect(screen, float32(x), float32(y), float32(body.Width*sx), float32(body.Height*sy), fill, false)
		},
	)
}

func (r *Renderer) drawPlayer(w *ecs.World, screen *ebiten.Image, view common.Viewport, e ecs.Entity) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	width, height := 1.0, 2.0
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		width, height = body.Width, body.Height
	}

	fill := color.Color(playerColor)
	if boost, ok := ecs.Get(w, e, component.SpeedBoostComponent.Kind()); ok && boost.Phase == component.AbilityActive {
		fill = boostColor
	}
	if rw, ok := ecs.Get(w, e, component.RewindComponent.Kind()); ok && rw.Phase == component.AbilityActive {
		fill = rewindColor
	}

	sx, sy := view.Scale()
	cx, cy := view.WorldToScreen(cp.Vector{X: t.X, Y: t.Y})
	pw, ph := width*sx, height*sy
	vector.FillRect(screen, float32(cx-pw/2), float32(cy-ph/2), float32(pw), float32(ph), fill, false)

	// Eye on the facing side.
	eyeX := cx + pw/4
	if t.ScaleX < 0 {
		eyeX = cx - pw/4
	}
	vector.FillCircle(screen, float32(eyeX), float32(cy-ph/4), float32(pw/8), colornames.Black, true)
}

func (r *Renderer) drawDebug(w *ecs.World, screen *ebiten.Image, view common.Viewport, e ecs.Entity) {
	sx, _ := view.Scale()

	if hist, ok := ecs.Get(w, e, component.PositionHistoryComponent.Kind()); ok {
		var prevX, prevY float64
		for i, p := range hist.Samples.Snapshot() {
			x, y := view.WorldToScreen(p)
			if i > 0 {
				vector.StrokeLine(screen, float32(prevX), float32(prevY), float32(x), float32(y), 1, trailColor, true)
			}
			prevX, prevY = x, y
		}
	}

	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	cx, cy := view.WorldToScreen(cp.Vector{X: t.X, Y: t.Y})

	if tp, ok := ecs.Get(w, e, component.TeleportComponent.Kind()); ok {
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(tp.MaxDistance*sx), 1, rangeColor, true)
		if tp.LastFrom != tp.LastTo {
			fx, fy := view.WorldToScreen(tp.LastFrom)
			tx, ty := view.WorldToScreen(tp.LastTo)
			lineColor := rangeColor
			if tp.LastHit {
				lineColor = color.NRGBA{R: 0xff, G: 0x60, B: 0x60, A: 0xa0}
			}
			vector.StrokeLine(screen, float32(fx), float32(fy), float32(tx), float32(ty), 1, lineColor, true)
		}
	}

	if gc, ok := ecs.Get(w, e, component.GroundCheckComponent.Kind()); ok {
		gx, gy := view.WorldToScreen(cp.Vector{X: t.X + gc.OffsetX, Y: t.Y + gc.OffsetY})
		marker := color.Color(airColor)
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && p.Grounded {
			marker = groundColor
		}
		vector.StrokeCircle(screen, float32(gx), float32(gy), float32(gc.Radius*sx), 1, marker, true)
	}
}

func (r *Renderer) drawHUD(w *ecs.World, screen *ebiten.Image, e ecs.Entity) {
	lines := system.AbilityStatus(w, e)
	if r.Debug {
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			lines = append(lines, fmt.Sprintf("speed %.0f jump %.0f grounded %v", p.Speed, p.Jump, p.Grounded))
		}
		lines = append(lines, fmt.Sprintf("tps %.0f fps %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(12, 12)
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, strings.Join(lines, "\n"), r.face, op)
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("render: color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("render: color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
