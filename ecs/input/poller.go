package input

import (
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rewinder/ecs/component"
	"github.com/milk9111/rewinder/prefabs"
)

const stickDeadzone = 0.2

// Bindings maps actions to keys. Any listed key triggers the action.
type Bindings struct {
	Left     []ebiten.Key
	Right    []ebiten.Key
	Jump     []ebiten.Key
	Boost    []ebiten.Key
	Rewind   []ebiten.Key
	Teleport ebiten.MouseButton
}

func ParseBindings(spec prefabs.BindingsSpec) (Bindings, error) {
	var b Bindings
	var err error
	if b.Left, err = parseKeys("left", spec.Left); err != nil {
		return Bindings{}, err
	}
	if b.Right, err = parseKeys("right", spec.Right); err != nil {
		return Bindings{}, err
	}
	if b.Jump, err = parseKeys("jump", spec.Jump); err != nil {
		return Bindings{}, err
	}
	if b.Boost, err = parseKeys("boost", spec.Boost); err != nil {
		return Bindings{}, err
	}
	if b.Rewind, err = parseKeys("rewind", spec.Rewind); err != nil {
		return Bindings{}, err
	}
	if b.Teleport, err = parseMouseButton(spec.Teleport); err != nil {
		return Bindings{}, err
	}
	return b, nil
}

func parseKeys(action string, names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("input: bind %s: %w", action, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func parseMouseButton(name string) (ebiten.MouseButton, error) {
	switch strings.ToLower(name) {
	case "", "left":
		return ebiten.MouseButtonLeft, nil
	case "right":
		return ebiten.MouseButtonRight, nil
	case "middle":
		return ebiten.MouseButtonMiddle, nil
	default:
		return 0, fmt.Errorf("input: bind teleport: unknown mouse button %q", name)
	}
}

// Poller reads keyboard, mouse and the first standard gamepad.
type Poller struct {
	bindings Bindings
}

func NewPoller(bindings Bindings) *Poller {
	return &Poller{bindings: bindings}
}

func (p *Poller) SetBindings(bindings Bindings) {
	p.bindings = bindings
}

func (p *Poller) Poll() component.Input {
	b := p.bindings

	moveX := 0.0
	if anyPressed(b.Left) {
		moveX -= 1
	}
	if anyPressed(b.Right) {
		moveX += 1
	}

	in := component.Input{
		Jump:            anyPressed(b.Jump),
		JumpPressed:     anyJustPressed(b.Jump),
		BoostPressed:    anyJustPressed(b.Boost),
		RewindPressed:   anyJustPressed(b.Rewind),
		TeleportPressed: inpututil.IsMouseButtonJustPressed(b.Teleport),
	}
	cx, cy := ebiten.CursorPosition()
	in.CursorX = float64(cx)
	in.CursorY = float64(cy)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}

		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.BoostPressed = in.BoostPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		in.RewindPressed = in.RewindPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
	}

	in.MoveX = moveX
	return in
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
