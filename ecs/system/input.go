package system

import (
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

// InputSource yields the player's input for one tick.
type InputSource interface {
	Poll() component.Input
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) SetSource(source InputSource) {
	i.source = source
}

func (i *InputSystem) Update(w *ecs.World) {
	if i.source == nil || w == nil {
		return
	}

	polled := i.source.Poll()

	ecs.ForEach2(w, component.InputComponent.Kind(), component.PlayerTagComponent.Kind(), func(e ecs.Entity, input *component.Input, _ *component.PlayerTag) {
		*input = polled
		if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && !player.ControlEnabled {
			// Keep the cursor for drawing, drop everything else.
			*input = component.Input{CursorX: polled.CursorX, CursorY: polled.CursorY}
		}
	})
}
