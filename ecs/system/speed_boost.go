package system

import (
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

const abilitySpeedBoost = "speed_boost"

// SpeedBoostSystem multiplies the player's speed and jump while the boost is
// active and restores the base values when it expires.
type SpeedBoostSystem struct{}

func NewSpeedBoostSystem() *SpeedBoostSystem {
	return &SpeedBoostSystem{}
}

func (s *SpeedBoostSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.SpeedBoostComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		func(e ecs.Entity, boost *component.SpeedBoost, player *component.Player, input *component.Input) {
			switch boost.Phase {
			case component.AbilityActive:
				if tick(&boost.Remaining) {
					player.Speed = player.BaseSpeed
					player.Jump = player.BaseJump
					boost.Phase = component.AbilityCooldown
					boost.Remaining += boost.Cooldown
					pushEvent(w, ecs.EventSpeedBoostExpired, e, AbilityEvent{Ability: abilitySpeedBoost})
				}
			case component.AbilityCooldown:
				if tick(&boost.Remaining) {
					boost.Phase = component.AbilityIdle
					boost.Remaining = 0
					pushEvent(w, ecs.EventAbilityReady, e, AbilityEvent{Ability: abilitySpeedBoost})
				}
			}

			if boost.Phase != component.AbilityIdle || !player.ControlEnabled || !input.BoostPressed {
				return
			}

			boost.Phase = component.AbilityActive
			boost.Remaining = boost.Duration
			player.Speed = player.BaseSpeed * boost.SpeedMultiplier
			player.Jump = player.BaseJump * boost.JumpMultiplier
			pushEvent(w, ecs.EventSpeedBoostStarted, e, AbilityEvent{Ability: abilitySpeedBoost})
		},
	)
}
