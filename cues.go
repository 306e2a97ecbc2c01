package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/rewinder/assets"
	"github.com/milk9111/rewinder/ecs"
)

// cues plays a short synthesized sound for gameplay events.
type cues struct {
	players map[ecs.EventType]*audio.Player
}

func newCues() *cues {
	return &cues{players: map[ecs.EventType]*audio.Player{
		ecs.EventSpeedBoostStarted: assets.NewCuePlayer(assets.BoostTone),
		ecs.EventTeleported:        assets.NewCuePlayer(assets.TeleportTone),
		ecs.EventTeleportBlocked:   assets.NewCuePlayer(assets.TeleportTone),
		ecs.EventRewindStarted:     assets.NewCuePlayer(assets.RewindTone),
		ecs.EventAbilityReady:      assets.NewCuePlayer(assets.ReadyTone),
		ecs.EventHardLanding:       assets.NewCuePlayer(assets.LandingTone),
		ecs.EventPlayerDied:        assets.NewCuePlayer(assets.DeathTone),
	}}
}

func (c *cues) play(evt ecs.EventType) {
	if c == nil {
		return
	}
	player := c.players[evt]
	if player == nil {
		return
	}
	if err := player.Rewind(); err != nil {
		return
	}
	player.Play()
}
