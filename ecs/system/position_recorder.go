package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/common"
	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

// PositionRecorderSystem samples the player position into its history at a
// fixed interval. Sampling pauses while control is disabled unless the
// history opts in with RecordDuringRewind, and resumes with an immediate
// sample.
type PositionRecorderSystem struct{}

func NewPositionRecorderSystem() *PositionRecorderSystem {
	return &PositionRecorderSystem{}
}

func (p *PositionRecorderSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.PositionHistoryComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PlayerComponent.Kind(),
		func(e ecs.Entity, hist *component.PositionHistory, transform *component.Transform, player *component.Player) {
			if !player.ControlEnabled && !hist.RecordDuringRewind {
				hist.NextSample = 0
				return
			}

			if hist.NextSample <= 0 {
				hist.Samples.Push(cp.Vector{X: transform.X, Y: transform.Y})
				hist.NextSample += hist.Interval
			}
			hist.NextSample -= common.Dt
		},
	)
}
