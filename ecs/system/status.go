package system

import (
	"fmt"
	"time"

	"github.com/milk9111/rewinder/ecs"
	"github.com/milk9111/rewinder/ecs/component"
)

// AbilityStatus describes each ability of e for the HUD, one line each.
func AbilityStatus(w *ecs.World, e ecs.Entity) []string {
	var lines []string
	if boost, ok := ecs.Get(w, e, component.SpeedBoostComponent.Kind()); ok {
		lines = append(lines, statusLine("boost", boost.Phase, boost.Remaining))
	}
	if tp, ok := ecs.Get(w, e, component.TeleportComponent.Kind()); ok {
		lines = append(lines, statusLine("teleport", tp.Phase, tp.Remaining))
	}
	if rw, ok := ecs.Get(w, e, component.RewindComponent.Kind()); ok {
		if rw.Phase == component.AbilityActive {
			lines = append(lines, fmt.Sprintf("rewind   playing %d/%d", len(rw.Samples)-rw.Index, len(rw.Samples)))
		} else {
			lines = append(lines, statusLine("rewind", rw.Phase, rw.Remaining))
		}
	}
	return lines
}

func statusLine(name string, phase component.AbilityPhase, remaining time.Duration) string {
	if phase == component.AbilityIdle {
		return fmt.Sprintf("%-8s %s", name, phase)
	}
	return fmt.Sprintf("%-8s %s %.1fs", name, phase, remaining.Seconds())
}
