package component

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rewinder/common"
)

// PositionHistory is the bounded record of past positions consumed by
// rewind.
type PositionHistory struct {
	Samples common.Ring[cp.Vector]

	Interval   time.Duration
	NextSample time.Duration
	// RecordDuringRewind keeps sampling while rewind playback drives the
	// actor. Off by default so playback never records itself.
	RecordDuringRewind bool
}

var PositionHistoryComponent = NewComponent[PositionHistory]()
