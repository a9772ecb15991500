package ecs

import (
	"math"
	"time"
)

// UpdateFrame is handed to every system during one Scheduler.Once call.
type UpdateFrame struct {
	// Index counts frames from zero.
	Index uint64
	// DeltaTime is the elapsed time since the previous frame, in seconds.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

// Delta returns DeltaTime as a time.Duration.
func (f *UpdateFrame) Delta() time.Duration {
	return time.Duration(math.Round(f.DeltaTime * float64(time.Second)))
}
