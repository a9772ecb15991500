package diag

import (
	"time"

	"github.com/plus3/cubespawn/ecs"
)

// FrameTime is the singleton holding frame-rate diagnostics.
type FrameTime struct {
	FPS        Diagnostic
	FrameTime  Diagnostic
	FrameCount uint64

	elapsed time.Duration
}

// NewFrameTime creates empty FPS and frame-time (milliseconds) diagnostics.
func NewFrameTime() FrameTime {
	return FrameTime{
		FPS:       NewDiagnostic("fps", "", DefaultMaxHistory),
		FrameTime: NewDiagnostic("frame_time", "ms", DefaultMaxHistory),
	}
}

// Record accounts one frame that took delta. Frames with a zero delta are
// counted but produce no samples, since their rate is undefined.
func (f *FrameTime) Record(delta time.Duration) {
	f.FrameCount++
	if delta <= 0 {
		return
	}
	f.elapsed += delta

	seconds := delta.Seconds()
	f.FPS.Add(f.elapsed, 1/seconds)
	f.FrameTime.Add(f.elapsed, seconds*1000)
}

// FrameTimeSystem feeds each frame's delta into the FrameTime singleton. It
// should be registered before any system that reads the samples.
type FrameTimeSystem struct {
	FrameTime ecs.Singleton[FrameTime]
}

func (s *FrameTimeSystem) Execute(frame *ecs.UpdateFrame) {
	s.FrameTime.MustGet().Record(frame.Delta())
}
