package camera

import (
	"math"

	"github.com/ivlev/scenecam/internal/scene"
)

// ScaleToDuration returns copies of segments whose phases are stretched so
// the timeline lasts target seconds, e.g. to fit a narration track. With
// fps > 0 every phase is aligned to whole frames and the rounding remainder
// goes to the last hold phase. The input is not modified.
func ScaleToDuration(segments []scene.CameraSegment, target float64, fps int) []scene.CameraSegment {
	out := make([]scene.CameraSegment, len(segments))
	copy(out, segments)

	total := TotalDuration(segments)
	if len(out) == 0 || total <= 0 || target <= 0 {
		return out
	}

	scale := target / total
	for i := range out {
		out[i].TransitionDuration = alignToFrame(out[i].TransitionDuration*scale, fps)
		out[i].Duration = alignToFrame(out[i].Duration*scale, fps)
	}

	last := &out[len(out)-1]
	remainder := target - TotalDuration(out)
	if last.Duration+remainder >= 0 {
		last.Duration += remainder
	}

	return out
}

// alignToFrame rounds d to a whole number of frames
func alignToFrame(d float64, fps int) float64 {
	if fps <= 0 {
		return d
	}
	return math.Round(d*float64(fps)) / float64(fps)
}
