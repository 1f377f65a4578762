package camera

import (
	"github.com/ivlev/scenecam/internal/easing"
	"github.com/ivlev/scenecam/internal/scene"
)

// State represents the camera transform at a specific moment
type State struct {
	Zoom            float64     `yaml:"zoom"`
	Position        scene.Point `yaml:"position"` // Normalized scene position the camera centers on
	SegmentIndex    int         `yaml:"segmentIndex"`
	IsTransitioning bool        `yaml:"isTransitioning"`
}

// EmptyState is what an empty timeline resolves to.
func EmptyState() State {
	return State{
		Zoom:         1.0,
		Position:     scene.Point{X: 0.5, Y: 0.5},
		SegmentIndex: -1,
	}
}

// StateAt calculates the camera state at time t. The timeline is a sequence
// of [transition_i, hold_i] phases; each phase is right-open, so at an exact
// boundary the next phase wins. Past the end the last hold state is kept.
func StateAt(segments []scene.CameraSegment, t float64) State {
	if len(segments) == 0 {
		return EmptyState()
	}

	elapsed := 0.0
	previous := segments[0]

	for i, seg := range segments {
		if t < elapsed+seg.TransitionDuration {
			// Only reachable when TransitionDuration > 0
			progress := (t - elapsed) / seg.TransitionDuration
			return State{
				Zoom:            easing.Scalar(previous.Zoom, seg.Zoom, progress, seg.Easing),
				Position:        easing.Point(previous.Position, seg.Position, progress, seg.Easing),
				SegmentIndex:    i,
				IsTransitioning: true,
			}
		}
		elapsed += seg.TransitionDuration

		if t < elapsed+seg.Duration {
			return holdState(seg, i)
		}
		elapsed += seg.Duration
		previous = seg
	}

	last := len(segments) - 1
	return holdState(segments[last], last)
}

func holdState(seg scene.CameraSegment, index int) State {
	return State{
		Zoom:         seg.Zoom,
		Position:     seg.Position,
		SegmentIndex: index,
	}
}

// TotalDuration is the sum of every transition and hold phase. Phases are
// added one at a time in the order StateAt walks them, so StateAt at the
// returned time always lands past the end.
func TotalDuration(segments []scene.CameraSegment) float64 {
	return SegmentStart(segments, len(segments))
}

// SegmentStart returns the time segment i's transition phase begins at.
func SegmentStart(segments []scene.CameraSegment, i int) float64 {
	start := 0.0
	for j := 0; j < i && j < len(segments); j++ {
		start += segments[j].TransitionDuration
		start += segments[j].Duration
	}
	return start
}

// Timeline holds a private copy of a segment list so it can be shared
// between render workers.
type Timeline struct {
	segments []scene.CameraSegment
}

// NewTimeline copies segments into a new Timeline.
func NewTimeline(segments []scene.CameraSegment) *Timeline {
	cp := make([]scene.CameraSegment, len(segments))
	copy(cp, segments)
	return &Timeline{segments: cp}
}

func (tl *Timeline) StateAt(t float64) State { return StateAt(tl.segments, t) }

func (tl *Timeline) TotalDuration() float64 { return TotalDuration(tl.segments) }

func (tl *Timeline) Len() int { return len(tl.segments) }

func (tl *Timeline) SegmentStart(i int) float64 { return SegmentStart(tl.segments, i) }

// Segment returns a copy of segment i.
func (tl *Timeline) Segment(i int) scene.CameraSegment { return tl.segments[i] }

// Segments returns a copy of the underlying list.
func (tl *Timeline) Segments() []scene.CameraSegment {
	cp := make([]scene.CameraSegment, len(tl.segments))
	copy(cp, tl.segments)
	return cp
}
