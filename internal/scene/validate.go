package scene

import (
	"errors"
	"fmt"
)

const (
	MinZoom = 0.1
	MaxZoom = 10.0
)

// ErrDefaultImmutable is returned when an edit renames or moves the default segment.
var ErrDefaultImmutable = errors.New("default segment name and position are immutable")

// FieldError describes one failed check.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Result collects every failed check. Valid is true when Errors is empty.
type Result struct {
	Valid  bool
	Errors []FieldError
}

func (r *Result) add(field, format string, args ...any) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	r.Valid = false
}

// SegmentUpdate is a partial segment as sent by an editor. Only non-nil
// fields are checked.
type SegmentUpdate struct {
	Zoom               *float64
	Position           *Point
	Duration           *float64
	TransitionDuration *float64
}

// ValidateUpdate runs every range check on the present fields of u.
func ValidateUpdate(u SegmentUpdate) Result {
	res := Result{Valid: true}

	if u.Zoom != nil && !inRange(*u.Zoom, MinZoom, MaxZoom) {
		res.add("zoom", "must be between %.1f and %.1f, got %g", MinZoom, MaxZoom, *u.Zoom)
	}
	if u.Position != nil {
		if !inRange(u.Position.X, 0, 1) {
			res.add("position.x", "must be between 0 and 1, got %g", u.Position.X)
		}
		if !inRange(u.Position.Y, 0, 1) {
			res.add("position.y", "must be between 0 and 1, got %g", u.Position.Y)
		}
	}
	if u.Duration != nil && !nonNegative(*u.Duration) {
		res.add("duration", "must be >= 0, got %g", *u.Duration)
	}
	if u.TransitionDuration != nil && !nonNegative(*u.TransitionDuration) {
		res.add("transitionDuration", "must be >= 0, got %g", *u.TransitionDuration)
	}

	return res
}

// The checks are phrased as "inside the range" so NaN fails them.
func inRange(v, lo, hi float64) bool { return v >= lo && v <= hi }

func nonNegative(v float64) bool { return v >= 0 }

// ValidateSegment checks all fields of a complete segment.
func ValidateSegment(seg CameraSegment) Result {
	return ValidateUpdate(SegmentUpdate{
		Zoom:               &seg.Zoom,
		Position:           &seg.Position,
		Duration:           &seg.Duration,
		TransitionDuration: &seg.TransitionDuration,
	})
}

// ValidateTimeline validates every segment and the timeline-wide rules:
// at most one default segment and unique IDs.
func ValidateTimeline(segments []CameraSegment) Result {
	res := Result{Valid: true}
	seen := make(map[string]int, len(segments))
	defaults := 0

	for i, seg := range segments {
		prefix := fmt.Sprintf("segments[%d]", i)
		for _, fe := range ValidateSegment(seg).Errors {
			res.add(prefix+"."+fe.Field, "%s", fe.Message)
		}
		if seg.IsDefault {
			defaults++
		}
		if seg.ID == "" {
			continue
		}
		if j, dup := seen[seg.ID]; dup {
			res.add(prefix+".id", "duplicate id %q (also segments[%d])", seg.ID, j)
		} else {
			seen[seg.ID] = i
		}
	}

	if defaults > 1 {
		res.add("segments", "%d default segments, at most one allowed", defaults)
	}

	return res
}

// CheckDefaultImmutable rejects edits that change a default segment's
// identity fields.
func CheckDefaultImmutable(old, updated CameraSegment) error {
	if !old.IsDefault {
		return nil
	}
	if old.Name != updated.Name || old.Position != updated.Position || !updated.IsDefault {
		return fmt.Errorf("segment %q: %w", old.ID, ErrDefaultImmutable)
	}
	return nil
}

// Normalize clamps each axis of p to [0,1]. Nothing calls it implicitly.
func Normalize(p Point) Point {
	return Point{X: clamp01(p.X), Y: clamp01(p.Y)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
