package easing

import (
	"math"
	"testing"

	"github.com/ivlev/scenecam/internal/scene"
)

func TestEasingValues(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{Linear, 0.3, 0.3},
		{EaseIn, 0.5, 0.25},
		{EaseOut, 0.5, 0.75},
		{EaseInOut, 0.25, 0.125},
		{EaseInOut, 0.75, 0.875},
		{EaseInCubic, 0.5, 0.125},
		{EaseOutCubic, 0.5, 0.875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lookup(tt.name)(tt.in)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("%s(%.2f): expected %f, got %f", tt.name, tt.in, tt.want, got)
			}
		})
	}
}

func TestEasingEndpoints(t *testing.T) {
	for _, name := range Names() {
		fn := Lookup(name)
		if fn(0) != 0 || fn(1) != 1 {
			t.Errorf("%s: expected f(0)=0 and f(1)=1, got %f and %f", name, fn(0), fn(1))
		}
	}
}

func TestLookupUnknownFallsBackToEaseOut(t *testing.T) {
	for _, name := range []string{"", "bounce", "EASE_OUT"} {
		if got := Lookup(name)(0.5); got != 0.75 {
			t.Errorf("Lookup(%q)(0.5): expected ease_out 0.75, got %f", name, got)
		}
		if Known(name) {
			t.Errorf("%q should not be a known easing", name)
		}
	}
}

func TestScalarBoundaryLaw(t *testing.T) {
	pairs := [][2]float64{{0, 1}, {1, 2}, {0.1, 10}, {-3.7, 1e9}, {0.3, 0.7}}
	names := append(Names(), "unknown")

	for _, name := range names {
		for _, p := range pairs {
			if got := Scalar(p[0], p[1], 0, name); got != p[0] {
				t.Errorf("%s: Scalar(%v,%v,0) = %v, want %v", name, p[0], p[1], got, p[0])
			}
			if got := Scalar(p[0], p[1], 1, name); got != p[1] {
				t.Errorf("%s: Scalar(%v,%v,1) = %v, want %v", name, p[0], p[1], got, p[1])
			}
		}
	}
}

func TestScalarClampsProgress(t *testing.T) {
	if got := Scalar(1, 2, -0.5, Linear); got != 1 {
		t.Errorf("Negative progress: expected 1, got %f", got)
	}
	if got := Scalar(1, 2, 1.5, Linear); got != 2 {
		t.Errorf("Progress above 1: expected 2, got %f", got)
	}
	if got := Scalar(1, 2, 0.5, EaseOut); got != 1.75 {
		t.Errorf("Midpoint ease_out: expected 1.75, got %f", got)
	}
}

func TestPointInterpolatesPerAxis(t *testing.T) {
	a := scene.Point{X: 0.5, Y: 0.5}
	b := scene.Point{X: 0.7, Y: 0.3}

	got := Point(a, b, 0.5, Linear)
	if math.Abs(got.X-0.6) > 1e-12 || math.Abs(got.Y-0.4) > 1e-12 {
		t.Errorf("Expected (0.6, 0.4), got %v", got)
	}
	if Point(a, b, 0, EaseInOut) != a || Point(a, b, 1, EaseInOut) != b {
		t.Error("Point endpoints must be exact")
	}
}
