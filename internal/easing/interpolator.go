package easing

import "github.com/ivlev/scenecam/internal/scene"

// Scalar interpolates from a to b. Progress is clamped to [0,1] before the
// easing named by easingName is applied; the endpoints return a and b
// exactly for every easing.
func Scalar(a, b, progress float64, easingName string) float64 {
	if progress <= 0 {
		return a
	}
	if progress >= 1 {
		return b
	}
	return lerp(a, b, Lookup(easingName)(progress))
}

// Point interpolates each axis independently with Scalar.
func Point(a, b scene.Point, progress float64, easingName string) scene.Point {
	return scene.Point{
		X: Scalar(a.X, b.X, progress, easingName),
		Y: Scalar(a.Y, b.Y, progress, easingName),
	}
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
