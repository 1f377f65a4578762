// Package easing provides the scalar easing curves used by camera
// transitions and the interpolation helpers built on them.
package easing

// Func maps progress in [0,1] to eased progress in [0,1].
type Func func(t float64) float64

const (
	Linear       = "linear"
	EaseIn       = "ease_in"
	EaseOut      = "ease_out"
	EaseInOut    = "ease_in_out"
	EaseInCubic  = "ease_in_cubic"
	EaseOutCubic = "ease_out_cubic"
)

var funcs = map[string]Func{
	Linear:       linear,
	EaseIn:       easeIn,
	EaseOut:      easeOut,
	EaseInOut:    easeInOut,
	EaseInCubic:  easeInCubic,
	EaseOutCubic: easeOutCubic,
}

// Lookup returns the easing function for name. Unknown names get ease_out.
func Lookup(name string) Func {
	if fn, ok := funcs[name]; ok {
		return fn
	}
	return easeOut
}

// Known reports whether name is one of the built-in easings.
func Known(name string) bool {
	_, ok := funcs[name]
	return ok
}

// Names lists the built-in easings in a stable order.
func Names() []string {
	return []string{Linear, EaseIn, EaseOut, EaseInOut, EaseInCubic, EaseOutCubic}
}

func linear(t float64) float64 { return t }

func easeIn(t float64) float64 { return t * t }

func easeOut(t float64) float64 { return t * (2 - t) }

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func easeInCubic(t float64) float64 { return t * t * t }

func easeOutCubic(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}
