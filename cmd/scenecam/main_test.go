package main

import (
	"reflect"
	"testing"

	"github.com/ivlev/scenecam/internal/scene"
)

func TestUnknownEasings(t *testing.T) {
	segments := []scene.CameraSegment{
		{Easing: "ease_in_out"},
		{Easing: "bounce"},
		{Easing: ""},
		{Easing: "EASE_IN"},
	}

	got := unknownEasings(segments)
	if want := []int{1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
