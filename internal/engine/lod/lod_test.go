package lod

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		distance float32
		want     Tier
	}{
		{0, High},
		{3, High},
		{4.999, High},
		{5, Medium},
		{12, Medium},
		{14.999, Medium},
		{15, Low},
		{50, Low},
		{float32(math.Inf(1)), Low},
	}

	for _, tt := range tests {
		if got := Select(tt.distance); got != tt.want {
			t.Errorf("Select(%v) = %v, want %v", tt.distance, got, tt.want)
		}
	}
}

func TestSelectMonotonic(t *testing.T) {
	prev := Select(0)
	for d := float32(0); d < 100; d += 0.01 {
		got := Select(d)
		if got < prev {
			t.Fatalf("Select not monotonic at %v: %v after %v", d, got, prev)
		}
		prev = got
	}
}

func TestSelectPartitionsIntoThreeIntervals(t *testing.T) {
	changes := 0
	prev := Select(0)
	for d := float32(0); d < 100; d += 0.05 {
		if got := Select(d); got != prev {
			changes++
			prev = got
		}
	}
	if changes != Count-1 {
		t.Errorf("tier changed %d times, want %d", changes, Count-1)
	}
}

func TestSelectNaN(t *testing.T) {
	if got := Select(float32(math.NaN())); got != Low {
		t.Errorf("Select(NaN) = %v, want %v", got, Low)
	}
}

func TestDistanceScenario(t *testing.T) {
	object := mgl32.Vec3{0, 0, 0}
	steps := []struct {
		camera mgl32.Vec3
		want   Tier
	}{
		{mgl32.Vec3{0, 0, 3}, High},
		{mgl32.Vec3{0, 0, 12}, Medium},
		{mgl32.Vec3{0, 0, 50}, Low},
	}
	for _, s := range steps {
		if got := Select(Distance(object, s.camera)); got != s.want {
			t.Errorf("camera at %v: tier %v, want %v", s.camera, got, s.want)
		}
	}
}
