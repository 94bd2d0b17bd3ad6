package geo

import (
	"math"
	"testing"
)

func reversed(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

func TestTotalDistanceShortSequences(t *testing.T) {
	if got := TotalDistance(nil); got != 0 {
		t.Errorf("TotalDistance(nil) = %f, want 0", got)
	}
	if got := TotalDistance([]Point{{Latitude: 48.85, Longitude: 2.35}}); got != 0 {
		t.Errorf("TotalDistance(single point) = %f, want 0", got)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Paris to London is roughly 343.5 km great-circle
	paris := Point{Latitude: 48.8566, Longitude: 2.3522}
	london := Point{Latitude: 51.5074, Longitude: -0.1278}

	got := Distance(paris, london)
	if math.Abs(got-343500) > 2000 {
		t.Errorf("Distance(paris, london) = %f, want ~343500", got)
	}
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := Point{Latitude: -33.8688, Longitude: 151.2093}
	if got := Distance(p, p); got != 0 {
		t.Errorf("Distance(p, p) = %f, want 0", got)
	}
}

func TestTotalDistanceSymmetricUnderReversal(t *testing.T) {
	route := []Point{
		{Latitude: 40.7128, Longitude: -74.0060},
		{Latitude: 40.7306, Longitude: -73.9352},
		{Latitude: 40.7484, Longitude: -73.9857},
		{Latitude: 40.7589, Longitude: -73.9851},
	}

	forward := TotalDistance(route)
	backward := TotalDistance(reversed(route))
	if math.Abs(forward-backward) > 1e-6 {
		t.Errorf("forward %f != backward %f", forward, backward)
	}
}

func TestTotalDistanceAdditive(t *testing.T) {
	route := []Point{
		{Latitude: 51.5007, Longitude: -0.1246},
		{Latitude: 51.5033, Longitude: -0.1195},
		{Latitude: 51.5081, Longitude: -0.0759},
		{Latitude: 51.5101, Longitude: -0.0852},
		{Latitude: 51.5138, Longitude: -0.0984},
	}

	for split := 1; split < len(route); split++ {
		a, b := route[:split], route[split:]
		want := TotalDistance(route)
		got := TotalDistance(a) + Distance(a[len(a)-1], b[0]) + TotalDistance(b)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("split %d: got %f, want %f", split, got, want)
		}
	}
}
