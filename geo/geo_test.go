package geo

import (
	"math"
	"testing"
)

func TestHaversineZero(t *testing.T) {
	c := Coord{Lat: 40.7589, Lon: -73.9851}
	if d := HaversineDistance(c, c); d != 0 {
		t.Errorf("HaversineDistance(c, c) = %v; want 0", d)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := Coord{Lat: 40.7700, Lon: -73.9900}
	b := Coord{Lat: 40.7500, Lon: -73.9850}
	if HaversineDistance(a, b) != HaversineDistance(b, a) {
		t.Errorf("HaversineDistance is not symmetric for %v and %v", a, b)
	}
}

func TestHaversineKnownValue(t *testing.T) {
	// one degree of longitude on the equator
	a := Coord{Lat: 0, Lon: 0}
	b := Coord{Lat: 0, Lon: 1}
	want := EarthRadiusKm * math.Pi / 180
	got := HaversineDistance(a, b)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("HaversineDistance = %v; want %v", got, want)
	}
}
