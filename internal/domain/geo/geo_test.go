package geo

import (
	"math"
	"testing"
)

func TestDistanceKm_ZeroForIdenticalPoints(t *testing.T) {
	points := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 14.5995, Lng: 120.9842},
		{Lat: -33.45, Lng: -70.66},
	}

	for _, p := range points {
		if d := DistanceKm(p, p); d != 0 {
			t.Fatalf("DistanceKm(%v, %v) = %f, expected 0", p, p, d)
		}
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := Point{Lat: 14.5995, Lng: 120.9842}
	b := Point{Lat: 14.65, Lng: 120.98}

	d1 := DistanceKm(a, b)
	d2 := DistanceKm(b, a)

	if d1 != d2 {
		t.Fatalf("expected symmetric distance, got %f vs %f", d1, d2)
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Manila centro -> punto ~5.6 km al norte.
	origin := Point{Lat: 14.5995, Lng: 120.9842}
	near := Point{Lat: 14.65, Lng: 120.98}

	d := DistanceKm(origin, near)
	if d < 5.0 || d > 6.5 {
		t.Fatalf("expected ~5.6 km, got %f", d)
	}

	far := Point{Lat: 14.70, Lng: 120.90}
	if DistanceKm(origin, far) <= 10 {
		t.Fatalf("expected far point beyond 10 km, got %f", DistanceKm(origin, far))
	}
}

func TestDistanceKm_MonotoneWithSeparation(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}

	prev := 0.0
	for _, lng := range []float64{0.1, 0.5, 1, 5, 10} {
		d := DistanceKm(origin, Point{Lat: 0, Lng: lng})
		if d <= prev {
			t.Fatalf("expected increasing distance at lng=%f, got %f after %f", lng, d, prev)
		}
		prev = d
	}

	// Un grado de longitud en el ecuador ~111.2 km.
	oneDeg := DistanceKm(origin, Point{Lat: 0, Lng: 1})
	if math.Abs(oneDeg-111.2) > 1.0 {
		t.Fatalf("expected ~111.2 km per degree at equator, got %f", oneDeg)
	}
}
