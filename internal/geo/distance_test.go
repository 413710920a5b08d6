package geo

import (
	"math"
	"testing"
)

func TestHaversineIdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{24.7136, 46.6753},
		{-33.8688, 151.2093},
		{90, 0},
		{-90, 180},
	}
	for _, p := range points {
		if d := HaversineDistanceMeters(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("distance(%v, %v) to itself = %f, want 0", p[0], p[1], d)
		}
	}
}

func TestHaversineSymmetry(t *testing.T) {
	pairs := []struct {
		lat1, lon1, lat2, lon2 float64
	}{
		{24.7136, 46.6753, 24.7740, 46.7386},
		{0, 0, 0.001, 0.001},
		{51.5074, -0.1278, 48.8566, 2.3522},
		{-45, 170, 45, -170},
	}
	for _, p := range pairs {
		ab := HaversineDistanceMeters(p.lat1, p.lon1, p.lat2, p.lon2)
		ba := HaversineDistanceMeters(p.lat2, p.lon2, p.lat1, p.lon1)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("asymmetric distance: d(a,b)=%f d(b,a)=%f", ab, ba)
		}
	}
}

func TestHaversineGeofenceBoundary(t *testing.T) {
	// Branch at Riyadh HQ with a 20 m radius.
	branchLat, branchLng := 24.7136, 46.6753

	if d := HaversineDistanceMeters(branchLat, branchLng, branchLat, branchLng); d != 0 {
		t.Fatalf("ping at branch center: distance = %f, want 0", d)
	}

	// ~0.00022 degrees of latitude is roughly 24-25 meters: out of zone.
	d := HaversineDistanceMeters(branchLat+0.00022, branchLng, branchLat, branchLng)
	if d <= 20 {
		t.Errorf("ping 0.00022 deg north: distance = %f, want > 20", d)
	}
	if d > 30 {
		t.Errorf("ping 0.00022 deg north: distance = %f, want roughly 25", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Riyadh to Jeddah, roughly 850 km.
	d := HaversineDistanceMeters(24.7136, 46.6753, 21.4858, 39.1925)
	if d < 800_000 || d > 900_000 {
		t.Errorf("Riyadh-Jeddah distance = %f m, want ~850 km", d)
	}
}

func TestHaversineAntipodal(t *testing.T) {
	// Near-antipodal points must stay numerically stable (no NaN).
	d := HaversineDistanceMeters(0, 0, 0, 180)
	if math.IsNaN(d) {
		t.Fatal("antipodal distance is NaN")
	}
	half := math.Pi * 6371000
	if math.Abs(d-half) > 1000 {
		t.Errorf("antipodal distance = %f, want ~%f", d, half)
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{24.7136, 46.6753, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{-91, 0, false},
		{0, 181, false},
		{0, -181, false},
	}
	for _, c := range cases {
		if got := ValidCoordinates(c.lat, c.lng); got != c.want {
			t.Errorf("ValidCoordinates(%v, %v) = %v, want %v", c.lat, c.lng, got, c.want)
		}
	}
}
