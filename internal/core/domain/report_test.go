package domain

import (
	"math"
	"testing"
)

func TestReportStatus_Valid(t *testing.T) {
	for _, status := range AllStatuses {
		if !status.Valid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if ReportStatus("DONE").Valid() {
		t.Fatalf("expected unknown status to be invalid")
	}
}

func TestCoordinates_InRange(t *testing.T) {
	cases := []struct {
		coords Coordinates
		want   bool
	}{
		{Coordinates{Lat: 52.23, Lng: 21.01}, true},
		{Coordinates{Lat: 90, Lng: 180}, true},
		{Coordinates{Lat: -90, Lng: -180}, true},
		{Coordinates{Lat: 90.01, Lng: 0}, false},
		{Coordinates{Lat: 0, Lng: -180.01}, false},
	}
	for _, tc := range cases {
		if got := tc.coords.InRange(); got != tc.want {
			t.Fatalf("InRange(%+v) = %v, want %v", tc.coords, got, tc.want)
		}
	}
}

func TestCoordinates_DistanceKm(t *testing.T) {
	warsaw := Coordinates{Lat: 52.2297, Lng: 21.0122}
	krakow := Coordinates{Lat: 50.0647, Lng: 19.9450}

	// Known great-circle distance is roughly 252 km.
	d := warsaw.DistanceKm(krakow)
	if d < 245 || d > 260 {
		t.Fatalf("unexpected distance: %f km", d)
	}

	// Symmetric, and zero to itself.
	if diff := math.Abs(d - krakow.DistanceKm(warsaw)); diff > 1e-9 {
		t.Fatalf("distance not symmetric, diff %g", diff)
	}
	if warsaw.DistanceKm(warsaw) != 0 {
		t.Fatalf("expected zero distance to itself")
	}

	// One degree of latitude is about 111 km.
	north := Coordinates{Lat: warsaw.Lat + 1, Lng: warsaw.Lng}
	if d := warsaw.DistanceKm(north); d < 110 || d > 112.5 {
		t.Fatalf("unexpected 1-degree distance: %f km", d)
	}
}

func TestRole_Valid(t *testing.T) {
	for _, role := range []Role{RoleCitizen, RoleModerator, RoleAdmin, RoleTechnician} {
		if !role.Valid() {
			t.Fatalf("expected %s to be valid", role)
		}
	}
	if Role("SUPERUSER").Valid() {
		t.Fatalf("expected unknown role to be invalid")
	}
}

func TestRole_CanModerate(t *testing.T) {
	cases := map[Role]bool{
		RoleCitizen:    false,
		RoleModerator:  true,
		RoleAdmin:      true,
		RoleTechnician: true,
	}
	for role, want := range cases {
		if got := role.CanModerate(); got != want {
			t.Fatalf("CanModerate(%s) = %v, want %v", role, got, want)
		}
	}
}
