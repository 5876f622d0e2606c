package geo

import (
	"math"
	"testing"
)

func TestDistanceOneDegree(t *testing.T) {
	d := Distance(Point{0, 0}, Point{0, 1})
	if math.Abs(d-111195) > 1 {
		t.Fatalf("distance=%f", d)
	}
	if Distance(Point{-12.05, -77.04}, Point{-12.05, -77.04}) != 0 {
		t.Fatal("same point")
	}
}

type site struct {
	name string
	p    *Point
}

func siteCoords(s site) (Point, bool) {
	if s.p == nil {
		return Point{}, false
	}
	return *s.p, true
}

func TestFindNearest(t *testing.T) {
	origin := &Point{0, 0}
	sites := []site{
		{"nowhere", nil},
		{"far", &Point{0, 3}},
		{"a", &Point{0, 1}},
		{"b", &Point{1, 0}},
		{"c", &Point{0, -1}},
	}
	got, ok := FindNearest(origin, sites, siteCoords)
	if !ok || got.Item.name != "a" {
		t.Fatalf("nearest=%+v ok=%v", got, ok)
	}
	if math.Abs(got.Distance-111195) > 1 {
		t.Fatalf("distance=%f", got.Distance)
	}

	if _, ok := FindNearest(nil, sites, siteCoords); ok {
		t.Fatal("nil origin")
	}
	if _, ok := FindNearest(origin, []site{}, siteCoords); ok {
		t.Fatal("empty set")
	}
	if _, ok := FindNearest(origin, []site{{"nowhere", nil}}, siteCoords); ok {
		t.Fatal("no locatable candidates")
	}
}

func TestMapsURL(t *testing.T) {
	if got := MapsURL(Point{-12.5, -77}, 0); got != "https://maps.google.com/maps?q=-12.5,-77&z=15&output=embed" {
		t.Fatalf("got %s", got)
	}
	got := MapsURLWithMarkers([]Marker{{Name: "depot", Point: Point{1, 2}}, {Point: Point{3, 4}}}, Point{0, 0}, 0)
	want := "https://maps.google.com/maps?q=0,0&z=13" +
		"&markers=color:blue%7Clabel:D%7C1,2" +
		"&markers=color:blue%7Clabel:2%7C3,4&output=embed"
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}
