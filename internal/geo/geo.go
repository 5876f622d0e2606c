// Package geo holds the great-circle helpers used to locate equipment.
package geo

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EarthRadius is the mean Earth radius in meters.
const EarthRadius = 6371000.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the haversine distance between a and b in meters.
func Distance(a, b Point) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadius * c
}

// Nearest is a candidate together with its distance from the origin.
type Nearest[T any] struct {
	Item     T       `json:"item"`
	Distance float64 `json:"distance"`
}

// FindNearest returns the candidate closest to origin. coords reports the
// position of a candidate, or false when it has none; such candidates are
// skipped. Ties go to the earliest candidate. A nil origin or no locatable
// candidate yields false.
func FindNearest[T any](origin *Point, candidates []T, coords func(T) (Point, bool)) (Nearest[T], bool) {
	var best Nearest[T]
	found := false
	if origin == nil {
		return best, false
	}
	for _, c := range candidates {
		p, ok := coords(c)
		if !ok {
			continue
		}
		d := Distance(*origin, p)
		if !found || d < best.Distance {
			best = Nearest[T]{Item: c, Distance: d}
			found = true
		}
	}
	return best, found
}

const mapsBase = "https://maps.google.com/maps"

// MapsURL is an embeddable map centered on p. zoom <= 0 uses 15.
func MapsURL(p Point, zoom int) string {
	if zoom <= 0 {
		zoom = 15
	}
	return fmt.Sprintf("%s?q=%g,%g&z=%d&output=embed", mapsBase, p.Lat, p.Lng, zoom)
}

// Marker is a labelled map pin.
type Marker struct {
	Name  string
	Point Point
}

// MapsURLWithMarkers is an embeddable map centered on center with one blue
// pin per marker, labelled by the upper-cased first letter of its name or,
// for unnamed markers, its 1-based position. zoom <= 0 uses 13.
func MapsURLWithMarkers(markers []Marker, center Point, zoom int) string {
	if zoom <= 0 {
		zoom = 13
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s?q=%g,%g&z=%d", mapsBase, center.Lat, center.Lng, zoom)
	for i, m := range markers {
		label := fmt.Sprint(i + 1)
		if m.Name != "" {
			r, _ := utf8.DecodeRuneInString(m.Name)
			label = string(unicode.ToUpper(r))
		}
		fmt.Fprintf(&b, "&markers=color:blue%%7Clabel:%s%%7C%g,%g", label, m.Point.Lat, m.Point.Lng)
	}
	b.WriteString("&output=embed")
	return b.String()
}
