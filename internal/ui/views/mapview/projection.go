package mapview

import (
	"math"

	"mapty/internal/modules/workout/dto"
)

const (
	tileSize = 256
	// A terminal cell is roughly twice as tall as it is wide.
	cellWidthPx  = 8
	cellHeightPx = 16

	maxLatitude = 85.05112878
)

// Project converts a coordinate to Web Mercator pixel space at zoom.
func Project(at dto.LatLng, zoom int) (x, y float64) {
	world := worldSize(zoom)
	lat := math.Max(-maxLatitude, math.Min(maxLatitude, at.Lat))
	sin := math.Sin(lat * math.Pi / 180)
	x = (at.Lng + 180) / 360 * world
	y = (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)) * world
	return x, y
}

// Unproject is the inverse of Project.
func Unproject(x, y float64, zoom int) dto.LatLng {
	world := worldSize(zoom)
	lng := x/world*360 - 180
	n := math.Pi * (1 - 2*y/world)
	lat := math.Atan(math.Sinh(n)) * 180 / math.Pi
	return dto.LatLng{Lat: lat, Lng: lng}
}

func worldSize(zoom int) float64 {
	return tileSize * math.Exp2(float64(zoom))
}
