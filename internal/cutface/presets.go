package cutface

import "math"

// Point is a single vertex of a 2D cut-section polygon, carrying the
// skeleton radius that was in effect at that point and (for walked, not
// preset, polygons) the originating node id.
type Point struct {
	Radius float64
	X, Y   float64
	NodeID string
}

// Polygon is an ordered loop of cut-section points.
type Polygon []Point

// presetRegistry mirrors the teacher's registry.Blocks global map: named,
// pre-built shape templates looked up by a string key instead of being
// derived from a node graph walk.
var presetRegistry = make(map[string]func() Polygon)

func registerPreset(name string, gen func() Polygon) {
	presetRegistry[name] = gen
}

func init() {
	registerPreset("Square", func() Polygon {
		return Polygon{
			{Radius: 1, X: -1, Y: -1},
			{Radius: 1, X: 1, Y: -1},
			{Radius: 1, X: 1, Y: 1},
			{Radius: 1, X: -1, Y: 1},
		}
	})
	registerPreset("Triangle", func() Polygon {
		return regularPolygon(3, math.Pi/2)
	})
	registerPreset("Hexagon", func() Polygon {
		return regularPolygon(6, 0)
	})
	registerPreset("Circle", func() Polygon {
		return regularPolygon(16, 0)
	})
}

func regularPolygon(sides int, phase float64) Polygon {
	p := make(Polygon, sides)
	for i := 0; i < sides; i++ {
		theta := phase + 2*math.Pi*float64(i)/float64(sides)
		p[i] = Point{Radius: 1, X: math.Cos(theta), Y: math.Sin(theta)}
	}
	return p
}

// Preset looks up a named cut-face preset polygon. ok is false for unknown
// names.
func Preset(name string) (Polygon, bool) {
	gen, ok := presetRegistry[name]
	if !ok {
		return nil, false
	}
	return gen(), true
}
