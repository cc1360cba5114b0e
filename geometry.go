package kmc

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Point is an integer lattice coordinate. Points are comparable and are used
// directly as map keys throughout the engine.
type Point struct {
	X, Y, Z int
}

// Vector is a real 3-vector. It is a thin alias over mgl64.Vec3 so that
// Add/Sub/Dot/Len come directly from the vector-math library rather than
// being reimplemented.
type Vector = mgl64.Vec3

// Sub returns the vector p - q.
func (p Point) Sub(q Point) Vector {
	return Vector{
		float64(p.X - q.X),
		float64(p.Y - q.Y),
		float64(p.Z - q.Z),
	}
}

// Add returns the vector p + q.
func (p Point) Add(q Point) Vector {
	return Vector{
		float64(p.X + q.X),
		float64(p.Y + q.Y),
		float64(p.Z + q.Z),
	}
}

// AddScalar returns the vector p + (s, s, s).
func (p Point) AddScalar(s float64) Vector {
	return Vector{float64(p.X) + s, float64(p.Y) + s, float64(p.Z) + s}
}

// SubScalar returns the vector p - (s, s, s).
func (p Point) SubScalar(s float64) Vector {
	return Vector{float64(p.X) - s, float64(p.Y) - s, float64(p.Z) - s}
}

// AsVector returns p reinterpreted as a real vector, with no scaling applied.
func (p Point) AsVector() Vector {
	return Vector{float64(p.X), float64(p.Y), float64(p.Z)}
}

// Neighbourhood enumerates every lattice point within a d-cube around p,
// excluding p itself. The x and y axes wrap periodically (Born-von Karman);
// z is clipped, so points with z outside [0, dims.Z-1] are omitted.
func Neighbourhood(p Point, radius int, dims Point) []Point {
	if radius <= 0 {
		return nil
	}
	neighbours := make([]Point, 0, (2*radius+1)*(2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				z := p.Z + dz
				if z < 0 || z >= dims.Z {
					continue
				}
				x := wrap(p.X+dx, dims.X)
				y := wrap(p.Y+dy, dims.Y)
				neighbours = append(neighbours, Point{X: x, Y: y, Z: z})
			}
		}
	}
	return neighbours
}

// wrap folds v into [0, n) under periodic (Born-von Karman) boundaries.
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// HopDistance returns the Euclidean distance, in nanometres, between two
// lattice sites separated by displacement delta expressed in lattice units
// and scaled by the lattice spacing a.
func HopDistance(delta Vector, a float64) float64 {
	return delta.Len() * a
}
