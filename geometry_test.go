package kmc

import (
	"math"
	"testing"
)

func TestPointSub(t *testing.T) {
	a := Point{X: 3, Y: 1, Z: 4}
	b := Point{X: 1, Y: 1, Z: 1}
	v := a.Sub(b)
	if v.X() != 2 || v.Y() != 0 || v.Z() != 3 {
		t.Fatalf("unexpected difference vector: %v", v)
	}
}

func TestVectorNorm(t *testing.T) {
	v := Vector{3, 4, 0}
	if got := v.Len(); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected norm 5, got %v", got)
	}
}

func TestNeighbourhoodPeriodicXY(t *testing.T) {
	dims := Point{X: 4, Y: 4, Z: 5}
	n := Neighbourhood(Point{X: 0, Y: 0, Z: 2}, 1, dims)
	found := false
	for _, p := range n {
		if p.X == 3 && p.Y == 0 && p.Z == 2 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected wraparound neighbour at x=3, got %v", n)
	}
}

func TestNeighbourhoodClippedZ(t *testing.T) {
	dims := Point{X: 4, Y: 4, Z: 5}
	n := Neighbourhood(Point{X: 1, Y: 1, Z: 0}, 1, dims)
	for _, p := range n {
		if p.Z < 0 || p.Z >= dims.Z {
			t.Fatalf("neighbour %v escaped z bounds", p)
		}
		if p.Z == -1 {
			t.Fatalf("found a below-floor neighbour: %v", p)
		}
	}
}

func TestNeighbourhoodExcludesSelf(t *testing.T) {
	dims := Point{X: 5, Y: 5, Z: 5}
	p := Point{X: 2, Y: 2, Z: 2}
	for _, n := range Neighbourhood(p, 1, dims) {
		if n == p {
			t.Fatalf("neighbourhood must not include the origin point")
		}
	}
}

func TestNeighbourhoodRadiusZeroIsEmpty(t *testing.T) {
	if n := Neighbourhood(Point{}, 0, Point{X: 3, Y: 3, Z: 3}); len(n) != 0 {
		t.Fatalf("expected no neighbours at radius 0, got %d", len(n))
	}
}
