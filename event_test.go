package kmc

import "testing"

func TestEventEqualMoveSharesEitherEndpoint(t *testing.T) {
	a := Event{Initial: Point{X: 0}, Final: Point{X: 1}, Kind: Move, Particle: Electron}
	b := Event{Initial: Point{X: 1}, Final: Point{X: 2}, Kind: Move, Particle: Electron}
	if !a.Equal(b) {
		t.Fatalf("move events sharing one endpoint should be equal")
	}
}

func TestEventEqualMoveRequiresSameParticle(t *testing.T) {
	a := Event{Initial: Point{X: 0}, Final: Point{X: 1}, Kind: Move, Particle: Electron}
	b := Event{Initial: Point{X: 0}, Final: Point{X: 2}, Kind: Move, Particle: Hole}
	if a.Equal(b) {
		t.Fatalf("events with different particles must never be equal")
	}
}

func TestEventEqualNonMoveRequiresBothEndpoints(t *testing.T) {
	a := Event{Initial: Point{X: 0}, Final: Point{X: 0}, Kind: Decay, Particle: Exciton}
	b := Event{Initial: Point{X: 0}, Final: Point{X: 1}, Kind: Decay, Particle: Exciton}
	if a.Equal(b) {
		t.Fatalf("decay events with differing final points must not be equal")
	}
	c := Event{Initial: Point{X: 0}, Final: Point{X: 0}, Kind: Decay, Particle: Exciton}
	if !a.Equal(c) {
		t.Fatalf("identical decay events must be equal")
	}
}

func TestEventLessOrdersByTau(t *testing.T) {
	a := Event{Tau: 1.0}
	b := Event{Tau: 2.0}
	if !a.Less(b) || b.Less(a) {
		t.Fatalf("Less must order strictly by Tau")
	}
}
