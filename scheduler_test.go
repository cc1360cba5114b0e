package kmc

import "testing"

func TestSchedulerLazyInvalidationDiscardsStaleEntries(t *testing.T) {
	s := newScheduler()
	p := Point{X: 1, Y: 1, Z: 1}
	s.push(p, Event{Initial: p, Final: p, Tau: 5, Kind: Decay, Particle: Exciton}, 0)
	s.push(p, Event{Initial: p, Final: p, Tau: 1, Kind: Decay, Particle: Exciton}, 0)

	item, ok := s.popValid()
	if !ok {
		t.Fatalf("expected a valid item")
	}
	if item.event.Tau != 1 {
		t.Fatalf("expected the most recently pushed candidate (tau=1), got %v", item.event.Tau)
	}
	if _, ok := s.popValid(); ok {
		t.Fatalf("the stale first push must never resurface")
	}
}

func TestSchedulerInvalidateTombstonesWithoutReplacement(t *testing.T) {
	s := newScheduler()
	p := Point{X: 0, Y: 0, Z: 0}
	s.push(p, Event{Initial: p, Final: p, Tau: 2, Kind: Decay, Particle: Exciton}, 0)
	s.invalidate(p)
	if _, ok := s.popValid(); ok {
		t.Fatalf("an invalidated entry with no replacement must not surface")
	}
}

func TestSchedulerOrdersByFireTime(t *testing.T) {
	s := newScheduler()
	a := Point{X: 1}
	b := Point{X: 2}
	s.push(a, Event{Tau: 10, Kind: Decay, Particle: Exciton}, 0)
	s.push(b, Event{Tau: 3, Kind: Decay, Particle: Exciton}, 0)

	item, ok := s.popValid()
	if !ok || item.owner != b {
		t.Fatalf("expected the earlier-firing event at b to pop first")
	}
}
