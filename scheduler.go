package kmc

import (
	"container/heap"
	"math"
)

// heapItem is one outstanding candidate event, tagged with the generation
// of its owning carrier location at push time. A popped item whose
// generation no longer matches the location's current generation is stale
// and silently discarded (lazy invalidation / tombstoning).
type heapItem struct {
	event      Event
	owner      Point
	generation int64
	fireAt     float64
}

// eventQueue is a container/heap.Interface ordered by absolute firing time.
// Storing absolute fire times, rather than a remaining-tau per entry that
// would need decrementing on every step, makes a global rescale of every
// outstanding wait time on each step unnecessary: advancing the clock to
// the next popped fireAt is equivalent, and every other entry's relative
// position in the ordering is unaffected.
type eventQueue []*heapItem

func (q eventQueue) Len() int            { return len(q) }
func (q eventQueue) Less(i, j int) bool  { return q[i].fireAt < q[j].fireAt }
func (q eventQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x any)         { *q = append(*q, x.(*heapItem)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// scheduler owns the priority queue and the per-location generation
// counters used for lazy invalidation.
type scheduler struct {
	queue      eventQueue
	generation map[Point]int64
}

func newScheduler() *scheduler {
	return &scheduler{generation: make(map[Point]int64)}
}

// invalidate bumps owner's generation, tombstoning any outstanding entry
// for that location without touching the heap itself.
func (s *scheduler) invalidate(owner Point) {
	s.generation[owner]++
}

// push registers ev as the current best candidate for owner, replacing
// whatever was previously scheduled there.
func (s *scheduler) push(owner Point, ev Event, clock float64) {
	s.generation[owner]++
	heap.Push(&s.queue, &heapItem{
		event:      ev,
		owner:      owner,
		generation: s.generation[owner],
		fireAt:     clock + ev.Tau,
	})
}

// popValid pops and returns the earliest non-stale item, discarding
// tombstoned entries along the way.
func (s *scheduler) popValid() (*heapItem, bool) {
	for s.queue.Len() > 0 {
		item := heap.Pop(&s.queue).(*heapItem)
		if s.generation[item.owner] == item.generation {
			return item, true
		}
	}
	return nil, false
}

// regenerateNeighboursAffectedBy recomputes candidates for every carrier
// within transfer radius of p, since a change at p can open/close one of
// their move targets and alters their Coulomb terms. Carriers farther away
// keep their scheduled candidates, even though their Coulomb terms also
// change whenever p lies within the cutoff radius.
func (l *Lattice) regenerateNeighboursAffectedBy(p Point) {
	for _, n := range Neighbourhood(p, l.transferRadius, l.dims) {
		mol := l.siteAt(n)
		switch {
		case mol.HasElectron:
			l.regenerateElectron(n)
		case mol.HasHole:
			l.regenerateHole(n)
		case mol.Exciton != NoExciton:
			l.regenerateExciton(n)
		}
	}
}

// regenerateElectron computes and (re)schedules the best candidate event
// for the electron at p: a Capture if p touches the opposite electrode,
// otherwise the minimum-tau Move/Bound among its open neighbours.
func (l *Lattice) regenerateElectron(p Point) {
	if p.Z == 0 {
		l.sched.push(p, Event{Initial: p, Final: p, Tau: 0, Kind: Capture, Particle: Electron}, l.clock)
		return
	}
	if ev, ok := l.candidateMoveEvent(p, Electron); ok {
		l.sched.push(p, ev, l.clock)
		return
	}
	l.sched.invalidate(p)
}

// regenerateHole is the hole analogue of regenerateElectron; holes are
// captured at z = Z-1.
func (l *Lattice) regenerateHole(p Point) {
	if p.Z == l.dims.Z-1 {
		l.sched.push(p, Event{Initial: p, Final: p, Tau: 0, Kind: Capture, Particle: Hole}, l.clock)
		return
	}
	if ev, ok := l.candidateMoveEvent(p, Hole); ok {
		l.sched.push(p, ev, l.clock)
		return
	}
	l.sched.invalidate(p)
}

// candidateMoveEvent draws a candidate Move (or Bound, when the target
// already carries the opposite carrier) for every open neighbour of p and
// keeps the minimum-tau draw, per the "one best event per carrier" rule.
func (l *Lattice) candidateMoveEvent(p Point, particle Particle) (Event, bool) {
	mol := l.siteAt(p)
	var best Event
	found := false

	for _, n := range mol.Neighbours {
		target := l.siteAt(n)
		if target.Exciton != NoExciton {
			continue
		}
		sameOccupied := (particle == Electron && target.HasElectron) || (particle == Hole && target.HasHole)
		if sameOccupied {
			continue
		}
		oppositeOccupied := (particle == Electron && target.HasHole) || (particle == Hole && target.HasElectron)

		var ev Event
		if oppositeOccupied {
			ev = Event{Initial: p, Final: n, Tau: 0, Kind: Bound, Particle: particle}
		} else {
			rate, ok := l.hopRate(p, n, particle)
			if !ok || rate <= 0 || math.IsNaN(rate) {
				continue
			}
			tau := l.stream.ExponentialWaitTime(rate)
			ev = Event{Initial: p, Final: n, Tau: tau, Kind: Move, Particle: particle}
		}

		if !found || ev.Tau < best.Tau {
			best = ev
			found = true
		}
	}
	return best, found
}

// regenerateExciton computes the fastest of the variant-appropriate next
// transitions for the exciton at p: ISC/RISC and Förster transfer for
// TADF, intrinsic decay for everything else (TADF's own intrinsic decay is
// included too, since it competes with ISC/Förster).
func (l *Lattice) regenerateExciton(p Point) {
	mol := l.siteAt(p)
	var best Event
	found := false

	consider := func(ev Event) {
		if !found || ev.Tau < best.Tau {
			best = ev
			found = true
		}
	}

	if rate := decayRate(mol, l.constants); rate > 0 && !math.IsNaN(rate) {
		tau := l.stream.ExponentialWaitTime(rate)
		consider(Event{Initial: p, Final: p, Tau: tau, Kind: Decay, Particle: Exciton})
	}

	if mol.SupportsISC() {
		var rate float64
		if mol.Exciton == Singlet {
			rate = iscRate(mol, l.constants)
		} else {
			rate = riscRate(mol, l.constants)
		}
		if rate > 0 && !math.IsNaN(rate) {
			tau := l.stream.ExponentialWaitTime(rate)
			consider(Event{Initial: p, Final: p, Tau: tau, Kind: ISC, Particle: Exciton})
		}
	}

	if mol.SupportsForster() {
		if acceptor, d, ok := l.nearestForsterAcceptor(p); ok {
			rate := forsterRate(mol.Exciton, d, l.constants)
			if rate > 0 && !math.IsNaN(rate) {
				tau := l.stream.ExponentialWaitTime(rate)
				consider(Event{Initial: p, Final: acceptor, Tau: tau, Kind: ForsterTransfer, Particle: Exciton})
			}
		}
	}

	if found {
		l.sched.push(p, best, l.clock)
	} else {
		l.sched.invalidate(p)
	}
}

// nearestForsterAcceptor scans within forsterRadius lattice units for the
// closest unoccupied Fluorophore site, a reasonable bound given the
// inverse-sixth-power falloff of the transfer rate.
func (l *Lattice) nearestForsterAcceptor(p Point) (Point, float64, bool) {
	best := Point{}
	bestDist := math.Inf(1)
	found := false
	for _, n := range Neighbourhood(p, l.forsterRadius, l.dims) {
		target := l.siteAt(n)
		if !target.IsForsterAcceptor() || target.IsOccupied() {
			continue
		}
		d := HopDistance(n.Sub(p), l.constants.LatticeSpacing)
		if d < bestDist {
			bestDist = d
			best = n
			found = true
		}
	}
	return best, bestDist, found
}

// seedInitialEvents generates the first candidate event for every carrier
// present immediately after construction (step 7 of lattice construction).
func (l *Lattice) seedInitialEvents() {
	for p := range l.electrons {
		l.regenerateElectron(p)
	}
	for p := range l.holes {
		l.regenerateHole(p)
	}
	for p := range l.excitons {
		l.regenerateExciton(p)
	}
}

// Operations drives the First-Reaction-Method loop until recombinations
// reaches targetRecombinations, the candidate pool is exhausted, or
// stepCap steps have executed. stepCap of 0 selects a default of 1e8.
// A nil return with recombinations short of the target means the
// event pool exhausted gracefully. A non-nil error is either
// CodeStepCapExceeded, when stepCap is reached first, or a fatal
// internal-consistency failure (CodeClockRegression, CodeRateNonFinite).
func (l *Lattice) Operations(targetRecombinations int, stepCap uint64) error {
	if stepCap == 0 {
		stepCap = 100000000
	}
	for l.recombinations < targetRecombinations {
		if l.step >= stepCap {
			l.logger.Warnf("step cap %d reached before target recombinations %d", stepCap, targetRecombinations)
			return wrapError(nil, CodeStepCapExceeded, "step cap exceeded").WithRecent(l.recent)
		}
		item, ok := l.sched.popValid()
		if !ok {
			l.logger.Warnf("event pool exhausted at step %d with %d/%d recombinations", l.step, l.recombinations, targetRecombinations)
			return nil
		}
		tauExec := item.fireAt - l.clock
		if tauExec < 0 {
			return wrapError(nil, CodeClockRegression, "negative clock increment").WithRecent(l.recent)
		}
		if math.IsNaN(tauExec) {
			return wrapError(nil, CodeRateNonFinite, "non-finite wait time").WithRecent(l.recent)
		}
		if math.IsInf(tauExec, 1) {
			// Infinite wait: nothing left that can ever fire; treat as
			// pool exhaustion rather than spin forever.
			l.logger.Warnf("infinite wait time encountered at step %d; stopping", l.step)
			return nil
		}
		l.clock = item.fireAt
		l.step++
		l.pushRecent(EventSnapshot{Step: l.step, Clock: l.clock, Kind: item.event.Kind, Tau: tauExec})
		l.executeEvent(item.event)
	}
	return nil
}
