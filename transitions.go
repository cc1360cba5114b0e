package kmc

// executeEvent applies the state transition for ev and regenerates every
// candidate event whose rate may have changed as a result, per the
// site-local state machine in the component design.
func (l *Lattice) executeEvent(ev Event) {
	switch ev.Kind {
	case Move:
		l.executeMove(ev)
	case Bound:
		l.executeBound(ev)
	case ISC:
		l.executeISC(ev)
	case ForsterTransfer:
		l.executeForster(ev)
	case Decay:
		l.executeDecay(ev)
	case Capture:
		l.executeCapture(ev)
	}
}

func (l *Lattice) executeMove(ev Event) {
	from, to := ev.Initial, ev.Final
	fromMol, toMol := l.siteAt(from), l.siteAt(to)

	registry := l.electrons
	if ev.Particle == Hole {
		registry = l.holes
	}

	delete(registry, from)
	registry[to] = struct{}{}

	switch ev.Particle {
	case Electron:
		fromMol.HasElectron = false
		toMol.HasElectron = true
	case Hole:
		fromMol.HasHole = false
		toMol.HasHole = true
	}

	l.sched.invalidate(from)
	l.regenerateCarrier(to, ev.Particle)
	l.regenerateNeighboursAffectedBy(from)
	l.regenerateNeighboursAffectedBy(to)
}

// regenerateCarrier dispatches to the electron/hole-specific regeneration
// based on particle kind.
func (l *Lattice) regenerateCarrier(p Point, particle Particle) {
	if particle == Electron {
		l.regenerateElectron(p)
	} else {
		l.regenerateHole(p)
	}
}

func (l *Lattice) executeBound(ev Event) {
	mover := ev.Initial
	site := ev.Final
	moverMol := l.siteAt(mover)
	siteMol := l.siteAt(site)

	if ev.Particle == Electron {
		moverMol.HasElectron = false
		delete(l.electrons, mover)
		siteMol.HasHole = false
		delete(l.holes, site)
	} else {
		moverMol.HasHole = false
		delete(l.holes, mover)
		siteMol.HasElectron = false
		delete(l.electrons, site)
	}

	siteMol.FormExciton(l.stream)
	l.excitons[site] = struct{}{}
	l.recombinations++

	l.sched.invalidate(mover)
	l.regenerateExciton(site)
	l.regenerateNeighboursAffectedBy(mover)
	l.regenerateNeighboursAffectedBy(site)

	// A continuously biased device replenishes the pair a recombination
	// consumes, the same way Capture replenishes a single carrier; without
	// this, every lattice could sustain at most its initial charge count
	// worth of recombinations.
	l.reinjectCarrier(Electron)
	l.reinjectCarrier(Hole)
}

func (l *Lattice) executeISC(ev Event) {
	p := ev.Initial
	l.siteAt(p).FlipSpin()
	l.regenerateExciton(p)
}

func (l *Lattice) executeForster(ev Event) {
	donor, acceptor := ev.Initial, ev.Final
	donorMol := l.siteAt(donor)
	acceptorMol := l.siteAt(acceptor)

	donorMol.EmptySite()
	delete(l.excitons, donor)

	acceptorMol.Exciton = Singlet
	if acceptorMol.DecayExciton() {
		l.emissions++
		l.emissionsBy[acceptorMol.Variant]++
	}

	l.sched.invalidate(donor)
	l.regenerateNeighboursAffectedBy(donor)
	l.regenerateNeighboursAffectedBy(acceptor)
}

func (l *Lattice) executeDecay(ev Event) {
	p := ev.Initial
	mol := l.siteAt(p)
	if mol.DecayExciton() {
		l.emissions++
		l.emissionsBy[mol.Variant]++
	}
	delete(l.excitons, p)
	l.sched.invalidate(p)
	l.regenerateNeighboursAffectedBy(p)
}

func (l *Lattice) executeCapture(ev Event) {
	p := ev.Initial
	mol := l.siteAt(p)

	var registry map[Point]struct{}
	if ev.Particle == Electron {
		mol.HasElectron = false
		registry = l.electrons
	} else {
		mol.HasHole = false
		registry = l.holes
	}
	delete(registry, p)
	l.captures++

	l.sched.invalidate(p)
	l.regenerateNeighboursAffectedBy(p)
	l.reinjectCarrier(ev.Particle)
}

// reinjectCarrier places a fresh carrier of the given kind at a free
// column on its origin electrode (z=Z-1 for electrons, z=0 for holes),
// registers it, and schedules its first candidate event. Shared by
// Capture (which reinjects the one carrier it destroyed) and Bound
// (which reinjects the pair a recombination consumes).
func (l *Lattice) reinjectCarrier(particle Particle) {
	registry := l.electrons
	targetZ := l.dims.Z - 1
	if particle == Hole {
		registry = l.holes
		targetZ = 0
	}

	p := l.findFreeElectrodeColumn(targetZ, registry)
	mol := l.siteAt(p)
	if particle == Electron {
		mol.HasElectron = true
	} else {
		mol.HasHole = true
	}
	registry[p] = struct{}{}
	l.injections++

	l.regenerateCarrier(p, particle)
	l.regenerateNeighboursAffectedBy(p)
}

// findFreeElectrodeColumn returns a (x,y) column at z=targetZ not already
// present in registry, drawing up to 64 independent random columns until an
// open one is found. Falls back to a linear scan if random sampling collides
// repeatedly, which only happens once the plane is nearly saturated.
func (l *Lattice) findFreeElectrodeColumn(targetZ int, registry map[Point]struct{}) Point {
	for attempt := 0; attempt < 64; attempt++ {
		cols := l.stream.ChooseDistinctColumns(l.dims.X, l.dims.Y, 1)
		p := Point{X: cols[0].X, Y: cols[0].Y, Z: targetZ}
		if _, occupied := registry[p]; !occupied {
			return p
		}
	}
	for y := 0; y < l.dims.Y; y++ {
		for x := 0; x < l.dims.X; x++ {
			p := Point{X: x, Y: y, Z: targetZ}
			if _, occupied := registry[p]; !occupied {
				return p
			}
		}
	}
	return Point{X: 0, Y: 0, Z: targetZ}
}
