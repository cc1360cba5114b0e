package kmc

// GetIQE returns the internal quantum efficiency as a percentage:
// 100 * 2 * emissions / injections. This is the primary, externally
// documented figure.
func (l *Lattice) GetIQE() float64 {
	if l.injections == 0 {
		return 0
	}
	return 100 * 2 * float64(l.emissions) / float64(l.injections)
}

// EmissionsOverRecombinations returns the alternative readout
// emissions/recombinations, as a percentage. Exposed alongside GetIQE as a
// variant, never as a substitute for it.
func (l *Lattice) EmissionsOverRecombinations() float64 {
	if l.recombinations == 0 {
		return 0
	}
	return 100 * float64(l.emissions) / float64(l.recombinations)
}

// EmissionsOverCharges returns the alternative readout
// emissions/injected-charges (not pairs), as a percentage.
func (l *Lattice) EmissionsOverCharges() float64 {
	if l.injections == 0 {
		return 0
	}
	return 100 * float64(l.emissions) / float64(l.injections)
}

// Counters is a snapshot of the running outcome-accounting state.
type Counters struct {
	Injections     int
	Recombinations int
	Captures       int
	Emissions      int
	EmissionsBy    map[Variant]int
	Clock          float64
	Step           uint64
}

// Counters returns a copy of the lattice's current accounting state.
func (l *Lattice) Counters() Counters {
	by := make(map[Variant]int, len(l.emissionsBy))
	for k, v := range l.emissionsBy {
		by[k] = v
	}
	return Counters{
		Injections:     l.injections,
		Recombinations: l.recombinations,
		Captures:       l.captures,
		Emissions:      l.emissions,
		EmissionsBy:    by,
		Clock:          l.clock,
		Step:           l.step,
	}
}
