package kmc

import "math"

// shiftedInverseDistance returns 1/d - 1/rc for d < rc, and 0 beyond the
// cutoff, the continuity shift required so the Coulomb potential vanishes
// exactly at the cutoff radius.
func shiftedInverseDistance(d, cutoff float64) float64 {
	if d <= 0 {
		return 0
	}
	if d >= cutoff {
		return 0
	}
	return 1/d - 1/cutoff
}

// coulombDeltaU computes the change in Coulomb energy when a carrier of the
// given particle kind moves from initial to final, summing the screened,
// cutoff-shifted interaction with every other mobile charge. Same-polarity
// occupation of final is reported as an absolute forbidden state (-Inf);
// callers additionally exclude such targets at candidate-generation time.
func (l *Lattice) coulombDeltaU(initial, final Point, particle Particle) float64 {
	a := l.constants.LatticeSpacing
	rc := l.cutoffRadius
	K := l.constants.Electrostatic()

	same, opposite := l.electrons, l.holes
	sign := 1.0
	if particle == Hole {
		same, opposite = l.holes, l.electrons
		sign = -1.0
	}

	if _, blocked := same[final]; blocked && final != initial {
		return math.Inf(-1)
	}

	var total float64
	for p := range same {
		if p == initial {
			continue
		}
		dFinal := HopDistance(p.Sub(final), a)
		dInitial := HopDistance(p.Sub(initial), a)
		total += K * (shiftedInverseDistance(dFinal, rc) - shiftedInverseDistance(dInitial, rc))
	}
	for p := range opposite {
		dFinal := HopDistance(p.Sub(final), a)
		dInitial := HopDistance(p.Sub(initial), a)
		total -= K * (shiftedInverseDistance(dFinal, rc) - shiftedInverseDistance(dInitial, rc))
	}
	return sign * total
}

// hopRate computes the Miller-Abrahams-style rate for a charge hop from
// initial to final, including field work and the Coulomb correction. The
// second return value is false when the move is forbidden outright.
func (l *Lattice) hopRate(initial, final Point, particle Particle) (float64, bool) {
	deltaU := l.coulombDeltaU(initial, final, particle)
	if math.IsInf(deltaU, -1) {
		return 0, false
	}

	fromMol := l.siteAt(initial)
	toMol := l.siteAt(final)
	delta := final.Sub(initial)
	d := HopDistance(delta, l.constants.LatticeSpacing)

	kBase := l.constants.HopPrefactor * math.Exp(-2*l.constants.InverseDecayLength*d)

	var deltaE float64
	fieldWork := l.fieldEz * delta.Z() * l.constants.LatticeSpacing
	switch particle {
	case Electron:
		deltaE = toMol.Energies.LUMO - fromMol.Energies.LUMO
		deltaE += fieldWork
	case Hole:
		deltaE = toMol.Energies.HOMO - fromMol.Energies.HOMO
		deltaE -= fieldWork
	}

	total := deltaE + deltaU
	if total >= 0 {
		return kBase * math.Exp(-total/l.constants.KT()), true
	}
	return kBase, true
}

// decayRate returns the exciton decay rate for mol, given its current spin.
func decayRate(mol *Molecule, c PhysicalConstants) float64 {
	switch mol.Variant {
	case Host:
		return c.HostDecayRate
	case TADF:
		if mol.Exciton == Singlet {
			return c.TADFSingletDecay
		}
		return c.TADFTripletDecay
	case Fluorophore:
		if mol.Exciton == Singlet {
			return c.FluorophoreSingletDecay
		}
		return math.Inf(1) // non-radiative triplet decay is effectively instantaneous
	default:
		return math.Inf(1)
	}
}

// iscRate returns the singlet->triplet intersystem crossing rate.
func iscRate(mol *Molecule, c PhysicalConstants) float64 {
	deltaST := mol.Energies.S1 - mol.Energies.T1
	return c.ISCPrefactor * math.Exp(deltaST/c.KT())
}

// riscRate returns the triplet->singlet reverse intersystem crossing rate.
func riscRate(mol *Molecule, c PhysicalConstants) float64 {
	deltaST := mol.Energies.S1 - mol.Energies.T1
	return c.RISCPrefactor * math.Exp(-deltaST/c.KT())
}

// forsterRate returns the Förster transfer rate from a TADF donor in spin
// state spin to an acceptor at distance d (nm).
func forsterRate(spin ExcitonSpin, d float64, c PhysicalConstants) float64 {
	if d <= 0 {
		return math.Inf(1)
	}
	r0 := c.ForsterTripletRadius
	if spin == Singlet {
		r0 = c.ForsterSingletRadius
	}
	ratio := r0 / d
	return c.ForsterPrefactor * math.Pow(ratio, 6)
}
