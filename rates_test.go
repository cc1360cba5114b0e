package kmc

import (
	"math"
	"testing"
)

func newTestLattice(t *testing.T) *Lattice {
	t.Helper()
	l, err := BuildLattice(baseConfig())
	if err != nil {
		t.Fatalf("unexpected error building lattice: %v", err)
	}
	return l
}

func TestShiftedInverseDistanceVanishesAtCutoff(t *testing.T) {
	if got := shiftedInverseDistance(19.2, 19.2); got != 0 {
		t.Fatalf("expected exactly 0 at the cutoff, got %v", got)
	}
	if got := shiftedInverseDistance(30, 19.2); got != 0 {
		t.Fatalf("expected 0 beyond the cutoff, got %v", got)
	}
}

func TestCoulombDeltaUForbidsSamePolaritySite(t *testing.T) {
	l := newTestLattice(t)
	var occupied Point
	for p := range l.electrons {
		occupied = p
		break
	}
	other := Point{X: wrap(occupied.X+1, l.dims.X), Y: occupied.Y, Z: occupied.Z}
	l.electrons[other] = struct{}{}
	deltaU := l.coulombDeltaU(occupied, other, Electron)
	if !math.IsInf(deltaU, -1) {
		t.Fatalf("expected -Inf for a same-polarity-occupied target, got %v", deltaU)
	}
}

func TestHopRateIsPositiveForOpenNeighbour(t *testing.T) {
	l := newTestLattice(t)
	var p Point
	for e := range l.electrons {
		p = e
		break
	}
	mol := l.siteAt(p)
	for _, n := range mol.Neighbours {
		target := l.siteAt(n)
		if target.HasElectron || target.HasHole {
			continue
		}
		rate, ok := l.hopRate(p, n, Electron)
		if !ok {
			t.Fatalf("expected an allowed hop to an empty neighbour")
		}
		if rate <= 0 {
			t.Fatalf("expected a strictly positive rate, got %v", rate)
		}
		return
	}
	t.Skip("no open neighbour found for this seed")
}

func TestDecayRateHostIsInstantaneous(t *testing.T) {
	c := DefaultConstants()
	mol := &Molecule{Variant: Host, Exciton: Singlet}
	if rate := decayRate(mol, c); !math.IsInf(rate, 1) {
		t.Fatalf("expected +Inf (instantaneous) host decay rate, got %v", rate)
	}
}

func TestISCAndRISCAreConsistentWithDeltaST(t *testing.T) {
	c := DefaultConstants()
	mol := &Molecule{Variant: TADF, Energies: Energies{S1: 2.55, T1: 2.52}}
	isc := iscRate(mol, c)
	risc := riscRate(mol, c)
	if isc <= 0 || risc <= 0 {
		t.Fatalf("ISC/RISC rates must be strictly positive, got isc=%v risc=%v", isc, risc)
	}
	deltaST := mol.Energies.S1 - mol.Energies.T1
	want := (c.ISCPrefactor / c.RISCPrefactor) * math.Exp(2*deltaST/c.KT())
	if got := isc / risc; math.Abs(got-want) > 1e-9*want {
		t.Fatalf("expected isc/risc = %v for deltaST=%v, got %v", want, deltaST, got)
	}
}

func TestForsterRateFallsOffWithDistance(t *testing.T) {
	c := DefaultConstants()
	near := forsterRate(Singlet, 2.0, c)
	far := forsterRate(Singlet, 10.0, c)
	if !(near > far) {
		t.Fatalf("expected Förster rate to decrease with distance: near=%v far=%v", near, far)
	}
}
