package kmc

import (
	"math"
	"testing"
)

func TestFormExcitonClearsBareCarriers(t *testing.T) {
	m := &Molecule{HasElectron: true, HasHole: true}
	stream := NewStream(1)
	m.FormExciton(stream)
	if m.HasElectron || m.HasHole {
		t.Fatalf("bare carrier flags must clear on exciton formation")
	}
	if m.Exciton == NoExciton {
		t.Fatalf("exciton spin must be assigned")
	}
}

func TestDecayExcitonResetsSite(t *testing.T) {
	m := &Molecule{Variant: Fluorophore, Exciton: Singlet}
	if !m.DecayExciton() {
		t.Fatalf("fluorophore singlet decay must emit")
	}
	if m.Exciton != NoExciton {
		t.Fatalf("site must return to empty after decay")
	}
}

func TestHostAndTADFNeverEmitDirectly(t *testing.T) {
	host := &Molecule{Variant: Host, Exciton: Singlet}
	if host.DecayExciton() {
		t.Fatalf("host must never emit")
	}
	tadf := &Molecule{Variant: TADF, Exciton: Singlet}
	if tadf.DecayExciton() {
		t.Fatalf("TADF must never emit directly")
	}
}

func TestFluorophoreTripletDoesNotEmit(t *testing.T) {
	m := &Molecule{Variant: Fluorophore, Exciton: Triplet}
	if m.DecayExciton() {
		t.Fatalf("fluorophore triplet decay must be non-radiative")
	}
}

func TestFlipSpinRoundTrip(t *testing.T) {
	m := &Molecule{Exciton: Singlet}
	m.FlipSpin()
	if m.Exciton != Triplet {
		t.Fatalf("expected triplet after one flip")
	}
	m.FlipSpin()
	if m.Exciton != Singlet {
		t.Fatalf("expected singlet after two flips, spin flip must be its own inverse")
	}
}

func TestSpinDrawConvergesToQuarterSinglet(t *testing.T) {
	stream := NewStream(42)
	const n = 20000
	singlets := 0
	for i := 0; i < n; i++ {
		if stream.SpinDraw() == Singlet {
			singlets++
		}
	}
	fraction := float64(singlets) / float64(n)
	if math.Abs(fraction-0.25) > 0.02 {
		t.Fatalf("expected singlet fraction near 0.25, got %v", fraction)
	}
}

func TestNewMoleculeEnergiesConvergeToVariantMean(t *testing.T) {
	stream := NewStream(7)
	const n = 4000
	var sumLUMO float64
	for i := 0; i < n; i++ {
		m := NewMolecule(Point{X: i}, Host, DefaultEnergySigma, 1, Point{X: n + 1, Y: 1, Z: 3}, stream)
		sumLUMO += m.Energies.LUMO
	}
	mean := sumLUMO / n
	want := variantMeanEnergies[Host].LUMO
	// sigma/sqrt(N) ~ 0.1/63 ~ 0.0016; allow generous slack for test stability.
	if math.Abs(mean-want) > 0.02 {
		t.Fatalf("sampled LUMO mean %v too far from declared mean %v", mean, want)
	}
}
