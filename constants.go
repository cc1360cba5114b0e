package kmc

import "math"

// PhysicalConstants bundles every physical parameter the rate engine
// depends on. The zero value is invalid; use DefaultConstants() and
// override individual fields as needed.
type PhysicalConstants struct {
	// LatticeSpacing is the real-space distance, in nanometres, spanned by
	// one lattice unit ("a" in the rate formulas).
	LatticeSpacing float64

	// Temperature in Kelvin.
	Temperature float64

	// Boltzmann is the Boltzmann constant in eV/K.
	Boltzmann float64

	// VacuumPermittivity in units of e^2/(eV*nm).
	VacuumPermittivity float64

	// RelativePermittivity is the host medium's relative permittivity.
	RelativePermittivity float64

	// HopPrefactor is k_hop, in Hz, the attempt frequency for charge hops.
	HopPrefactor float64

	// InverseDecayLength is gamma, in 1/nm, the wavefunction decay constant
	// governing the exp(-2*gamma*d) term of the hop rate.
	InverseDecayLength float64

	// CutoffRadius is the default Coulomb truncation radius, in nm.
	CutoffRadius float64

	// ISCPrefactor / RISCPrefactor are k_ISC and k_RISC, in Hz, for TADF
	// intersystem crossing.
	ISCPrefactor  float64
	RISCPrefactor float64

	// ForsterSingletRadius / ForsterTripletRadius are R0, in nm, for
	// singlet-to-singlet and triplet-to-singlet Förster transfer.
	ForsterSingletRadius float64
	ForsterTripletRadius float64

	// ForsterPrefactor is k_F_tadf, in Hz, the TADF donor's intrinsic decay
	// rate used as the Förster rate prefactor.
	ForsterPrefactor float64

	// TADFSingletDecay / TADFTripletDecay are k_F and k_PH for TADF, in Hz.
	TADFSingletDecay float64
	TADFTripletDecay float64

	// FluorophoreSingletDecay is k_F for the terminal fluorophore, in Hz.
	// The fluorophore's triplet state is always non-radiative.
	FluorophoreSingletDecay float64

	// HostDecayRate is the Host variant's exciton decay rate, in Hz.
	// math.Inf(1) models the default instantaneous (tau=0) decay; a finite
	// override is available as a hedge against scheduler instability.
	HostDecayRate float64
}

// Electrostatic returns K = e^2 / (4*pi*eps0*eps_r), in eV*nm, the
// Coulomb-energy prefactor.
func (c PhysicalConstants) Electrostatic() float64 {
	return 1.0 / (4.0 * math.Pi * c.VacuumPermittivity * c.RelativePermittivity)
}

// KT returns k_B * T, in eV.
func (c PhysicalConstants) KT() float64 {
	return c.Boltzmann * c.Temperature
}

// DefaultConstants returns the physical constants for a ternary Host/TADF/
// Fluorophore emissive layer, suitable as the default for BuildLattice.
func DefaultConstants() PhysicalConstants {
	return PhysicalConstants{
		LatticeSpacing:          1.0,
		Temperature:             300.0,
		Boltzmann:               8.617333262e-5,
		VacuumPermittivity:      55.26349406e-3,
		RelativePermittivity:    3.0,
		HopPrefactor:            1e15,
		InverseDecayLength:      10.0,
		CutoffRadius:            19.2,
		ISCPrefactor:            1e8,
		RISCPrefactor:           1e5,
		ForsterSingletRadius:    5.55,
		ForsterTripletRadius:    4.75,
		ForsterPrefactor:        4.58e6,
		TADFSingletDecay:        4.58e6,
		TADFTripletDecay:        4.19e6,
		FluorophoreSingletDecay: 4.58e6,
		HostDecayRate:           math.Inf(1),
	}
}

// Variant-mean energies (eV), sampled with sigma = DefaultEnergySigma
// unless a LatticeConfig overrides it.
const DefaultEnergySigma = 0.1

var variantMeanEnergies = map[Variant]Energies{
	Host:        {HOMO: 6.0, LUMO: -2.0, S1: 3.50, T1: 3.00},
	TADF:        {HOMO: 5.8, LUMO: -2.6, S1: 2.55, T1: 2.52},
	Fluorophore: {HOMO: 5.25, LUMO: -2.7, S1: 2.69, T1: 1.43},
}
