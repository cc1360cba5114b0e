package kmc

// Variant tags a molecule's chemical identity.
type Variant int

const (
	Host Variant = iota
	TADF
	Fluorophore
)

func (v Variant) String() string {
	switch v {
	case Host:
		return "Host"
	case TADF:
		return "TADF"
	case Fluorophore:
		return "Fluorophore"
	default:
		return "Unknown"
	}
}

// ExcitonSpin is the spin character of a bound electron-hole pair.
type ExcitonSpin int

const (
	NoExciton ExcitonSpin = iota
	Singlet
	Triplet
)

// Energies holds the four Gaussian-sampled energy levels of one molecule.
// HOMO is carried positive under the hole-positive sign convention; LUMO
// is negative.
type Energies struct {
	HOMO, LUMO, S1, T1 float64
}

// Molecule is a single lattice site's chemical and occupancy state.
type Molecule struct {
	Position     Point
	Variant      Variant
	Energies     Energies
	Neighbours   []Point
	HasElectron  bool
	HasHole      bool
	Exciton    ExcitonSpin
}

// NewMolecule constructs a molecule at p with energies sampled from the
// variant's mean using sigma as the common standard deviation, and with its
// neighbourhood precomputed against dims.
func NewMolecule(p Point, variant Variant, sigma float64, radius int, dims Point, parent *Stream) *Molecule {
	stream := parent.child()
	mean := variantMeanEnergies[variant]
	return &Molecule{
		Position: p,
		Variant:  variant,
		Energies: Energies{
			HOMO: stream.Gaussian(mean.HOMO, sigma),
			LUMO: stream.Gaussian(mean.LUMO, sigma),
			S1:   stream.Gaussian(mean.S1, sigma),
			T1:   stream.Gaussian(mean.T1, sigma),
		},
		Neighbours: Neighbourhood(p, radius, dims),
	}
}

// IsOccupied reports whether the site carries any carrier or exciton.
func (m *Molecule) IsOccupied() bool {
	return m.HasElectron || m.HasHole || m.Exciton != NoExciton
}

// SwitchElectron toggles the electron occupancy flag.
func (m *Molecule) SwitchElectron() { m.HasElectron = !m.HasElectron }

// SwitchHole toggles the hole occupancy flag.
func (m *Molecule) SwitchHole() { m.HasHole = !m.HasHole }

// ReadyForExciton reports whether the site carries both a bare electron
// and a bare hole, the precondition for bound-pair formation.
func (m *Molecule) ReadyForExciton() bool {
	return m.HasElectron && m.HasHole
}

// FormExciton clears the bare-carrier flags and assigns spin drawn from
// stream: singlet with probability 1/4, triplet otherwise.
func (m *Molecule) FormExciton(stream *Stream) {
	m.HasElectron = false
	m.HasHole = false
	m.Exciton = stream.SpinDraw()
}

// DecayExciton clears the exciton, returning the site to Empty, and
// reports whether the decay is radiative (emits a photon).
func (m *Molecule) DecayExciton() (emits bool) {
	emits = m.excitonEmits()
	m.Exciton = NoExciton
	return emits
}

// excitonEmits implements the per-variant decay disposition: Host never
// emits; TADF never emits directly (its intrinsic decay is non-radiative,
// and its emission happens only via Förster transfer to a Fluorophore);
// Fluorophore emits only on singlet decay.
func (m *Molecule) excitonEmits() bool {
	switch m.Variant {
	case Fluorophore:
		return m.Exciton == Singlet
	default:
		return false
	}
}

// FlipSpin implements ISC/RISC: singlet <-> triplet.
func (m *Molecule) FlipSpin() {
	switch m.Exciton {
	case Singlet:
		m.Exciton = Triplet
	case Triplet:
		m.Exciton = Singlet
	}
}

// EmptySite resets every occupancy flag, used after capture or decay.
func (m *Molecule) EmptySite() {
	m.HasElectron = false
	m.HasHole = false
	m.Exciton = NoExciton
}

// SupportsISC reports whether the variant undergoes intersystem crossing.
func (m *Molecule) SupportsISC() bool { return m.Variant == TADF }

// SupportsForster reports whether the variant can donate energy via
// Förster transfer to a Fluorophore acceptor.
func (m *Molecule) SupportsForster() bool { return m.Variant == TADF }

// IsForsterAcceptor reports whether the variant can accept Förster energy.
func (m *Molecule) IsForsterAcceptor() bool { return m.Variant == Fluorophore }
