package kmc

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// LatticeConfig collects every parameter BuildLattice needs. Proportions is
// (p_host, p_tadf, p_fluo); it is renormalised if the three values do not
// already sum to 1.
type LatticeConfig struct {
	Proportions    [3]float64
	Dimensions     Point
	ElectricField  float64
	Charges        int
	TransferRadius int
	CutoffRadius   float64
	Constants      *PhysicalConstants
	Seed           int64
	Sigma          float64
	Logger         Logger

	// ForsterSearchRadius bounds, in lattice units, how far the rate engine
	// looks for Förster acceptor sites around a TADF donor. Zero selects a
	// default derived from the largest configured Förster radius.
	ForsterSearchRadius int
}

// Lattice is the full mutable simulation state: the 3D site grid, the
// mobile-carrier registries, the random stream, and the running
// accounting counters.
type Lattice struct {
	id        uuid.UUID
	dims      Point
	sites     []*Molecule
	electrons map[Point]struct{}
	holes     map[Point]struct{}
	excitons  map[Point]struct{}

	stream         *Stream
	constants      PhysicalConstants
	transferRadius int
	cutoffRadius   float64
	forsterRadius  int
	fieldEz        float64
	logger         Logger

	clock float64
	step  uint64

	injections     int
	recombinations int
	captures       int
	emissions      int
	emissionsBy    map[Variant]int

	sched *scheduler

	recent []EventSnapshot
}

const recentHistoryLimit = 16

// BuildLattice validates cfg and constructs a fully initialised Lattice,
// including precomputed neighbourhoods, sampled energies, injected
// carriers, and the initial candidate event set.
func BuildLattice(cfg LatticeConfig) (*Lattice, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	constants := DefaultConstants()
	if cfg.Constants != nil {
		constants = *cfg.Constants
	}
	cutoff := cfg.CutoffRadius
	if cutoff == 0 {
		cutoff = constants.CutoffRadius
	}
	sigma := cfg.Sigma
	if sigma == 0 {
		sigma = DefaultEnergySigma
	}
	transferRadius := cfg.TransferRadius
	if transferRadius == 0 {
		transferRadius = 1
	}
	forsterRadius := cfg.ForsterSearchRadius
	if forsterRadius == 0 {
		maxR0 := math.Max(constants.ForsterSingletRadius, constants.ForsterTripletRadius)
		forsterRadius = int(math.Ceil(2 * maxR0 / constants.LatticeSpacing))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = Default()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	stream := NewStream(seed)

	l := &Lattice{
		id:             uuid.New(),
		dims:           cfg.Dimensions,
		electrons:      make(map[Point]struct{}),
		holes:          make(map[Point]struct{}),
		excitons:       make(map[Point]struct{}),
		stream:         stream,
		constants:      constants,
		transferRadius: transferRadius,
		cutoffRadius:   cutoff,
		forsterRadius:  forsterRadius,
		fieldEz:        cfg.ElectricField,
		logger:         logger.With(String("lattice", stream.ID().String())),
		emissionsBy:    make(map[Variant]int),
	}

	proportions := normaliseProportions(cfg.Proportions)
	layers := electrodeLayers(l.dims.Z, proportions[0])

	l.allocateSites()
	l.assignVariants(proportions, layers, sigma)
	l.pinElectrodes(layers, sigma)
	l.injectCharges(cfg.Charges)
	l.sched = newScheduler()
	l.seedInitialEvents()

	l.logger.Infof("lattice constructed: dims=%v charges=%d layers=%d", l.dims, cfg.Charges, layers)
	return l, nil
}

func normaliseProportions(p [3]float64) [3]float64 {
	sum := p[0] + p[1] + p[2]
	if sum <= 0 {
		return [3]float64{1, 0, 0}
	}
	return [3]float64{p[0] / sum, p[1] / sum, p[2] / sum}
}

// electrodeLayers returns the number of pure-Host layers reserved at each
// z-boundary: H = floor(Z*p_host) rounded down to an even number, H/2 per
// side, with at least one layer kept on each side and at least one
// interior layer retained.
func electrodeLayers(z int, pHost float64) int {
	h := int(math.Floor(float64(z) * pHost))
	if h%2 != 0 {
		h--
	}
	if h < 0 {
		h = 0
	}
	layers := h / 2
	if layers < 1 {
		layers = 1
	}
	for 2*layers >= z {
		layers--
	}
	if layers < 1 {
		layers = 1
	}
	return layers
}

func validateConfig(cfg LatticeConfig) error {
	if cfg.Dimensions.X <= 0 || cfg.Dimensions.Y <= 0 || cfg.Dimensions.Z <= 0 {
		return newError(CodeInvalidDimensions, "dimensions must be positive")
	}
	if cfg.Dimensions.Z < 3 {
		return newError(CodeInvalidDimensions, "Z must be >= 3")
	}
	if cfg.Charges < 0 {
		return newError(CodeInvalidCarrierCount, "charges must be >= 0")
	}
	if cfg.Charges > cfg.Dimensions.X*cfg.Dimensions.Y {
		return newError(CodeInvalidCarrierCount, "charges exceeds electrode-plane capacity")
	}
	p := normaliseProportions(cfg.Proportions)
	for _, v := range p {
		if v < 0 {
			return newError(CodeInvalidProportions, "proportions must be non-negative")
		}
	}
	minDim := cfg.Dimensions.X
	if cfg.Dimensions.Y < minDim {
		minDim = cfg.Dimensions.Y
	}
	if cfg.Dimensions.Z < minDim {
		minDim = cfg.Dimensions.Z
	}
	if cfg.TransferRadius != 0 && cfg.TransferRadius >= minDim {
		return newError(CodeInvalidTransferRadius, "transfer radius must be smaller than every dimension")
	}
	total := float64(cfg.Dimensions.X * cfg.Dimensions.Y * cfg.Dimensions.Z)
	minP := math.Min(p[0], math.Min(p[1], p[2]))
	if minP > 0 && minP*total < 1 {
		return newError(CodeInsufficientSites, "rarest proportion has no representable sites")
	}
	return nil
}

func (l *Lattice) idx(p Point) int {
	return p.Z*l.dims.X*l.dims.Y + p.Y*l.dims.X + p.X
}

func (l *Lattice) siteAt(p Point) *Molecule {
	return l.sites[l.idx(p)]
}

// allocateSites reserves the flat site slice (step 1 of construction).
func (l *Lattice) allocateSites() {
	l.sites = make([]*Molecule, l.dims.X*l.dims.Y*l.dims.Z)
}

// assignVariants places Host electrode layers and fills the interior with a
// random permutation of the composition multiset (steps 2-5).
func (l *Lattice) assignVariants(proportions [3]float64, layers int, sigma float64) {
	interiorCount := l.dims.X * l.dims.Y * (l.dims.Z - 2*layers)
	nTADF := int(math.Round(proportions[1] * float64(interiorCount)))
	nFluo := int(math.Round(proportions[2] * float64(interiorCount)))
	if nTADF+nFluo > interiorCount {
		overflow := nTADF + nFluo - interiorCount
		if nFluo >= overflow {
			nFluo -= overflow
		} else {
			overflow -= nFluo
			nFluo = 0
			nTADF -= overflow
			if nTADF < 0 {
				nTADF = 0
			}
		}
	}
	nHost := interiorCount - nTADF - nFluo

	multiset := make([]Variant, 0, interiorCount)
	for i := 0; i < nHost; i++ {
		multiset = append(multiset, Host)
	}
	for i := 0; i < nTADF; i++ {
		multiset = append(multiset, TADF)
	}
	for i := 0; i < nFluo; i++ {
		multiset = append(multiset, Fluorophore)
	}
	perm := l.stream.Permutation(interiorCount)

	pos := 0
	for z := layers; z < l.dims.Z-layers; z++ {
		for y := 0; y < l.dims.Y; y++ {
			for x := 0; x < l.dims.X; x++ {
				p := Point{X: x, Y: y, Z: z}
				variant := multiset[perm[pos]]
				l.sites[l.idx(p)] = NewMolecule(p, variant, sigma, l.transferRadius, l.dims, l.stream)
				pos++
			}
		}
	}
}

// pinElectrodes fills the reserved boundary layers with pure Host molecules.
func (l *Lattice) pinElectrodes(layers int, sigma float64) {
	for z := 0; z < l.dims.Z; z++ {
		if z >= layers && z < l.dims.Z-layers {
			continue
		}
		for y := 0; y < l.dims.Y; y++ {
			for x := 0; x < l.dims.X; x++ {
				p := Point{X: x, Y: y, Z: z}
				l.sites[l.idx(p)] = NewMolecule(p, Host, sigma, l.transferRadius, l.dims, l.stream)
			}
		}
	}
}

// injectCharges places n electrons at z=Z-1 and n holes at z=0, each at
// distinct (x,y) columns (step 6).
func (l *Lattice) injectCharges(n int) {
	if n == 0 {
		return
	}
	electronCols := l.stream.ChooseDistinctColumns(l.dims.X, l.dims.Y, n)
	holeCols := l.stream.ChooseDistinctColumns(l.dims.X, l.dims.Y, n)
	for _, c := range electronCols {
		p := Point{X: c.X, Y: c.Y, Z: l.dims.Z - 1}
		mol := l.siteAt(p)
		mol.SwitchElectron()
		l.electrons[p] = struct{}{}
		l.injections++
	}
	for _, c := range holeCols {
		p := Point{X: c.X, Y: c.Y, Z: 0}
		mol := l.siteAt(p)
		mol.SwitchHole()
		l.holes[p] = struct{}{}
		l.injections++
	}
}

// GetDimensions returns the lattice's (X,Y,Z) extents.
func (l *Lattice) GetDimensions() (int, int, int) {
	return l.dims.X, l.dims.Y, l.dims.Z
}

// GetParticlePositions returns the current electron, hole and exciton
// locations, each a stable-order snapshot.
func (l *Lattice) GetParticlePositions() (electrons, holes, excitons []Point) {
	electrons = make([]Point, 0, len(l.electrons))
	for p := range l.electrons {
		electrons = append(electrons, p)
	}
	holes = make([]Point, 0, len(l.holes))
	for p := range l.holes {
		holes = append(holes, p)
	}
	excitons = make([]Point, 0, len(l.excitons))
	for p := range l.excitons {
		excitons = append(excitons, p)
	}
	for _, s := range [][]Point{electrons, holes, excitons} {
		sort.Slice(s, func(i, j int) bool { return l.idx(s[i]) < l.idx(s[j]) })
	}
	return electrons, holes, excitons
}

// ID returns the lattice's run-correlation identifier.
func (l *Lattice) ID() uuid.UUID { return l.id }

func (l *Lattice) pushRecent(snap EventSnapshot) {
	l.recent = append(l.recent, snap)
	if len(l.recent) > recentHistoryLimit {
		l.recent = l.recent[len(l.recent)-recentHistoryLimit:]
	}
}
