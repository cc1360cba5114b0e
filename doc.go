// Package kmc implements a kinetic Monte Carlo engine for charge transport,
// exciton formation, and radiative recombination in a ternary-blend OLED
// emissive layer (Host, TADF sensitiser and terminal Fluorophore molecules
// on a three-dimensional lattice). It computes internal quantum efficiency
// by advancing a First-Reaction-Method event scheduler until a requested
// number of recombinations has occurred.
//
// The engine is single-threaded, deterministic given a seed, and performs
// no I/O; callers run many independent lattices in parallel as separate
// processes or goroutines, each owning its own random stream and state.
package kmc
