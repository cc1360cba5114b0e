// Command kmcworker is the worker-side half of the file-based job harness
// described by the engine's external supervisor protocol. It reads a
// composition vector from in.json, runs one lattice to completion using
// fixed worker-side run parameters, and writes the objective value the
// outer optimiser minimises to out.json. The supervisor process, the
// CMA-ES loop, and history/solver bookkeeping are not this repository's
// concern; this binary only closes the worker side of the handshake.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lumoled/kmc"
)

// workerInput mirrors in.json: a bare two-element composition vector
// (p_tadf, p_fluo), with p_host implied as the remainder. The harness does
// not hand this worker run parameters; dimensions, field, charge count,
// target recombinations, and step cap are worker-side constants, the same
// way the supervisor's own reference worker hardcodes them at the call
// site rather than threading them through in.json.
type workerInput [2]float64

// Worker-side run parameters. Not part of the in.json protocol.
const (
	workerDimX          = 20
	workerDimY          = 20
	workerDimZ          = 10
	workerElectricField = 1e-1
	workerCharges       = 4
	workerTargetRecomb  = 1
	workerStepCap       = 50000000
	workerSeed          = 0
)

// workerOutput mirrors out.json: the single value the outer optimiser
// minimises (100 - IQE), plus the raw counters for diagnostics.
type workerOutput struct {
	Objective      float64 `json:"objective"`
	IQE            float64 `json:"iqe"`
	Recombinations int     `json:"recombinations"`
	Emissions      int     `json:"emissions"`
	Injections     int     `json:"injections"`
	Steps          uint64  `json:"steps"`
}

const (
	exitSuccess        = 0
	exitMissingInput   = 1
	exitConstructIndex = 2
	exitConstructValue = 3
)

func main() {
	root := &cobra.Command{
		Use:   "kmcworker",
		Short: "Run one kinetic Monte Carlo lattice evaluation for the supervisor harness",
		RunE:  run,
	}
	root.Flags().String("workdir", ".", "directory containing in.json/out.json for this worker")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitConstructValue)
	}
}

func run(cmd *cobra.Command, args []string) error {
	workdir, _ := cmd.Flags().GetString("workdir")

	logger, err := kmc.NewLogger()
	if err != nil {
		logger = kmc.NewNopLogger()
	}

	input, readErr := readInput(workdir)
	if readErr != nil {
		writeErrorsFile(workdir, "FileNotFoundError encountered when trying to read in.json.")
		os.Exit(exitMissingInput)
	}

	cfg := toLatticeConfig(input)
	lattice, buildErr := kmc.BuildLattice(cfg)
	if buildErr != nil {
		exitCode := exitConstructValue
		if kmc.IsCode(buildErr, kmc.CodeInvalidCarrierCount) {
			exitCode = exitConstructIndex
		}
		writeErrorsFile(workdir, buildErr.Error())
		touchStop(workdir)
		os.Exit(exitCode)
	}

	if opErr := lattice.Operations(workerTargetRecomb, workerStepCap); opErr != nil {
		logger.Warnf("operations returned an error: %v", opErr)
	}

	out := workerOutput{
		Objective:      100 - lattice.GetIQE(),
		IQE:            lattice.GetIQE(),
		Recombinations: lattice.Counters().Recombinations,
		Emissions:      lattice.Counters().Emissions,
		Injections:     lattice.Counters().Injections,
		Steps:          lattice.Counters().Step,
	}
	if err := writeOutput(workdir, out); err != nil {
		writeErrorsFile(workdir, err.Error())
		os.Exit(exitConstructValue)
	}
	os.Exit(exitSuccess)
	return nil
}

func toLatticeConfig(in workerInput) kmc.LatticeConfig {
	pTADF, pFluo := in[0], in[1]
	pHost := 1.0 - pTADF - pFluo
	return kmc.LatticeConfig{
		Proportions:    [3]float64{pHost, pTADF, pFluo},
		Dimensions:     kmc.Point{X: workerDimX, Y: workerDimY, Z: workerDimZ},
		ElectricField:  workerElectricField,
		Charges:        workerCharges,
		TransferRadius: 1,
		Seed:           workerSeed,
	}
}

// readInput reads in.json as the bare two-element composition array the
// harness writes (p_tadf, p_fluo); it is never an object.
func readInput(workdir string) (workerInput, error) {
	var in workerInput
	data, err := os.ReadFile(filepath.Join(workdir, "in.json"))
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, err
	}
	return in, nil
}

func writeOutput(workdir string, out workerOutput) error {
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(workdir, "out.json"), data, 0o644)
}

func writeErrorsFile(workdir, message string) {
	_ = os.WriteFile(filepath.Join(workdir, "errors.txt"), []byte(message), 0o644)
}

func touchStop(workdir string) {
	parent := filepath.Dir(workdir)
	_ = os.WriteFile(filepath.Join(parent, "STOP"), nil, 0o644)
}
