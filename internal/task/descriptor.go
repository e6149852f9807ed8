// Package task implements the executor: the state machine that dispatches
// a task descriptor onto range mode, chernick mode, or seed mode, drives
// the candidate generators and BPSW test, and accumulates a Report.
package task

import (
	"math/big"

	"github.com/newral/bpsw-worker/internal/config"
)

// Descriptor is the immutable input to one task execution (spec.md §3).
type Descriptor struct {
	TaskType string

	Start int64
	End   int64

	MaxCandidates int64

	SeedStart int64
	SeedEnd   int64

	TargetDigits int
	PrimeDigits  int
	MaxSteps     int

	RequirePrimeFactors bool // chernick
	RequirePrime        bool // lambda_plus_one

	Mod5Residue int64
	MPrimes     []*big.Int
	NPrimes     []*big.Int

	LambdaFactors []config.LambdaFactorSpec
}

// Validate runs the fatal, pre-task checks of spec.md §7: these must all
// pass before Executor.Run ever iterates a candidate.
func (d Descriptor) Validate() error {
	if d.TaskType == "" {
		return config.ErrMissingTaskType
	}
	if !config.ValidTaskType(d.TaskType) {
		return config.ErrUnknownTaskType
	}

	switch {
	case config.RangeMode(d.TaskType), d.TaskType == "chernick":
		return config.ValidateRange(d.Start, d.End)
	case config.SeedMode(d.TaskType):
		seedStart, seedEnd := config.ResolveSeedRange(d.SeedStart, d.SeedEnd, d.Start, d.End)
		return config.ValidateSeedRange(seedStart, seedEnd)
	}
	return nil
}
