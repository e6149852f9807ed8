package task

import (
	"context"
	"math/big"
	"time"

	"github.com/newral/bpsw-worker/internal/config"
	"github.com/newral/bpsw-worker/internal/generators"
	"github.com/newral/bpsw-worker/internal/primality"
	"github.com/newral/bpsw-worker/internal/rng"
)

// Executor runs one Descriptor to completion against a primality.Backend.
// The zero value uses primality.NativeBackend.
type Executor struct {
	Backend primality.Backend
}

func (e Executor) backend() primality.Backend {
	if e.Backend != nil {
		return e.Backend
	}
	return primality.NativeBackend{}
}

// Run dispatches on d.TaskType per spec.md §4.9's state machine. ctx is
// polled between candidates for cooperative, host-driven cancellation
// (spec.md §5) — it is never required for correctness when no deadline is
// set.
func (e Executor) Run(ctx context.Context, d Descriptor) (Report, error) {
	if err := d.Validate(); err != nil {
		return Report{}, err
	}

	report := newReport(d.TaskType)
	report.StartedAt = nowISO()

	var err error
	switch {
	case config.RangeMode(d.TaskType):
		err = e.runRangeMode(ctx, d, report)
	case d.TaskType == "chernick":
		err = e.runChernickMode(ctx, d, report)
	case config.SeedMode(d.TaskType):
		err = e.runSeedMode(ctx, d, report)
	}

	report.EndedAt = nowISO()
	if err != nil {
		return Report{}, err
	}
	return *report, nil
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (e Executor) runRangeMode(ctx context.Context, d Descriptor, report *Report) error {
	start := d.Start
	if start%2 == 0 {
		start++
	}
	backend := e.backend()

	checked := int64(0)
	for n := start; n <= d.End; n += 2 {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.MaxCandidates > 0 && checked >= d.MaxCandidates {
			break
		}
		bn := big.NewInt(n)
		checked++
		if backend.IsBPSWProbablePrime(bn) {
			report.recordHit(bn.String(), digitCount(bn), map[string]interface{}{"family": d.TaskType})
		}
	}
	report.Checked = checked
	return nil
}

func (e Executor) runChernickMode(ctx context.Context, d Descriptor, report *Report) error {
	backend := e.backend()
	checked := int64(0)
	for k := d.Start; k <= d.End; k++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		checked++
		c, ok := generators.Chernick(k, d.RequirePrimeFactors)
		if !ok {
			continue
		}
		if backend.IsBPSWProbablePrime(c.N) {
			report.recordHit(c.N.String(), digitCount(c.N), c.Meta)
		}
	}
	report.Checked = checked
	return nil
}

func (e Executor) runSeedMode(ctx context.Context, d Descriptor, report *Report) error {
	backend := e.backend()
	seedStart, seedEnd := config.ResolveSeedRange(d.SeedStart, d.SeedEnd, d.Start, d.End)

	if d.TaskType == "pomerance_modular" {
		// The CRT constraint is independent of seed; an incompatible
		// configuration is a fatal, pre-task error (spec §4.7), not a
		// per-seed generation failure.
		if _, _, err := generators.BuildModConstraint(d.MPrimes, d.NPrimes, d.Mod5Residue); err != nil {
			return err
		}
	}

	checked := int64(0)
	for seed := seedStart; seed <= seedEnd; seed++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		checked++

		c, ok, genErr := e.runGenerator(seed, d)
		if genErr != nil {
			return genErr
		}
		if !ok {
			report.recordError(seed, "generation_failed")
			continue
		}
		if backend.IsBPSWProbablePrime(c.N) {
			report.recordHit(c.N.String(), digitCount(c.N), c.Meta)
		}
	}
	report.Checked = checked
	return nil
}

func (e Executor) runGenerator(seed int64, d Descriptor) (generators.Candidate, bool, error) {
	r := rng.New(seed)
	switch d.TaskType {
	case "pomerance_lite":
		c, ok := generators.PomeranceLite(r, seed, d.TargetDigits, d.PrimeDigits, d.MaxSteps)
		return c, ok, nil
	case "pomerance_modular":
		c, ok := generators.PomeranceModular(r, seed, d.TargetDigits, d.PrimeDigits, d.MaxSteps, d.MPrimes, d.NPrimes, d.Mod5Residue)
		return c, ok, nil
	case "lambda_plus_one":
		factors := make([]generators.LambdaFactor, len(d.LambdaFactors))
		for i, f := range d.LambdaFactors {
			factors[i] = generators.LambdaFactor{Base: big.NewInt(f.Base), MaxExp: f.MaxExp}
		}
		c, ok := generators.LambdaPlusOne(r, seed, d.TargetDigits, factors, d.RequirePrime, d.MaxSteps)
		return c, ok, nil
	}
	return generators.Candidate{}, false, nil
}

func digitCount(n *big.Int) int {
	if n.Sign() == 0 {
		return 1
	}
	return len(new(big.Int).Abs(n).String())
}
