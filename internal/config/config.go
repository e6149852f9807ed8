// Package config parses and validates the CLI-derived descriptor fields
// that need more than a plain flag: comma-separated prime lists and
// base:exp pairs, plus the pre-task checks that turn a malformed
// invocation into a fatal, pre-task error rather than a panic mid-run.
package config

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/newral/bpsw-worker/internal/bignum"
)

// Error is the sentinel type for fatal, pre-task configuration failures.
// cmd/bpsw-worker maps any *Error to exit code 1 without string-matching.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func newError(format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

var (
	// ErrMissingTaskType is returned when --task-type is absent.
	ErrMissingTaskType = &Error{msg: "missing required flag: --task-type"}
	// ErrUnknownTaskType is returned when --task-type doesn't name one of
	// the six known task types.
	ErrUnknownTaskType = &Error{msg: "unknown task type"}
	// ErrMissingRange is returned when a range-mode or chernick-mode task
	// has start == end == 0.
	ErrMissingRange = &Error{msg: "missing required range: --start/--end"}
	// ErrMissingSeedRange is returned when a seed-mode task has no usable
	// seed range after falling back to --start/--end.
	ErrMissingSeedRange = &Error{msg: "missing required range: --seed-start/--seed-end"}
)

// knownTaskTypes mirrors spec.md §3's task_type enum.
var knownTaskTypes = map[string]bool{
	"main_odds":        true,
	"large_numbers":    true,
	"chernick":         true,
	"pomerance_lite":   true,
	"pomerance_modular": true,
	"lambda_plus_one":  true,
}

// ValidTaskType reports whether s names one of the six task types.
func ValidTaskType(s string) bool {
	return knownTaskTypes[s]
}

// ParsePrimeList parses a comma-separated list of decimal integers, as used
// by --m-primes and --n-primes. An empty string yields an empty, non-nil
// slice (the trivial constraint, per §4.7).
func ParsePrimeList(csv string) ([]*big.Int, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return []*big.Int{}, nil
	}
	parts := strings.Split(csv, ",")
	out := make([]*big.Int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, ok := new(big.Int).SetString(p, 10)
		if !ok {
			return nil, newError("invalid integer in prime list: %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

// LambdaFactorSpec is the parsed form of one base:exp token, decoupled from
// internal/generators so this package doesn't need to import it.
type LambdaFactorSpec struct {
	Base   int64
	MaxExp int64
}

// DefaultLambdaFactors mirrors spec.md §4.8's default bases.
func DefaultLambdaFactors() []LambdaFactorSpec {
	return []LambdaFactorSpec{
		{Base: 2, MaxExp: 10},
		{Base: 3, MaxExp: 6},
		{Base: 5, MaxExp: 4},
		{Base: 7, MaxExp: 3},
		{Base: 11, MaxExp: 2},
		{Base: 13, MaxExp: 2},
		{Base: 17, MaxExp: 1},
	}
}

// DefaultMPrimes mirrors spec.md §6's default m-prime list.
func DefaultMPrimes() []*big.Int {
	return intsToBig([]int64{13, 17, 29, 37, 41})
}

// DefaultNPrimes mirrors spec.md §6's default n-prime list.
func DefaultNPrimes() []*big.Int {
	return intsToBig([]int64{3, 7, 11, 19, 23})
}

func intsToBig(vs []int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

// ParseLambdaFactors parses a comma-separated list of base:exp tokens, as
// used by --lambda-factors. An empty string returns the defaults.
func ParseLambdaFactors(csv string) ([]LambdaFactorSpec, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return DefaultLambdaFactors(), nil
	}
	parts := strings.Split(csv, ",")
	out := make([]LambdaFactorSpec, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		pieces := strings.SplitN(p, ":", 2)
		if len(pieces) != 2 {
			return nil, newError("malformed lambda factor (want base:exp): %q", p)
		}
		base, err := strconv.ParseInt(strings.TrimSpace(pieces[0]), 10, 64)
		if err != nil {
			return nil, newError("malformed lambda factor base: %q", p)
		}
		exp, err := strconv.ParseInt(strings.TrimSpace(pieces[1]), 10, 64)
		if err != nil {
			return nil, newError("malformed lambda factor exponent: %q", p)
		}
		out = append(out, LambdaFactorSpec{Base: base, MaxExp: exp})
	}
	return out, nil
}

// RangeMode reports whether taskType iterates a dense integer range
// (main_odds, large_numbers) rather than a seed range.
func RangeMode(taskType string) bool {
	return taskType == "main_odds" || taskType == "large_numbers"
}

// SeedMode reports whether taskType drives one of the three seeded
// generator families.
func SeedMode(taskType string) bool {
	switch taskType {
	case "pomerance_lite", "pomerance_modular", "lambda_plus_one":
		return true
	default:
		return false
	}
}

// ValidateRange enforces §7's fatal, pre-task checks for range mode and
// chernick mode: start or end must be nonzero.
func ValidateRange(start, end int64) error {
	if start == 0 && end == 0 {
		return ErrMissingRange
	}
	return nil
}

// ValidateSeedRange enforces the seed-mode equivalent, after the
// start/end fallback described in spec.md §6's flag table.
func ValidateSeedRange(seedStart, seedEnd int64) error {
	if seedStart == 0 && seedEnd == 0 {
		return ErrMissingSeedRange
	}
	return nil
}

// ResolveSeedRange falls back to start/end when seed-start/seed-end are
// both unset, per spec.md §6.
func ResolveSeedRange(seedStart, seedEnd, start, end int64) (int64, int64) {
	if seedStart == 0 && seedEnd == 0 {
		return start, end
	}
	return seedStart, seedEnd
}

// IsConfigError reports whether err is a fatal configuration error
// (*Error or a sentinel from bignum), the only class that should map to a
// nonzero process exit with no report emitted.
func IsConfigError(err error) bool {
	var ce *Error
	return errors.As(err, &ce) || errors.Is(err, bignum.ErrIncompatibleCongruences)
}
