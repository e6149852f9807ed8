// Package generators implements the four structured candidate-generator
// families: Chernick triples, the two Pomerance-style products of small
// primes, and the λ+1 smooth-shifted-factor construction. Chernick is a
// pure function of k; the other three are deterministic given their seed
// (internal/rng). Factors are filtered with the cheap multi-base
// primality.DeepProbablePrime check before being accepted (for Chernick and
// λ+1 only when their require-prime option is set); the executor still runs
// the full BPSW composite on the final product before recording a hit.
package generators

import (
	"math/big"

	"github.com/newral/bpsw-worker/internal/primality"
	"github.com/newral/bpsw-worker/internal/rng"
)

// Candidate is a generated n together with the family-specific metadata the
// report records alongside it.
type Candidate struct {
	N    *big.Int
	Meta map[string]interface{}
}

const maxFactors = 10 // hard cap; see spec §4.6/§9 "Open questions"

func digitCount(n *big.Int) int {
	if n.Sign() == 0 {
		return 1
	}
	return len(new(big.Int).Abs(n).String())
}

func product(factors []*big.Int) *big.Int {
	p := big.NewInt(1)
	for _, f := range factors {
		p.Mul(p, f)
	}
	return p
}

func factorStrings(factors []*big.Int) []string {
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = f.String()
	}
	return out
}

// needsMoreFactors is the shared termination predicate for the three
// seed-driven generators: keep sampling while the running product hasn't
// reached target_digits yet, or while the factor count is still even (an
// odd count of 3-mod-8 factors keeps the product 3 mod 8).
func needsMoreFactors(factors []*big.Int, targetDigits int) bool {
	return digitCount(product(factors)) < targetDigits || len(factors)%2 == 0
}

func digitRangeBounds(digits int) (low, high *big.Int) {
	low = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	high = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	high.Sub(high, big.NewInt(1))
	return low, high
}

func randomOddInDigitRange(r *rng.Source, digits int) *big.Int {
	low, high := digitRangeBounds(digits)
	return r.RandomOddInRange(low, high)
}

func deepPrime(n *big.Int) bool {
	return primality.DeepProbablePrime(n)
}

// findPrimeWithFilters draws odd candidates uniformly from the digits-digit
// range until one satisfies predicate and passes the deep filter, or
// maxSteps is exhausted.
func findPrimeWithFilters(r *rng.Source, digits int, maxSteps int, predicate func(*big.Int) bool) (*big.Int, bool) {
	for step := 0; step < maxSteps; step++ {
		candidate := randomOddInDigitRange(r, digits)
		if predicate(candidate) && deepPrime(candidate) {
			return candidate, true
		}
	}
	return nil, false
}

// findPrimeInProgression walks the arithmetic progression candidate =
// residue (mod modulus), starting from a random odd point in the
// digits-digit range, accepting the first deep-prime hit (optionally
// filtered further by predicate).
func findPrimeInProgression(r *rng.Source, digits int, residue, modulus *big.Int, maxSteps int, predicate func(*big.Int) bool) (*big.Int, bool) {
	if modulus.Sign() <= 0 {
		return nil, false
	}
	low, high := digitRangeBounds(digits)
	start := r.RandomOddInRange(low, high)

	delta := new(big.Int).Sub(residue, start)
	delta.Mod(delta, modulus)
	candidate := new(big.Int).Add(start, delta)
	if candidate.Cmp(low) < 0 {
		candidate.Add(candidate, modulus)
	}

	for step := 0; step < maxSteps && candidate.Cmp(high) <= 0; step++ {
		if candidate.Bit(0) == 1 && deepPrime(candidate) {
			if predicate == nil || predicate(candidate) {
				return new(big.Int).Set(candidate), true
			}
		}
		candidate.Add(candidate, modulus)
	}
	return nil, false
}
