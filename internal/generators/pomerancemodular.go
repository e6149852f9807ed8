package generators

import (
	"math/big"

	"github.com/newral/bpsw-worker/internal/bignum"
	"github.com/newral/bpsw-worker/internal/rng"
)

// BuildModConstraint combines the four Pomerance-modular congruences — 3
// mod 8, mod5Residue mod 5, 1 mod the product of mPrimes, and -1 mod the
// product of nPrimes — into a single residue/modulus pair via repeated CRT
// combination. A modulus of 1 for an empty prime list is a no-op
// congruence and is skipped.
func BuildModConstraint(mPrimes, nPrimes []*big.Int, mod5Residue int64) (residue, modulus *big.Int, err error) {
	residue = big.NewInt(0)
	modulus = big.NewInt(1)

	mProduct := product(mPrimes)
	nProduct := product(nPrimes)
	negOneModN := new(big.Int).Mod(big.NewInt(-1), nProduct)

	type constraint struct {
		a, m *big.Int
	}
	constraints := []constraint{
		{bigThree, bigEight},
		{new(big.Int).Mod(big.NewInt(mod5Residue), big.NewInt(5)), big.NewInt(5)},
		{big.NewInt(1), mProduct},
		{negOneModN, nProduct},
	}

	for _, c := range constraints {
		if c.m.Cmp(big.NewInt(1)) == 0 {
			continue
		}
		a := new(big.Int).Mod(c.a, c.m)
		r, lcm, cerr := bignum.CRTPair(
			bignum.CongruencePair{A: residue, M: modulus},
			bignum.CongruencePair{A: a, M: c.m},
		)
		if cerr != nil {
			return nil, nil, cerr
		}
		residue, modulus = r, lcm
	}

	return residue, modulus, nil
}

// PomeranceModular samples prime factors from the arithmetic progression
// fixed by BuildModConstraint until the running product reaches
// targetDigits digits with an odd factor count.
func PomeranceModular(r *rng.Source, seed int64, targetDigits, primeDigits, maxSteps int, mPrimes, nPrimes []*big.Int, mod5Residue int64) (Candidate, bool) {
	residue, modulus, err := BuildModConstraint(mPrimes, nPrimes, mod5Residue)
	if err != nil {
		return Candidate{}, false
	}

	var factors []*big.Int
	for needsMoreFactors(factors, targetDigits) {
		prime, ok := findPrimeInProgression(r, primeDigits, residue, modulus, maxSteps, nil)
		if !ok {
			return Candidate{}, false
		}
		factors = append(factors, prime)
		if len(factors) > maxFactors-1 {
			break
		}
	}

	return Candidate{
		N: product(factors),
		Meta: map[string]interface{}{
			"family":        "pomerance_modular",
			"prime_digits":  primeDigits,
			"target_digits": targetDigits,
			"modulus":       modulus.String(),
			"residue":       residue.String(),
			"mod5_residue":  mod5Residue,
			"m_primes":      factorStrings(mPrimes),
			"n_primes":      factorStrings(nPrimes),
			"factors":       factorStrings(factors),
		},
	}, true
}
