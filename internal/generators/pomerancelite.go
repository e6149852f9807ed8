package generators

import (
	"math/big"

	"github.com/newral/bpsw-worker/internal/bignum"
	"github.com/newral/bpsw-worker/internal/rng"
)

var (
	bigFive  = big.NewInt(5)
	bigEight = big.NewInt(8)
	bigThree = big.NewInt(3)
)

// pomeranceLitePredicate is the Pomerance-lite factor filter: p ≡ 3 (mod 8)
// and jacobi(5, p) == -1, the residue class that keeps 5 a quadratic
// non-residue mod p.
func pomeranceLitePredicate(p *big.Int) bool {
	r := new(big.Int).Mod(p, bigEight)
	if r.Cmp(bigThree) != 0 {
		return false
	}
	return bignum.Jacobi(bigFive, p) == -1
}

// PomeranceLite samples prime factors satisfying pomeranceLitePredicate
// until the running product reaches targetDigits digits with an odd factor
// count, then returns their product. Sampling also stops once maxFactors
// factors have been drawn, and that product is returned even if it is still
// short of targetDigits. It fails if any single factor search exhausts
// maxSteps.
func PomeranceLite(r *rng.Source, seed int64, targetDigits, primeDigits, maxSteps int) (Candidate, bool) {
	var factors []*big.Int

	for needsMoreFactors(factors, targetDigits) {
		prime, ok := findPrimeWithFilters(r, primeDigits, maxSteps, pomeranceLitePredicate)
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
			"family":        "pomerance_lite",
			"prime_digits":  primeDigits,
			"target_digits": targetDigits,
			"factors":       factorStrings(factors),
		},
	}, true
}
