package generators

import "math/big"

// Chernick builds the candidate n = (6k+1)(12k+1)(18k+1), a Chernick
// number that is Carmichael exactly when all three factors are prime. When
// requirePrimeFactors is set, all three factors must pass the deep
// Miller-Rabin filter or the generator declines to produce a candidate;
// otherwise n is returned unconditionally. Chernick never fails with a
// step-budget error — it is a pure function of k.
func Chernick(k int64, requirePrimeFactors bool) (Candidate, bool) {
	bk := big.NewInt(k)
	f1 := new(big.Int).Mul(big.NewInt(6), bk)
	f1.Add(f1, big.NewInt(1))
	f2 := new(big.Int).Mul(big.NewInt(12), bk)
	f2.Add(f2, big.NewInt(1))
	f3 := new(big.Int).Mul(big.NewInt(18), bk)
	f3.Add(f3, big.NewInt(1))

	if requirePrimeFactors {
		if !deepPrime(f1) || !deepPrime(f2) || !deepPrime(f3) {
			return Candidate{}, false
		}
	}

	n := new(big.Int).Mul(f1, f2)
	n.Mul(n, f3)

	return Candidate{
		N: n,
		Meta: map[string]interface{}{
			"family":  "chernick",
			"formula": "(6k+1)(12k+1)(18k+1)",
			"k":       k,
			"factors": []string{f1.String(), f2.String(), f3.String()},
		},
	}, true
}
