package generators

import (
	"math/big"

	"github.com/newral/bpsw-worker/internal/rng"
)

// LambdaFactor is one (base, maxExp) pair configuring the λ+1 generator: the
// exponent of base in the smooth part d is drawn uniformly from
// [0, maxExp].
type LambdaFactor struct {
	Base   *big.Int
	MaxExp int64
}

// LambdaPlusOne builds factors of the form p = d + 1, where d is a product
// of base^exp terms for each configured LambdaFactor with a uniformly
// random exponent in [0, maxExp]. p must exceed 2 and, if requirePrime is
// set, pass the deep filter; each factor search draws a fresh d up to
// maxSteps times before giving up.
func LambdaPlusOne(r *rng.Source, seed int64, targetDigits int, factors []LambdaFactor, requirePrime bool, maxSteps int) (Candidate, bool) {
	var built []*big.Int

	for needsMoreFactors(built, targetDigits) {
		p, ok := findLambdaFactor(r, factors, requirePrime, maxSteps)
		if !ok {
			return Candidate{}, false
		}
		built = append(built, p)
		if len(built) > maxFactors-1 {
			break
		}
	}

	descriptions := make([]string, len(factors))
	for i, f := range factors {
		descriptions[i] = f.Base.String() + "^" + big.NewInt(f.MaxExp).String()
	}

	return Candidate{
		N: product(built),
		Meta: map[string]interface{}{
			"family":         "lambda_plus_one",
			"lambda_factors": descriptions,
			"target_digits":  targetDigits,
			"factors":        factorStrings(built),
		},
	}, true
}

func findLambdaFactor(r *rng.Source, factors []LambdaFactor, requirePrime bool, maxSteps int) (*big.Int, bool) {
	two := big.NewInt(2)
	for attempt := 0; attempt < maxSteps; attempt++ {
		d := big.NewInt(1)
		for _, f := range factors {
			exp := r.IntRange(0, int(f.MaxExp))
			if exp == 0 {
				continue
			}
			d.Mul(d, new(big.Int).Exp(f.Base, big.NewInt(int64(exp)), nil))
		}
		p := new(big.Int).Add(d, big.NewInt(1))
		if p.Cmp(two) > 0 && (!requirePrime || deepPrime(p)) {
			return p, true
		}
	}
	return nil, false
}
