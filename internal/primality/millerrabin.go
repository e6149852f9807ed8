// Copyright © 2020 AMIS Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package primality implements the strong Miller-Rabin witness test, the
// Lucas-Selfridge probable-prime test, and their BPSW composition, plus the
// cheap multi-base "deep" filter the candidate generators use while
// searching.
package primality

import (
	"math/big"

	"github.com/newral/bpsw-worker/internal/bignum"
)

var (
	big0 = big.NewInt(0)
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
)

// deepFilterBases is the fixed base set used by DeepProbablePrime. It is
// heuristically strong for the digit ranges the generators operate in
// (roughly 10 decimal digits) but is not a deterministic test; generators
// always confirm the final product with BPSW before reporting a hit.
var deepFilterBases = intsToBig([]int64{2, 3, 5, 7, 11, 13, 17})

// smallPrimes is the trial-division list BPSW checks before running any
// probabilistic test.
var smallPrimes = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

func intsToBig(vs []int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

// MillerRabin runs the strong Fermat witness test for n against every base
// in bases. n < 2 is composite by convention, n == 2 is prime, and every
// other even n is composite. bases containing a multiple of n are skipped
// (they witness nothing). Returns true only if every base passes.
func MillerRabin(n *big.Int, bases []*big.Int) bool {
	if n.Cmp(big2) < 0 {
		return false
	}
	if n.Cmp(big2) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	nMinus1 := new(big.Int).Sub(n, big1)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	for _, a := range bases {
		if new(big.Int).Mod(a, n).Sign() == 0 {
			continue
		}

		x := bignum.ModPow(a, d, n)
		if x.Cmp(big1) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}

		witness := true
		for r := 0; r < s-1; r++ {
			x = bignum.ModPow(x, big2, n)
			if x.Cmp(nMinus1) == 0 {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

// DeepProbablePrime is the cheap multi-base filter the candidate generators
// run while sampling: trial division by the fixed small-prime list, then
// strong Miller-Rabin with bases {2,3,5,7,11,13,17}. It is not the final
// verdict — BPSW is.
func DeepProbablePrime(n *big.Int) bool {
	if n.Cmp(big2) < 0 {
		return false
	}
	for _, p := range smallPrimes {
		bp := big.NewInt(p)
		if n.Cmp(bp) == 0 {
			return true
		}
		if new(big.Int).Mod(n, bp).Sign() == 0 {
			return false
		}
	}
	return MillerRabin(n, deepFilterBases)
}
