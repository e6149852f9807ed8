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

package primality

import "math/big"

var bpswBase2 = []*big.Int{big2}

// Backend is the capability a task executor needs to decide whether a
// candidate is a BPSW probable prime. NativeBackend is the from-scratch
// implementation below; MathBigBackend defers to the standard library.
// Any backend substituted here must agree with NativeBackend on the fixed
// vectors this package's tests pin down.
type Backend interface {
	IsBPSWProbablePrime(n *big.Int) bool
}

// BPSW runs the composite test directly: trial division by the fixed
// small-prime list, strong Miller-Rabin base 2, then Lucas-Selfridge. No
// known counterexample exists below 2^64.
func BPSW(n *big.Int) bool {
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
	if !MillerRabin(n, bpswBase2) {
		return false
	}
	return LucasSelfridge(n)
}

// NativeBackend is the default Backend: the from-scratch BPSW composite
// above. It is always available and is the implementation the fixed test
// vectors in this package are written against.
type NativeBackend struct{}

func (NativeBackend) IsBPSWProbablePrime(n *big.Int) bool {
	return BPSW(n)
}

// MathBigBackend defers to math/big's own ProbablyPrime, which has
// implemented a BPSW-family test since Go 1.8. This mirrors the teacher's
// own habit (crypto/utils/prime.go, crypto/utils/utils.go) of calling
// q.ProbablyPrime(1) rather than hand-rolling once a candidate has already
// survived cheaper filters — here offered as an optional, faster backend
// rather than the default, so the from-scratch path stays exercised.
type MathBigBackend struct{}

func (MathBigBackend) IsBPSWProbablePrime(n *big.Int) bool {
	if n.Sign() < 0 {
		return false
	}
	return n.ProbablyPrime(0)
}
