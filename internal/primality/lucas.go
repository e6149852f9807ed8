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

import (
	"math/big"

	"github.com/newral/bpsw-worker/internal/bignum"
)

var big4 = big.NewInt(4)

// selfridgeD returns the first D in the sequence 5, -7, 9, -11, 13, ...
// (absolute value increasing by 2, sign alternating) with Jacobi(D, n) = -1.
func selfridgeD(n *big.Int) *big.Int {
	d := big.NewInt(5)
	sign := 1
	for {
		if bignum.Jacobi(d, n) == -1 {
			return d
		}
		abs := new(big.Int).Abs(d)
		abs.Add(abs, big2)
		sign = -sign
		if sign < 0 {
			d = new(big.Int).Neg(abs)
		} else {
			d = abs
		}
	}
}

// LucasSelfridge is the strong Lucas probable-prime test with Selfridge
// parameter selection, for odd n > 2. Perfect squares are rejected
// immediately (their Jacobi symbol never reaches -1, so Selfridge D
// selection would loop forever). U_d and V_d are evaluated mod n by a
// most-significant-bit-first doubling ladder over n+1 = d*2^s; the contract
// is only that the final U_d, V_d are correct mod n, not any particular
// ladder shape.
func LucasSelfridge(n *big.Int) bool {
	if bignum.IsSquare(n) {
		return false
	}

	disc := selfridgeD(n)
	q := new(big.Int).Sub(big1, disc)
	q.Rsh(q, 2) // (1-D)/4; 1-D is always divisible by 4 for D in the Selfridge sequence

	nPlus1 := new(big.Int).Add(n, big1)
	s := 0
	d := new(big.Int).Set(nPlus1)
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	u, v, qk := lucasUV(d, q, disc, n)

	if u.Sign() == 0 || v.Sign() == 0 {
		return true
	}
	for i := 0; i < s-1; i++ {
		v, qk = lucasDouble(v, qk, n)
		if v.Sign() == 0 {
			return true
		}
	}
	return false
}

// lucasUV computes (U_k, V_k, Q^k) mod n for k = d, given P=1 and the
// Selfridge Q and discriminant D, via the standard double-and-add ladder:
//
//	doubling:       U_2k = U_k*V_k, V_2k = V_k^2 - 2*Q^k, Q^2k = (Q^k)^2
//	adding one:     U_2k+1 = (U_2k + V_2k)/2, V_2k+1 = (D*U_2k + V_2k)/2, Q^2k+1 = Q^2k*Q
//
// division by 2 is modular halving mod the odd n (add n to the odd
// numerator before shifting, since n is odd this recovers the unique
// value congruent to numerator * inverse(2) mod n).
func lucasUV(d, q, disc, n *big.Int) (u, v, qk *big.Int) {
	u = big.NewInt(1)
	v = big.NewInt(1) // P = 1
	qk = new(big.Int).Set(q)

	for i := d.BitLen() - 2; i >= 0; i-- {
		u2k := mod(new(big.Int).Mul(u, v), n)
		v2k := new(big.Int).Mul(v, v)
		v2k.Sub(v2k, new(big.Int).Mul(big2, qk))
		v2k = mod(v2k, n)
		qk = mod(new(big.Int).Mul(qk, qk), n)

		u, v = u2k, v2k

		if d.Bit(i) == 1 {
			nextU := halveModN(new(big.Int).Add(u, v), n)
			dv := new(big.Int).Mul(disc, u)
			dv.Add(dv, v)
			nextV := halveModN(dv, n)

			u, v = nextU, nextV
			qk = mod(new(big.Int).Mul(qk, q), n)
		}
	}
	return u, v, qk
}

func halveModN(x, n *big.Int) *big.Int {
	r := mod(x, n)
	if r.Bit(0) == 1 {
		r.Add(r, n)
	}
	r.Rsh(r, 1)
	return mod(r, n)
}

// lucasDouble applies the doubling recurrence V <- V^2 - 2*Q^k, Q^k <- (Q^k)^2, mod n.
func lucasDouble(v, qk, n *big.Int) (newV, newQk *big.Int) {
	r := new(big.Int).Mul(v, v)
	r.Sub(r, new(big.Int).Mul(big2, qk))
	newV = mod(r, n)
	newQk = mod(new(big.Int).Mul(qk, qk), n)
	return newV, newQk
}

func mod(v, n *big.Int) *big.Int {
	return new(big.Int).Mod(v, n)
}
