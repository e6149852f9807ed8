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

// Package bignum holds the arbitrary-precision primitives the primality
// tests and candidate generators are built on: modular exponentiation,
// integer square root, the Jacobi symbol, extended GCD, and CRT combination.
package bignum

import (
	"errors"
	"math/big"
)

var (
	// ErrIncompatibleCongruences is returned by CRTPair when the two input
	// congruences cannot be combined into a single one.
	ErrIncompatibleCongruences = errors.New("bignum: incompatible congruences")

	big1 = big.NewInt(1)
)

// ModPow returns a^e mod m, in [0, m). Delegates to math/big's
// square-and-multiply implementation, which is the same primitive the
// teacher's own modexp-heavy code (Pocklington checks, paillier-style
// encryption) relies on rather than hand-rolling.
func ModPow(a, e, m *big.Int) *big.Int {
	return new(big.Int).Exp(a, e, m)
}

// ISqrt returns the largest r such that r*r <= n, for n >= 0.
func ISqrt(n *big.Int) *big.Int {
	return new(big.Int).Sqrt(n)
}

// IsSquare reports whether n is a non-negative perfect square.
func IsSquare(n *big.Int) bool {
	if n.Sign() < 0 {
		return false
	}
	r := ISqrt(n)
	return new(big.Int).Mul(r, r).Cmp(n) == 0
}

// Jacobi returns the Jacobi symbol (a|n) for odd n >= 1, following the
// standard reciprocity algorithm: 0 for n <= 0 or even n, otherwise strip
// factors of two from a (flipping sign on n mod 8 in {3,5}), then apply
// quadratic reciprocity by swapping (a, n) (flipping sign when both are
// 3 mod 4), reducing a mod n each time, until a reaches 0.
func Jacobi(a, n *big.Int) int {
	if n.Sign() <= 0 || n.Bit(0) == 0 {
		return 0
	}

	aa := new(big.Int).Mod(a, n)
	nn := new(big.Int).Set(n)
	result := 1

	eight := big.NewInt(8)
	four := big.NewInt(4)
	three := big.NewInt(3)
	five := big.NewInt(5)
	mod8 := new(big.Int)
	mod4a := new(big.Int)
	mod4n := new(big.Int)

	for aa.Sign() != 0 {
		for aa.Bit(0) == 0 {
			aa.Rsh(aa, 1)
			mod8.Mod(nn, eight)
			if mod8.Cmp(three) == 0 || mod8.Cmp(five) == 0 {
				result = -result
			}
		}
		aa, nn = nn, aa
		mod4a.Mod(aa, four)
		mod4n.Mod(nn, four)
		if mod4a.Cmp(three) == 0 && mod4n.Cmp(three) == 0 {
			result = -result
		}
		aa.Mod(aa, nn)
	}

	if nn.Cmp(big1) == 0 {
		return result
	}
	return 0
}

// ExtGCD returns (g, x, y) such that g = a*x + b*y and g >= 0, for any
// integer a, b (including negative and zero).
func ExtGCD(a, b *big.Int) (g, x, y *big.Int) {
	g, x, y = new(big.Int), new(big.Int), new(big.Int)
	g.GCD(x, y, normalizedAbs(a), normalizedAbs(b))

	if a.Sign() < 0 {
		x.Neg(x)
	}
	if b.Sign() < 0 {
		y.Neg(y)
	}
	return g, x, y
}

// normalizedAbs returns |v|; ExtGCD runs math/big's GCD on the absolute
// values and restores the signs of the Bezout coefficients itself.
func normalizedAbs(v *big.Int) *big.Int {
	return new(big.Int).Abs(v)
}

// CongruencePair is one half of the input to CRTPair: x === A (mod M).
type CongruencePair struct {
	A *big.Int
	M *big.Int
}

// CRTPair combines two congruences x === a1 (mod m1), x === a2 (mod m2) into
// a single x === r (mod lcm(m1,m2)) with 0 <= r < lcm. It fails with
// ErrIncompatibleCongruences when gcd(m1,m2) does not divide (a2 - a1).
func CRTPair(p1, p2 CongruencePair) (r, lcm *big.Int, err error) {
	g, x, _ := ExtGCD(p1.M, p2.M)
	diff := new(big.Int).Sub(p2.A, p1.A)
	rem := new(big.Int).Mod(diff, g)
	if rem.Sign() != 0 {
		return nil, nil, ErrIncompatibleCongruences
	}

	m1OverG := new(big.Int).Div(p1.M, g)
	lcm = new(big.Int).Mul(m1OverG, p2.M)

	t := new(big.Int).Div(diff, g)
	t.Mul(t, x)
	m2OverG := new(big.Int).Div(p2.M, g)
	t.Mod(t, m2OverG)

	result := new(big.Int).Mul(p1.M, t)
	result.Add(result, p1.A)
	result.Mod(result, lcm)
	return result, lcm, nil
}
