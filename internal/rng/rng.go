// Package rng provides the deterministic, splittable 64-bit generator the
// candidate generators use: a single int64 seed from the task descriptor
// must produce an identical sequence of candidates on any platform (spec
// §5, §9). It implements xoshiro256** (Blackman & Vigna), seeded through
// splitmix64 — both fully specified, constant-for-constant public
// algorithms, chosen over an undocumented vendor PRNG (the retrieved
// reference pack held only a PCG64 test file, with no accompanying
// implementation to ground a literal port against) so every constant here
// is independently checkable.
package rng

import "math/big"

// Source is a deterministic 64-bit generator. The zero value is not usable;
// construct with New.
type Source struct {
	s [4]uint64
}

// New returns a Source seeded deterministically from seed. Two Sources
// constructed with the same seed produce identical sequences.
func New(seed int64) *Source {
	sm := splitMix64{state: uint64(seed)}
	var s Source
	for i := range s.s {
		s.s[i] = sm.next()
	}
	// xoshiro256** requires a non-zero state; splitmix64 output is
	// astronomically unlikely to be all zero, but guard anyway.
	allZero := true
	for _, v := range s.s {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		s.s[0] = 1
	}
	return &s
}

type splitMix64 struct {
	state uint64
}

func (sm *splitMix64) next() uint64 {
	sm.state += 0x9E3779B97F4A7C15
	z := sm.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func rotl(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

// Uint64 returns the next 64-bit value from the stream.
func (s *Source) Uint64() uint64 {
	result := rotl(s.s[1]*5, 7) * 9

	t := s.s[1] << 17

	s.s[2] ^= s.s[0]
	s.s[3] ^= s.s[1]
	s.s[1] ^= s.s[2]
	s.s[0] ^= s.s[3]

	s.s[2] ^= t

	s.s[3] = rotl(s.s[3], 45)

	return result
}

// Intn returns a uniform random integer in [0, n) for n > 0, reducing the
// 64-bit stream modulo n after rejecting draws that would bias the result.
// It returns 0 for n == 0.
func (s *Source) Intn(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	// Rejection sampling against the largest multiple of n that fits in
	// 64 bits avoids modulo bias.
	limit := -n % n
	for {
		v := s.Uint64()
		if v >= limit {
			return v % n
		}
	}
}

// RandomOddInRange returns a uniformly random odd integer in [low, high].
// Mirrors the original worker's random_odd_in_range: the bounds are first
// narrowed to the nearest odd values, then a random even offset is added to
// an odd floor.
func (s *Source) RandomOddInRange(low, high *big.Int) *big.Int {
	lo := new(big.Int).Set(low)
	if lo.Bit(0) == 0 {
		lo.Add(lo, big.NewInt(1))
	}
	hi := new(big.Int).Set(high)
	if hi.Bit(0) == 0 {
		hi.Sub(hi, big.NewInt(1))
	}

	span := new(big.Int).Sub(hi, lo)
	span.Rsh(span, 1)
	span.Add(span, big.NewInt(1)) // number of odd values in [lo, hi]

	k := s.bigIntn(span)
	result := new(big.Int).Lsh(k, 1)
	result.Add(result, lo)
	return result
}

// bigIntn returns a uniform random value in [0, n) for arbitrary-precision n,
// by drawing enough 64-bit words to cover n's bit length and rejecting
// draws that fall outside the largest multiple of n.
func (s *Source) bigIntn(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		return big.NewInt(0)
	}
	words := (n.BitLen() + 63) / 64
	if words == 0 {
		words = 1
	}
	bound := new(big.Int).Lsh(big.NewInt(1), uint(words*64))

	limit := new(big.Int).Mod(bound, n)
	limit.Sub(bound, limit)

	for {
		v := s.drawBits(words)
		if v.Cmp(limit) < 0 {
			return new(big.Int).Mod(v, n)
		}
	}
}

func (s *Source) drawBits(words int) *big.Int {
	v := new(big.Int)
	for i := 0; i < words; i++ {
		v.Lsh(v, 64)
		v.Or(v, new(big.Int).SetUint64(s.Uint64()))
	}
	return v
}

// IntRange returns a uniform random integer in [lo, hi].
func (s *Source) IntRange(lo, hi int) int {
	span := uint64(hi - lo + 1)
	return lo + int(s.Intn(span))
}
