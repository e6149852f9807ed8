package generators

import (
	"math/big"

	"github.com/newral/bpsw-worker/internal/bignum"
	"github.com/newral/bpsw-worker/internal/primality"
	"github.com/newral/bpsw-worker/internal/rng"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func productOf(factors []string) *big.Int {
	p := big.NewInt(1)
	for _, f := range factors {
		v, ok := new(big.Int).SetString(f, 10)
		Expect(ok).Should(BeTrue())
		p.Mul(p, v)
	}
	return p
}

var _ = Describe("Chernick", func() {
	DescribeTable("known factorizations",
		func(k int64, requirePrime bool, wantN int64, wantOK bool) {
			c, ok := Chernick(k, requirePrime)
			Expect(ok).Should(Equal(wantOK))
			if wantOK {
				Expect(c.N.Int64()).Should(Equal(wantN))
				Expect(productOf(c.Meta["factors"].([]string))).Should(Equal(c.N))
			}
		},
		Entry("k=1 unconstrained -> 1729", int64(1), false, int64(1729), true),
		Entry("k=1 requiring prime factors -> 1729, 7*13*19 all prime", int64(1), true, int64(1729), true),
		Entry("k=6 requiring prime factors -> 294409, 37*73*109 all prime", int64(6), true, int64(294409), true),
	)

	It("declines when a required factor is composite", func() {
		// k=2: factors 13, 25, 37 -- 25 is composite.
		_, ok := Chernick(2, true)
		Expect(ok).Should(BeFalse())
	})
})

var _ = Describe("PomeranceLite", func() {
	It("only ever returns factors satisfying p%8==3 and jacobi(5,p)==-1, in odd count", func() {
		for seed := int64(1); seed <= 20; seed++ {
			r := rng.New(seed)
			c, ok := PomeranceLite(r, seed, 10, 3, 5000)
			if !ok {
				continue
			}
			factors := c.Meta["factors"].([]string)
			Expect(len(factors) % 2).Should(Equal(1))
			for _, fs := range factors {
				f, _ := new(big.Int).SetString(fs, 10)
				Expect(new(big.Int).Mod(f, bigEight)).Should(Equal(bigThree))
				Expect(bignum.Jacobi(bigFive, f)).Should(Equal(-1))
				Expect(primality.DeepProbablePrime(f)).Should(BeTrue())
			}
			Expect(productOf(factors)).Should(Equal(c.N))
		}
	})
})

var _ = Describe("PomeranceModular", func() {
	It("only returns factors satisfying the composed CRT constraint", func() {
		mPrimes := []*big.Int{big.NewInt(11), big.NewInt(13)}
		nPrimes := []*big.Int{big.NewInt(17), big.NewInt(19)}
		residue, modulus, err := BuildModConstraint(mPrimes, nPrimes, 2)
		Expect(err).ShouldNot(HaveOccurred())

		for seed := int64(1); seed <= 20; seed++ {
			r := rng.New(seed)
			c, ok := PomeranceModular(r, seed, 8, 3, 5000, mPrimes, nPrimes, 2)
			if !ok {
				continue
			}
			factors := c.Meta["factors"].([]string)
			Expect(len(factors) % 2).Should(Equal(1))
			for _, fs := range factors {
				f, _ := new(big.Int).SetString(fs, 10)
				got := new(big.Int).Mod(f, modulus)
				Expect(got).Should(Equal(residue))
			}
			Expect(productOf(factors)).Should(Equal(c.N))
		}
	})

	It("returns the same residue/modulus pair as a direct CRT chain", func() {
		residue, modulus, err := BuildModConstraint(nil, nil, 2)
		Expect(err).ShouldNot(HaveOccurred())
		// With empty m/n prime lists, only the (3 mod 8) and (2 mod 5)
		// constraints are live.
		r, m, err := bignum.CRTPair(
			bignum.CongruencePair{A: big.NewInt(3), M: big.NewInt(8)},
			bignum.CongruencePair{A: big.NewInt(2), M: big.NewInt(5)},
		)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(residue).Should(Equal(r))
		Expect(modulus).Should(Equal(m))
	})
})

var _ = Describe("LambdaPlusOne", func() {
	It("never returns p <= 2 and respects require_prime", func() {
		factors := []LambdaFactor{{Base: big.NewInt(2), MaxExp: 4}, {Base: big.NewInt(3), MaxExp: 2}}
		for seed := int64(1); seed <= 30; seed++ {
			r := rng.New(seed)
			c, ok := LambdaPlusOne(r, seed, 3, factors, true, 5000)
			if !ok {
				continue
			}
			for _, fs := range c.Meta["factors"].([]string) {
				f, _ := new(big.Int).SetString(fs, 10)
				Expect(f.Cmp(big.NewInt(2))).Should(BeNumerically(">", 0))
				Expect(primality.DeepProbablePrime(f)).Should(BeTrue())
			}
			Expect(productOf(c.Meta["factors"].([]string))).Should(Equal(c.N))
		}
	})
})
