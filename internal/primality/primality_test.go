package primality

import (
	"math/big"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func bi(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	Expect(ok).Should(BeTrue())
	return n
}

func sieve(limit int) []bool {
	isComposite := make([]bool, limit+1)
	isComposite[0], isComposite[1] = true, true
	for p := 2; p*p <= limit; p++ {
		if !isComposite[p] {
			for m := p * p; m <= limit; m += p {
				isComposite[m] = true
			}
		}
	}
	return isComposite
}

var _ = Describe("MillerRabin", func() {
	It("passes for every odd prime below 20000 with the BPSW deep-filter bases", func() {
		isComposite := sieve(20000)
		for n := 3; n < 20000; n += 2 {
			if !isComposite[n] {
				Expect(MillerRabin(big.NewInt(int64(n)), deepFilterBases)).Should(BeTrue(), "n=%d", n)
			}
		}
	})

	It("passes for every odd prime with a single non-trivial base", func() {
		isComposite := sieve(5000)
		bases := []*big.Int{big.NewInt(7)}
		for n := 3; n < 5000; n += 2 {
			if !isComposite[n] {
				Expect(MillerRabin(big.NewInt(int64(n)), bases)).Should(BeTrue(), "n=%d", n)
			}
		}
	})
})

var _ = Describe("BPSW", func() {
	It("agrees with a reference sieve on n in [0, 200000]", func() {
		isComposite := sieve(200000)
		for n := 0; n <= 200000; n++ {
			want := n >= 2 && !isComposite[n]
			Expect(BPSW(big.NewInt(int64(n)))).Should(Equal(want), "n=%d", n)
		}
	})

	It("has no false positives on Carmichael numbers below 10^6", func() {
		carmichael := []int64{
			561, 1105, 1729, 2465, 2821, 6601, 8911, 10585, 15841, 29341,
			41041, 46657, 52633, 62745, 63973, 75361, 101101, 115921, 126217,
			162401, 172081, 188461, 252601, 278545, 294409, 314821, 334153,
			340561, 399001, 410041, 449065, 488881, 512461, 530881, 552721,
			656601, 658801, 670033, 748657, 825265, 838201, 852841, 997633,
		}
		for _, c := range carmichael {
			Expect(BPSW(big.NewInt(c))).Should(BeFalse(), "n=%d", c)
		}
	})

	DescribeTable("fixed literal vectors", func(n *big.Int, want bool) {
		Expect(BPSW(n)).Should(Equal(want))
	},
		Entry("2", big.NewInt(2), true),
		Entry("3", big.NewInt(3), true),
		Entry("1000003", big.NewInt(1000003), true),
		Entry("10^18+9", bi("1000000000000000009"), true),
		Entry("1", big.NewInt(1), false),
		Entry("0", big.NewInt(0), false),
		Entry("9", big.NewInt(9), false),
		Entry("561", big.NewInt(561), false),
		Entry("1105", big.NewInt(1105), false),
		Entry("1729", big.NewInt(1729), false),
		Entry("2465", big.NewInt(2465), false),
	)

	It("agrees with MathBigBackend on a spread of values", func() {
		native := NativeBackend{}
		stdlib := MathBigBackend{}
		for n := int64(0); n < 3000; n++ {
			bn := big.NewInt(n)
			Expect(native.IsBPSWProbablePrime(bn)).Should(Equal(stdlib.IsBPSWProbablePrime(bn)), "n=%d", n)
		}
	})
})

var _ = Describe("LucasSelfridge", func() {
	It("rejects perfect squares", func() {
		for k := int64(3); k < 50; k += 2 {
			n := new(big.Int).Mul(big.NewInt(k), big.NewInt(k))
			Expect(LucasSelfridge(n)).Should(BeFalse(), "n=%d", n)
		}
	})
})

var _ = Describe("DeepProbablePrime", func() {
	It("is a necessary (not sufficient) condition used only while sampling", func() {
		Expect(DeepProbablePrime(big.NewInt(2))).Should(BeTrue())
		Expect(DeepProbablePrime(big.NewInt(97))).Should(BeTrue())
		Expect(DeepProbablePrime(big.NewInt(91))).Should(BeFalse()) // 7*13
	})
})
