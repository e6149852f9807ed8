package task

import (
	"context"
	"math/big"

	"github.com/newral/bpsw-worker/internal/config"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Executor", func() {
	var exec Executor

	It("main_odds over [2,100] checks every odd integer from 3 to 99 and finds the 24 odd primes", func() {
		// start=2 rounds up to the first odd value, 3, so the even prime 2
		// is outside the domain; 3..99 step 2 is 49 candidates, of which 24
		// are prime (every prime below 100 except 2).
		d := Descriptor{TaskType: "main_odds", Start: 2, End: 100}
		r, err := exec.Run(context.Background(), d)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(r.Checked).Should(Equal(int64(49)))
		Expect(r.HitCount).Should(Equal(24))
	})

	It("main_odds over [560,562] rejects 561 as composite (Carmichael)", func() {
		d := Descriptor{TaskType: "main_odds", Start: 560, End: 562}
		r, err := exec.Run(context.Background(), d)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(r.HitCount).Should(Equal(0))
	})

	It("chernick k=1 with require-prime-factors yields 1729, zero hits", func() {
		d := Descriptor{TaskType: "chernick", Start: 1, End: 1, RequirePrimeFactors: true}
		r, err := exec.Run(context.Background(), d)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(r.Checked).Should(Equal(int64(1)))
		Expect(r.HitCount).Should(Equal(0))
	})

	It("chernick k=6 with require-prime-factors yields a generated composite candidate, zero hits", func() {
		d := Descriptor{TaskType: "chernick", Start: 6, End: 6, RequirePrimeFactors: true}
		r, err := exec.Run(context.Background(), d)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(r.HitCount).Should(Equal(0))
	})

	It("pomerance_lite over a single seed generates a product without a generation error and checks one seed", func() {
		d := Descriptor{
			TaskType:     "pomerance_lite",
			SeedStart:    1,
			SeedEnd:      1,
			TargetDigits: 10,
			PrimeDigits:  3,
			MaxSteps:     5000,
		}
		r, err := exec.Run(context.Background(), d)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(r.Checked).Should(Equal(int64(1)))
		Expect(r.Errors).Should(BeEmpty())
	})

	It("rejects a malformed chernick invocation with no range", func() {
		d := Descriptor{TaskType: "chernick"}
		_, err := exec.Run(context.Background(), d)
		Expect(err).Should(HaveOccurred())
		Expect(config.IsConfigError(err)).Should(BeTrue())
	})

	It("rejects an incompatible pomerance_modular CRT configuration", func() {
		// product(m_primes) = 4 combined with (1 mod 4) conflicts with the
		// fixed (3 mod 8) constraint: gcd(8,4)=4 does not divide 3-1=2.
		d := Descriptor{
			TaskType:     "pomerance_modular",
			SeedStart:    1,
			SeedEnd:      1,
			TargetDigits: 8,
			PrimeDigits:  3,
			MaxSteps:     5000,
			MPrimes:      []*big.Int{big.NewInt(4)},
			NPrimes:      []*big.Int{},
			Mod5Residue:  2,
		}
		_, err := exec.Run(context.Background(), d)
		Expect(err).Should(HaveOccurred())
	})
})
