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
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/newral/bpsw-worker/internal/config"
	"github.com/newral/bpsw-worker/internal/task"
	"github.com/newral/bpsw-worker/logger"

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "bpsw-worker",
	Short: "Baillie-PSW probable-prime search worker",
	Long:  `Searches for Baillie-PSW probable primes and constructs candidate counterexamples for distributed mathematical experimentation.`,
	RunE:  run,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("task-type", "", "one of main_odds, large_numbers, chernick, pomerance_lite, pomerance_modular, lambda_plus_one")
	flags.Int64("start", 0, "inclusive range start (int or k-value)")
	flags.Int64("end", 0, "inclusive range end (int or k-value)")
	flags.Int64("seed-start", 0, "inclusive seed range start (falls back to start/end if unset)")
	flags.Int64("seed-end", 0, "inclusive seed range end (falls back to start/end if unset)")
	flags.Int64("max-candidates", 0, "cap on range-mode evaluations (0 = unbounded)")
	flags.Int("target-digits", 22, "minimum product digits")
	flags.Int("prime-digits", 7, "per-factor digit count")
	flags.Int("max-steps", 5000, "generator step budget")
	flags.Bool("require-prime-factors", false, "chernick: enforce prime factors")
	flags.Bool("require-prime", false, "lambda_plus_one: require prime factors")
	flags.Int64("mod5-residue", 2, "pomerance_modular constraint")
	flags.String("m-primes", "", "pomerance_modular constraint, csv ints (default 13,17,29,37,41)")
	flags.String("n-primes", "", "pomerance_modular constraint, csv ints (default 3,7,11,19,23)")
	flags.String("lambda-factors", "", "lambda_plus_one factor spec, csv base:exp (default 2:10,3:6,5:4,7:3,11:2,13:2,17:1)")

	if err := viper.BindPFlags(flags); err != nil {
		log.Crit("Failed to bind flags", "err", err)
	}
}

func main() {
	logger.InitFromEnv()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	d, err := descriptorFromFlags()
	if err != nil {
		logger.Logger().Error("invalid task configuration", "err", err)
		return err
	}

	var exec task.Executor
	report, err := exec.Run(context.Background(), d)
	if err != nil {
		logger.Logger().Error("task failed", "task_type", d.TaskType, "err", err)
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func descriptorFromFlags() (task.Descriptor, error) {
	mPrimes, err := parsePrimeListFlag("m-primes", config.DefaultMPrimes())
	if err != nil {
		return task.Descriptor{}, err
	}
	nPrimes, err := parsePrimeListFlag("n-primes", config.DefaultNPrimes())
	if err != nil {
		return task.Descriptor{}, err
	}
	lambdaFactors, err := config.ParseLambdaFactors(viper.GetString("lambda-factors"))
	if err != nil {
		return task.Descriptor{}, err
	}

	d := task.Descriptor{
		TaskType:            viper.GetString("task-type"),
		Start:               viper.GetInt64("start"),
		End:                 viper.GetInt64("end"),
		SeedStart:           viper.GetInt64("seed-start"),
		SeedEnd:             viper.GetInt64("seed-end"),
		MaxCandidates:       viper.GetInt64("max-candidates"),
		TargetDigits:        viper.GetInt("target-digits"),
		PrimeDigits:         viper.GetInt("prime-digits"),
		MaxSteps:            viper.GetInt("max-steps"),
		RequirePrimeFactors: viper.GetBool("require-prime-factors"),
		RequirePrime:        viper.GetBool("require-prime"),
		Mod5Residue:         viper.GetInt64("mod5-residue"),
		MPrimes:             mPrimes,
		NPrimes:             nPrimes,
		LambdaFactors:       lambdaFactors,
	}

	if err := d.Validate(); err != nil {
		return task.Descriptor{}, err
	}
	return d, nil
}

func parsePrimeListFlag(name string, fallback []*big.Int) ([]*big.Int, error) {
	raw := viper.GetString(name)
	if raw == "" {
		return fallback, nil
	}
	return config.ParsePrimeList(raw)
}
