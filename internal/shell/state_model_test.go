package shell_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/calvinalkan/projects/internal/testutil"
)

func Test_Shell_Matches_Model_When_Curated_Seed_Applied(t *testing.T) {
	t.Parallel()

	for _, seed := range testutil.CuratedSeeds() {
		t.Run(seed.Name, func(t *testing.T) {
			t.Parallel()

			cfg := testutil.DefaultRunConfig()
			cfg.CompareStateEveryN = 1

			testutil.RunBehaviorWithSeed(t, seed.Data, cfg)
		})
	}
}

func Test_Shell_Matches_Model_When_Seeded_Random_Ops_Applied(t *testing.T) {
	t.Parallel()

	seedsCount := 20
	if testing.Short() {
		seedsCount = 5
	}

	for seedIndex := range seedsCount {
		seed := uint64(seedIndex + 1)
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewPCG(seed, seed))
			fuzzBytes := make([]byte, 2048)
			fillRandom(rng, fuzzBytes)

			cfg := testutil.DefaultRunConfig()
			cfg.MaxOps = 300

			testutil.RunBehaviorWithSeed(t, fuzzBytes, cfg)
		})
	}
}

func FuzzShell_Matches_Model(f *testing.F) {
	for _, seed := range testutil.CuratedSeeds() {
		f.Add(seed.Data)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg := testutil.DefaultRunConfig()
		cfg.MaxOps = 200

		testutil.RunBehaviorWithSeed(t, data, cfg)
	})
}

func fillRandom(rng *rand.Rand, dst []byte) {
	for i := range dst {
		dst[i] = byte(rng.Uint32())
	}
}
