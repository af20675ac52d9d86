package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/projects/internal/testutil/spec"
)

// RunConfig configures a behavior test run.
type RunConfig struct {
	// MaxOps is the maximum number of operations to execute.
	MaxOps int

	// CompareStateEveryN runs full state comparison every N operations.
	// Set to 0 to disable periodic checks (only check at end).
	CompareStateEveryN int

	// CompareOutputs enables output comparison for add, yes, ls and show.
	// When false, only success/failure is compared.
	CompareOutputs bool
}

// DefaultRunConfig returns a balanced configuration for behavior tests.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		MaxOps:             100,
		CompareStateEveryN: 10,
		CompareOutputs:     true,
	}
}

// RunBehaviorWithSeed executes the ops encoded in seed against the real
// shell and the model, failing tb at the first divergence.
func RunBehaviorWithSeed(tb testing.TB, seed []byte, cfg RunConfig) {
	tb.Helper()

	if cfg.MaxOps <= 0 {
		tb.Fatalf("RunBehaviorWithSeed requires MaxOps > 0")
	}

	h := NewHarness(tb)
	genCfg := DefaultOpGenConfig()
	gen := NewOpGenerator(seed, h.Model, &genCfg)
	history := make([]string, 0, cfg.MaxOps)

	for opIndex := 1; opIndex <= cfg.MaxOps && gen.HasMore(); opIndex++ {
		op := gen.NextOp()
		history = append(history, op.String())

		modelRes, realRes := h.Apply(op)

		err := compareResults(op, &modelRes, &realRes, cfg.CompareOutputs)
		if err != nil {
			tb.Fatalf("%v\n%s", err, FormatOps(history))
		}

		if cfg.CompareStateEveryN > 0 && opIndex%cfg.CompareStateEveryN == 0 {
			err := CompareState(h, history)
			if err != nil {
				tb.Fatal(err)
			}
		}
	}

	err := CompareState(h, history)
	if err != nil {
		tb.Fatal(err)
	}
}

// compareResults compares model and real results.
func compareResults(op Op, modelRes, realRes *Result, compareOutputs bool) error {
	if modelRes.OK != realRes.OK {
		if modelRes.OK {
			return fmt.Errorf("model succeeded but shell failed: %s, stderr: %s", op.String(), realRes.Stderr)
		}

		return fmt.Errorf("model failed but shell succeeded: %s, model error: %w", op.String(), modelRes.Err)
	}

	if !modelRes.OK {
		var specErr *spec.Error

		_ = errors.As(modelRes.Err, &specErr)
		if !MatchesErrorBucket(specErr, realRes.Stderr) {
			return fmt.Errorf("error bucket mismatch: %s, spec error: %w, stderr: %s",
				op.String(), modelRes.Err, realRes.Stderr)
		}

		return nil
	}

	if compareOutputs && modelRes.Value != nil && realRes.Value != nil {
		if diff := cmp.Diff(modelRes.Value, realRes.Value); diff != "" {
			return fmt.Errorf("output mismatch: %s (-model +real):\n%s", op.String(), diff)
		}
	}

	return nil
}
