package testutil

import (
	"testing"

	"github.com/calvinalkan/projects/internal/project"
	"github.com/calvinalkan/projects/internal/shell"
	"github.com/calvinalkan/projects/internal/testutil/spec"
)

// Harness wires together the real shell and the reference model.
type Harness struct {
	TB    testing.TB
	Shell *shell.TestShell
	Model *spec.Model
	Clock *Clock
}

// NewHarness creates a new behavior test harness. The shell issues counter
// ids (P1, P2, ...) and a new creation date per project.
func NewHarness(tb testing.TB) *Harness {
	tb.Helper()

	clock := NewClock()

	return &Harness{
		TB: tb,
		Shell: shell.NewTestShellWithOptions(tb, project.Options{
			IDs:   project.NewCounter("P"),
			Clock: clock,
		}),
		Model: spec.New(),
		Clock: clock,
	}
}

// Exec runs one command line against the real shell.
func (h *Harness) Exec(line string) Result {
	stdout, stderr, code := h.Shell.Exec(line)

	return ResultFromShell(stdout, stderr, code)
}

// Apply runs the operation against the real shell first (so it can capture
// generated ids and dates), then applies it to the model.
func (h *Harness) Apply(op Op) (Result, Result) {
	realRes := op.ApplyReal(h)
	modelRes := op.ApplyModel(h)

	return modelRes, realRes
}
