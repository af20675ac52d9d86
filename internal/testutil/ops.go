// Package testutil provides ops, seeds and a harness for model-vs-shell
// behavior tests.
package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/projects/internal/testutil/spec"
)

// Result is a generic operation result used by behavior tests.
//
// OK is true on success. Err is the model-side error (if any). Stdout,
// Stderr and ExitCode are populated for real shell runs. Value is an
// optional canonicalized payload (ids, rows) for comparisons.
type Result struct {
	OK       bool
	Err      error
	ExitCode int
	Stdout   string
	Stderr   string
	Value    any
}

// ResultFromShell creates a Result from a shell invocation.
func ResultFromShell(stdout, stderr string, exitCode int) Result {
	return Result{
		OK:       exitCode == 0,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
	}
}

// ResultFromError creates a Result from a model error.
func ResultFromError(err error) Result {
	if err == nil {
		return Result{OK: true}
	}

	var specErr *spec.Error
	if errors.As(err, &specErr) && specErr == nil {
		return Result{OK: true}
	}

	return Result{OK: false, Err: err}
}

// Op is a behavior test operation executed against model and real shell.
//
// ApplyReal runs the real command and captures its output. ApplyModel
// updates the model with the same input plus anything ApplyReal
// captured.
type Op interface {
	ApplyModel(h *Harness) Result
	ApplyReal(h *Harness) Result
	String() string
}

func row(l spec.Listed) string {
	return strings.Join([]string{l.ID, l.Name, l.CreatedDate, l.Status}, "|")
}

// line joins cmd and args with single spaces. Text arguments go last and
// keep their own leading and trailing whitespace.
func line(cmd string, args ...string) string {
	if len(args) == 0 {
		return cmd
	}

	return cmd + " " + strings.Join(args, " ")
}

// OpNew opens the create form.
type OpNew struct{}

// ApplyReal runs 'new'.
func (OpNew) ApplyReal(h *Harness) Result { return h.Exec("new") }

// ApplyModel applies new to the model.
func (OpNew) ApplyModel(h *Harness) Result {
	h.Model.ShowForm()

	return Result{OK: true}
}

func (OpNew) String() string { return "New()" }

// OpDraft sets the draft name.
type OpDraft struct {
	Text string
}

// ApplyReal runs 'draft <text>'.
func (o OpDraft) ApplyReal(h *Harness) Result { return h.Exec(line("draft", o.Text)) }

// ApplyModel applies draft to the model.
func (o OpDraft) ApplyModel(h *Harness) Result {
	return ResultFromError(h.Model.Draft(spec.UserDraftInput{Text: o.Text}))
}

func (o OpDraft) String() string { return fmt.Sprintf("Draft(%q)", o.Text) }

// OpAdd commits the draft.
type OpAdd struct {
	CreatedID   string // Set after ApplyReal succeeds
	CreatedDate string // Set after ApplyReal succeeds
}

// ApplyReal runs 'add', then reads the new project's date with show --json.
func (o *OpAdd) ApplyReal(h *Harness) Result {
	res := h.Exec("add")
	if !res.OK {
		return res
	}

	o.CreatedID = strings.TrimSpace(res.Stdout)
	res.Value = o.CreatedID

	shown := h.Exec("show " + o.CreatedID + " --json")
	if shown.OK {
		var l spec.Listed
		if err := json.Unmarshal([]byte(shown.Stdout), &l); err == nil {
			o.CreatedDate = l.CreatedDate
		}
	}

	return res
}

// ApplyModel applies add to the model.
func (o *OpAdd) ApplyModel(h *Harness) Result {
	id, err := h.Model.Add(spec.FuzzAddInput{ID: o.CreatedID, CreatedDate: o.CreatedDate})

	res := ResultFromError(err)
	if err == nil {
		res.Value = id
	}

	return res
}

func (o *OpAdd) String() string { return "Add()" }

// OpEdit starts editing a project.
type OpEdit struct {
	ID string
}

// ApplyReal runs 'edit <id>'.
func (o OpEdit) ApplyReal(h *Harness) Result { return h.Exec(line("edit", o.ID)) }

// ApplyModel applies edit to the model.
func (o OpEdit) ApplyModel(h *Harness) Result {
	return ResultFromError(h.Model.Edit(spec.UserIDInput{ID: o.ID}))
}

func (o OpEdit) String() string { return fmt.Sprintf("Edit(%s)", o.ID) }

// OpRename renames the project being edited.
type OpRename struct {
	ID   string
	Text string
}

// ApplyReal runs 'rename <id> <text>'.
func (o OpRename) ApplyReal(h *Harness) Result { return h.Exec(line("rename", o.ID, o.Text)) }

// ApplyModel applies rename to the model.
func (o OpRename) ApplyModel(h *Harness) Result {
	return ResultFromError(h.Model.Rename(spec.UserRenameInput{ID: o.ID, Text: o.Text}))
}

func (o OpRename) String() string { return fmt.Sprintf("Rename(%s, %q)", o.ID, o.Text) }

// OpDone leaves edit mode.
type OpDone struct {
	ID string
}

// ApplyReal runs 'done <id>'.
func (o OpDone) ApplyReal(h *Harness) Result { return h.Exec(line("done", o.ID)) }

// ApplyModel applies done to the model.
func (o OpDone) ApplyModel(h *Harness) Result {
	return ResultFromError(h.Model.Done(spec.UserIDInput{ID: o.ID}))
}

func (o OpDone) String() string { return fmt.Sprintf("Done(%s)", o.ID) }

// OpRemove asks to delete a project.
type OpRemove struct {
	ID string
}

// ApplyReal runs 'rm <id>'.
func (o OpRemove) ApplyReal(h *Harness) Result { return h.Exec(line("rm", o.ID)) }

// ApplyModel applies rm to the model.
func (o OpRemove) ApplyModel(h *Harness) Result {
	return ResultFromError(h.Model.Remove(spec.UserIDInput{ID: o.ID}))
}

func (o OpRemove) String() string { return fmt.Sprintf("Remove(%s)", o.ID) }

// OpYes confirms the pending delete.
type OpYes struct{}

// ApplyReal runs 'yes' and captures the deleted id.
func (OpYes) ApplyReal(h *Harness) Result {
	res := h.Exec("yes")
	if res.OK {
		res.Value = strings.TrimPrefix(strings.TrimSpace(res.Stdout), "deleted ")
	}

	return res
}

// ApplyModel applies yes to the model.
func (OpYes) ApplyModel(h *Harness) Result {
	id, err := h.Model.Yes()

	res := ResultFromError(err)
	if err == nil {
		res.Value = id
	}

	return res
}

func (OpYes) String() string { return "Yes()" }

// OpNo cancels the pending delete.
type OpNo struct{}

// ApplyReal runs 'no'.
func (OpNo) ApplyReal(h *Harness) Result { return h.Exec("no") }

// ApplyModel applies no to the model.
func (OpNo) ApplyModel(h *Harness) Result {
	h.Model.No()

	return Result{OK: true}
}

func (OpNo) String() string { return "No()" }

// OpList lists projects.
type OpList struct{}

// ApplyReal runs 'ls --json' and reduces it to rows.
func (OpList) ApplyReal(h *Harness) Result {
	res := h.Exec("ls --json")
	if !res.OK {
		return res
	}

	var listed []spec.Listed
	if err := json.Unmarshal([]byte(res.Stdout), &listed); err != nil {
		res.OK = false
		res.Stderr = "invalid ls --json output: " + err.Error()

		return res
	}

	rows := make([]string, 0, len(listed))
	for _, l := range listed {
		rows = append(rows, row(l))
	}

	res.Value = rows

	return res
}

// ApplyModel lists the model's projects.
func (OpList) ApplyModel(h *Harness) Result {
	listed := h.Model.List()

	rows := make([]string, 0, len(listed))
	for _, l := range listed {
		rows = append(rows, row(l))
	}

	return Result{OK: true, Value: rows}
}

func (OpList) String() string { return "List()" }

// OpShow shows one project.
type OpShow struct {
	ID string
}

// ApplyReal runs 'show <id> --json'.
func (o OpShow) ApplyReal(h *Harness) Result {
	res := h.Exec(line("show", o.ID, "--json"))
	if !res.OK {
		return res
	}

	var l spec.Listed
	if err := json.Unmarshal([]byte(res.Stdout), &l); err != nil {
		res.OK = false
		res.Stderr = "invalid show --json output: " + err.Error()

		return res
	}

	res.Value = row(l)

	return res
}

// ApplyModel shows the model's project.
func (o OpShow) ApplyModel(h *Harness) Result {
	l, err := h.Model.Show(spec.UserIDInput{ID: o.ID})

	res := ResultFromError(err)
	if err == nil {
		res.Value = row(l)
	}

	return res
}

func (o OpShow) String() string { return fmt.Sprintf("Show(%s)", o.ID) }

// CompareState compares the full model state with the shell's 'state'
// output.
func CompareState(h *Harness, ops []string) error {
	res := h.Exec("state")
	if !res.OK {
		return fmt.Errorf("state failed: %s\n%s", res.Stderr, FormatOps(ops))
	}

	var got spec.State
	if err := json.Unmarshal([]byte(res.Stdout), &got); err != nil {
		return fmt.Errorf("invalid state output: %w\n%s", err, FormatOps(ops))
	}

	if diff := cmp.Diff(h.Model.State(), got, cmpopts.EquateEmpty()); diff != "" {
		return fmt.Errorf("state mismatch (-model +real):\n%s\n%s", diff, FormatOps(ops))
	}

	return nil
}

// FormatOps formats the operation list for readability.
func FormatOps(ops []string) string {
	if len(ops) == 0 {
		return "Operations: (none)"
	}

	var b strings.Builder

	b.WriteString("Operations:")

	for i, op := range ops {
		b.WriteString("\n")

		if i == len(ops)-1 {
			b.WriteString("→ ")
			b.WriteString(op)
			b.WriteString("  ← divergence")
		} else {
			b.WriteString("  ")
			b.WriteString(op)
		}
	}

	return b.String()
}
