// Package spec defines an in-memory oracle for the observable semantics of
// the projects shell.
//
// This is the source of truth for what correct behavior looks like. If the
// real shell disagrees with this model, the shell is wrong. Fuzz and seed
// tests drive both with the same commands and compare the results.
//
// Design principles:
//
//   - Simple over performant. The code should be obviously correct by
//     inspection.
//
//   - No dependencies beyond the standard library.
//
//   - Panics indicate bugs in the model itself. Errors indicate commands the
//     real shell should also reject.
//
// Input conventions:
//
//   - UserXxxInput structs hold what the user types after the command name.
//
//   - FuzzXxxInput structs hold values the real shell produces on its own
//     (ids, dates). The model does not generate them; the harness passes
//     them in. When a method needs both, the order is (user, fuzz).
package spec

import (
	"fmt"
	"slices"
	"strings"
)

// ErrCode is a stable error code for programmatic error handling.
type ErrCode string

// Stable error codes.
const (
	ErrIDRequired      ErrCode = "id_required"
	ErrProjectNotFound ErrCode = "project_not_found"
	ErrNameRequired    ErrCode = "name_required"
	ErrFormNotOpen     ErrCode = "form_not_open"
	ErrNotEditing      ErrCode = "not_editing"
	ErrNoPendingDelete ErrCode = "no_pending_delete"
	ErrIDReused        ErrCode = "id_reused"
)

// KV is a key-value pair for error context.
type KV struct {
	K string
	V string
}

// Error is a structured error with a code and context.
type Error struct {
	Code    ErrCode
	Context []KV
}

// Error formats the error as logfmt: code=xxx key="value".
func (e *Error) Error() string {
	var builder strings.Builder
	builder.WriteString("code=")
	builder.WriteString(string(e.Code))

	for _, kv := range e.Context {
		builder.WriteString(" ")
		builder.WriteString(kv.K)
		builder.WriteString("=")
		fmt.Fprintf(&builder, "%q", kv.V)
	}

	return builder.String()
}

func newErr(code ErrCode, kvs ...KV) *Error {
	return &Error{Code: code, Context: kvs}
}

func kv(k, v string) KV {
	return KV{K: k, V: v}
}

// Project is one entry in the list.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedDate string `json:"created_date"`
}

// Listed is a project with its derived state, as ls and show report it.
type Listed struct {
	Project

	Status string `json:"status"`
}

// State is the whole observable state, shaped like the shell's 'state'
// output.
type State struct {
	Projects         []Project `json:"projects"`
	EditingProjectID string    `json:"editing_project_id"`
	PendingDeleteID  string    `json:"pending_delete_id"`
	AddFormVisible   bool      `json:"add_form_visible"`
	DraftName        string    `json:"draft_name"`
}

// Model is the oracle.
type Model struct {
	projects    []Project
	editingID   string
	pendingID   string
	formVisible bool
	draft       string
	issued      []string
}

// New returns an empty model.
func New() *Model {
	return &Model{projects: []Project{}}
}

// UserDraftInput is the text after 'draft'.
type UserDraftInput struct {
	Text string
}

// FuzzAddInput carries what the shell generated for a new project.
type FuzzAddInput struct {
	ID          string
	CreatedDate string
}

// UserIDInput is a command whose only argument is a project id.
type UserIDInput struct {
	ID string
}

// UserRenameInput is the id and text after 'rename'.
type UserRenameInput struct {
	ID   string
	Text string
}

// ShowForm opens the create form. It never fails.
func (m *Model) ShowForm() {
	m.formVisible = true
}

// Draft replaces the draft name.
func (m *Model) Draft(user UserDraftInput) error {
	if !m.formVisible {
		return newErr(ErrFormNotOpen)
	}

	m.draft = user.Text

	return nil
}

// Add creates a project from the draft and returns its id.
func (m *Model) Add(fuzz FuzzAddInput) (string, error) {
	if !m.formVisible {
		return "", newErr(ErrFormNotOpen)
	}

	if m.draft == "" {
		return "", newErr(ErrNameRequired)
	}

	if fuzz.ID == "" || slices.Contains(m.issued, fuzz.ID) {
		return "", newErr(ErrIDReused, kv("id", fuzz.ID))
	}

	m.projects = append(m.projects, Project{ID: fuzz.ID, Name: m.draft, CreatedDate: fuzz.CreatedDate})
	m.issued = append(m.issued, fuzz.ID)
	m.draft = ""
	m.formVisible = false

	return fuzz.ID, nil
}

// Edit puts a project in edit mode, ending any other edit.
func (m *Model) Edit(user UserIDInput) error {
	if _, err := m.find(user.ID); err != nil {
		return err
	}

	m.editingID = user.ID

	return nil
}

// Rename replaces the name of the project being edited.
func (m *Model) Rename(user UserRenameInput) error {
	i, err := m.find(user.ID)
	if err != nil {
		return err
	}

	if m.editingID != user.ID {
		return newErr(ErrNotEditing, kv("id", user.ID))
	}

	m.projects[i].Name = user.Text

	return nil
}

// Done leaves edit mode for the project; a no-op if it is not edited.
func (m *Model) Done(user UserIDInput) error {
	if _, err := m.find(user.ID); err != nil {
		return err
	}

	if m.editingID == user.ID {
		m.editingID = ""
	}

	return nil
}

// Remove marks the project pending delete, replacing any earlier request.
func (m *Model) Remove(user UserIDInput) error {
	if _, err := m.find(user.ID); err != nil {
		return err
	}

	m.pendingID = user.ID

	return nil
}

// Yes deletes the pending project and returns its id.
func (m *Model) Yes() (string, error) {
	if m.pendingID == "" {
		return "", newErr(ErrNoPendingDelete)
	}

	id := m.pendingID

	i, err := m.find(id)
	if err != nil {
		panic(fmt.Sprintf("spec: pending delete %q is not in the list", id))
	}

	m.projects = slices.Delete(m.projects, i, i+1)
	m.pendingID = ""

	if m.editingID == id {
		m.editingID = ""
	}

	return id, nil
}

// No closes the delete prompt. It never fails.
func (m *Model) No() {
	m.pendingID = ""
}

// List returns all projects in creation order.
func (m *Model) List() []Listed {
	out := make([]Listed, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, m.listed(p))
	}

	return out
}

// Show returns one project.
func (m *Model) Show(user UserIDInput) (Listed, error) {
	i, err := m.find(user.ID)
	if err != nil {
		return Listed{}, err
	}

	return m.listed(m.projects[i]), nil
}

// IDs returns the ids of all projects in creation order.
func (m *Model) IDs() []string {
	ids := make([]string, 0, len(m.projects))
	for _, p := range m.projects {
		ids = append(ids, p.ID)
	}

	return ids
}

// PendingDeleteID returns the id waiting for confirmation, or "".
func (m *Model) PendingDeleteID() string {
	return m.pendingID
}

// EditingID returns the id in edit mode, or "".
func (m *Model) EditingID() string {
	return m.editingID
}

// FormVisible reports whether the create form is open.
func (m *Model) FormVisible() bool {
	return m.formVisible
}

// DraftName returns the draft name.
func (m *Model) DraftName() string {
	return m.draft
}

// State returns a copy of the whole state.
func (m *Model) State() State {
	return State{
		Projects:         slices.Clone(m.projects),
		EditingProjectID: m.editingID,
		PendingDeleteID:  m.pendingID,
		AddFormVisible:   m.formVisible,
		DraftName:        m.draft,
	}
}

func (m *Model) find(id string) (int, error) {
	if id == "" {
		return -1, newErr(ErrIDRequired)
	}

	for i, p := range m.projects {
		if p.ID == id {
			return i, nil
		}
	}

	return -1, newErr(ErrProjectNotFound, kv("id", id))
}

func (m *Model) listed(p Project) Listed {
	status := "normal"

	switch p.ID {
	case m.pendingID:
		status = "pending-delete"
	case m.editingID:
		status = "editing"
	}

	return Listed{Project: p, Status: status}
}
