// Package tui is the full-screen interface over a project store.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calvinalkan/projects/internal/config"
	"github.com/calvinalkan/projects/internal/project"
	"github.com/calvinalkan/projects/internal/view"
)

const nameLimit = 120

type focus int

const (
	focusList focus = iota
	focusDraft
	focusEdit
)

// Model is the bubbletea model. All store calls happen inside Update.
type Model struct {
	store  *project.Store
	keys   keyMap
	help   help.Model
	input  textinput.Model
	focus  focus
	cursor int
	status string
}

// New returns a model over store using the given key bindings.
func New(store *project.Store, keys config.Keys) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = nameLimit

	return Model{
		store: store,
		keys:  newKeyMap(keys),
		help:  help.New(),
		input: ti,
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, store *project.Store, keys config.Keys, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(store, keys),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}

	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		var cmd tea.Cmd

		switch {
		case m.store.PendingDeleteID() != "":
			m = m.updateModal(msg)
		case m.focus == focusDraft:
			m, cmd = m.updateDraft(msg)
		case m.focus == focusEdit:
			m, cmd = m.updateEdit(msg)
		default:
			m, cmd = m.updateList(msg)
		}

		m = m.sync()

		return m, cmd

	default:
		// Cursor blinks and other field messages.
		if m.focus != focusList {
			var cmd tea.Cmd

			m.input, cmd = m.input.Update(msg)

			return m, cmd
		}
	}

	return m, nil
}

func (m Model) updateModal(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.store.ConfirmDelete()
		m.status = "Project deleted."
	case key.Matches(msg, m.keys.Cancel):
		m.store.CancelDelete()
		m.status = ""
	}

	return m
}

func (m Model) updateDraft(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		p, ok := m.store.CommitCreate()
		if !ok {
			m.status = "Project name is required."

			return m, nil
		}

		m.status = "Created " + p.ID + "."
		m.cursor = m.store.Len() - 1
		m.focus = focusList
		m.input.Blur()

		return m, nil

	case key.Matches(msg, m.keys.Leave):
		m.focus = focusList
		m.input.Blur()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.store.UpdateDraftName(m.input.Value())

	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (Model, tea.Cmd) {
	id := m.store.EditingID()

	switch {
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Leave):
		m.store.ConfirmEdit(id)
		m.focus = focusList
		m.input.Blur()

		return m, nil

	case key.Matches(msg, m.keys.Remove):
		m.store.RequestDelete(id)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.store.UpdateProjectName(id, m.input.Value())

	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	selected, hasSelection := m.selected()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		m.store.ShowCreateForm()
		m.focus = focusDraft
		m.status = ""
		m.input.SetValue(m.store.DraftName())
		m.input.CursorEnd()

		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Edit) && hasSelection:
		m.store.StartEdit(selected.ID)
		m.focus = focusEdit
		m.status = ""
		m.input.SetValue(selected.Name)
		m.input.CursorEnd()

		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Delete) && hasSelection:
		m.store.RequestDelete(selected.ID)
	}

	return m, nil
}

// sync brings focus and cursor back in line with the store, which may have
// dropped the edited project.
func (m Model) sync() Model {
	if m.focus == focusEdit && m.store.EditingID() == "" {
		m.focus = focusList
		m.input.Blur()
	}

	if n := m.store.Len(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}

	return m
}

func (m Model) selected() (project.Project, bool) {
	projects := m.store.Projects()
	if m.cursor < 0 || m.cursor >= len(projects) {
		return project.Project{}, false
	}

	return projects[m.cursor], true
}

// View implements tea.Model.
func (m Model) View() string {
	snap := m.store.Snapshot()
	parts := []string{view.Title()}

	if snap.AddFormVisible {
		draft := snap.DraftName
		if m.focus == focusDraft {
			draft = m.input.View()
		}

		parts = append(parts, view.AddForm(draft))
	}

	for i, p := range snap.Projects {
		name := p.Name

		if p.ID == snap.EditingProjectID {
			name = view.EditingName(name)
			if m.focus == focusEdit {
				name = m.input.View()
			}
		}

		parts = append(parts, view.Card(name, p, i == m.cursor))
	}

	if len(snap.Projects) == 0 && !snap.AddFormVisible {
		parts = append(parts, view.Empty())
	}

	bindings := m.keys.list()

	switch {
	case snap.PendingDeleteID != "":
		pending, _ := snap.Find(snap.PendingDeleteID)
		parts = append(parts, view.ConfirmDelete(pending.Name, ""))
		bindings = m.keys.modal()
	case m.focus == focusDraft:
		bindings = m.keys.draft()
	case m.focus == focusEdit:
		bindings = m.keys.edit()
	}

	if m.status != "" {
		parts = append(parts, view.Status(m.status))
	}

	parts = append(parts, "", m.help.View(bindings))

	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, parts...), "\n") + "\n"
}
