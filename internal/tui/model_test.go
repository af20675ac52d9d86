package tui_test

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/projects/internal/config"
	"github.com/calvinalkan/projects/internal/project"
	"github.com/calvinalkan/projects/internal/tui"
)

func newModel(t *testing.T) (tui.Model, *project.Store) {
	t.Helper()

	store := project.New(project.Options{
		IDs:   project.NewCounter("P"),
		Clock: project.ClockFunc(func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }),
	})

	return tui.New(store, config.Default().Keys), store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m tui.Model, msgs ...tea.Msg) tui.Model {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)

		var ok bool

		m, ok = next.(tui.Model)
		require.True(t, ok)
	}

	return m
}

func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, runes(string(r)))
	}

	return msgs
}

func Test_Model_Creates_Project_When_Draft_Submitted(t *testing.T) {
	t.Parallel()

	m, store := newModel(t)

	m = send(t, m, runes("a"))
	assert.True(t, store.AddFormVisible())

	m = send(t, m, typeText("Robot App")...)
	assert.Equal(t, "Robot App", store.DraftName(), "draft follows keystrokes")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	snap := store.Snapshot()
	require.Len(t, snap.Projects, 1)
	assert.Equal(t, project.Project{ID: "P1", Name: "Robot App", CreatedDate: "3/14/2025"}, snap.Projects[0])
	assert.False(t, snap.AddFormVisible)
	assert.Contains(t, m.View(), "Created P1.")
}

func Test_Model_Keeps_Form_When_Draft_Empty(t *testing.T) {
	t.Parallel()

	m, store := newModel(t)

	m = send(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, store.Len())
	assert.True(t, store.AddFormVisible())
	assert.Contains(t, m.View(), "Project name is required.")
}

func Test_Model_Renames_Live_When_Editing(t *testing.T) {
	t.Parallel()

	m, store := newModel(t)

	m = send(t, m, runes("a"))
	m = send(t, m, typeText("Robot")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = send(t, m, runes("e"))
	require.Equal(t, "P1", store.EditingID())

	m = send(t, m, typeText(" X")...)
	p, _ := store.Project("P1")
	assert.Equal(t, "Robot X", p.Name, "each keystroke is applied")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	p, _ = store.Project("P1")
	assert.Equal(t, "Robot ", p.Name)

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, store.EditingID())
}

func Test_Model_Deletes_Project_When_Confirmed(t *testing.T) {
	t.Parallel()

	m, store := newModel(t)

	m = send(t, m, runes("a"))
	m = send(t, m, typeText("Doomed")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = send(t, m, runes("d"))
	require.Equal(t, "P1", store.PendingDeleteID())
	assert.Contains(t, m.View(), "Confirm Delete")

	m = send(t, m, runes("e"))
	assert.Empty(t, store.EditingID(), "list keys are ignored while the modal is open")

	m = send(t, m, runes("y"))
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.PendingDeleteID())
	assert.Contains(t, m.View(), "No projects yet.")
}

func Test_Model_Keeps_Project_When_Delete_Cancelled(t *testing.T) {
	t.Parallel()

	m, store := newModel(t)

	m = send(t, m, runes("a"))
	m = send(t, m, typeText("Keeper")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("d"), runes("n"))

	assert.Equal(t, 1, store.Len())
	assert.Empty(t, store.PendingDeleteID())
	assert.NotContains(t, m.View(), "Confirm Delete")
}

func Test_Model_Leaves_Edit_When_Edited_Project_Deleted(t *testing.T) {
	t.Parallel()

	m, store := newModel(t)

	m = send(t, m, runes("a"))
	m = send(t, m, typeText("A")...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("e"))
	require.Equal(t, "P1", store.EditingID())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Equal(t, "P1", store.PendingDeleteID())

	m = send(t, m, runes("y"))
	assert.Empty(t, store.EditingID())
	assert.Equal(t, 0, store.Len())

	// back in list mode: 'a' opens the form instead of typing into an editor
	send(t, m, runes("a"))
	assert.True(t, store.AddFormVisible())
}

func Test_Model_Moves_Cursor_When_Navigating(t *testing.T) {
	t.Parallel()

	m, store := newModel(t)

	for _, name := range []string{"A", "B"} {
		m = send(t, m, runes("a"))
		m = send(t, m, typeText(name)...)
		m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}

	m = send(t, m, runes("k"), runes("k"), runes("e"))
	assert.Equal(t, "P1", store.EditingID(), "cursor stops at the first card")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyDown}, runes("j"), runes("e"))
	assert.Equal(t, "P2", store.EditingID(), "cursor stops at the last card")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
}

func Test_Model_Quits_When_Quit_Key_Pressed(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func Test_Model_Keeps_Cursor_Blinking_When_Text_Field_Focused(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t)

	_, cmd := m.Update(textinput.Blink())
	assert.Nil(t, cmd, "no field focused in the list")

	m = send(t, m, runes("a"))

	_, cmd = m.Update(textinput.Blink())
	assert.NotNil(t, cmd, "draft field schedules the next blink")
}
