// Package view renders the project page as lipgloss-styled cards. Both the
// command shell and the TUI build their output from these pieces.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/calvinalkan/projects/internal/project"
)

// CardWidth is the outer width of a project card, borders included.
const CardWidth = 64

const (
	nameWidth    = 26
	createdWidth = 22
)

var (
	accent = lipgloss.Color("#3D3A4F")
	muted  = lipgloss.Color("#8A8F98")
	danger = lipgloss.Color("#D9363E")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D0D5E0")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.BorderForeground(accent)

	formStyle = cardStyle.BorderStyle(lipgloss.NormalBorder()).BorderForeground(accent)

	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	editingStyle = lipgloss.NewStyle().Underline(true)
	dangerStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(danger).
			Padding(0, 2)

	statusStyle = lipgloss.NewStyle().Foreground(muted).Italic(true)
)

// Title renders the page heading.
func Title() string {
	return titleStyle.Render("My Projects")
}

// Card renders one project. nameCell is the rendered name column so the
// TUI can put a text input there while the project is being edited.
func Card(nameCell string, p project.Project, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(nameWidth).Render(nameCell),
		mutedStyle.Width(createdWidth).Render("Created: "+p.CreatedDate),
		mutedStyle.Render(p.ID),
	)

	return style.Width(CardWidth - 2).Render(row)
}

// EditingName marks a name that is being edited in place.
func EditingName(name string) string {
	return editingStyle.Render("✎ " + name)
}

// AddForm renders the create form around draftCell.
func AddForm(draftCell string) string {
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		"New project: ",
		draftCell,
	)

	return formStyle.Width(CardWidth - 2).Render(row)
}

// ConfirmDelete renders the delete confirmation modal for the named project.
func ConfirmDelete(name, hint string) string {
	lines := []string{
		dangerStyle.Render("Confirm Delete"),
		"Are you sure you want to delete the project?",
		mutedStyle.Render("This action can't be undone."),
	}

	if name != "" {
		lines = append(lines, mutedStyle.Render("Project: "+name))
	}

	if hint != "" {
		lines = append(lines, "", hint)
	}

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Empty renders the placeholder shown when there are no projects.
func Empty() string {
	return mutedStyle.Render("No projects yet.")
}

// Status renders a one-line status message.
func Status(msg string) string {
	return statusStyle.Render(msg)
}

// Page renders the whole page for snap, as the shell shows it.
func Page(snap project.Snapshot) string {
	parts := []string{Title()}

	if snap.AddFormVisible {
		draft := snap.DraftName
		if draft == "" {
			draft = mutedStyle.Render("(empty)")
		}

		parts = append(parts, AddForm(draft))
	}

	for _, p := range snap.Projects {
		name := p.Name
		if p.ID == snap.EditingProjectID {
			name = EditingName(name)
		}

		parts = append(parts, Card(name, p, false))
	}

	if len(snap.Projects) == 0 && !snap.AddFormVisible {
		parts = append(parts, Empty())
	}

	if pending, ok := snap.Find(snap.PendingDeleteID); ok {
		parts = append(parts, ConfirmDelete(pending.Name, "Type 'yes' to delete or 'no' to keep it."))
	}

	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, parts...), "\n")
}
