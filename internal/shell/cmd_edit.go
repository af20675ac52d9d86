package shell

import (
	"context"
	"fmt"

	"github.com/calvinalkan/projects/internal/project"
)

// lookup resolves the id in args[0]. A missing id is an error; an unknown
// one is a warning, so callers just return when ok is false.
func lookup(store *project.Store, o *IO, args []string) (project.Project, bool, error) {
	if len(args) == 0 || args[0] == "" {
		return project.Project{}, false, errIDRequired
	}

	p, ok := store.Project(args[0])
	if !ok {
		o.Warn("project not found", args[0])

		return project.Project{}, false, nil
	}

	return p, true, nil
}

// EditCmd returns the edit command.
func EditCmd(store *project.Store) *Command {
	return &Command{
		Usage: "edit <id>",
		Short: "Start editing a project's name",
		Long: `Put the project in edit mode. Only one project is edited at a time;
starting an edit ends any other.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			p, ok, err := lookup(store, o, args)
			if err != nil || !ok {
				return err
			}

			store.StartEdit(p.ID)

			return nil
		},
	}
}

// RenameCmd returns the rename command.
func RenameCmd(store *project.Store) *Command {
	return &Command{
		Usage: "rename <id> [text]",
		Short: "Replace the name of the project being edited",
		Long: `Replace the name of the project with text, taken verbatim from the
rest of the line. The change is applied immediately. The project must be in
edit mode.`,
		Text:       true,
		Positional: 1,
		Exec: func(_ context.Context, o *IO, args []string) error {
			p, ok, err := lookup(store, o, args)
			if err != nil || !ok {
				return err
			}

			if !store.IsEditing(p.ID) {
				o.Warn(fmt.Sprintf("project %s is not in edit mode", p.ID), fmt.Sprintf("run 'edit %s' first", p.ID))

				return nil
			}

			text := ""
			if len(args) > 1 {
				text = args[1]
			}

			store.UpdateProjectName(p.ID, text)

			return nil
		},
	}
}

// DoneCmd returns the done command.
func DoneCmd(store *project.Store) *Command {
	return &Command{
		Usage: "done <id>",
		Short: "Leave edit mode",
		Long:  "Leave edit mode for the project. Does nothing if it is not being edited.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			p, ok, err := lookup(store, o, args)
			if err != nil || !ok {
				return err
			}

			store.ConfirmEdit(p.ID)

			return nil
		},
	}
}
