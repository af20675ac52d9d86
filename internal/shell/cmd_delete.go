package shell

import (
	"context"

	"github.com/calvinalkan/projects/internal/project"
)

// RmCmd returns the rm command.
func RmCmd(store *project.Store) *Command {
	return &Command{
		Usage:   "rm <id>",
		Short:   "Ask to delete a project",
		Aliases: []string{"delete"},
		Long: `Ask to delete the project. Nothing is removed until 'yes' confirms;
'no' keeps it. A new request replaces any pending one.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			p, ok, err := lookup(store, o, args)
			if err != nil || !ok {
				return err
			}

			store.RequestDelete(p.ID)

			o.Printf("Delete project %q (%s)? This action can't be undone.\n", p.Name, p.ID)
			o.Println("Type 'yes' to delete or 'no' to keep it.")

			return nil
		},
	}
}

// YesCmd returns the yes command.
func YesCmd(store *project.Store) *Command {
	return &Command{
		Usage: "yes",
		Short: "Confirm the pending delete",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			id := store.PendingDeleteID()
			if id == "" {
				o.Warn("no delete pending", "run 'rm <id>' first")

				return nil
			}

			store.ConfirmDelete()

			o.Println("deleted", id)

			return nil
		},
	}
}

// NoCmd returns the no command.
func NoCmd(store *project.Store) *Command {
	return &Command{
		Usage: "no",
		Short: "Keep the project and close the delete prompt",
		Exec: func(_ context.Context, _ *IO, _ []string) error {
			store.CancelDelete()

			return nil
		},
	}
}
