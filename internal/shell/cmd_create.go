package shell

import (
	"context"

	"github.com/calvinalkan/projects/internal/project"
)

// NewCmd returns the new command.
func NewCmd(store *project.Store) *Command {
	return &Command{
		Usage: "new",
		Short: "Open the create form",
		Long: `Open the create form. The draft name starts empty; set it with
'draft <name>' and create the project with 'add'.`,
		Exec: func(_ context.Context, _ *IO, _ []string) error {
			store.ShowCreateForm()

			return nil
		},
	}
}

// DraftCmd returns the draft command.
func DraftCmd(store *project.Store) *Command {
	return &Command{
		Usage: "draft [text]",
		Short: "Set the draft name in the create form",
		Long: `Replace the draft name with text, taken verbatim from the rest of
the line. With no text the draft is cleared.`,
		Text: true,
		Exec: func(_ context.Context, _ *IO, args []string) error {
			if !store.AddFormVisible() {
				return errFormClosed
			}

			text := ""
			if len(args) > 0 {
				text = args[0]
			}

			store.UpdateDraftName(text)

			return nil
		},
	}
}

// AddCmd returns the add command.
func AddCmd(store *project.Store) *Command {
	return &Command{
		Usage:   "add",
		Short:   "Create a project from the draft and print its id",
		Aliases: []string{"create"},
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if !store.AddFormVisible() {
				return errFormClosed
			}

			if store.DraftName() == "" {
				return errNameRequired
			}

			p, ok := store.CommitCreate()
			if !ok {
				return errIDUnavailable
			}

			o.Println(p.ID)

			return nil
		},
	}
}
