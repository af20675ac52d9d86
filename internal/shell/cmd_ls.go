package shell

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/projects/internal/project"
	"github.com/calvinalkan/projects/internal/view"
)

// listedProject is a project as ls and show print it.
type listedProject struct {
	project.Project

	Status string `json:"status"`
}

func describe(store *project.Store, p project.Project) listedProject {
	return listedProject{Project: p, Status: store.Status(p.ID).String()}
}

func printJSON(o *IO, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	o.Println(string(data))

	return nil
}

// LsCmd returns the ls command.
func LsCmd(store *project.Store) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print as a JSON array")

	return &Command{
		Flags:   fs,
		Usage:   "ls [--json]",
		Short:   "List projects in creation order",
		Aliases: []string{"list"},
		Long: `List projects in creation order, one per line: id, name, created
date and state (normal, editing or pending-delete).`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			projects := store.Projects()

			listed := make([]listedProject, 0, len(projects))
			for _, p := range projects {
				listed = append(listed, describe(store, p))
			}

			if *asJSON {
				return printJSON(o, listed)
			}

			tw := tabwriter.NewWriter(o.Out(), 0, 4, 2, ' ', 0)
			for _, p := range listed {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.CreatedDate, p.Status)
			}

			return tw.Flush()
		},
	}
}

// ShowCmd returns the show command.
func ShowCmd(store *project.Store) *Command {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print as a JSON object")

	return &Command{
		Flags: fs,
		Usage: "show <id> [--json]",
		Short: "Show one project",
		Exec: func(_ context.Context, o *IO, args []string) error {
			p, ok, err := lookup(store, o, args)
			if err != nil || !ok {
				return err
			}

			listed := describe(store, p)

			if *asJSON {
				return printJSON(o, listed)
			}

			o.Println("id:", listed.ID)
			o.Println("name:", listed.Name)
			o.Println("created:", listed.CreatedDate)
			o.Println("status:", listed.Status)

			return nil
		},
	}
}

// StateCmd returns the state command.
func StateCmd(store *project.Store) *Command {
	return &Command{
		Usage: "state",
		Short: "Print the full state as JSON",
		Long: `Print the full state as JSON: projects, the id being edited, the id
pending delete, whether the create form is open, and the draft name.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return printJSON(o, store.Snapshot())
		},
	}
}

// ViewCmd returns the view command.
func ViewCmd(store *project.Store) *Command {
	return &Command{
		Usage: "view",
		Short: "Render the project cards",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.Println(view.Page(store.Snapshot()))

			return nil
		},
	}
}
