package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a shell command with unified help generation.
type Command struct {
	// Flags defines command-specific flags. Ignored for text commands.
	Flags *flag.FlagSet

	// Usage is the freeform usage string, starting with the command name.
	// Examples: "edit <id>", "ls [--json]", "draft [text]"
	Usage string

	// Short is a one-line description for the help listing.
	Short string

	// Long is the full description shown by "help <cmd>".
	// If empty, Short is used instead.
	Long string

	// Aliases are alternative names.
	Aliases []string

	// Text marks commands whose last argument is the rest of the line,
	// taken verbatim so names can contain spaces. Positional is the number
	// of whitespace-separated arguments that come before it.
	Text       bool
	Positional int

	// Exec runs the command after arguments are parsed.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine returns the short help line for the command listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-22s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for "help <cmd>".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage:", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if len(c.Aliases) > 0 {
		o.Println()
		o.Println("Aliases:", strings.Join(c.Aliases, ", "))
	}

	if !c.Text && c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses rest and executes the command. Returns exit code.
// Handles error printing internally for consistent output ordering.
func (c *Command) Run(ctx context.Context, o *IO, rest string) int {
	args, err := c.parse(rest)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln("usage:", c.Usage)

		return 1
	}

	if err := c.Exec(ctx, o, args); err != nil {
		o.ErrPrintln("error:", err)

		_ = o.Finish()

		return 1
	}

	return o.Finish()
}

func (c *Command) parse(rest string) ([]string, error) {
	if c.Text {
		return splitText(rest, c.Positional), nil
	}

	if c.Flags == nil {
		return strings.Fields(rest), nil
	}

	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	// Flag values persist on a FlagSet between parses; reset them so one
	// invocation's --json does not leak into the next.
	c.Flags.VisitAll(func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	err := c.Flags.Parse(strings.Fields(rest))
	if err != nil {
		return nil, err
	}

	return c.Flags.Args(), nil
}

// splitText splits n whitespace-separated fields off rest and returns them
// followed by whatever remains after the single separator that ends the
// last field, verbatim. If rest holds fewer than n fields, only those are
// returned.
func splitText(rest string, n int) []string {
	args := make([]string, 0, n+1)

	for range n {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return args
		}

		field, remainder := rest, ""
		if i := strings.IndexAny(rest, " \t"); i >= 0 {
			field, remainder = rest[:i], rest[i+1:]
		}

		args = append(args, field)
		rest = remainder
	}

	return append(args, rest)
}
