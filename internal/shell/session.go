// Package shell drives a project store from command lines, either typed at
// an interactive prompt or read from a script.
package shell

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/calvinalkan/projects/internal/project"
)

var (
	errIDRequired     = errors.New("project id is required")
	errNameRequired   = errors.New("project name is required")
	errFormClosed     = errors.New("create form is not open (run 'new' first)")
	errIDUnavailable  = errors.New("could not allocate a project id")
	errUnknownCommand = errors.New("unknown command")
)

// Session maps command lines onto one store.
type Session struct {
	store    *project.Store
	log      *zap.Logger
	out      io.Writer
	errOut   io.Writer
	commands []*Command
	byName   map[string]*Command
}

// NewSession creates a session over store writing to out and errOut.
// A nil logger disables logging.
func NewSession(store *project.Store, log *zap.Logger, out, errOut io.Writer) *Session {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		store:  store,
		log:    log,
		out:    out,
		errOut: errOut,
		byName: make(map[string]*Command),
	}

	s.register(
		NewCmd(store),
		DraftCmd(store),
		AddCmd(store),
		EditCmd(store),
		RenameCmd(store),
		DoneCmd(store),
		RmCmd(store),
		YesCmd(store),
		NoCmd(store),
		LsCmd(store),
		ShowCmd(store),
		StateCmd(store),
		ViewCmd(store),
		s.helpCmd(),
	)

	return s
}

func (s *Session) register(cmds ...*Command) {
	for _, cmd := range cmds {
		s.commands = append(s.commands, cmd)
		s.byName[cmd.Name()] = cmd

		for _, alias := range cmd.Aliases {
			s.byName[alias] = cmd
		}
	}
}

// Store returns the session's store.
func (s *Session) Store() *project.Store {
	return s.store
}

// CommandNames returns every name and alias the session accepts, sorted.
func (s *Session) CommandNames() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Exec runs one command line and returns its exit code. Blank lines and
// lines starting with '#' do nothing. Whitespace before the command name
// is ignored; text arguments keep theirs.
func (s *Session) Exec(ctx context.Context, line string) int {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return 0
	}

	line = strings.TrimRight(strings.TrimLeft(line, " \t"), "\r\n")

	name, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		name, rest = line[:i], line[i+1:]
	}

	o := NewIO(s.out, s.errOut)

	cmd, ok := s.byName[name]
	if !ok {
		o.ErrPrintln("error:", errUnknownCommand.Error()+":", name, "(type 'help' for commands)")
		s.log.Debug("command rejected", zap.String("name", name))

		return 1
	}

	code := cmd.Run(ctx, o, rest)

	s.log.Debug("command",
		zap.String("name", cmd.Name()),
		zap.Int("exit_code", code),
		zap.String("editing", s.store.EditingID()),
		zap.String("pending_delete", s.store.PendingDeleteID()),
	)

	return code
}

func (s *Session) helpCmd() *Command {
	return &Command{
		Usage:   "help [command]",
		Short:   "Show commands or help for one command",
		Aliases: []string{"?"},
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				cmd, ok := s.byName[args[0]]
				if !ok {
					return errors.New(errUnknownCommand.Error() + ": " + args[0])
				}

				cmd.PrintHelp(o)

				return nil
			}

			s.PrintHelp(o)

			return nil
		},
	}
}

// PrintHelp prints the command listing.
func (s *Session) PrintHelp(o *IO) {
	o.Println("Commands:")

	for _, cmd := range s.commands {
		o.Println(cmd.HelpLine())
	}

	o.Println()
	o.Println("At the prompt also: clear, exit")
}
