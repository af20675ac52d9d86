package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/calvinalkan/projects/internal/project"
	"github.com/calvinalkan/projects/internal/view"
)

// LineEditor reads prompted lines and keeps their history.
// *liner.State implements it.
type LineEditor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
	Close() error
}

// REPL is the interactive command loop.
type REPL struct {
	session     *Session
	editor      LineEditor
	out         io.Writer
	prompt      string
	historyPath string
	log         *zap.Logger
}

// REPLOptions configures a REPL.
type REPLOptions struct {
	Prompt string

	// HistoryPath is where history is loaded from and saved to.
	// Empty disables history.
	HistoryPath string

	Logger *zap.Logger
}

// NewREPL creates a REPL reading from editor and writing to out.
func NewREPL(session *Session, editor LineEditor, out io.Writer, opts REPLOptions) *REPL {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &REPL{
		session:     session,
		editor:      editor,
		out:         out,
		prompt:      opts.Prompt,
		historyPath: opts.HistoryPath,
		log:         log,
	}
}

// newLiner returns a liner configured for session.
func newLiner(session *Session) *liner.State {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	l.SetCompleter(completer(session))

	return l
}

// Run reads commands until exit, EOF, Ctrl-C or ctx is done. The page is
// redrawn after every command that changed the store.
func (r *REPL) Run(ctx context.Context) error {
	defer func() { _ = r.editor.Close() }()

	r.loadHistory()

	dirty := false
	unsubscribe := r.session.Store().Subscribe(func(project.Snapshot) { dirty = true })

	defer unsubscribe()

	r.println("projects - type 'help' for commands.")
	r.println(view.Page(r.session.Store().Snapshot()))
	r.println()

	for ctx.Err() == nil {
		line, err := r.editor.Prompt(r.prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				r.println()

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}

		r.editor.AppendHistory(line)

		switch {
		case isExit(word):
			return r.saveHistory()
		case word == "clear" || word == "cls":
			_, _ = io.WriteString(r.out, "\033[H\033[2J")

			continue
		}

		dirty = false

		_ = r.session.Exec(ctx, line)

		if dirty {
			r.println(view.Page(r.session.Store().Snapshot()))
			r.println()
		}
	}

	return r.saveHistory()
}

func (r *REPL) println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

func (r *REPL) loadHistory() {
	if r.historyPath == "" {
		return
	}

	f, err := os.Open(r.historyPath)
	if err != nil {
		return
	}

	defer func() { _ = f.Close() }()

	_, err = r.editor.ReadHistory(f)
	if err != nil {
		r.log.Warn("reading history failed", zap.String("path", r.historyPath), zap.Error(err))
	}
}

// saveHistory replaces the history file atomically so an interrupted
// write never truncates it.
func (r *REPL) saveHistory() error {
	if r.historyPath == "" {
		return nil
	}

	var buf bytes.Buffer

	_, err := r.editor.WriteHistory(&buf)
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}

	err = atomic.WriteFile(r.historyPath, &buf)
	if err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}

func isExit(line string) bool {
	switch line {
	case "exit", "quit", "q":
		return true
	}

	return false
}

// completer completes command names, and project ids after a command.
func completer(session *Session) liner.Completer {
	return func(line string) []string {
		name, rest, hasArgs := strings.Cut(line, " ")

		if !hasArgs {
			candidates := append(session.CommandNames(), "clear", "exit")

			return withPrefix(candidates, "", line)
		}

		if strings.Contains(rest, " ") {
			return nil
		}

		ids := make([]string, 0, session.Store().Len())
		for _, p := range session.Store().Projects() {
			ids = append(ids, p.ID)
		}

		return withPrefix(ids, name+" ", rest)
	}
}

func withPrefix(candidates []string, lead, partial string) []string {
	var completions []string

	for _, c := range candidates {
		if strings.HasPrefix(c, partial) {
			completions = append(completions, lead+c)
		}
	}

	return completions
}
