package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/projects/internal/shell"
)

// scriptedEditor plays back lines, then ends with err (io.EOF by default).
type scriptedEditor struct {
	lines   []string
	err     error
	history []string
	closed  bool
}

func (e *scriptedEditor) Prompt(string) (string, error) {
	if len(e.lines) == 0 {
		if e.err != nil {
			return "", e.err
		}

		return "", io.EOF
	}

	line := e.lines[0]
	e.lines = e.lines[1:]

	return line, nil
}

func (e *scriptedEditor) AppendHistory(item string) {
	e.history = append(e.history, item)
}

func (e *scriptedEditor) ReadHistory(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			e.history = append(e.history, line)
		}
	}

	return len(e.history), nil
}

func (e *scriptedEditor) WriteHistory(w io.Writer) (int, error) {
	for _, line := range e.history {
		_, err := io.WriteString(w, line+"\n")
		if err != nil {
			return 0, err
		}
	}

	return len(e.history), nil
}

func (e *scriptedEditor) Close() error {
	e.closed = true

	return nil
}

func Test_REPL_Renders_Page_When_Store_Changes(t *testing.T) {
	t.Parallel()

	ts := shell.NewTestShell(t)
	editor := &scriptedEditor{lines: []string{"new", "draft Robot App", "add", "ls", "exit"}}

	var out bytes.Buffer

	repl := shell.NewREPL(ts.Session, editor, &out, shell.REPLOptions{Prompt: "projects> "})
	require.NoError(t, repl.Run(context.Background()))

	got := out.String()

	// banner page + one page per mutating command (new, draft, add)
	assert.Equal(t, 4, strings.Count(got, "My Projects"), got)
	shell.AssertContains(t, got, "Robot App")
	assert.True(t, editor.closed)
	assert.Equal(t, []string{"new", "draft Robot App", "add", "ls", "exit"}, editor.history)
}

func Test_REPL_Saves_History_When_Exiting(t *testing.T) {
	t.Parallel()

	ts := shell.NewTestShell(t)
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("ls\n"), 0o600))

	editor := &scriptedEditor{lines: []string{"new", "", "view"}, err: liner.ErrPromptAborted}

	var out bytes.Buffer

	repl := shell.NewREPL(ts.Session, editor, &out, shell.REPLOptions{HistoryPath: path})
	require.NoError(t, repl.Run(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ls\nnew\nview\n", string(data), "blank lines are not recorded")
}

func Test_REPL_Returns_Error_When_Input_Fails(t *testing.T) {
	t.Parallel()

	ts := shell.NewTestShell(t)
	editor := &scriptedEditor{err: errors.New("tty gone")}

	repl := shell.NewREPL(ts.Session, editor, io.Discard, shell.REPLOptions{})

	err := repl.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func Test_REPL_Stops_When_Context_Done(t *testing.T) {
	t.Parallel()

	ts := shell.NewTestShell(t)
	editor := &scriptedEditor{lines: []string{"new"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repl := shell.NewREPL(ts.Session, editor, io.Discard, shell.REPLOptions{})
	require.NoError(t, repl.Run(ctx))

	assert.False(t, ts.Store.AddFormVisible(), "no command runs after cancel")
}
