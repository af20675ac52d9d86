package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/projects/internal/project"
	"github.com/calvinalkan/projects/internal/shell"
)

func Test_Run_Executes_Script_When_Stdin_Is_Not_Terminal(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)

	stdout, stderr, code := c.Run("# create one\n\nnew\ndraft Robot App\nadd\nls\n")

	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "P1", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "P1  Robot App  "), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "  normal"), lines[1])
}

func Test_Run_Continues_When_Command_Fails(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)

	stdout, stderr, code := c.Run("yes\nnew\ndraft A\nadd\n")

	assert.Equal(t, 1, code)
	assert.Equal(t, "P1\n", stdout)
	shell.AssertContains(t, stderr, "warning: no delete pending")
}

func Test_Run_Stops_When_Exit_Read(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)

	stdout, _, code := c.Run("new\nexit\ndraft A\nadd\n")

	assert.Equal(t, 0, code)
	assert.Empty(t, stdout)
}

func Test_Run_Reads_Script_When_File_Flag_Set(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)
	require.NoError(t, os.WriteFile(filepath.Join(c.Dir, "setup.txt"), []byte("new\ndraft From File\nadd\n"), 0o600))

	stdout, stderr, code := c.Run("new\ndraft From Stdin\nadd\n", "-f", "setup.txt")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "P1\n", stdout)

	_, stderr, code = c.Run("", "--file", "missing.txt")
	assert.Equal(t, 1, code)
	shell.AssertContains(t, stderr, "cannot open script")
}

func Test_Run_Uses_Project_Config_When_Present(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)
	cfg := `{
		// JSONC comments are fine
		"id_prefix": "X-",
		"date_layout": "2006-01-02",
	}`
	require.NoError(t, os.WriteFile(filepath.Join(c.Dir, ".projects.json"), []byte(cfg), 0o600))

	stdout, stderr, code := c.Run("new\ndraft A\nadd\nshow X-1\n")

	require.Equal(t, 0, code, stderr)
	shell.AssertContains(t, stdout, "X-1\n")
	shell.AssertContains(t, stdout, "id: X-1")
	assert.Regexp(t, `created: \d{4}-\d{2}-\d{2}`, stdout)
}

func Test_Run_Prints_Config_When_Flag_Set(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)

	stdout, _, code := c.Run("", "--print-config")

	assert.Equal(t, 0, code)
	shell.AssertContains(t, stdout, `"id_scheme": "counter"`)
	shell.AssertContains(t, stdout, "# defaults only")
}

func Test_Run_Fails_When_Config_Invalid(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)
	require.NoError(t, os.WriteFile(filepath.Join(c.Dir, ".projects.json"), []byte(`{"id_scheme": "sequential"}`), 0o600))

	_, stderr, code := c.Run("new\n")

	assert.Equal(t, 1, code)
	shell.AssertContains(t, stderr, "error:")
}

func Test_Run_Prints_Usage_When_Help_Flag(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)

	stdout, _, code := c.Run("", "--help")

	assert.Equal(t, 0, code)
	shell.AssertContains(t, stdout, "Usage: projects")
	shell.AssertContains(t, stdout, "--tui")
}

func Test_Run_Fails_When_Flag_Unknown(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)

	_, stderr, code := c.Run("", "--nope")
	assert.Equal(t, 1, code)
	shell.AssertContains(t, stderr, "error:")

	_, stderr, code = c.Run("", "stray")
	assert.Equal(t, 1, code)
	shell.AssertContains(t, stderr, "unexpected arguments")
}

func Test_Run_Writes_Log_When_Log_File_Configured(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)
	cfg := `{"log_file": "logs/projects.log", "log_level": "debug"}`
	require.NoError(t, os.WriteFile(filepath.Join(c.Dir, ".projects.json"), []byte(cfg), 0o600))

	_, stderr, code := c.Run("new\ndraft A\nadd\nedit P9\n")
	require.Equal(t, 1, code, stderr)

	data, err := os.ReadFile(filepath.Join(c.Dir, "logs", "projects.log"))
	require.NoError(t, err)

	shell.AssertContains(t, string(data), `"msg":"project created"`)
	shell.AssertContains(t, string(data), `"mode":"script"`)
}

func Test_Run_Returns_130_When_Interrupted(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)

	sigCh := make(chan os.Signal, 1)
	sigCh <- syscall.SIGINT

	var out, errOut bytes.Buffer

	code := shell.Run(strings.NewReader("new\ndraft A\nadd\n"), &out, &errOut,
		[]string{"projects", "--cwd", c.Dir}, c.Env, sigCh)

	assert.Equal(t, 130, code)
}

func Test_Run_Returns_130_When_Signalled_While_Stdin_Open(t *testing.T) {
	t.Parallel()

	c := shell.NewCLI(t)

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	sigCh := make(chan os.Signal, 1)
	codeCh := make(chan int, 1)

	var out, errOut bytes.Buffer

	go func() {
		codeCh <- shell.Run(pr, &out, &errOut, []string{"projects", "--cwd", c.Dir}, c.Env, sigCh)
	}()

	// The write returns once the script has read the line, so Run is
	// waiting for more input when the signal arrives.
	_, err := pw.Write([]byte("new\n"))
	require.NoError(t, err)

	sigCh <- syscall.SIGTERM

	select {
	case code := <-codeCh:
		assert.Equal(t, 130, code)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after SIGTERM while stdin was open")
	}
}

func Test_RunScript_Stops_When_Context_Cancelled_While_Waiting_For_Input(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	var out, errOut bytes.Buffer

	session := shell.NewSession(project.New(project.Options{}), nil, &out, &errOut)
	ctx, cancel := context.WithCancel(context.Background())
	codeCh := make(chan int, 1)

	go func() {
		codeCh <- shell.RunScript(ctx, session, pr, &errOut)
	}()

	_, err := pw.Write([]byte("new\n"))
	require.NoError(t, err)

	cancel()

	select {
	case code := <-codeCh:
		assert.Equal(t, 1, code)
	case <-time.After(5 * time.Second):
		t.Fatal("RunScript did not return after cancel")
	}
}
