package shell

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calvinalkan/projects/internal/project"
)

// TestDate is the creation date every project gets in a TestShell.
var TestDate = time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)

// TestShell runs command lines against an in-memory session with counter
// ids (P1, P2, ...) and a fixed clock.
type TestShell struct {
	tb      testing.TB
	Session *Session
	Store   *project.Store

	out    bytes.Buffer
	errOut bytes.Buffer
}

// NewTestShell creates a new test shell.
func NewTestShell(t *testing.T) *TestShell {
	t.Helper()

	return NewTestShellWithOptions(t, project.Options{
		IDs:   project.NewCounter("P"),
		Clock: project.ClockFunc(func() time.Time { return TestDate }),
	})
}

// NewTestShellWithOptions creates a test shell over a store built from opts.
func NewTestShellWithOptions(tb testing.TB, opts project.Options) *TestShell {
	tb.Helper()

	ts := &TestShell{tb: tb}
	ts.Store = project.New(opts)
	ts.Session = NewSession(ts.Store, opts.Logger, &ts.out, &ts.errOut)

	return ts
}

// Exec runs one line and returns stdout, stderr, and exit code.
func (s *TestShell) Exec(line string) (string, string, int) {
	s.out.Reset()
	s.errOut.Reset()

	code := s.Session.Exec(context.Background(), line)

	return s.out.String(), s.errOut.String(), code
}

// MustRun runs line and fails the test if it returns non-zero.
// Returns trimmed stdout on success.
func (s *TestShell) MustRun(line string) string {
	s.tb.Helper()

	stdout, stderr, code := s.Exec(line)
	if code != 0 {
		s.tb.Fatalf("command %q failed with exit code %d\nstderr: %s", line, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail runs line and fails the test if it succeeds.
// Also fails if stdout is not empty. Returns trimmed stderr.
func (s *TestShell) MustFail(line string) string {
	s.tb.Helper()

	stdout, stderr, code := s.Exec(line)
	if code == 0 {
		s.tb.Fatalf("command %q should have failed but succeeded\nstdout: %s", line, stdout)
	}

	if stdout != "" {
		s.tb.Fatalf("command %q failed but stdout should be empty\nstdout: %s", line, stdout)
	}

	return strings.TrimSpace(stderr)
}

// CLI runs the whole program the way main does, isolated in a temp dir
// with its own HOME and XDG_CONFIG_HOME.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	home := t.TempDir()

	return &CLI{
		t:   t,
		Dir: t.TempDir(),
		Env: map[string]string{
			"HOME":            home,
			"XDG_CONFIG_HOME": filepath.Join(home, ".config"),
		},
	}
}

// Run executes the program with stdin as the script and returns stdout,
// stderr, and exit code. Args should not include the program name or
// "--cwd"; those are added automatically.
func (c *CLI) Run(stdin string, args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"projects", "--cwd", c.Dir}, args...)
	code := Run(strings.NewReader(stdin), &outBuf, &errBuf, fullArgs, c.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
