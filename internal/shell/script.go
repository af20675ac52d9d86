package shell

import (
	"bufio"
	"context"
	"io"
	"strings"
)

const maxScriptLine = 1 << 20

// RunScript executes one command per line from r. Failing commands do not
// stop the script, but make it exit with 1. It stops early at 'exit' or
// when ctx is done, even while waiting for the next line.
func RunScript(ctx context.Context, session *Session, r io.Reader, errOut io.Writer) int {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScriptLine)

	lines := make(chan string)

	var scanErr error

	go func() {
		defer close(lines)

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		scanErr = scanner.Err()
	}()

	failed := false

	for {
		var (
			line string
			ok   bool
		)

		select {
		case <-ctx.Done():
			return 1
		case line, ok = <-lines:
		}

		if !ok {
			break
		}

		if ctx.Err() != nil {
			return 1
		}

		if isExit(strings.TrimSpace(line)) {
			return exitCode(failed)
		}

		if session.Exec(ctx, line) != 0 {
			failed = true
		}
	}

	if ctx.Err() != nil {
		return 1
	}

	if scanErr != nil {
		fprintln(errOut, "error: reading script:", scanErr)

		return 1
	}

	return exitCode(failed)
}

func exitCode(failed bool) int {
	if failed {
		return 1
	}

	return 0
}
