package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/calvinalkan/projects/internal/config"
	"github.com/calvinalkan/projects/internal/logging"
	"github.com/calvinalkan/projects/internal/project"
	"github.com/calvinalkan/projects/internal/tui"
)

// exitInterrupted is the conventional exit code after SIGINT.
const exitInterrupted = 130

// interruptGrace bounds how long Run waits for the current mode to wind
// down after a signal.
const interruptGrace = 500 * time.Millisecond

const historyFileName = ".projects_history"

var errUnexpectedArgs = errors.New("unexpected arguments")

type globalFlags struct {
	cwd         string
	configPath  string
	scriptPath  string
	tui         bool
	printConfig bool
	help        bool
}

func newGlobalFlagSet(gf *globalFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("projects", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&gf.cwd, "cwd", "C", "", "Run as if started in `dir`")
	fs.StringVarP(&gf.configPath, "config", "c", "", "Use specified config `file`")
	fs.StringVarP(&gf.scriptPath, "file", "f", "", "Run commands from `file` instead of stdin")
	fs.BoolVar(&gf.tui, "tui", false, "Start the full-screen interface")
	fs.BoolVar(&gf.printConfig, "print-config", false, "Show resolved config and exit")
	fs.BoolVarP(&gf.help, "help", "h", false, "Show help")

	return fs
}

// Run is the main entry point. Returns exit code.
//
// With --tui it starts the full-screen interface. Otherwise commands come
// from -f, from an interactive prompt when stdin is a terminal, or from
// stdin as a script.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	var gf globalFlags

	fs := newGlobalFlagSet(&gf)

	if len(args) > 0 {
		args = args[1:]
	}

	err := fs.Parse(args)
	if err == nil && fs.NArg() > 0 {
		err = fmt.Errorf("%w: %v", errUnexpectedArgs, fs.Args())
	}

	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, fs)

		return 1
	}

	if gf.help {
		printUsage(out, fs)

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: gf.cwd,
		ConfigPath:      gf.configPath,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if gf.printConfig {
		return printConfig(out, errOut, cfg)
	}

	log, closeLog, err := logging.New(logging.Options{
		File:   cfg.LogFile,
		Level:  cfg.LogLevel,
		Fields: map[string]string{"pid": strconv.Itoa(os.Getpid())},
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	defer func() { _ = closeLog() }()

	ids, err := project.NewIDGenerator(cfg.IDScheme, cfg.IDPrefix)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	store := project.New(project.Options{
		IDs:        ids,
		DateLayout: cfg.DateLayout,
		Logger:     log.Named("store"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)

	go func() {
		done <- run(ctx, runInput{
			gf:     gf,
			cfg:    cfg,
			store:  store,
			log:    log,
			in:     in,
			out:    out,
			errOut: errOut,
			env:    env,
		})
	}()

	select {
	case code := <-done:
		// A signal that raced with a normal finish still counts.
		select {
		case <-sigCh:
		default:
			return code
		}
	case <-sigCh:
		cancel()

		// Script and TUI modes stop on cancel. A read blocked on stdin
		// may not, so only wait a little.
		select {
		case <-done:
		case <-time.After(interruptGrace):
			log.Warn("input still blocked after interrupt")
		}
	}

	log.Info("interrupted")

	return exitInterrupted
}

type runInput struct {
	gf     globalFlags
	cfg    config.Config
	store  *project.Store
	log    *zap.Logger
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	env    map[string]string
}

func run(ctx context.Context, ri runInput) int {
	if ri.gf.tui {
		ri.log.Info("starting", zap.String("mode", "tui"))

		err := tui.Run(ctx, ri.store, ri.cfg.Keys, ri.in, ri.out)
		if err != nil && !errors.Is(err, context.Canceled) {
			fprintln(ri.errOut, "error:", err)

			return 1
		}

		return 0
	}

	session := NewSession(ri.store, ri.log.Named("shell"), ri.out, ri.errOut)

	if ri.gf.scriptPath != "" {
		path := ri.gf.scriptPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(ri.cfg.EffectiveCwd, path)
		}

		f, err := os.Open(path)
		if err != nil {
			fprintln(ri.errOut, "error: cannot open script:", err)

			return 1
		}

		defer func() { _ = f.Close() }()

		ri.log.Info("starting", zap.String("mode", "script"), zap.String("file", path))

		return RunScript(ctx, session, f, ri.errOut)
	}

	if isTerminal(ri.in) {
		ri.log.Info("starting", zap.String("mode", "repl"))

		editor := newLiner(session)

		// Prompt cannot be interrupted, but Close restores the terminal
		// before Run gives up on it.
		stop := context.AfterFunc(ctx, func() { _ = editor.Close() })
		defer stop()

		repl := NewREPL(session, editor, ri.out, REPLOptions{
			Prompt:      ri.cfg.Prompt,
			HistoryPath: historyPath(ri.cfg, ri.env),
			Logger:      ri.log.Named("repl"),
		})

		err := repl.Run(ctx)
		if err != nil {
			fprintln(ri.errOut, "error:", err)

			return 1
		}

		return 0
	}

	ri.log.Info("starting", zap.String("mode", "script"))

	return RunScript(ctx, session, ri.in, ri.errOut)
}

// historyPath resolves the configured history file. Empty means no history.
func historyPath(cfg config.Config, env map[string]string) string {
	switch {
	case cfg.HistoryFile == config.HistoryOff:
		return ""
	case cfg.HistoryFile == "":
		home := env["HOME"]
		if home == "" {
			return ""
		}

		return filepath.Join(home, historyFileName)
	case filepath.IsAbs(cfg.HistoryFile):
		return cfg.HistoryFile
	default:
		return filepath.Join(cfg.EffectiveCwd, cfg.HistoryFile)
	}
}

func printConfig(out, errOut io.Writer, cfg config.Config) int {
	formatted, err := config.Format(cfg)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	fprintln(out, formatted)
	fprintln(out)

	if cfg.Sources.Global != "" {
		fprintln(out, "# global:", cfg.Sources.Global)
	}

	if cfg.Sources.Project != "" {
		fprintln(out, "# project:", cfg.Sources.Project)
	}

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		fprintln(out, "# defaults only")
	}

	return 0
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fprintln(w, "projects - keep a list of projects")
	fprintln(w)
	fprintln(w, "Usage: projects [flags] [< script]")
	fprintln(w)
	fprintln(w, "Flags:")
	fprintln(w, fs.FlagUsages())
	fprintln(w, "Run without --tui and type 'help' for the command list.")
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
