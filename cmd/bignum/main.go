package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bignum/internal/observ"
	"bignum/internal/prof"
	"bignum/internal/version"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	cfg     config
	log     *log.Logger
	timer   *observ.Timer
	cleanup []func()
}

// main runs the CLI and exits with status 1 if the command fails.
func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{cfg: defaultConfig(), log: log.New()}
	a.log.SetOutput(stderr)
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	a.close()
	if err != nil {
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "bignum",
		Short:        "Arbitrary-precision integer arithmetic and prime generation",
		Version:      version.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", "", "path to bignum.toml (default: nearest one above the working directory)")
	flags.String("log-level", "warn", "log level (panic|fatal|error|warn|info|debug|trace)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "", "trace level (off|error|phase|detail|debug); overrides [trace] level")
	flags.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode ring|both")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	flags.String("cpuprofile", "", "write a CPU profile to this file")
	flags.String("memprofile", "", "write a heap profile to this file on exit")
	flags.String("exec-trace", "", "write a Go execution trace to this file")

	root.AddCommand(
		newCalcCmd(a),
		newConvertCmd(a),
		newRandCmd(a),
		newPrimeCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration, then configures logging, colour, tracing and
// timings from it and from the flags.
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	levelName, _ := flags.GetString("log-level")
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	a.log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	configPath, _ := flags.GetString("config")
	cfg, err := loadConfig(configPath, ".")
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.path != "" {
		a.log.WithField("path", cfg.path).Debug("loaded config")
	} else {
		a.log.Debug("no bignum.toml found, using defaults")
	}

	colorMode, _ := flags.GetString("color")
	switch strings.ToLower(colorMode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}

	cleanup, err := setupTracing(cmd, a.cfg.Trace.Level)
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, cleanup)

	var profOpts prof.Options
	profOpts.CPU, _ = flags.GetString("cpuprofile")
	profOpts.Mem, _ = flags.GetString("memprofile")
	profOpts.Trace, _ = flags.GetString("exec-trace")
	if profOpts != (prof.Options{}) {
		session, err := prof.Start(profOpts)
		if err != nil {
			return err
		}
		a.cleanup = append(a.cleanup, func() {
			if err := session.Stop(); err != nil {
				a.log.WithError(err).Error("writing profiles")
			}
		})
	}

	if timings, _ := flags.GetBool("timings"); timings {
		a.timer = observ.NewTimer()
		errOut := cmd.ErrOrStderr()
		a.cleanup = append(a.cleanup, func() { fmt.Fprint(errOut, a.timer.Summary()) })
	}
	return nil
}

// measure runs fn as a timed phase when --timings is on.
func (a *app) measure(name string, fn func() error) error {
	if a.timer == nil {
		return fn()
	}
	return a.timer.Measure(name, fn)
}

// close runs cleanups in reverse order of registration.
func (a *app) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	a.cleanup = nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int.
}
