package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zephyrtronium/calculator/internal/config"
	"github.com/zephyrtronium/calculator/internal/display"
	"github.com/zephyrtronium/calculator/internal/history"
	"github.com/zephyrtronium/calculator/internal/logger"
	"github.com/zephyrtronium/calculator/internal/reference"
)

// errFailed reports that at least one expression failed. Its message has
// already been printed.
var errFailed = errors.New("calc: some expressions failed")

type options struct {
	cfgFile  string
	debug    bool
	histPath string

	in     string
	format string
	echo   bool
	check  bool
	prec   uint
	deg    bool
}

func newRootCmd() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:   "calc [flags] [expr...]",
		Short: "Evaluate arithmetic expressions",
		Long: `calc evaluates each argument as an expression and prints its result. With
no arguments, it reads one expression per line from --in.

Operators are + - * / % ^, where ^ binds tightest and groups to the right.
Run "calc funcs" for the available functions and constants.`,
		Example: `  calc '3+5*sin(2)^2'
  calc --echo '2^3^2'
  echo 'sqrt(2)' | calc --check --prec 512
  calc --history ~/.calc.json '1/3' && calc --history ~/.calc.json history list`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&o.cfgFile, "config", "", "config file (.yaml, .yml, or .toml)")
	pf.BoolVar(&o.debug, "debug", false, "enable debug logging")
	pf.StringVar(&o.histPath, "history", "", "history file (.json or .db)")

	f := root.Flags()
	f.StringVar(&o.in, "in", "", "input file, one expression per line (default stdin if no args given)")
	f.StringVar(&o.format, "fmt", "", "result formatting verb, e.g. %.4f (default shortest exact form)")
	f.BoolVar(&o.echo, "echo", false, "print each expression in postfix before its result")
	f.BoolVar(&o.check, "check", false, "cross-check results at arbitrary precision")
	f.UintVarP(&o.prec, "prec", "p", 256, "precision in bits for --check")
	f.BoolVar(&o.deg, "deg", false, "measure trigonometric angles in degrees")

	root.AddCommand(newHistoryCmd(&o), newFuncsCmd())
	return root
}

// setup loads the configuration, applies flags over it, and builds the logger.
func (o *options) setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.NewLoader().WithConfigPath(o.cfgFile).Load()
	if err != nil {
		return nil, nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("history") {
		cfg.History.Path = o.histPath
	}
	if flags.Changed("fmt") {
		cfg.Format = o.format
	}
	if flags.Changed("check") {
		cfg.Check.Enabled = o.check
	}
	if flags.Changed("prec") {
		cfg.Check.Prec = o.prec
	}
	if flags.Changed("deg") {
		cfg.Degrees = o.deg
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	}, cmd.ErrOrStderr(), cmd.OutOrStdout())
	log.Debug("loaded config",
		zap.String("file", o.cfgFile),
		zap.String("history", cfg.History.Path),
		zap.Bool("check", cfg.Check.Enabled),
		zap.Bool("degrees", cfg.Degrees),
		zap.Uint("prec", cfg.Check.Prec),
	)
	return cfg, log, nil
}

// openHistory loads the configured history. The store is nil if history is
// not persisted.
func openHistory(cfg *config.Config, log *zap.Logger) (*history.History, history.Store, error) {
	h := history.New(cfg.History.Limit)
	if cfg.History.Path == "" {
		return h, nil, nil
	}
	s, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := h.Load(s); err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("loading history: %w", err)
	}
	log.Debug("loaded history", zap.String("path", cfg.History.Path), zap.Int("entries", h.Len()))
	return h, s, nil
}

func (o *options) run(cmd *cobra.Command, args []string) (err error) {
	cfg, log, err := o.setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	h, store, err := openHistory(cfg, log)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if serr := h.Save(store); serr != nil && err == nil {
				err = fmt.Errorf("saving history: %w", serr)
			}
			store.Close()
		}()
	}

	srcs := args
	if len(srcs) == 0 || o.in != "" {
		lines, err := o.readInput(cmd)
		if err != nil {
			return err
		}
		srcs = append(lines, srcs...)
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, src := range srcs {
		if o.echo {
			echo(out, src, cfg.Degrees)
		}
		r, err := evaluate(src, cfg.Degrees)
		if err != nil {
			log.Debug("evaluation failed", zap.String("expr", src), zap.Error(err))
			fmt.Fprintln(out, err)
			failed = true
			continue
		}
		if cfg.Format != "" {
			fmt.Fprintf(out, cfg.Format+"\n", r)
		} else {
			fmt.Fprintln(out, display.Format(r))
		}
		if !h.Add(src, r) {
			log.Debug("not recording non-finite result", zap.String("expr", src), zap.Float64("result", r))
		}
		if cfg.Check.Enabled {
			check(log, src, r, cfg.Check.Prec, cfg.Check.Tolerance)
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

// readInput reads non-blank lines from --in, or stdin if it is unset or "-".
func (o *options) readInput(cmd *cobra.Command) ([]string, error) {
	var r io.Reader = cmd.InOrStdin()
	if o.in != "" && o.in != "-" {
		f, err := os.Open(o.in)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var lines []string
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		if s := strings.TrimSpace(scan.Text()); s != "" {
			lines = append(lines, s)
		}
	}
	return lines, scan.Err()
}

// echo prints the postfix form of src as it will be evaluated. Nothing is
// printed if src does not convert; the evaluation error follows instead.
func echo(w io.Writer, src string, deg bool) {
	post, err := convert(src)
	if err != nil {
		return
	}
	if deg {
		post = degrees(post)
	}
	fmt.Fprintf(w, "%s : ", display.Postfix(post))
}

// check compares r against an arbitrary precision evaluation of src and logs
// any disagreement.
func check(log *zap.Logger, src string, r float64, prec uint, tol float64) {
	ref, err := reference.EvalString(src, prec)
	switch {
	case errors.Is(err, reference.ErrUnsupported):
		log.Debug("check skipped", zap.String("expr", src), zap.Error(err))
	case err != nil:
		log.Warn("check failed", zap.String("expr", src), zap.Float64("result", r), zap.Error(err))
	case !reference.Close(r, ref, tol):
		log.Warn("result differs from reference",
			zap.String("expr", src),
			zap.Float64("result", r),
			zap.String("reference", ref.Text('g', 30)),
		)
	default:
		log.Debug("check passed", zap.String("expr", src))
	}
}
