// Command tickrun drives one script on a fixed tick, printing its console output.
//
//	tickrun [-tick 100ms] [-owner name] [-dir .] [-var k=v]... <script> [args...]
//
// TICKRUN_TICK and TICKRUN_LOG_LEVEL are used when the matching flag is not set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/robbyt/go-tickscript"
	"github.com/robbyt/go-tickscript/engine/options"
	"github.com/robbyt/go-tickscript/execution/invocation"
)

type varFlags map[string]string

func (v varFlags) String() string {
	return fmt.Sprint(map[string]string(v))
}

func (v varFlags) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	v[key] = value
	return nil
}

type config struct {
	tick       time.Duration
	owner      string
	dir        string
	logLevel   slog.Level
	startDelay int
	timeout    time.Duration
	vars       varFlags
	invocation invocation.Invocation
}

func parseConfig(args []string, getenv func(string) string) (*config, error) {
	cfg := &config{vars: varFlags{}}
	fs := flag.NewFlagSet("tickrun", flag.ContinueOnError)
	fs.DurationVar(&cfg.tick, "tick", 100*time.Millisecond, "interval between ticks")
	fs.StringVar(&cfg.owner, "owner", "", "owner notified when the script loads or fails")
	fs.StringVar(&cfg.dir, "dir", ".", "directory scripts are located in")
	level := fs.String("log-level", "warn", "engine log level (debug, info, warn, error)")
	fs.IntVar(&cfg.startDelay, "start-delay", 0, "ticks before the first interpreted instruction")
	fs.DurationVar(&cfg.timeout, "timeout", 0, "stop after this long (0 means no limit)")
	fs.Var(cfg.vars, "var", "host variable as key=value, may be repeated")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if v := getenv("TICKRUN_TICK"); v != "" && !set["tick"] {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TICKRUN_TICK: %w", err)
		}
		cfg.tick = d
	}
	if v := getenv("TICKRUN_LOG_LEVEL"); v != "" && !set["log-level"] {
		*level = v
	}
	if err := cfg.logLevel.UnmarshalText([]byte(*level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if cfg.tick <= 0 {
		return nil, fmt.Errorf("tick must be positive: %s", cfg.tick)
	}

	if fs.NArg() == 0 {
		return nil, errors.New("usage: tickrun [flags] <script> [args...]")
	}
	// The shell already split the arguments, so they are passed through untokenized
	rest := fs.Args()
	cfg.invocation = invocation.Invocation{File: rest[0], Args: rest[1:]}
	return cfg, nil
}

// run drives the script until it deactivates, ctx is done or the timeout passes.
func run(ctx context.Context, cfg *config, out io.Writer, logOut io.Writer) error {
	handler := slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.logLevel})
	logger := slog.New(handler.WithGroup("tickrun"))

	h := newConsoleHost(out, cfg.vars)
	s, err := tickscript.NewScriptFromInvocation(cfg.invocation, h,
		options.WithLogHandler(handler),
		options.WithOwner(cfg.owner),
		options.WithFS(os.DirFS(cfg.dir)),
		options.WithStartDelay(cfg.startDelay),
	)
	if err != nil {
		return err
	}
	defer s.Close()

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	logger.Info("starting", "invocation", cfg.invocation, "tick", cfg.tick)
	if err := s.Initialize(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.tick)
	defer ticker.Stop()
	for {
		select {
		case <-h.Done():
			return s.Err()
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Advance(ctx); err != nil {
				return err
			}
		}
	}
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
