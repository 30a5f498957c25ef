package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/muesli/termenv"

	"github.com/aretw0/stepwise/internal/config"
	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/internal/presentation/tui"
	"github.com/aretw0/stepwise/pkg/adapters/loam"
	"github.com/aretw0/stepwise/pkg/catalogue"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/observability"
	"github.com/aretw0/stepwise/pkg/scheduler"
	"github.com/aretw0/stepwise/pkg/session"
)

const keyHelp = "[p/space] pause/resume  [s] stop  [q] quit"

// RunOptions contains all the configuration for the run and compare commands.
type RunOptions struct {
	// Request describes the algorithms and data when no scenario is named.
	Request session.Request
	// Scenario names a document in Config.Scenarios.
	Scenario string
	Config   config.Config

	Headless bool
	JSON     bool
	Debug    bool
	NoCode   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o *RunOptions) defaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// jsonLine is one line of --json output.
type jsonLine struct {
	Type   string           `json:"type"`
	Frame  *scheduler.Frame `json:"frame,omitempty"`
	Status *session.Status  `json:"status,omitempty"`
}

// Execute builds a session from opts and drives it to the end, in one of
// three modes: JSON lines, headless, or the interactive terminal view.
func Execute(ctx context.Context, opts RunOptions) error {
	opts.defaults()
	logger := createLogger(opts)

	algorithms, data, params, err := resolve(ctx, opts)
	if err != nil {
		return err
	}

	store, closeStore, err := OpenStore(ctx, opts.Config.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var hooks domain.LifecycleHooks
	if opts.Debug {
		hooks = observability.LogHooks(logger)
	}
	mgr := session.NewManager(catalogue.Default(), store,
		session.WithManagerLogger(logger),
		session.WithManagerPacing(opts.Config.Pacing.Scheduler()),
		session.WithManagerHooks(hooks),
	)
	defer func() {
		if err := mgr.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Failed to close sessions", "err", err)
		}
	}()

	s, err := mgr.Create(ctx, algorithms, data, params)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	switch {
	case opts.JSON:
		err = runJSON(ctx, s, opts.Stdout)
	case opts.Headless:
		err = runHeadless(ctx, s, opts.Stdout)
	default:
		err = runInteractive(ctx, mgr, s, opts, logger)
	}
	return handleExecutionError(err)
}

// createLogger configures the application logger.
// Logs go to Stderr to keep them apart from the Stdout view.
func createLogger(opts RunOptions) *slog.Logger {
	if opts.Debug {
		return logging.NewWithFormat(slog.LevelDebug, opts.Config.Log.Format, opts.Stderr)
	}
	if opts.Config.Log.Level == "" {
		return logging.NewNop()
	}
	return logging.NewWithFormat(logging.ParseLevel(opts.Config.Log.Level), opts.Config.Log.Format, opts.Stderr)
}

// resolve reads the named scenario, or the request when none is named.
func resolve(ctx context.Context, opts RunOptions) ([]domain.AlgorithmID, *domain.Dataset, domain.Params, error) {
	if opts.Scenario == "" {
		return opts.Request.Resolve()
	}
	dir := opts.Config.Scenarios
	if dir == "" {
		dir = "."
	}
	loader, err := loam.Open(dir)
	if err != nil {
		return nil, nil, domain.Params{}, err
	}
	sc, err := loader.Load(ctx, opts.Scenario)
	if err != nil {
		return nil, nil, domain.Params{}, err
	}
	// Flags may still narrow the algorithms of a scenario.
	if len(opts.Request.Algorithms) > 0 {
		sc.Algorithms = sc.Algorithms[:0]
		for _, name := range opts.Request.Algorithms {
			id, err := domain.ParseAlgorithm(name)
			if err != nil {
				return nil, nil, domain.Params{}, err
			}
			sc.Algorithms = append(sc.Algorithms, id)
		}
	}
	return sc.Algorithms, sc.Dataset, sc.Params, nil
}

func runJSON(ctx context.Context, s *session.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	if err := s.Start(ctx); err != nil {
		return err
	}
	var encErr error
	err := s.Run(ctx, func(frames []scheduler.Frame) {
		for i := range frames {
			if encErr == nil {
				encErr = enc.Encode(jsonLine{Type: "frame", Frame: &frames[i]})
			}
		}
	})
	st := s.Status()
	return errors.Join(err, encErr, enc.Encode(jsonLine{Type: "status", Status: &st}))
}

func runHeadless(ctx context.Context, s *session.Session, w io.Writer) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	err := s.Run(ctx, nil)
	out := termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	view := tui.NewView(out, catalogue.Default())
	fmt.Fprint(w, view.Summary(s.Status()))
	return err
}

func runInteractive(ctx context.Context, mgr *session.Manager, s *session.Session, opts RunOptions, logger *slog.Logger) error {
	tty := isTerminal(opts.Stdout)
	width := terminalWidth(opts.Stdout, 80)
	profile := termenv.NewOutput(opts.Stdout).Profile

	markdown := tui.NewPlainRenderer()
	if tty && profile != termenv.Ascii {
		markdown = tui.NewRenderer(width)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := opts.Stdout
	in, _ := opts.Stdin.(*os.File)
	raw := false
	if in != nil && tty {
		var restore func()
		restore, raw = rawTerminal(in)
		defer restore()
	}
	if raw {
		w = crlfWriter{w: w}
	}

	out := termenv.NewOutput(w, termenv.WithProfile(profile))
	view := tui.NewView(out, catalogue.Default(),
		tui.WithWidth(width-4),
		tui.WithMarkdown(markdown),
		tui.WithCode(!opts.NoCode),
	)

	var mu sync.Mutex
	redraw := func() {
		mu.Lock()
		defer mu.Unlock()
		if tty {
			out.ClearScreen()
		}
		fmt.Fprint(out, view.Render(s.Status()))
		if raw {
			fmt.Fprintln(out, keyHelp)
		}
	}

	tui.PrintBanner(out)
	if raw {
		go watchKeys(ctx, in, func(a keyAction) {
			var err error
			switch a {
			case keyToggle:
				err = mgr.Control(ctx, s.ID(), "toggle")
			case keyStop, keyQuit:
				err = mgr.Control(ctx, s.ID(), "stop")
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
				logger.Warn("Key action failed", "err", err)
			}
			if a == keyQuit {
				cancel()
				return
			}
			redraw()
		})
	}

	if err := s.Start(ctx); err != nil {
		return err
	}
	redraw()
	err := s.Run(ctx, func([]scheduler.Frame) {
		if tty {
			redraw()
		}
	})
	redraw()
	fmt.Fprintln(out)
	fmt.Fprint(out, view.Summary(s.Status()))
	return err
}

func handleExecutionError(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil // Exit 0 for interruptions
	}
	return err
}
