package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/polidog/pomodoro-shell/internal/config"
	"github.com/polidog/pomodoro-shell/internal/logging"
	"github.com/polidog/pomodoro-shell/internal/notification"
	"github.com/polidog/pomodoro-shell/internal/sound"
	"github.com/polidog/pomodoro-shell/internal/timer"
	"github.com/polidog/pomodoro-shell/internal/ui"
	"go.uber.org/zap"
)

type App struct {
	config   *config.Config
	logger   *zap.Logger
	engine   *timer.Engine
	notifier *notification.Service
	program  *tea.Program

	configPath     string
	nonInteractive bool
	out            io.Writer
	synth          sound.Synth

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// Option is a functional option for App
type Option func(*App)

// WithNonInteractive switches headless output from a live redraw to
// plain lines, for pipes and logs
func WithNonInteractive() Option {
	return func(a *App) {
		a.nonInteractive = true
	}
}

// WithConfigPath loads the config from path instead of the default location
func WithConfigPath(path string) Option {
	return func(a *App) {
		a.configPath = path
	}
}

// WithOutput sets where headless progress, the bell and the title go
func WithOutput(out io.Writer) Option {
	return func(a *App) {
		a.out = out
	}
}

// WithSynth replaces the configured sound back-end
func WithSynth(synth sound.Synth) Option {
	return func(a *App) {
		a.synth = synth
	}
}

// drainTimeout bounds how long Stop waits for the last chord
const drainTimeout = 2 * time.Second

func New(opts ...Option) (*App, error) {
	app := &App{out: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}

	cfg, err := config.Load(app.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.LogFile(), cfg.Debug)
	if err != nil {
		return nil, err
	}

	notifyCfg := cfg.GetNotificationConfig()
	backend := notifyCfg.Sound.Backend
	if !notifyCfg.Sound.Enabled {
		backend = sound.BackendNone
	}
	synth := app.synth
	if synth == nil {
		synth, err = sound.Open(backend, notifyCfg.Sound.SampleRate, logger)
		if err != nil {
			logger.Warn("sound disabled", zap.Error(err))
			synth = sound.NopSynth{}
		}
	}

	app.config = cfg
	app.logger = logger
	app.notifier = notification.NewService(notifyCfg,
		notification.WithSynth(synth),
		notification.WithLogger(logger),
		notification.WithOutput(app.out),
	)
	app.engine = timer.New(cfg.Durations(), app.notifier, timer.NewTickerScheduler(),
		timer.WithLogger(logger))

	logger.Info("pomodoro-shell started",
		zap.String("config", cfg.Path()),
		zap.Duration("work", cfg.Timer.Work),
		zap.String("sound", backend))
	return app, nil
}

// Engine returns the timer engine
func (a *App) Engine() *timer.Engine {
	return a.engine
}

// Notifier returns the notification service
func (a *App) Notifier() *notification.Service {
	return a.notifier
}

// start asks for desktop permission and begins watching the config file
func (a *App) start(ctx context.Context) context.Context {
	ctx, a.cancel = context.WithCancel(ctx)

	a.notifier.RequestPermission(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		err := config.Watch(ctx, a.config.Path(), a.logger, a.applyConfig)
		if err != nil {
			a.logger.Warn("config watch disabled", zap.Error(err))
		}
	}()
	return ctx
}

// applyConfig hot-applies notification settings. Phase lengths and key
// bindings take effect on the next start.
func (a *App) applyConfig(cfg *config.Config) {
	a.notifier.SetConfig(cfg.GetNotificationConfig())
}

func (a *App) Run() error {
	a.start(context.Background())

	model := ui.NewModel(a.engine, a.notifier, a.config.GetKeymap())
	a.program = tea.NewProgram(model, tea.WithAltScreen())

	_, err := a.program.Run()
	return err
}

// RunHeadless runs a single phase without the TUI, printing the countdown
// to the output. It returns when the phase completes or ctx is done.
func (a *App) RunHeadless(ctx context.Context, phase timer.Phase) error {
	if phase != "" && !phase.Valid() {
		return fmt.Errorf("unknown phase %q", phase)
	}
	ctx = a.start(ctx)

	if phase != "" {
		a.engine.SwitchMode(phase)
	}
	events := a.engine.Subscribe(16)
	a.engine.Start()

	state := a.engine.Snapshot()
	a.printProgress(state)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out)
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Type {
			case timer.EventTick:
				a.printProgress(ev.State)
			case timer.EventCompleted:
				fmt.Fprintf(a.out, "\n%s complete. Next: %s (%s)\n",
					ev.Ended.Label(), ev.State.Phase.Label(), ev.State.Clock())
				return nil
			}
		}
	}
}

// printProgress redraws the countdown in place. Non-interactive output
// gets one line per minute instead, which reads better in logs.
func (a *App) printProgress(state timer.State) {
	a.notifier.UpdateTitle(state)
	if a.nonInteractive {
		if state.Remaining%60 == 0 || state.Remaining == state.Duration() {
			fmt.Fprintf(a.out, "%s %s\n", state.Clock(), state.Phase.Label())
		}
		return
	}
	fmt.Fprintf(a.out, "\r%s %s  %3.0f%%", state.Clock(), state.Phase.Label(), state.Progress()*100)
}

func (a *App) Stop() {
	a.once.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		a.wg.Wait()
		a.engine.Close()

		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		a.notifier.Drain(ctx)
		cancel()

		a.notifier.Close()
		_ = a.logger.Sync()
	})
}
