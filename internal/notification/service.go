package notification

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/polidog/pomodoro-shell/internal/sound"
	"github.com/polidog/pomodoro-shell/internal/timer"
	"go.uber.org/zap"
)

type phaseMessage struct {
	title string
	body  string
}

var completeMessages = map[timer.Phase]phaseMessage{
	timer.PhaseWork: {
		title: "🎉 Great job!",
		body:  "Time for a well-deserved break!",
	},
	timer.PhaseShortBreak: {
		title: "⚡ Break's over!",
		body:  "Ready to focus again?",
	},
	timer.PhaseLongBreak: {
		title: "🚀 Long break finished!",
		body:  "Time to get back to work!",
	},
}

var (
	_ timer.Notifier = (*Service)(nil)

	_ Notifier = (*BellNotifier)(nil)
	_ Notifier = (*DesktopNotifier)(nil)
	_ Notifier = (*VisualNotifier)(nil)
)

var lastMinuteMessage = phaseMessage{
	title: "⏰ One minute left!",
	body:  "Almost there, keep going!",
}

// Service coordinates every notification channel. It never returns
// errors to callers; failures are logged and dropped.
type Service struct {
	mu      sync.Mutex
	config  *Config
	bell    *BellNotifier
	desktop *DesktopNotifier
	title   *TitleNotifier
	visual  *VisualNotifier

	host       PermissionHost
	permission Permission
	synth      sound.Synth
	present    Presenter
	out        io.Writer
	logger     *zap.Logger
	now        func() time.Time
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithPermissionHost replaces the environment permission host
func WithPermissionHost(host PermissionHost) ServiceOption {
	return func(s *Service) { s.host = host }
}

// WithSynth sets the audio back-end
func WithSynth(synth sound.Synth) ServiceOption {
	return func(s *Service) { s.synth = synth }
}

// Presenter shows a desktop notification. beeep.Notify satisfies it.
type Presenter func(title, message string, icon any) error

// WithPresenter replaces the desktop presentation back-end
func WithPresenter(p Presenter) ServiceOption {
	return func(s *Service) { s.present = p }
}

// WithOutput sets the terminal the bell and title write to
func WithOutput(out io.Writer) ServiceOption {
	return func(s *Service) { s.out = out }
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates the notification service and queries the host
// permission once
func NewService(cfg *Config, opts ...ServiceOption) *Service {
	cfg = cfg.Clone()
	cfg.Normalize()

	s := &Service{
		config: cfg,
		out:    os.Stdout,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.host == nil {
		s.host = NewEnvPermissionHost()
	}
	if s.synth == nil {
		s.synth = sound.NopSynth{}
	}

	s.buildLocked()
	s.visual = NewVisualNotifier(cfg.Visual)
	s.permission = s.host.Query()
	return s
}

func (s *Service) buildLocked() {
	s.bell = NewBellNotifier(&s.config.Bell, s.out)
	s.desktop = NewDesktopNotifier(&s.config.Desktop)
	if s.present != nil {
		s.desktop.notify = s.present
		s.desktop.alert = s.present
	}
	s.title = NewTitleNotifier(&s.config.Title, s.out)
}

// SetConfig applies a new configuration. Queued toasts and the host
// permission are kept; the desktop switch only gates ShowNotification.
func (s *Service) SetConfig(cfg *Config) {
	cfg = cfg.Clone()
	cfg.Normalize()

	s.mu.Lock()
	bell, desktop, title := s.bell, s.desktop, s.title
	s.config = cfg
	s.buildLocked()
	next := s.title
	s.mu.Unlock()

	bell.Close()
	desktop.Close()
	title.handOver(next)

	s.visual.SetConfig(cfg.Visual)
	s.logger.Debug("notification config applied",
		zap.Bool("enabled", cfg.Enabled),
		zap.Bool("dnd", cfg.DND))
}

// Config returns a copy of the active configuration
func (s *Service) Config() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Clone()
}

// RequestPermission asks the host for desktop permission. Only a
// permission still at default is requested; errors leave it there.
func (s *Service) RequestPermission(ctx context.Context) {
	s.mu.Lock()
	current := s.permission
	host := s.host
	s.mu.Unlock()

	if current != PermissionDefault {
		return
	}

	p, err := host.Request(ctx)
	if err != nil {
		s.logger.Warn("notification permission request failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.permission = p
	s.mu.Unlock()
	s.logger.Info("notification permission", zap.String("permission", string(p)))
}

// Permission returns the stored permission
func (s *Service) Permission() Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permission
}

// PlaySound schedules the tones for kind on the synth
func (s *Service) PlaySound(kind sound.Kind) {
	s.mu.Lock()
	enabled := s.config.Sound.Enabled
	synth := s.synth
	s.mu.Unlock()

	if !enabled {
		return
	}

	tones := sound.Tones(kind, synth.Now())
	if err := synth.Schedule(tones); err != nil {
		s.logger.Debug("sound playback skipped", zap.String("kind", string(kind)), zap.Error(err))
	}
}

// ShowNotification presents a desktop notification when permission is
// granted, and silently does nothing otherwise
func (s *Service) ShowNotification(title, body string, opts ...Option) {
	s.mu.Lock()
	granted := s.permission == PermissionGranted
	cfg := s.config
	desktop := s.desktop
	s.mu.Unlock()

	if !granted || !cfg.Enabled || !cfg.Desktop.Enabled || cfg.DND {
		return
	}

	msg := Message{
		Title: title,
		Body:  body,
		Icon:  cfg.Desktop.Icon,
		Badge: cfg.Desktop.Badge,
		Alert: cfg.Desktop.Alert,
		At:    s.now(),
	}
	for _, opt := range opts {
		opt(&msg)
	}

	if err := desktop.Notify(msg); err != nil {
		s.logger.Debug("desktop notification failed", zap.Error(err))
	}
}

// NotifyTimerComplete announces the end of phase
func (s *Service) NotifyTimerComplete(phase timer.Phase) {
	m, ok := completeMessages[phase]
	if !ok {
		m = completeMessages[timer.PhaseWork]
	}

	s.ShowNotification(m.title, m.body)
	s.inTerminal(m, true)
	s.PlaySound(sound.KindComplete)
}

// NotifyLastMinute announces that one minute remains
func (s *Service) NotifyLastMinute() {
	m := lastMinuteMessage
	s.ShowNotification(m.title, m.body)
	s.inTerminal(m, false)
	s.PlaySound(sound.KindWarning)
}

// inTerminal feeds the toast queue and, for completions, the bell
func (s *Service) inTerminal(m phaseMessage, ring bool) {
	s.mu.Lock()
	cfg := s.config
	bell := s.bell
	s.mu.Unlock()

	if !cfg.Enabled {
		return
	}

	channels := []Notifier{s.visual}
	if ring && !cfg.DND {
		channels = append(channels, bell)
	}

	msg := Message{Title: m.title, Body: m.body, At: s.now()}
	for _, n := range channels {
		if err := n.Notify(msg); err != nil {
			s.logger.Debug("in-terminal notification failed", zap.Error(err))
		}
	}
}

// Title returns the terminal title for state
func (s *Service) Title(state timer.State) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title.Format(state)
}

// UpdateTitle writes the countdown title to the terminal
func (s *Service) UpdateTitle(state timer.State) {
	s.mu.Lock()
	title := s.title
	s.mu.Unlock()
	title.Update(state)
}

// TitleEnabled reports whether the title channel is on
func (s *Service) TitleEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Title.Enabled
}

// GetVisualNotifications returns pending toasts
func (s *Service) GetVisualNotifications() []Message {
	return s.visual.GetNotifications()
}

// DismissVisualNotification removes a toast from the queue
func (s *Service) DismissVisualNotification(index int) {
	s.visual.Dismiss(index)
}

// DismissAllVisualNotifications clears all toasts
func (s *Service) DismissAllVisualNotifications() {
	s.visual.DismissAll()
}

// NextToastExpiry reports when the oldest toast leaves the screen
func (s *Service) NextToastExpiry() (time.Time, bool) {
	return s.visual.NextExpiry()
}

// SetDND sets the Do Not Disturb mode
func (s *Service) SetDND(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.config.Clone()
	cfg.DND = enabled
	s.config = cfg
}

// IsDND returns whether DND mode is enabled
func (s *Service) IsDND() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.DND
}

// Drain lets tones already handed to the synth finish playing
func (s *Service) Drain(ctx context.Context) {
	s.mu.Lock()
	synth := s.synth
	s.mu.Unlock()

	if err := synth.Drain(ctx); err != nil {
		s.logger.Debug("sound cut short", zap.Error(err))
	}
}

// Close cleans up all notifiers and the audio device
func (s *Service) Close() {
	s.mu.Lock()
	bell, desktop, title, synth := s.bell, s.desktop, s.title, s.synth
	s.mu.Unlock()

	bell.Close()
	desktop.Close()
	title.Close()
	s.visual.Close()
	if err := synth.Close(); err != nil {
		s.logger.Debug("closing synth", zap.Error(err))
	}
}
