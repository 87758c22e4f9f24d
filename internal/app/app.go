// internal/app/app.go
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vidctl/internal/config"
	"github.com/llehouerou/vidctl/internal/keymap"
	"github.com/llehouerou/vidctl/internal/notify"
	"github.com/llehouerou/vidctl/internal/playback"
	"github.com/llehouerou/vidctl/internal/source"
	"github.com/llehouerou/vidctl/internal/state"
	"github.com/llehouerou/vidctl/internal/ui/styles"
)

// Media is the item the host plays.
type Media struct {
	Key      string // progress store key; empty disables resume
	Title    string
	Sources  []source.Variant
	AutoPlay bool
	Loop     bool
}

// Model is the root application model.
type Model struct {
	Service      playback.Service
	Progress     state.Interface // nil when persistence is disabled
	Media        Media
	Keys         *keymap.Resolver
	Spinner      spinner.Model
	SkipInterval time.Duration
	ErrorMsg     string
	ShowHelp     bool
	Width        int
	Height       int

	sub         *playback.Subscription
	log         logrus.FieldLogger
	pointerDown bool
	animating   bool

	notifier            notify.Notifier
	notificationsConfig config.NotificationsConfig
	lastNowPlayingID    uint32
}

// Option configures a Model.
type Option func(*Model)

// WithProgressStore enables resume and progress saving.
func WithProgressStore(s state.Interface) Option {
	return func(m *Model) { m.Progress = s }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Model) { m.log = l }
}

// WithEngineConfig aligns the keyboard skip with the swipe skip.
func WithEngineConfig(cfg config.EngineConfig) Option {
	return func(m *Model) { m.SkipInterval = cfg.WithDefaults().SkipInterval }
}

// New creates the model, subscribes to svc and loads media, resuming from
// the progress store when it knows the item.
func New(svc playback.Service, media Media, opts ...Option) (Model, error) {
	m := Model{
		Service:      svc,
		Media:        media,
		Keys:         keymap.NewResolver(keymap.All),
		SkipInterval: config.DefaultSkipInterval,
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.T().Primary)),
		),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.log == nil {
		m.log = logrus.StandardLogger()
	}
	m.log = m.log.WithField("component", "app")

	m.sub = svc.Subscribe()
	if err := svc.Load(media.Sources, m.loadOptions()); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchServiceEvents(), m.Spinner.Tick)
}
