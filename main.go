package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/vidctl/internal/app"
	"github.com/llehouerou/vidctl/internal/config"
	"github.com/llehouerou/vidctl/internal/errmsg"
	"github.com/llehouerou/vidctl/internal/icons"
	"github.com/llehouerou/vidctl/internal/logging"
	"github.com/llehouerou/vidctl/internal/mpris"
	"github.com/llehouerou/vidctl/internal/notify"
	"github.com/llehouerou/vidctl/internal/playback"
	"github.com/llehouerou/vidctl/internal/source"
	"github.com/llehouerou/vidctl/internal/state"
	"github.com/llehouerou/vidctl/internal/surface"
)

const usage = `usage: vidctl [flags] label=uri [label=uri ...]

Plays one media item offered in several qualities, e.g.
  vidctl -title Sintel 480p=sintel-480.mp4 720p=sintel-720.mp4

flags:
`

var errUsage = errors.New("at least one label=uri source is required")

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("vidctl", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	title := fs.String("title", "", "title shown in the overlay (default: first source file name)")
	key := fs.String("key", "", "resume key (default: first source uri)")
	autoplay := fs.Bool("autoplay", true, "start playing once loaded")
	loop := fs.Bool("loop", false, "repeat at the end")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sources, err := parseSources(fs.Args())
	if err != nil {
		fs.Usage()
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	icons.Init(cfg.Icons)

	log, logCloser, err := logging.Setup(cfg.GetLogConfig(), cfg.LogEnabled())
	if err != nil {
		return err
	}
	defer logCloser.Close()

	sim := cfg.GetSimConfig()
	simOpts := surface.SimOptions{
		Duration:    sim.Duration,
		LoadLatency: sim.LoadLatency,
		Tick:        sim.Tick,
		StallEvery:  sim.StallEvery,
		StallFor:    sim.StallFor,
	}
	inline, full := surface.NewSim(simOpts), surface.NewSim(simOpts)
	defer inline.Close()
	defer full.Close()

	engine := cfg.GetEngineConfig()
	ctrl := playback.New(inline, full,
		playback.WithConfig(engine),
		playback.WithLogger(log),
	)
	defer ctrl.Close()

	opts := []app.Option{app.WithLogger(log), app.WithEngineConfig(engine)}
	if cfg.StateEnabled() {
		store, err := openStore(cfg, log)
		if err != nil {
			log.WithError(err).Warn(errmsg.Format(errmsg.OpProgressLoad, err))
		} else {
			defer store.Close()
			opts = append(opts, app.WithProgressStore(store))
		}
	}

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(ctrl, log)
		if err != nil {
			log.WithError(err).Warn(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close()
		}
	}

	if notifCfg := cfg.GetNotificationsConfig(); notifCfg.NotificationsEnabled() {
		notifier, err := notify.New()
		if err != nil {
			log.WithError(err).Debug("desktop notifications unavailable")
		} else {
			opts = append(opts, app.WithNotifier(notifier, notifCfg))
		}
	}

	media := app.Media{
		Key:      *key,
		Title:    *title,
		Sources:  sources,
		AutoPlay: *autoplay,
		Loop:     *loop,
	}
	if media.Key == "" {
		media.Key = sources[0].URI
	}
	if media.Title == "" {
		media.Title = titleFromURI(sources[0].URI)
	}

	model, err := app.New(ctrl, media, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", errmsg.OpMediaLoad, err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func openStore(cfg *config.Config, log logrus.FieldLogger) (*state.Manager, error) {
	if cfg.State.Path != "" {
		return state.OpenPath(cfg.State.Path, state.WithLogger(log))
	}
	return state.Open(state.WithLogger(log))
}

// parseSources reads label=uri arguments in menu order.
func parseSources(args []string) ([]source.Variant, error) {
	if len(args) == 0 {
		return nil, errUsage
	}
	out := make([]source.Variant, 0, len(args))
	for _, arg := range args {
		label, uri, ok := strings.Cut(arg, "=")
		label, uri = strings.TrimSpace(label), strings.TrimSpace(uri)
		if !ok || label == "" || uri == "" {
			return nil, fmt.Errorf("invalid source %q: want label=uri", arg)
		}
		out = append(out, source.Variant{Label: label, URI: uri})
	}
	if err := source.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// titleFromURI returns the file name of uri without its extension.
func titleFromURI(uri string) string {
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		uri = uri[:i]
	}
	base := path.Base(uri)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
