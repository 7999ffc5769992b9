package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"photofeed/internal/config"
	"photofeed/internal/eventbus"
	"photofeed/internal/feed"
	"photofeed/internal/ui"
)

type options struct {
	configPath string
	baseURL    string
	debounce   time.Duration
	query      string
	logLevel   string
	pairing    string
	saveConfig bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("photofeed", flag.ContinueOnError)
	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default: user config dir)")
	fs.StringVar(&opts.baseURL, "base-url", "", "Photo feed base URL")
	fs.DurationVar(&opts.debounce, "debounce", 0, "Quiet period before a search is sent")
	fs.StringVarP(&opts.query, "query", "q", "", "Search once for the given tags and print the results")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.pairing, "pairing", "", "How feed fields become records: item or positional")
	fs.BoolVar(&opts.saveConfig, "save-config", false, "Write the effective configuration back to the config file")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.query == "" && fs.NArg() > 0 {
		opts.query = fs.Arg(0)
	}
	return opts, nil
}

// applyOverrides copies flag values that were set onto cfg
func applyOverrides(cfg *config.Config, opts options) error {
	if opts.baseURL != "" {
		cfg.FeedBaseURL = opts.baseURL
	}
	if opts.debounce > 0 {
		cfg.DebounceMS = int(opts.debounce / time.Millisecond)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.pairing != "" {
		cfg.Pairing = opts.pairing
	}
	return cfg.Validate()
}

// usageError marks failures caused by the command line or configuration
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	err := run(os.Args[1:], os.Stdout)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return
	case errors.As(err, new(usageError)):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout *os.File) error {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError{err}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	bus := eventbus.New(log)
	defer bus.Close()
	eventbus.LogSearchFailures(bus, log)

	terminal := isatty.IsTerminal(stdout.Fd())
	oneShot := opts.query != "" || !terminal

	// subscribe before the config is loaded so its events reach the UI
	var uiEvents <-chan eventbus.DomainEvent
	if !oneShot {
		uiEvents = subscribeUIEvents(bus, log)
	}

	configSvc := config.NewConfigService(opts.configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.WithError(err).Warn("Error loading config, using defaults")
		cfg = config.DefaultConfig()
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return usageError{err}
	}
	if opts.saveConfig {
		if err := configSvc.Save(cfg); err != nil {
			log.WithError(err).Error("Failed to save config")
		}
	}

	closeLog := configureLogger(log, cfg, oneShot)
	defer closeLog()

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return usageError{err}
	}

	if oneShot {
		if opts.query == "" {
			return usageError{errors.New("stdout is not a terminal; pass --query to search once")}
		}
		return runOnce(ctx, fetcher, opts.query, stdout, terminal)
	}

	if err := runTUI(ctx, cfg, fetcher, bus, uiEvents, log); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func newFetcher(cfg *config.Config) (*feed.Fetcher, error) {
	pairing, err := feed.ParsePairing(cfg.Pairing)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: cfg.HTTPTimeout()}
	return feed.New(client, cfg.FeedBaseURL,
		feed.WithUserAgent(cfg.UserAgent),
		feed.WithPairing(pairing),
	), nil
}

// configureLogger points log at the configured log file while the TUI owns
// the terminal; one-shot mode keeps stderr
func configureLogger(log *logrus.Logger, cfg *config.Config, oneShot bool) func() {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if oneShot || cfg.LogFile == "" {
		return func() {}
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() { _ = logFile.Close() }
}

// uiEventTypes are the bus events the UI shows on its status line
var uiEventTypes = []eventbus.EventType{
	eventbus.EventSearchRequested,
	eventbus.EventSearchStarted,
	eventbus.EventSearchCompleted,
	eventbus.EventSearchFailed,
	eventbus.EventConfigLoaded,
	eventbus.EventConfigSaved,
}

// subscribeUIEvents buffers UI events until the program starts reading them
func subscribeUIEvents(bus eventbus.EventBus, log logrus.FieldLogger) <-chan eventbus.DomainEvent {
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Warn("Event channel full, dropping event")
		}
	}
	for _, t := range uiEventTypes {
		bus.Subscribe(t, forward)
	}
	return eventChan
}

func runTUI(ctx context.Context, cfg *config.Config, fetcher *feed.Fetcher, bus eventbus.EventBus, events <-chan eventbus.DomainEvent, log *logrus.Logger) error {
	uiModel := ui.NewModel(ctx, cfg, fetcher, bus, log)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case event := <-events:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	log.Info("Starting UI")
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		// interrupted by a signal
		err = nil
	}
	log.Info("UI exited")
	return err
}
