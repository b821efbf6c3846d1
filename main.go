// svcpulse is a terminal dashboard for watching a single service.
//
// It polls the service's health endpoint, its stats endpoint, and an
// optional local stats file on a fixed interval, and renders the results
// as a flicker-free full-screen dashboard with single-key commands.
//
// Usage:
//
//	svcpulse [flags]
//
// Flags:
//
//	-config string  Path to configuration file (default: XDG config search)
//	-once           Fetch one snapshot, print the frame, and exit
//	-verbose        Enable verbose logging
//	-version        Print version and exit
//
// Keys:
//
//	q  quit
//	r  refresh now
//	o  open the service page in the browser
//	s  toggle the local system section
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/svcpulse/pkg/config"
	"gitlab.com/tinyland/lab/svcpulse/pkg/frame"
	"gitlab.com/tinyland/lab/svcpulse/pkg/loop"
	"gitlab.com/tinyland/lab/svcpulse/pkg/poll"
	"gitlab.com/tinyland/lab/svcpulse/pkg/render"
	"gitlab.com/tinyland/lab/svcpulse/pkg/term"
	"gitlab.com/tinyland/lab/svcpulse/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

const (
	minFrameWidth = 40
	maxFrameWidth = 120
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		runOnce     = flag.Bool("once", false, "Fetch one snapshot, print the frame, and exit")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("svcpulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := setupLogging(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	fetcher := newFetcher(cfg, logger)
	builder := newFrameBuilder(cfg)

	if *runOnce {
		if err := printOnce(fetcher, builder); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	// The interactive dashboard takes over the terminal; refuse to start
	// when stdout is a pipe or file.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal (use -once for non-interactive output)")
		os.Exit(1)
	}

	renderer := render.New(os.Stdout)
	input := term.NewRawInput(os.Stdin)

	l := loop.New(loop.Config{
		RefreshInterval: cfg.UI.RefreshInterval.Duration,
		Tick:            cfg.TickInterval(),
		Logger:          logger,
	}, fetcher, builder, renderer, input)

	bindCommands(l, renderer, builder.system, cfg, logger)

	logger.Info("starting svcpulse",
		"service", cfg.Service.BaseURL,
		"refresh_interval", cfg.UI.RefreshInterval.Duration,
		"stats_file", cfg.Sources.StatsFile,
	)

	if err := l.Run(context.Background()); err != nil {
		logger.Error("run loop failed", "error", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// setupLogging opens the configured log file and builds the slog logger.
// The dashboard owns the terminal, so logs go to the file only.
func setupLogging(cfg *config.Config, verbose bool) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.General.LogFile), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	level := parseLogLevel(cfg.General.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, logFile, nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newFetcher assembles the poll sources from the configuration. The
// health source is primary: its results drive the cumulative counters.
func newFetcher(cfg *config.Config, logger *slog.Logger) *poll.Fetcher {
	client := &http.Client{}
	base := strings.TrimRight(cfg.Service.BaseURL, "/")
	timeout := cfg.Sources.Timeout.Duration

	healthOpts := []poll.HTTPOption{
		poll.WithClient(client),
		poll.WithTimeout(timeout),
		poll.WithTextFallback(),
	}
	statsOpts := []poll.HTTPOption{
		poll.WithClient(client),
		poll.WithTimeout(timeout),
	}
	if cfg.Service.AuthToken != "" {
		healthOpts = append(healthOpts, poll.WithAuthToken(cfg.Service.AuthToken))
		statsOpts = append(statsOpts, poll.WithAuthToken(cfg.Service.AuthToken))
	}

	sources := []poll.Source{
		poll.NewHTTPSource("health", base+cfg.Sources.HealthPath, healthOpts...),
		poll.NewHTTPSource("stats", base+cfg.Sources.StatsPath, statsOpts...),
	}
	if cfg.Sources.StatsFile != "" {
		sources = append(sources, poll.NewFileSource("ingest", cfg.Sources.StatsFile))
	}

	return poll.NewFetcher(sources, "health", client, logger)
}

// dashboard bundles the frame builder with the one stateful widget main
// needs a handle on after construction.
type dashboard struct {
	*frame.Builder
	system *widgets.System
}

// newFrameBuilder lays out the dashboard sections top to bottom.
func newFrameBuilder(cfg *config.Config) *dashboard {
	width := cfg.UI.Width
	if width <= 0 {
		width = term.GetSize().Cols
	}
	if width < minFrameWidth {
		width = minFrameWidth
	}
	if width > maxFrameWidth {
		width = maxFrameWidth
	}

	system := widgets.NewSystem(cfg.UI.SystemSection)

	sections := []frame.Section{
		widgets.NewHeader("svcpulse", cfg.Service.BaseURL),
		widgets.NewHealth("health"),
		widgets.NewServiceStats("stats"),
	}
	if cfg.Sources.StatsFile != "" {
		sections = append(sections, widgets.NewIngest("ingest"))
	}
	sections = append(sections,
		system,
		widgets.NewFooter("q quit · r refresh · o open · s system"),
	)

	return &dashboard{
		Builder: frame.NewBuilder(width, sections...),
		system:  system,
	}
}

// bindCommands registers the single-key commands on the loop.
func bindCommands(l *loop.Loop, renderer *render.Renderer, system *widgets.System, cfg *config.Config, logger *slog.Logger) {
	l.Bind('q', l.RequestStop)

	l.Bind('r', func() {
		l.ForceRefresh()
		l.SetStatus("refreshing", 2*time.Second)
	})

	l.Bind('o', func() {
		target := cfg.Service.OpenURL
		if target == "" {
			target = cfg.Service.BaseURL
		}
		if err := openBrowser(target); err != nil {
			logger.Warn("opening browser failed", "url", target, "error", err)
			l.SetStatus("open failed", 3*time.Second)
			return
		}
		l.SetStatus("opened "+target, 3*time.Second)
	})

	l.Bind('s', func() {
		if system.Toggle() {
			l.SetStatus("system section on", 2*time.Second)
		} else {
			l.SetStatus("system section off", 2*time.Second)
		}
		renderer.Invalidate()
		l.ForceRefresh()
	})
}

// openBrowser launches the platform opener without waiting for it.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the opener in the background so it never zombies.
	go func() { _ = cmd.Wait() }()
	return nil
}

// printOnce runs a single polling cycle and writes the frame to stdout
// as plain lines, for cron jobs and quick checks over SSH.
func printOnce(fetcher *poll.Fetcher, builder *dashboard) error {
	defer fetcher.Close()

	now := time.Now()
	snap := fetcher.FetchAll(context.Background())

	stats := poll.NewStats(now)
	if primary, ok := snap.Result(fetcher.Primary()); ok {
		stats.Record(primary)
	}

	lines := builder.Build(frame.Context{
		Snapshot: snap,
		Stats:    stats,
		Now:      now,
	})
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}
