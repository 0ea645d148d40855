// Package main runs the LSF change monitor: it logs into the university
// portal through the Microsoft SSO flow, walks to the grades page, and
// raises an audible alert whenever the page content changes between
// refresh cycles.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Diego6k9/LSF-Notifier/pkg/browser"
	"github.com/Diego6k9/LSF-Notifier/pkg/config"
	"github.com/Diego6k9/LSF-Notifier/pkg/logging"
	"github.com/Diego6k9/LSF-Notifier/pkg/monitor"
	"github.com/Diego6k9/LSF-Notifier/pkg/notify"
	"github.com/Diego6k9/LSF-Notifier/pkg/ui"
)

const version = "1.0.0"

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (YAML); environment variables take precedence")
		headless    = flag.Bool("headless", false, "Run the browser without a visible window (interactive MFA needs a visible one)")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("LSF Notifier v%s\n", version)
		return
	}

	log, _ := logging.NewLogger("monitor")
	defer log.Close()

	// Validate configuration before any browser session exists.
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Interrupt and terminate both request a graceful shutdown; the
	// monitor observes it at the next cycle boundary.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Infof("Shutdown signal received. Exiting gracefully...")
		cancel()
	}()

	if err := run(ctx, cfg, *headless, log); err != nil {
		log.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, headless bool, log *logging.Logger) error {
	status := ui.NewStatus()

	manager := browser.NewManager()
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer manager.Shutdown()

	factory := monitor.SessionFactory(func() (monitor.Session, error) {
		s, err := manager.NewSession(browser.SessionOptions{
			Headless:       headless,
			DefaultTimeout: cfg.WaitTimeout,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	detector := &monitor.ReadinessDetector{
		LoginURL:       cfg.LoginPage,
		PollInterval:   time.Second,
		Timeout:        cfg.LoginMaxWait,
		ConfirmTimeout: cfg.ConfirmTimeout,
		ConfirmInput:   os.Stdin,
		Log:            log,
		Status:         status,
	}

	walker := &monitor.Walker{
		LoginPage:   cfg.LoginPage,
		Username:    cfg.Username,
		Password:    cfg.Password,
		WaitTimeout: cfg.WaitTimeout,
		Readiness:   detector,
		Log:         log,
	}

	m := monitor.New(monitor.Options{
		Factory:     factory,
		Navigator:   walker,
		Notifier:    notify.NewBeeper(float64(cfg.SoundFrequency), cfg.SoundDuration),
		Interval:    cfg.CheckInterval,
		WaitTimeout: cfg.WaitTimeout,
		Log:         log,
		Status:      status,
	})

	return m.Run(ctx)
}
