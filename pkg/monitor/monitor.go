package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/Diego6k9/LSF-Notifier/pkg/browser"
	"github.com/Diego6k9/LSF-Notifier/pkg/logging"
	"github.com/Diego6k9/LSF-Notifier/pkg/ui"
)

// State identifies a phase of the monitor lifecycle.
type State string

const (
	StateStarting     State = "starting"
	StateMonitoring   State = "monitoring"
	StateRecovering   State = "recovering"
	StateShuttingDown State = "shutting-down"
	StateStopped      State = "stopped"
)

// Options wires a Monitor.
type Options struct {
	// Factory builds browser sessions: one at startup and a fresh one
	// per transport-failure recovery.
	Factory SessionFactory

	// Navigator establishes the baseline snapshot on a new session.
	Navigator Navigator

	// Notifier raises the audible alert; its failures are logged only.
	Notifier Notifier

	// Interval is the floor duration of one monitoring cycle.
	Interval time.Duration

	// WaitTimeout bounds the per-cycle content extraction.
	WaitTimeout time.Duration

	Log    *logging.Logger
	Status *ui.Status
}

// Monitor owns the refresh/compare/alert polling loop and the
// transport-failure recovery policy. It drives exactly one live session
// at a time from a single goroutine.
type Monitor struct {
	factory     SessionFactory
	navigator   Navigator
	notifier    Notifier
	interval    time.Duration
	waitTimeout time.Duration

	log    *logging.Logger
	status *ui.Status

	// sleep is swappable in tests.
	sleep func(time.Duration)

	state        State
	session      Session
	lastSnapshot string
}

// New creates a Monitor in the Starting state.
func New(opts Options) *Monitor {
	interval := opts.Interval
	if interval == 0 {
		interval = 30 * time.Second
	}
	waitTimeout := opts.WaitTimeout
	if waitTimeout == 0 {
		waitTimeout = 10 * time.Second
	}
	return &Monitor{
		factory:     opts.Factory,
		navigator:   opts.Navigator,
		notifier:    opts.Notifier,
		interval:    interval,
		waitTimeout: waitTimeout,
		log:         opts.Log,
		status:      opts.Status,
		sleep:       time.Sleep,
		state:       StateStarting,
	}
}

// State returns the monitor's current lifecycle state.
func (m *Monitor) State() State { return m.state }

// LastSnapshot returns the content most recently compared.
func (m *Monitor) LastSnapshot() string { return m.lastSnapshot }

// Run executes the monitor until ctx is cancelled or a fatal error
// occurs. Cancellation is observed at cycle boundaries only: an
// in-flight refresh, wait or sleep always completes first. The session
// is closed unconditionally on the way out.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.shutdown()

	m.log.Infof("Starting LSF monitor")
	m.status.Startingf("Starting LSF monitor")

	if err := m.start(ctx); err != nil {
		m.log.Errorf("Failed to get initial content: %v", err)
		m.status.Failedf("Failed to get initial content. Exiting.")
		return err
	}

	m.log.Infof("Initial content retrieved. Monitoring for changes...")
	m.status.Startingf("Initial content retrieved. Monitoring for changes...")

	m.state = StateMonitoring
	for ctx.Err() == nil {
		started := time.Now()

		switch m.state {
		case StateMonitoring:
			if err := m.cycle(); err != nil {
				if !browser.IsTransport(err) {
					return err
				}
				m.log.Errorf("Browser error during monitoring: %v", err)
				m.state = StateRecovering
				// Recover immediately; the sleep budget restarts when
				// recovery begins, not at cycle start.
				continue
			}

		case StateRecovering:
			if err := m.recover(ctx); err != nil {
				if !browser.IsTransport(err) {
					return err
				}
				// The loop itself is the retry budget: one recovery
				// attempt per cycle, indefinitely.
				m.log.Errorf("Recovery attempt failed: %v", err)
			} else {
				m.state = StateMonitoring
				m.status.Recoveredf("Recovered from error, continuing monitoring")
			}
		}

		m.pause(time.Since(started))
	}
	return nil
}

// start creates the first session and establishes the baseline
// snapshot. Failure here is fatal: with no baseline there is nothing to
// compare against.
func (m *Monitor) start(ctx context.Context) error {
	s, err := m.factory()
	if err != nil {
		return err
	}
	m.session = s

	snapshot, err := m.navigator.Run(ctx, s)
	if err != nil {
		return fmt.Errorf("initial navigation failed: %w", err)
	}
	m.lastSnapshot = snapshot
	return nil
}

// cycle runs one refresh/extract/compare pass.
func (m *Monitor) cycle() error {
	m.log.Infof("Refreshing page")
	m.status.Refreshingf("Refreshing page")

	if err := m.session.Refresh(); err != nil {
		return err
	}

	snapshot, err := m.extract()
	if err != nil {
		return err
	}

	if snapshot != m.lastSnapshot {
		m.log.Infof("Changes detected!")
		m.status.Changedf("Changes detected!")
		if err := m.notifier.Notify(); err != nil {
			m.log.Errorf("Error playing alert: %v", err)
		}
		m.lastSnapshot = snapshot
	} else {
		m.log.Infof("No changes detected")
		m.status.Unchangedf("No changes detected")
	}
	return nil
}

// extract reads the monitored content pane. A missing pane yields an
// empty snapshot rather than an error: the page may render without it
// after a session hiccup, and the next comparison surfaces that as a
// change.
func (m *Monitor) extract() (string, error) {
	text, err := m.session.Text(contentPane, m.waitTimeout)
	if err != nil {
		if browser.IsElementNotFound(err) {
			m.log.Errorf("Error getting page content: %v", err)
			return "", nil
		}
		return "", err
	}
	return text, nil
}

// recover rebuilds the session after a transport failure and
// re-establishes the baseline by running the full navigation sequence
// again; a complete login may recur. No comparison ever uses a snapshot
// from the disposed session.
func (m *Monitor) recover(ctx context.Context) error {
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}

	s, err := m.factory()
	if err != nil {
		return err
	}
	m.session = s

	snapshot, err := m.navigator.Run(ctx, s)
	if err != nil {
		return err
	}
	m.lastSnapshot = snapshot
	return nil
}

// pause sleeps for whatever remains of the cycle interval.
func (m *Monitor) pause(elapsed time.Duration) {
	budget := SleepBudget(m.interval, elapsed)
	m.log.Infof("Cycle took %.2fs, sleeping for %.2fs", elapsed.Seconds(), budget.Seconds())
	m.sleep(budget)
}

func (m *Monitor) shutdown() {
	m.state = StateShuttingDown
	m.log.Infof("Shutting down")
	m.status.Stoppingf("Shutting down")
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
	m.state = StateStopped
}

// SleepBudget returns how long to pause so a cycle takes at least
// interval in total. Never negative; an overlong cycle yields zero, not
// a skipped cycle.
func SleepBudget(interval, elapsed time.Duration) time.Duration {
	if rest := interval - elapsed; rest > 0 {
		return rest
	}
	return 0
}
